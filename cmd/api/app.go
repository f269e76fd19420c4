package main

import (
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	"github.com/BruksfildServices01/salon-scheduler/internal/config"
	dbpkg "github.com/BruksfildServices01/salon-scheduler/internal/db"
	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/infra/lock"
	"github.com/BruksfildServices01/salon-scheduler/internal/infra/memory"
	infraRepo "github.com/BruksfildServices01/salon-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/notify"
	"github.com/BruksfildServices01/salon-scheduler/internal/reminder"
	"github.com/BruksfildServices01/salon-scheduler/internal/routes"
	ucAppointment "github.com/BruksfildServices01/salon-scheduler/internal/usecase/appointment"
)

// store é o que um backend de persistência precisa oferecer.
type store interface {
	domain.AppointmentStore
	domain.ProfessionalDirectory
	domain.ServiceCatalog
	domain.ClientDirectory
	domain.ScheduleSource
	domain.ScheduleAdmin
	domain.CatalogAdmin
}

// app guarda os singletons do processo e sabe encerrá-los.
type app struct {
	cfg    *config.Config
	logger zerolog.Logger

	db    *gorm.DB
	store store
	redis *redis.Client

	audit       *audit.Dispatcher
	auditReader audit.Reader
	notifier    *notify.Dispatcher
	kafka       *notify.KafkaSink
	locker      domain.DayLocker

	scheduling *ucAppointment.Dependencies
}

func newApp(cfg *config.Config, logger zerolog.Logger, inMemory bool) (*app, error) {
	a := &app{cfg: cfg, logger: logger}

	// ======================================================
	// PERSISTÊNCIA
	// ======================================================
	var auditSink audit.Sink
	sinks := []notify.Sink{notify.NewLogSink(logger)}

	if inMemory {
		mem := memory.NewStore()
		a.store = mem

		auditMem := audit.NewMemory()
		auditSink, a.auditReader = auditMem, auditMem

		logger.Warn().Msg("running with in-memory storage")
	} else {
		db, err := dbpkg.NewDB(cfg)
		if err != nil {
			return nil, err
		}
		a.db = db
		a.store = infraRepo.NewAppointmentGormRepository(db)

		auditLogger := audit.New(db)
		auditSink, a.auditReader = auditLogger, auditLogger

		sinks = append(sinks, notify.NewGormSink(db))
	}

	if len(cfg.KafkaBrokers) > 0 {
		a.kafka = notify.NewKafkaSink(cfg.KafkaBrokers, cfg.KafkaTopic)
		sinks = append(sinks, a.kafka)
		logger.Info().Strs("brokers", cfg.KafkaBrokers).Str("topic", cfg.KafkaTopic).Msg("kafka notifications enabled")
	}

	a.audit = audit.NewDispatcher(auditSink, logger)
	a.notifier = notify.NewDispatcher(logger, sinks...)

	// ======================================================
	// TRAVA POR DIA
	// ======================================================
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("parse redis url: %w", err)
		}
		a.redis = redis.NewClient(opts)
		a.locker = lock.NewRedis(a.redis, cfg.Policy.LockTTL(), cfg.Policy.LockWait(), logger)
	} else {
		a.locker = lock.NewLocal()
	}

	// ======================================================
	// CASOS DE USO
	// ======================================================
	a.scheduling = &ucAppointment.Dependencies{
		Store:         a.store,
		Professionals: a.store,
		Services:      a.store,
		Clients:       a.store,
		Engine:        domain.NewEngine(a.store, a.store, cfg.Policy.OverrideCapPerDay),
		Locker:        a.locker,
		Notifier:      a.notifier,
		Audit:         a.audit,
		Logger:        logger,

		MaxSeriesOccurrences: cfg.Policy.MaxSeriesOccurrences,
		SlotStepMinutes:      cfg.Policy.SlotStepMinutes,
	}

	return a, nil
}

func (a *app) routes() routes.Deps {
	return routes.Deps{
		Scheduling:  a.scheduling,
		Catalog:     a.store,
		Schedules:   a.store,
		AuditReader: a.auditReader,
		JWTSecret:   a.cfg.JWTSecret,
		Logger:      a.logger,
	}
}

func (a *app) reminderJob() *reminder.Job {
	return &reminder.Job{
		Store:         a.store,
		Professionals: a.store,
		Notifier:      a.notifier,
		Locker:        a.locker,
		Logger:        a.logger.With().Str("component", "reminder").Logger(),
	}
}

// seedDemo popula o modo em memória com uma conta utilizável.
func (a *app) seedDemo() {
	mem, ok := a.store.(*memory.Store)
	if !ok {
		return
	}

	hours := models.DayHours{Start: "09:00", End: "18:00"}
	mem.AddProfessional(models.Professional{
		AccountID: 1,
		Name:      "Profissional Demo",
		WorkingHours: datatypes.NewJSONType(models.WorkingHoursSpec{
			"monday": hours, "tuesday": hours, "wednesday": hours,
			"thursday": hours, "friday": hours,
			"saturday": {Start: "09:00", End: "13:00"},
		}),
	})
	mem.AddService(models.Service{AccountID: 1, Name: "Corte", Duration: 30, Price: 50, Active: true})
	mem.AddClient(models.Client{AccountID: 1, Name: "Cliente Demo", Phone: "11999990000"})

	a.logger.Info().Msg("demo data seeded for account 1")
}

// Close drena as filas antes de soltar as conexões.
func (a *app) Close() {
	if a.audit != nil {
		a.audit.Close()
	}
	if a.notifier != nil {
		a.notifier.Close()
	}
	if a.kafka != nil {
		if err := a.kafka.Close(); err != nil {
			a.logger.Error().Err(err).Msg("kafka close")
		}
	}
	if a.redis != nil {
		_ = a.redis.Close()
	}
	if a.db != nil {
		if sqlDB, err := a.db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
}

const shutdownTimeout = 10 * time.Second
