package audit

import (
	"context"
	"encoding/json"
	"time"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

// Query filtra a listagem; sempre restrita a uma conta.
type Query struct {
	AccountID uint
	Action    string
	Entity    string
	From      *time.Time
	To        *time.Time
	Limit     int
	Offset    int
}

type Reader interface {
	List(ctx context.Context, q Query) ([]models.AuditLog, int64, error)
}

func toLog(ev Event) models.AuditLog {
	var metaJSON string
	if ev.Metadata != nil {
		if b, err := json.Marshal(ev.Metadata); err == nil {
			metaJSON = string(b)
		}
	}

	return models.AuditLog{
		AccountID: ev.AccountID,
		UserID:    ev.UserID,
		Action:    ev.Action,
		Entity:    ev.Entity,
		EntityID:  ev.EntityID,
		Metadata:  metaJSON,
	}
}

// ======================================================
// Gorm
// ======================================================

type Logger struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Logger {
	return &Logger{db: db}
}

var (
	_ Sink   = (*Logger)(nil)
	_ Reader = (*Logger)(nil)
)

func (l *Logger) Record(ctx context.Context, ev Event) error {
	log := toLog(ev)
	return l.db.WithContext(ctx).Create(&log).Error
}

func (l *Logger) List(ctx context.Context, q Query) ([]models.AuditLog, int64, error) {
	tx := l.db.WithContext(ctx).
		Model(&models.AuditLog{}).
		Where("account_id = ?", q.AccountID)

	if q.Action != "" {
		tx = tx.Where("action = ?", q.Action)
	}
	if q.Entity != "" {
		tx = tx.Where("entity = ?", q.Entity)
	}
	if q.From != nil {
		tx = tx.Where("created_at >= ?", *q.From)
	}
	if q.To != nil {
		tx = tx.Where("created_at < ?", *q.To)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var logs []models.AuditLog
	err := tx.
		Order("created_at DESC").
		Limit(q.Limit).
		Offset(q.Offset).
		Find(&logs).Error

	return logs, total, err
}
