package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

const DefaultOverrideCapPerDay = 2

type CheckOptions struct {
	ExcludeAppointmentID uint
	AllowOverride        bool
}

// Availability é o veredito de um horário aceito.
type Availability struct {
	IsAvailable    bool `json:"is_available"`
	IsOutsideHours bool `json:"is_outside_hours"`
	IsOverride     bool `json:"is_override"`
	OnBreak        bool `json:"on_break"`
	TimeOff        bool `json:"time_off"`

	Conflict *models.Appointment `json:"-"`
}

// Engine é o único ponto que decide se um horário pode ser ocupado.
type Engine struct {
	schedules   ScheduleSource
	store       AppointmentStore
	overrideCap int
}

func NewEngine(schedules ScheduleSource, store AppointmentStore, overrideCap int) *Engine {
	if overrideCap <= 0 {
		overrideCap = DefaultOverrideCapPerDay
	}
	return &Engine{
		schedules:   schedules,
		store:       store,
		overrideCap: overrideCap,
	}
}

func (e *Engine) Schedule(ctx context.Context, professionalID uint) (*Schedule, error) {
	return e.schedules.LoadSchedule(ctx, professionalID)
}

func (e *Engine) Check(
	ctx context.Context,
	professionalID uint,
	start time.Time,
	durationMinutes int,
	opts CheckOptions,
) (*Availability, error) {

	sched, err := e.Schedule(ctx, professionalID)
	if err != nil {
		return nil, err
	}
	return e.CheckSchedule(ctx, sched, start, durationMinutes, opts)
}

// CheckSchedule faz a verificação com um Schedule já carregado. Não
// grava nada: quem chama persiste IsOverride no agendamento.
func (e *Engine) CheckSchedule(
	ctx context.Context,
	sched *Schedule,
	start time.Time,
	durationMinutes int,
	opts CheckOptions,
) (*Availability, error) {

	if durationMinutes <= 0 {
		return nil, ErrInvalidDuration
	}
	end := start.Add(time.Duration(durationMinutes) * time.Minute)

	// -----------------------------
	// 1. Expediente configurado
	// -----------------------------
	if _, ok := DayHoursFor(sched, start); !ok {
		return nil, ErrScheduleNotConfigured
	}

	res := &Availability{IsAvailable: true}

	// -----------------------------
	// 2. Expediente, intervalos e folgas
	// -----------------------------
	res.IsOutsideHours = !IsWithinWorkingHours(sched, start)
	if res.IsOutsideHours && !opts.AllowOverride {
		return nil, ErrOutsideWorkingHours
	}

	res.TimeOff = IsTimeOff(sched, start)
	if res.TimeOff && !opts.AllowOverride {
		return nil, ErrTimeOff
	}

	res.OnBreak = IsOnBreak(sched, start, end)
	if res.OnBreak && !opts.AllowOverride {
		return nil, ErrOnBreak
	}

	// -----------------------------
	// 3. Conflitos do dia
	// -----------------------------
	dayStart, dayEnd := DayBounds(sched, start)

	sameDay, err := e.store.Find(ctx, Filter{
		ProfessionalID: sched.ProfessionalID,
		Statuses:       BlockingStatuses(),
		ExcludeID:      opts.ExcludeAppointmentID,
		From:           dayStart,
		To:             dayEnd,
	})
	if err != nil {
		return nil, err
	}

	res.Conflict = FindConflict(sameDay, start, end, opts.ExcludeAppointmentID)
	if res.Conflict != nil && !opts.AllowOverride {
		return nil, ErrSlotConflict
	}

	// -----------------------------
	// 4. Limite diário de encaixes
	// -----------------------------
	if opts.AllowOverride {
		count, err := e.store.Count(ctx, Filter{
			ProfessionalID:  sched.ProfessionalID,
			ExcludeStatuses: []Status{StatusCancelled},
			ExcludeID:       opts.ExcludeAppointmentID,
			From:            dayStart,
			To:              dayEnd,
			OverrideOnly:    true,
		})
		if err != nil {
			return nil, err
		}
		if count >= int64(e.overrideCap) {
			return nil, ErrOverrideCapExceeded
		}
	}

	// -----------------------------
	// 5. Encaixe derivado
	// -----------------------------
	res.IsOverride = res.Conflict != nil ||
		res.IsOutsideHours ||
		res.OnBreak ||
		res.TimeOff

	return res, nil
}
