package appointment

import (
	"context"
	"errors"
	"time"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

// ======================================================
// INPUT / OUTPUT
// ======================================================

// UpdateAppointmentInput usa ponteiros: nil significa "não alterar".
type UpdateAppointmentInput struct {
	Actor         domain.Actor
	AppointmentID uint

	Date         *time.Time
	Duration     *int
	Notes        *string
	Color        *string
	SendReminder *bool
	Status       *string

	ClientID       *uint
	ProfessionalID *uint
	ServiceID      *uint

	AllowOverride bool

	// ApplyToFuture replica a alteração nas ocorrências futuras; datas
	// são deslocadas pelo mesmo delta, não sobrescritas.
	ApplyToFuture bool
}

type UpdateAppointmentOutput struct {
	Appointment   *models.Appointment `json:"appointment"`
	FutureUpdated int                 `json:"future_updated"`
	Skipped       int                 `json:"skipped"`
}

// ======================================================
// USE CASE
// ======================================================

type UpdateAppointment struct {
	deps *Dependencies
}

func NewUpdateAppointment(deps *Dependencies) *UpdateAppointment {
	return &UpdateAppointment{deps: deps}
}

// change é a alteração já resolvida, aplicável à raiz e aos irmãos.
type change struct {
	in           UpdateAppointmentInput
	professional uint
	duration     int
	status       *domain.Status
	now          time.Time
}

func (c change) apply(ap *models.Appointment) error {
	if c.status != nil {
		if err := domain.Transition(ap, *c.status, c.now); err != nil {
			return err
		}
	}
	if c.in.Notes != nil {
		ap.Notes = *c.in.Notes
	}
	if c.in.Color != nil {
		ap.Color = *c.in.Color
	}
	if c.in.SendReminder != nil {
		ap.SendReminder = *c.in.SendReminder
	}
	if c.in.ClientID != nil {
		ap.ClientID = *c.in.ClientID
	}
	if c.in.ServiceID != nil {
		ap.ServiceID = *c.in.ServiceID
	}
	if c.in.ProfessionalID != nil {
		ap.ProfessionalID = c.professional
	}
	if c.in.ServiceID != nil || c.in.Duration != nil {
		ap.Duration = c.duration
	}
	return nil
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *UpdateAppointment) Execute(
	ctx context.Context,
	in UpdateAppointmentInput,
) (*UpdateAppointmentOutput, error) {

	d := uc.deps

	ap, err := d.loadForActor(ctx, in.Actor, in.AppointmentID)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 1️⃣ Referências alteradas
	// --------------------------------------------------
	c := change{
		in:           in,
		professional: ap.ProfessionalID,
		duration:     ap.Duration,
		now:          d.now(),
	}

	if in.ClientID != nil {
		if _, err := d.client(ctx, in.Actor, *in.ClientID); err != nil {
			return nil, err
		}
	}
	if in.ProfessionalID != nil {
		p, err := d.professional(ctx, in.Actor, *in.ProfessionalID)
		if err != nil {
			return nil, err
		}
		c.professional = p.ID
	}
	if in.ServiceID != nil {
		svc, err := d.service(ctx, in.Actor, *in.ServiceID)
		if err != nil {
			return nil, err
		}
		c.duration = svc.Duration
	}
	if in.Duration != nil {
		if *in.Duration <= 0 {
			return nil, domain.ErrInvalidDuration
		}
		c.duration = *in.Duration
	}
	if in.Status != nil {
		st, err := domain.ParseStatus(*in.Status)
		if err != nil {
			return nil, err
		}
		c.status = &st
	}

	// --------------------------------------------------
	// 2️⃣ Nova data
	// --------------------------------------------------
	oldDate := ap.Date
	newDate := ap.Date
	if in.Date != nil {
		newDate = *in.Date
	}
	if !newDate.Equal(oldDate) && newDate.Before(c.now) && !in.AllowOverride {
		return nil, domain.ErrStartInPast
	}

	schedules := map[uint]*domain.Schedule{}
	scheduleOf := func(professionalID uint) (*domain.Schedule, error) {
		if s, ok := schedules[professionalID]; ok {
			return s, nil
		}
		s, err := d.scheduleFor(ctx, professionalID)
		if err == nil {
			schedules[professionalID] = s
		}
		return s, err
	}

	// --------------------------------------------------
	// 3️⃣ Agendamento principal
	// --------------------------------------------------
	updated, err := d.reschedule(ctx, scheduleOf, ap.ID, newDate, c)
	if err != nil {
		return nil, err
	}

	out := &UpdateAppointmentOutput{Appointment: updated}

	// --------------------------------------------------
	// 4️⃣ Cascata para o futuro
	// --------------------------------------------------
	if in.ApplyToFuture && updated.Recurrence.IsRecurring {
		siblings, err := d.futureSiblings(ctx, updated, oldDate, func(f *domain.Filter) {
			f.ExcludeStatuses = []domain.Status{
				domain.StatusCancelled,
				domain.StatusCompleted,
				domain.StatusNoShow,
			}
		})
		if err != nil {
			return nil, err
		}

		for _, sib := range siblings {
			sibDate := sib.Date
			if !newDate.Equal(oldDate) {
				sibDate = domain.ShiftDate(sib.Date, oldDate, newDate)
			}

			if _, err := d.reschedule(ctx, scheduleOf, sib.ID, sibDate, c); err != nil {
				out.Skipped++
				d.Logger.Debug().
					Err(err).
					Uint("appointment_id", sib.ID).
					Msg("sibling skipped in update cascade")
				continue
			}
			out.FutureUpdated++
		}
	}

	// --------------------------------------------------
	// 5️⃣ Auditoria
	// --------------------------------------------------
	d.recordAudit(in.Actor, "appointment_updated", updated, map[string]any{
		"apply_to_future": in.ApplyToFuture,
		"future_updated":  out.FutureUpdated,
		"skipped":         out.Skipped,
	})

	return out, nil
}

// reschedule relê o agendamento sob a trava do novo dia, revalida a
// disponibilidade quando horário, profissional ou duração mudam, aplica
// a alteração e grava.
func (d *Dependencies) reschedule(
	ctx context.Context,
	scheduleOf func(uint) (*domain.Schedule, error),
	id uint,
	date time.Time,
	c change,
) (*models.Appointment, error) {

	current, err := d.Store.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	professionalID := current.ProfessionalID
	if c.in.ProfessionalID != nil {
		professionalID = c.professional
	}

	sched, err := scheduleOf(professionalID)
	if err != nil {
		return nil, err
	}

	var out *models.Appointment
	err = d.withDayLock(ctx, sched, date, func() error {
		fresh, err := d.Store.Get(ctx, id)
		if err != nil {
			return err
		}

		previous := *fresh
		if err := c.apply(fresh); err != nil {
			return err
		}
		fresh.Date = date

		moved := !fresh.Date.Equal(previous.Date) ||
			fresh.ProfessionalID != previous.ProfessionalID ||
			fresh.Duration != previous.Duration

		if moved && domain.Status(fresh.Status).Blocking() {
			opts := domain.CheckOptions{
				ExcludeAppointmentID: fresh.ID,
				AllowOverride:        c.in.AllowOverride,
			}
			res, err := d.Engine.CheckSchedule(ctx, sched, fresh.Date, fresh.Duration, opts)
			// Um encaixe continua encaixe; o teto só vale se o novo horário precisar dele.
			if err != nil && !opts.AllowOverride && previous.IsOverride && overridable(err) {
				opts.AllowOverride = true
				res, err = d.Engine.CheckSchedule(ctx, sched, fresh.Date, fresh.Duration, opts)
			}
			if err != nil {
				return err
			}
			fresh.IsOverride = res.IsOverride
		}

		if err := d.save(ctx, fresh); err != nil {
			return err
		}
		out = fresh
		return nil
	})
	return out, err
}

// overridable diz se um encaixe resolveria err.
func overridable(err error) bool {
	return errors.Is(err, domain.ErrOutsideWorkingHours) ||
		errors.Is(err, domain.ErrSlotConflict) ||
		errors.Is(err, domain.ErrOnBreak) ||
		errors.Is(err, domain.ErrTimeOff)
}
