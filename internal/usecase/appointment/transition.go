package appointment

import (
	"context"
	"errors"
	"time"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type StatusChangeInput struct {
	Actor         domain.Actor
	AppointmentID uint

	// Cascade aplica a mesma mudança às ocorrências futuras da série.
	Cascade bool
}

type StatusChangeOutput struct {
	Appointment *models.Appointment `json:"appointment"`
	Cascaded    int                 `json:"cascaded"`
	Skipped     int                 `json:"skipped"`
}

// scheduleFor carrega o Schedule do profissional. Sem profissional, a
// trava usa o fuso gravado no próprio agendamento.
func (d *Dependencies) scheduleFor(ctx context.Context, professionalID uint) (*domain.Schedule, error) {
	sched, err := d.Engine.Schedule(ctx, professionalID)
	if errors.Is(err, domain.ErrProfessionalNotFound) {
		return &domain.Schedule{ProfessionalID: professionalID}, nil
	}
	return sched, err
}

// transitionLocked relê o agendamento sob a trava do dia e aplica next.
func (d *Dependencies) transitionLocked(
	ctx context.Context,
	sched *domain.Schedule,
	id uint,
	day time.Time,
	next domain.Status,
	now time.Time,
) (*models.Appointment, error) {

	var out *models.Appointment
	err := d.withDayLock(ctx, sched, day, func() error {
		fresh, err := d.Store.Get(ctx, id)
		if err != nil {
			return err
		}
		if err := domain.Transition(fresh, next, now); err != nil {
			return err
		}
		if err := d.save(ctx, fresh); err != nil {
			return err
		}
		out = fresh
		return nil
	})
	return out, err
}

// changeStatus é o caminho comum de cancelar, confirmar e mudar status.
// narrow restringe quais irmãos entram na cascata.
func (d *Dependencies) changeStatus(
	ctx context.Context,
	in StatusChangeInput,
	next domain.Status,
	narrow func(*domain.Filter),
) (*StatusChangeOutput, *domain.Schedule, error) {

	ap, err := d.loadForActor(ctx, in.Actor, in.AppointmentID)
	if err != nil {
		return nil, nil, err
	}

	sched, err := d.scheduleFor(ctx, ap.ProfessionalID)
	if err != nil {
		return nil, nil, err
	}

	now := d.now()

	updated, err := d.transitionLocked(ctx, sched, ap.ID, ap.Date, next, now)
	if err != nil {
		return nil, nil, err
	}

	out := &StatusChangeOutput{Appointment: updated}

	if !in.Cascade || !updated.Recurrence.IsRecurring {
		return out, sched, nil
	}

	// --------------------------------------------------
	// Cascata
	// --------------------------------------------------
	siblings, err := d.futureSiblings(ctx, updated, updated.Date, narrow)
	if err != nil {
		return nil, nil, err
	}

	for _, sib := range siblings {
		if _, err := d.transitionLocked(ctx, sched, sib.ID, sib.Date, next, now); err != nil {
			out.Skipped++
			d.Logger.Debug().
				Err(err).
				Uint("appointment_id", sib.ID).
				Str("status", string(next)).
				Msg("sibling skipped in cascade")
			continue
		}
		out.Cascaded++
	}

	return out, sched, nil
}
