package appointment

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

// ======================================================
// INPUT / OUTPUT
// ======================================================

type CreateAppointmentInput struct {
	Actor domain.Actor

	ClientID       uint
	ProfessionalID uint
	ServiceID      uint

	Date         time.Time
	Notes        string
	Color        string
	SendReminder *bool

	AllowOverride bool
	Recurrence    *domain.RecurrenceRule
}

type CreateAppointmentOutput struct {
	Appointment *models.Appointment  `json:"appointment"`
	Recurring   []models.Appointment `json:"recurring_appointments,omitempty"`
	Skipped     int                  `json:"skipped_occurrences"`

	IsOutsideWorkingHours bool `json:"is_outside_working_hours"`
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	deps *Dependencies
}

func NewCreateAppointment(deps *Dependencies) *CreateAppointment {
	return &CreateAppointment{deps: deps}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	in CreateAppointmentInput,
) (*CreateAppointmentOutput, error) {

	d := uc.deps

	// --------------------------------------------------
	// 1️⃣ Referências (todas antes de qualquer escrita)
	// --------------------------------------------------
	professional, err := d.professional(ctx, in.Actor, in.ProfessionalID)
	if err != nil {
		return nil, err
	}

	service, err := d.service(ctx, in.Actor, in.ServiceID)
	if err != nil {
		return nil, err
	}

	client, err := d.client(ctx, in.Actor, in.ClientID)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 2️⃣ Recorrência
	// --------------------------------------------------
	var rule domain.RecurrenceRule
	if in.Recurrence != nil {
		rule = *in.Recurrence
		rule.Normalize()
		if err := rule.Validate(); err != nil {
			return nil, err
		}
	}

	// --------------------------------------------------
	// 3️⃣ Passado só com encaixe
	// --------------------------------------------------
	if in.Date.Before(d.now()) && !in.AllowOverride {
		return nil, domain.ErrStartInPast
	}

	sched, err := d.Engine.Schedule(ctx, professional.ID)
	if err != nil {
		return nil, err
	}

	sendReminder := true
	if in.SendReminder != nil {
		sendReminder = *in.SendReminder
	}

	color := in.Color
	if color == "" {
		color = "default"
	}

	ap := &models.Appointment{
		AccountID:      in.Actor.AccountID,
		ClientID:       client.ID,
		ProfessionalID: professional.ID,
		ServiceID:      service.ID,
		Date:           in.Date,
		Duration:       service.Duration,
		Status:         string(domain.InitialStatus()),
		Notes:          in.Notes,
		Color:          color,
		SendReminder:   sendReminder,
	}
	if in.Recurrence != nil {
		ap.Recurrence = rule.ToModel(nil)
	}

	// --------------------------------------------------
	// 4️⃣ Disponibilidade + gravação sob a trava do dia
	// --------------------------------------------------
	var verdict *domain.Availability
	err = d.withDayLock(ctx, sched, ap.Date, func() error {
		res, err := d.Engine.CheckSchedule(ctx, sched, ap.Date, ap.Duration, domain.CheckOptions{
			AllowOverride: in.AllowOverride,
		})
		if err != nil {
			return err
		}
		verdict = res
		ap.IsOverride = res.IsOverride
		return d.save(ctx, ap)
	})
	if err != nil {
		return nil, err
	}

	out := &CreateAppointmentOutput{
		Appointment:           ap,
		IsOutsideWorkingHours: verdict.IsOutsideHours,
	}

	// --------------------------------------------------
	// 5️⃣ Série
	// --------------------------------------------------
	if in.Recurrence != nil {
		out.Recurring, out.Skipped, err = d.generateSeries(ctx, ap, rule, in.AllowOverride, sched)
		if err != nil {
			return nil, err
		}
	}

	// --------------------------------------------------
	// 6️⃣ Notificação + auditoria
	// --------------------------------------------------
	d.sendNotification(ctx, in.Actor, ap, "Novo agendamento", d.describe(ctx, ap, sched.Location))

	d.recordAudit(in.Actor, "appointment_created", ap, map[string]any{
		"is_override": ap.IsOverride,
		"recurring":   len(out.Recurring),
		"skipped":     out.Skipped,
	})

	return out, nil
}
