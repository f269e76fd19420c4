package appointment

import (
	"context"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
)

type ConfirmAppointment struct {
	deps *Dependencies
}

func NewConfirmAppointment(deps *Dependencies) *ConfirmAppointment {
	return &ConfirmAppointment{deps: deps}
}

func (uc *ConfirmAppointment) Execute(
	ctx context.Context,
	in StatusChangeInput,
) (*StatusChangeOutput, error) {

	d := uc.deps

	out, sched, err := d.changeStatus(ctx, in, domain.StatusConfirmed, func(f *domain.Filter) {
		f.Statuses = []domain.Status{domain.StatusScheduled}
	})
	if err != nil {
		return nil, err
	}

	d.sendNotification(ctx, in.Actor, out.Appointment, "Agendamento confirmado", d.describe(ctx, out.Appointment, sched.Location))

	d.recordAudit(in.Actor, "appointment_confirmed", out.Appointment, map[string]any{
		"cascade":  in.Cascade,
		"cascaded": out.Cascaded,
	})

	return out, nil
}
