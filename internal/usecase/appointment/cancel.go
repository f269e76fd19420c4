package appointment

import (
	"context"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
)

type CancelAppointment struct {
	deps *Dependencies
}

func NewCancelAppointment(deps *Dependencies) *CancelAppointment {
	return &CancelAppointment{deps: deps}
}

func (uc *CancelAppointment) Execute(
	ctx context.Context,
	in StatusChangeInput,
) (*StatusChangeOutput, error) {

	d := uc.deps

	out, sched, err := d.changeStatus(ctx, in, domain.StatusCancelled, func(f *domain.Filter) {
		f.ExcludeStatuses = []domain.Status{domain.StatusCancelled}
	})
	if err != nil {
		return nil, err
	}

	d.sendNotification(ctx, in.Actor, out.Appointment, "Agendamento cancelado", d.describe(ctx, out.Appointment, sched.Location))

	d.recordAudit(in.Actor, "appointment_cancelled", out.Appointment, map[string]any{
		"cascade":  in.Cascade,
		"cascaded": out.Cascaded,
	})

	return out, nil
}
