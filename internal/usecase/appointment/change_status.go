package appointment

import (
	"context"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type ChangeStatusInput struct {
	Actor         domain.Actor
	AppointmentID uint
	Status        string
}

// ChangeStatus aplica qualquer transição legal (concluir, falta, ...),
// sem cascata.
type ChangeStatus struct {
	deps *Dependencies
}

func NewChangeStatus(deps *Dependencies) *ChangeStatus {
	return &ChangeStatus{deps: deps}
}

func (uc *ChangeStatus) Execute(
	ctx context.Context,
	in ChangeStatusInput,
) (*models.Appointment, error) {

	next, err := domain.ParseStatus(in.Status)
	if err != nil {
		return nil, err
	}

	d := uc.deps

	before, err := d.loadForActor(ctx, in.Actor, in.AppointmentID)
	if err != nil {
		return nil, err
	}

	out, _, err := d.changeStatus(ctx, StatusChangeInput{
		Actor:         in.Actor,
		AppointmentID: in.AppointmentID,
	}, next, nil)
	if err != nil {
		return nil, err
	}

	d.recordAudit(in.Actor, "appointment_status_changed", out.Appointment, map[string]string{
		"from": before.Status,
		"to":   string(next),
	})

	return out.Appointment, nil
}
