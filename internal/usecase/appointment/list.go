package appointment

import (
	"context"
	"errors"
	"fmt"
	"time"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/dto"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type ListAppointmentsInput struct {
	Actor domain.Actor

	ProfessionalID uint
	ClientID       uint
	Status         string

	From time.Time
	To   time.Time
}

type ListAppointments struct {
	deps *Dependencies
}

func NewListAppointments(deps *Dependencies) *ListAppointments {
	return &ListAppointments{deps: deps}
}

func (uc *ListAppointments) Execute(
	ctx context.Context,
	in ListAppointmentsInput,
) ([]dto.AppointmentListDTO, error) {

	d := uc.deps

	f := domain.Filter{
		AccountID:      in.Actor.AccountID,
		ProfessionalID: in.ProfessionalID,
		ClientID:       in.ClientID,
		From:           in.From,
		To:             in.To,
		WithDetails:    true,
	}

	// Profissional sem visão geral só enxerga a própria agenda.
	if in.Actor.Role == domain.RoleProfessional && !in.Actor.CanViewAll {
		if in.ProfessionalID != 0 && in.ProfessionalID != in.Actor.ProfessionalID {
			return nil, domain.ErrForbidden
		}
		f.ProfessionalID = in.Actor.ProfessionalID
	}

	if in.Status != "" {
		st, err := domain.ParseStatus(in.Status)
		if err != nil {
			return nil, err
		}
		f.Statuses = []domain.Status{st}
	}

	found, err := d.Store.Find(ctx, f)
	if err != nil {
		return nil, err
	}

	schedules := map[uint]*domain.Schedule{}
	out := make([]dto.AppointmentListDTO, 0, len(found))

	for i := range found {
		ap := &found[i]

		sched, ok := schedules[ap.ProfessionalID]
		if !ok {
			loaded, err := d.Engine.Schedule(ctx, ap.ProfessionalID)
			if err != nil && !errors.Is(err, domain.ErrProfessionalNotFound) {
				return nil, fmt.Errorf("load schedule: %w", err)
			}
			sched = loaded
			schedules[ap.ProfessionalID] = sched
		}

		out = append(out, toListDTO(ap, sched))
	}

	return out, nil
}

func toListDTO(ap *models.Appointment, sched *domain.Schedule) dto.AppointmentListDTO {
	item := dto.AppointmentListDTO{
		ID:                  ap.ID,
		Date:                ap.Date,
		EndTime:             ap.End(),
		Duration:            ap.Duration,
		Status:              ap.Status,
		Color:               ap.Color,
		Notes:               ap.Notes,
		ProfessionalID:      ap.ProfessionalID,
		IsOverride:          ap.IsOverride,
		IsRecurring:         ap.Recurrence.IsRecurring,
		ParentAppointmentID: ap.Recurrence.ParentAppointmentID,
	}

	if ap.Client != nil {
		item.ClientName = ap.Client.Name
	}
	if ap.Service != nil {
		item.ServiceName = ap.Service.Name
	}

	// Sem agenda carregável o agendamento conta como fora do expediente.
	item.IsOutsideWorkingHours = sched == nil || !domain.IsWithinWorkingHours(sched, ap.Date)
	return item
}
