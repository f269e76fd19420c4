package appointment

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/dto"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
)

const defaultSlotStep = 15

type ListAvailableSlotsInput struct {
	Actor          domain.Actor
	ProfessionalID uint
	ServiceID      uint

	// Date no formato "2006-01-02", no fuso do profissional.
	Date string
}

type ListAvailableSlots struct {
	deps *Dependencies
}

func NewListAvailableSlots(deps *Dependencies) *ListAvailableSlots {
	return &ListAvailableSlots{deps: deps}
}

// Execute percorre o expediente do dia em passos fixos e pergunta ao
// Engine sobre cada horário, sem encaixe.
func (uc *ListAvailableSlots) Execute(
	ctx context.Context,
	in ListAvailableSlotsInput,
) ([]dto.SlotDTO, error) {

	d := uc.deps

	professional, err := d.Professionals.GetProfessional(ctx, in.ProfessionalID)
	if err != nil {
		return nil, err
	}
	if professional.AccountID != in.Actor.AccountID {
		return nil, domain.ErrProfessionalNotFound
	}

	service, err := d.service(ctx, in.Actor, in.ServiceID)
	if err != nil {
		return nil, err
	}

	sched, err := d.Engine.Schedule(ctx, professional.ID)
	if err != nil {
		return nil, err
	}

	loc := sched.Location
	if loc == nil {
		loc = time.UTC
	}
	day, err := time.ParseInLocation("2006-01-02", in.Date, loc)
	if err != nil {
		return nil, domain.ErrInvalidDate
	}

	hours, ok := domain.DayHoursFor(sched, day)
	if !ok {
		return []dto.SlotDTO{}, nil
	}

	step := d.SlotStepMinutes
	if step <= 0 {
		step = defaultSlotStep
	}

	start, _ := time.ParseInLocation("2006-01-02 15:04", in.Date+" "+hours.Start, loc)
	end, _ := time.ParseInLocation("2006-01-02 15:04", in.Date+" "+hours.End, loc)
	now := d.now()

	slots := make([]dto.SlotDTO, 0)
	for t := start; t.Before(end); t = t.Add(time.Duration(step) * time.Minute) {
		slot := dto.SlotDTO{
			Time:                  t,
			Label:                 t.Format("15:04"),
			IsOutsideWorkingHours: !domain.IsWithinWorkingHours(sched, t),
		}

		switch _, err := d.Engine.CheckSchedule(ctx, sched, t, service.Duration, domain.CheckOptions{}); {
		case t.Before(now):
			slot.Reason = "start_in_past"
		case err == nil:
			slot.Available = true
		default:
			code, business := httperr.CodeOf(err)
			if !business {
				return nil, err
			}
			slot.Reason = code
		}

		slots = append(slots, slot)
	}

	return slots, nil
}
