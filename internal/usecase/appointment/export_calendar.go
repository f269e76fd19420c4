package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/salon-scheduler/internal/calendar"
	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
)

type ExportCalendarInput struct {
	Actor          domain.Actor
	ProfessionalID uint
	From           time.Time
	To             time.Time
}

type ExportCalendar struct {
	deps *Dependencies
}

func NewExportCalendar(deps *Dependencies) *ExportCalendar {
	return &ExportCalendar{deps: deps}
}

// Execute devolve a agenda do profissional no período como iCalendar.
func (uc *ExportCalendar) Execute(ctx context.Context, in ExportCalendarInput) (string, error) {
	d := uc.deps

	p, err := d.Professionals.GetProfessional(ctx, in.ProfessionalID)
	if err != nil {
		return "", err
	}
	if p.AccountID != in.Actor.AccountID {
		return "", domain.ErrProfessionalNotFound
	}
	if !in.Actor.CanManage(p.ID) {
		return "", domain.ErrForbidden
	}

	found, err := d.Store.Find(ctx, domain.Filter{
		AccountID:      in.Actor.AccountID,
		ProfessionalID: p.ID,
		From:           in.From,
		To:             in.To,
		WithDetails:    true,
		Limit:          1000,
	})
	if err != nil {
		return "", err
	}

	return calendar.Build("Agenda "+p.Name, found, d.now()), nil
}
