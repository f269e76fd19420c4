package appointment

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/notify"
)

// Dependencies agrupa os colaboradores comuns a todos os casos de uso.
type Dependencies struct {
	Store         domain.AppointmentStore
	Professionals domain.ProfessionalDirectory
	Services      domain.ServiceCatalog
	Clients       domain.ClientDirectory
	Engine        *domain.Engine
	Locker        domain.DayLocker
	Notifier      domain.Notifier
	Audit         *audit.Dispatcher
	Logger        zerolog.Logger

	Now func() time.Time

	MaxSeriesOccurrences int
	SlotStepMinutes      int
}

func (d *Dependencies) now() time.Time {
	if d.Now != nil {
		return d.Now()
	}
	return time.Now()
}

func (d *Dependencies) maxSeries() int {
	if d.MaxSeriesOccurrences <= 0 || d.MaxSeriesOccurrences > domain.MaxSeriesOccurrences {
		return domain.MaxSeriesOccurrences
	}
	return d.MaxSeriesOccurrences
}

// withDayLock roda fn com o dia local de t travado para o profissional.
func (d *Dependencies) withDayLock(
	ctx context.Context,
	sched *domain.Schedule,
	t time.Time,
	fn func() error,
) error {
	unlock, err := d.Locker.Lock(ctx, sched.ProfessionalID, domain.DayKey(sched, t))
	if err != nil {
		return err
	}
	defer unlock()

	return fn()
}

// save traduz a violação da constraint de sobreposição em SlotConflict.
func (d *Dependencies) save(ctx context.Context, ap *models.Appointment) error {
	if err := d.Store.Save(ctx, ap); err != nil {
		if httperr.IsExclusionConflict(err) {
			return domain.ErrSlotConflict
		}
		return err
	}
	return nil
}

func (d *Dependencies) loadForActor(
	ctx context.Context,
	actor domain.Actor,
	id uint,
) (*models.Appointment, error) {

	ap, err := d.Store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := actor.Authorize(ap); err != nil {
		return nil, err
	}
	return ap, nil
}

// ======================================================
// Referências
// ======================================================

func (d *Dependencies) professional(ctx context.Context, actor domain.Actor, id uint) (*models.Professional, error) {
	p, err := d.Professionals.GetProfessional(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.AccountID != actor.AccountID {
		return nil, domain.ErrProfessionalNotFound
	}
	if !actor.CanManage(p.ID) {
		return nil, domain.ErrForbidden
	}
	if p.Status == models.ProfessionalInactive {
		return nil, domain.ErrProfessionalInactive
	}
	return p, nil
}

func (d *Dependencies) service(ctx context.Context, actor domain.Actor, id uint) (*models.Service, error) {
	svc, err := d.Services.GetService(ctx, id)
	if err != nil {
		return nil, err
	}
	if svc.AccountID != actor.AccountID {
		return nil, domain.ErrServiceNotFound
	}
	if svc.Duration <= 0 {
		return nil, httperr.WithMessage(domain.ErrInvalidDuration, "service has no duration")
	}
	return svc, nil
}

func (d *Dependencies) client(ctx context.Context, actor domain.Actor, id uint) (*models.Client, error) {
	c, err := d.Clients.GetClient(ctx, id)
	if err != nil {
		return nil, err
	}
	if c.AccountID != actor.AccountID {
		return nil, domain.ErrClientNotFound
	}
	return c, nil
}

func (d *Dependencies) clientName(ctx context.Context, id uint) string {
	c, err := d.Clients.GetClient(ctx, id)
	if err != nil {
		return "cliente"
	}
	return c.Name
}

// ======================================================
// Notificações e auditoria
// ======================================================

// sendNotification avisa quem agiu e, se for outra pessoa, o usuário do profissional.
func (d *Dependencies) sendNotification(
	ctx context.Context,
	actor domain.Actor,
	ap *models.Appointment,
	title string,
	message string,
) {
	n := models.Notification{
		AccountID:     ap.AccountID,
		RecipientID:   actor.UserID,
		Title:         title,
		Message:       message,
		Type:          notify.TypeAppointment,
		RelatedEntity: "appointment",
		RelatedID:     ap.ID,
	}
	d.Notifier.Notify(ctx, n)

	p, err := d.Professionals.GetProfessional(ctx, ap.ProfessionalID)
	if err != nil || p.UserAccountID == nil || *p.UserAccountID == actor.UserID {
		return
	}
	n.RecipientID = *p.UserAccountID
	d.Notifier.Notify(ctx, n)
}

func (d *Dependencies) describe(ctx context.Context, ap *models.Appointment, loc *time.Location) string {
	when := ap.Date
	if loc != nil {
		when = when.In(loc)
	}
	return fmt.Sprintf(
		"Agendamento com %s para %s",
		d.clientName(ctx, ap.ClientID),
		when.Format("02/01/2006 15:04"),
	)
}

func (d *Dependencies) recordAudit(actor domain.Actor, action string, ap *models.Appointment, meta any) {
	userID := actor.UserID
	entityID := ap.ID

	d.Audit.Dispatch(audit.Event{
		AccountID: actor.AccountID,
		UserID:    &userID,
		Action:    action,
		Entity:    "appointment",
		EntityID:  &entityID,
		Metadata:  meta,
	})
}
