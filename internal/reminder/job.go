package reminder

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/notify"
	"github.com/BruksfildServices01/salon-scheduler/internal/timezone"
)

const Title = "Lembrete de agendamento"

// Job avisa o profissional dos agendamentos confirmados de amanhã.
// É o único lugar que marca ReminderSent.
type Job struct {
	Store         domain.AppointmentStore
	Professionals domain.ProfessionalDirectory
	Notifier      domain.Notifier
	Locker        domain.DayLocker
	Logger        zerolog.Logger

	Location *time.Location
}

type Result struct {
	Sent   int
	Failed int
}

func (j *Job) location() *time.Location {
	if j.Location != nil {
		return j.Location
	}
	return timezone.Default()
}

// Run processa o dia seguinte a now, no fuso do job.
func (j *Job) Run(ctx context.Context, now time.Time) (Result, error) {
	var res Result

	local := now.In(j.location())
	from := time.Date(local.Year(), local.Month(), local.Day()+1, 0, 0, 0, 0, local.Location())
	to := from.AddDate(0, 0, 1)

	pending, err := j.Store.Find(ctx, domain.Filter{
		Statuses:        []domain.Status{domain.StatusConfirmed},
		From:            from,
		To:              to,
		ReminderPending: true,
		WithDetails:     true,
	})
	if err != nil {
		return res, fmt.Errorf("find pending reminders: %w", err)
	}

	for i := range pending {
		ap := &pending[i]
		if err := j.remind(ctx, ap); err != nil {
			res.Failed++
			j.Logger.Error().
				Err(err).
				Uint("appointment_id", ap.ID).
				Msg("reminder failed")
			continue
		}
		res.Sent++
	}

	j.Logger.Info().
		Str("day", from.Format("2006-01-02")).
		Int("sent", res.Sent).
		Int("failed", res.Failed).
		Msg("reminders processed")

	return res, nil
}

func (j *Job) remind(ctx context.Context, ap *models.Appointment) error {
	// Mesma chave de trava dos casos de uso: dia local do profissional.
	pro, err := j.Professionals.GetProfessional(ctx, ap.ProfessionalID)
	if err != nil && !errors.Is(err, domain.ErrProfessionalNotFound) {
		return err
	}

	loc := j.location()
	recipient := ap.ProfessionalID
	if pro != nil {
		loc = timezone.Location(pro.Timezone)
		if pro.UserAccountID != nil {
			recipient = *pro.UserAccountID
		}
	}

	if j.Locker != nil {
		sched := &domain.Schedule{ProfessionalID: ap.ProfessionalID, Location: loc}
		unlock, err := j.Locker.Lock(ctx, ap.ProfessionalID, domain.DayKey(sched, ap.Date))
		if err != nil {
			return err
		}
		defer unlock()
	}

	current, err := j.Store.Get(ctx, ap.ID)
	if err != nil {
		return err
	}
	if current.Status != string(domain.StatusConfirmed) || current.ReminderSent || !current.SendReminder {
		return nil
	}

	clientName := "cliente"
	if ap.Client != nil && ap.Client.Name != "" {
		clientName = ap.Client.Name
	}

	current.ReminderSent = true
	current.Client = nil
	current.Professional = nil
	current.Service = nil
	if err := j.Store.Save(ctx, current); err != nil {
		return fmt.Errorf("mark reminder sent: %w", err)
	}

	j.Notifier.Notify(ctx, models.Notification{
		AccountID:     current.AccountID,
		RecipientID:   recipient,
		Title:         Title,
		Message:       fmt.Sprintf("Lembrete: Amanhã você tem agendamento com %s", clientName),
		Type:          notify.TypeReminder,
		RelatedEntity: "appointment",
		RelatedID:     current.ID,
	})
	return nil
}

// Register agenda o job no cron; spec segue o formato de 5 campos.
func Register(c *cron.Cron, spec string, job *Job) (cron.EntryID, error) {
	return c.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()

		if _, err := job.Run(ctx, time.Now()); err != nil {
			job.Logger.Error().Err(err).Msg("reminder run failed")
		}
	})
}
