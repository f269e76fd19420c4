package reminder

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/BruksfildServices01/salon-scheduler/internal/infra/lock"
	"github.com/BruksfildServices01/salon-scheduler/internal/infra/memory"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/notify"
)

type capture struct {
	mu  sync.Mutex
	got []models.Notification
}

func (c *capture) Notify(ctx context.Context, n models.Notification) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.got = append(c.got, n)
}

func seed(t *testing.T, store *memory.Store, ap models.Appointment) *models.Appointment {
	t.Helper()
	if err := store.Save(context.Background(), &ap); err != nil {
		t.Fatal(err)
	}
	return &ap
}

func TestRunNotifiesTomorrowsConfirmedAppointments(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()

	userID := uint(77)
	pro := store.AddProfessional(models.Professional{AccountID: 1, Name: "Ana", UserAccountID: &userID})
	cli := store.AddClient(models.Client{AccountID: 1, Name: "João"})

	base := models.Appointment{
		AccountID:      1,
		ProfessionalID: pro.ID,
		ClientID:       cli.ID,
		Duration:       30,
		SendReminder:   true,
	}

	due := base
	due.Date = time.Date(2024, 3, 5, 10, 0, 0, 0, time.UTC)
	due.Status = "confirmed"
	dueAp := seed(t, store, due)

	scheduled := base
	scheduled.Date = time.Date(2024, 3, 5, 11, 0, 0, 0, time.UTC)
	scheduled.Status = "scheduled"
	seed(t, store, scheduled)

	optedOut := base
	optedOut.Date = time.Date(2024, 3, 5, 12, 0, 0, 0, time.UTC)
	optedOut.Status = "confirmed"
	optedOut.SendReminder = false
	seed(t, store, optedOut)

	later := base
	later.Date = time.Date(2024, 3, 6, 10, 0, 0, 0, time.UTC)
	later.Status = "confirmed"
	seed(t, store, later)

	notifier := &capture{}
	job := &Job{
		Store:         store,
		Professionals: store,
		Notifier:      notifier,
		Locker:        lock.NewLocal(),
		Logger:        zerolog.Nop(),
		Location:      time.UTC,
	}

	now := time.Date(2024, 3, 4, 18, 0, 0, 0, time.UTC)
	res, err := job.Run(ctx, now)
	if err != nil {
		t.Fatal(err)
	}
	if res.Sent != 1 || res.Failed != 0 {
		t.Fatalf("unexpected result: %+v", res)
	}

	if len(notifier.got) != 1 {
		t.Fatalf("expected 1 notification, got %d", len(notifier.got))
	}
	n := notifier.got[0]
	if n.Title != Title || n.Type != notify.TypeReminder || n.RecipientID != userID || n.RelatedID != dueAp.ID {
		t.Fatalf("unexpected notification: %+v", n)
	}
	if n.Message != "Lembrete: Amanhã você tem agendamento com João" {
		t.Fatalf("message: %q", n.Message)
	}

	stored, err := store.Get(ctx, dueAp.ID)
	if err != nil {
		t.Fatal(err)
	}
	if !stored.ReminderSent {
		t.Fatal("reminder flag not set")
	}

	// segunda execução não repete o aviso
	res, err = job.Run(ctx, now)
	if err != nil {
		t.Fatal(err)
	}
	if res.Sent != 0 || len(notifier.got) != 1 {
		t.Fatalf("reminder sent twice: %+v", res)
	}
}

func TestRunFallsBackToProfessionalID(t *testing.T) {
	store := memory.NewStore()
	pro := store.AddProfessional(models.Professional{AccountID: 1, Name: "Bia"})

	seed(t, store, models.Appointment{
		AccountID:      1,
		ProfessionalID: pro.ID,
		Date:           time.Date(2024, 3, 5, 9, 0, 0, 0, time.UTC),
		Duration:       30,
		Status:         "confirmed",
		SendReminder:   true,
	})

	notifier := &capture{}
	job := &Job{
		Store:         store,
		Professionals: store,
		Notifier:      notifier,
		Logger:        zerolog.Nop(),
		Location:      time.UTC,
	}

	if _, err := job.Run(context.Background(), time.Date(2024, 3, 4, 8, 0, 0, 0, time.UTC)); err != nil {
		t.Fatal(err)
	}
	if len(notifier.got) != 1 || notifier.got[0].RecipientID != pro.ID {
		t.Fatalf("unexpected notifications: %+v", notifier.got)
	}
	if notifier.got[0].Message != "Lembrete: Amanhã você tem agendamento com cliente" {
		t.Fatalf("message: %q", notifier.got[0].Message)
	}
}

type keyLocker struct {
	mu   sync.Mutex
	keys []string
}

func (l *keyLocker) Lock(ctx context.Context, professionalID uint, day string) (func(), error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.keys = append(l.keys, lock.Key(professionalID, day))
	return func() {}, nil
}

func TestRunLocksProfessionalLocalDay(t *testing.T) {
	tokyo, err := time.LoadLocation("Asia/Tokyo")
	if err != nil {
		t.Skip("tzdata indisponível")
	}

	store := memory.NewStore()
	pro := store.AddProfessional(models.Professional{AccountID: 1, Name: "Ana", Timezone: "Asia/Tokyo"})

	// 20:00 UTC de 05/03 já é 06/03 em Tóquio.
	date := time.Date(2024, 3, 5, 20, 0, 0, 0, time.UTC)
	seed(t, store, models.Appointment{
		AccountID:      1,
		ProfessionalID: pro.ID,
		Date:           date,
		Duration:       30,
		Status:         "confirmed",
		SendReminder:   true,
	})

	locker := &keyLocker{}
	job := &Job{
		Store:         store,
		Professionals: store,
		Notifier:      &capture{},
		Locker:        locker,
		Logger:        zerolog.Nop(),
		Location:      time.UTC,
	}

	res, err := job.Run(context.Background(), time.Date(2024, 3, 4, 18, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatal(err)
	}
	if res.Sent != 1 {
		t.Fatalf("unexpected result: %+v", res)
	}

	want := lock.Key(pro.ID, date.In(tokyo).Format("2006-01-02"))
	if len(locker.keys) != 1 || locker.keys[0] != want {
		t.Fatalf("lock keys %v, want [%s]", locker.keys, want)
	}
}

func TestRegisterRejectsInvalidSpec(t *testing.T) {
	c := cron.New()
	if _, err := Register(c, "not a cron", &Job{Logger: zerolog.Nop()}); err == nil {
		t.Fatal("expected error for invalid spec")
	}
	if _, err := Register(c, "0 18 * * *", &Job{Logger: zerolog.Nop()}); err != nil {
		t.Fatal(err)
	}
	if len(c.Entries()) != 1 {
		t.Fatalf("entries: %d", len(c.Entries()))
	}
}
