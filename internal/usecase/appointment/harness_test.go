package appointment

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/datatypes"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/infra/lock"
	"github.com/BruksfildServices01/salon-scheduler/internal/infra/memory"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type recordingNotifier struct {
	mu  sync.Mutex
	got []models.Notification
}

func (r *recordingNotifier) Notify(ctx context.Context, n models.Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.got = append(r.got, n)
}

func (r *recordingNotifier) titles() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.got))
	for _, n := range r.got {
		out = append(out, n.Title)
	}
	return out
}

type harness struct {
	store    *memory.Store
	deps     *Dependencies
	notifier *recordingNotifier

	owner   domain.Actor
	pro     *models.Professional
	service *models.Service
	client  *models.Client
}

// Segunda a sexta, 09:00 às 18:00, em UTC. "Agora" é 2023-12-01.
func newHarness(t *testing.T) *harness {
	t.Helper()

	store := memory.NewStore()
	hours := models.DayHours{Start: "09:00", End: "18:00"}

	pro := store.AddProfessional(models.Professional{
		AccountID: 1,
		Name:      "Ana",
		Timezone:  "UTC",
		WorkingHours: datatypes.NewJSONType(models.WorkingHoursSpec{
			"monday": hours, "tuesday": hours, "wednesday": hours,
			"thursday": hours, "friday": hours,
		}),
	})
	svc := store.AddService(models.Service{AccountID: 1, Name: "Corte", Duration: 60, Active: true})
	cli := store.AddClient(models.Client{AccountID: 1, Name: "João"})

	notifier := &recordingNotifier{}
	deps := &Dependencies{
		Store:         store,
		Professionals: store,
		Services:      store,
		Clients:       store,
		Engine:        domain.NewEngine(store, store, 2),
		Locker:        lock.NewLocal(),
		Notifier:      notifier,
		Logger:        zerolog.Nop(),
		Now: func() time.Time {
			return time.Date(2023, 12, 1, 8, 0, 0, 0, time.UTC)
		},
	}

	return &harness{
		store:    store,
		deps:     deps,
		notifier: notifier,
		owner:    domain.Actor{AccountID: 1, UserID: 100, Role: domain.RoleOwner},
		pro:      pro,
		service:  svc,
		client:   cli,
	}
}

func (h *harness) create(t *testing.T, start time.Time, rule *domain.RecurrenceRule) *CreateAppointmentOutput {
	t.Helper()
	out, err := NewCreateAppointment(h.deps).Execute(context.Background(), CreateAppointmentInput{
		Actor:          h.owner,
		ClientID:       h.client.ID,
		ProfessionalID: h.pro.ID,
		ServiceID:      h.service.ID,
		Date:           start,
		Recurrence:     rule,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	return out
}

func (h *harness) get(t *testing.T, id uint) *models.Appointment {
	t.Helper()
	ap, err := h.store.Get(context.Background(), id)
	if err != nil {
		t.Fatalf("get %d: %v", id, err)
	}
	return ap
}

func utc(y int, m time.Month, d, hh, mm int) time.Time {
	return time.Date(y, m, d, hh, mm, 0, 0, time.UTC)
}
