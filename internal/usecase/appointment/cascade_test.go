package appointment

import (
	"context"
	"errors"
	"testing"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
)

func weeklySeries(t *testing.T, h *harness, occurrences int) *CreateAppointmentOutput {
	t.Helper()
	out := h.create(t, utc(2024, 1, 1, 9, 0), &domain.RecurrenceRule{
		Pattern:     domain.PatternWeekly,
		Interval:    1,
		Occurrences: occurrences,
	})
	if len(out.Recurring) != occurrences {
		t.Fatalf("series setup: %d children", len(out.Recurring))
	}
	return out
}

func TestCancelChildCascadesOnlyForward(t *testing.T) {
	h := newHarness(t)
	series := weeklySeries(t, h, 4)

	// Cancela o segundo filho (2024-01-15).
	acted := series.Recurring[1]
	out, err := NewCancelAppointment(h.deps).Execute(context.Background(), StatusChangeInput{
		Actor:         h.owner,
		AppointmentID: acted.ID,
		Cascade:       true,
	})
	if err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if out.Cascaded != 2 {
		t.Fatalf("expected 2 cascaded, got %d", out.Cascaded)
	}

	if st := h.get(t, series.Appointment.ID).Status; st != string(domain.StatusScheduled) {
		t.Fatalf("root must stay scheduled, got %s", st)
	}
	if st := h.get(t, series.Recurring[0].ID).Status; st != string(domain.StatusScheduled) {
		t.Fatalf("past sibling must stay scheduled, got %s", st)
	}
	for _, c := range series.Recurring[1:] {
		got := h.get(t, c.ID)
		if got.Status != string(domain.StatusCancelled) || got.CancelledAt == nil {
			t.Fatalf("sibling %d not cancelled: %s", c.ID, got.Status)
		}
	}
}

func TestCancelRootCascadesToAllChildren(t *testing.T) {
	h := newHarness(t)
	series := weeklySeries(t, h, 3)

	out, err := NewCancelAppointment(h.deps).Execute(context.Background(), StatusChangeInput{
		Actor:         h.owner,
		AppointmentID: series.Appointment.ID,
		Cascade:       true,
	})
	if err != nil {
		t.Fatal(err)
	}
	if out.Cascaded != 3 {
		t.Fatalf("expected 3 cascaded, got %d", out.Cascaded)
	}
}

func TestCancelWithoutCascadeTouchesOnlyTarget(t *testing.T) {
	h := newHarness(t)
	series := weeklySeries(t, h, 2)

	out, err := NewCancelAppointment(h.deps).Execute(context.Background(), StatusChangeInput{
		Actor:         h.owner,
		AppointmentID: series.Appointment.ID,
	})
	if err != nil {
		t.Fatal(err)
	}
	if out.Cascaded != 0 {
		t.Fatalf("no cascade expected, got %d", out.Cascaded)
	}
	if st := h.get(t, series.Recurring[0].ID).Status; st != string(domain.StatusScheduled) {
		t.Fatalf("child changed without cascade: %s", st)
	}
}

func TestConfirmCascadeOnlyTouchesScheduled(t *testing.T) {
	h := newHarness(t)
	series := weeklySeries(t, h, 3)
	ctx := context.Background()

	// Um irmão futuro já cancelado não pode ser confirmado.
	if _, err := NewCancelAppointment(h.deps).Execute(ctx, StatusChangeInput{
		Actor: h.owner, AppointmentID: series.Recurring[1].ID,
	}); err != nil {
		t.Fatal(err)
	}

	out, err := NewConfirmAppointment(h.deps).Execute(ctx, StatusChangeInput{
		Actor:         h.owner,
		AppointmentID: series.Appointment.ID,
		Cascade:       true,
	})
	if err != nil {
		t.Fatal(err)
	}
	if out.Cascaded != 2 {
		t.Fatalf("expected 2 confirmed siblings, got %d", out.Cascaded)
	}
	if st := h.get(t, series.Recurring[1].ID).Status; st != string(domain.StatusCancelled) {
		t.Fatalf("cancelled sibling changed: %s", st)
	}

	titles := h.notifier.titles()
	if titles[len(titles)-1] != "Agendamento confirmado" {
		t.Fatalf("last notification: %v", titles)
	}
}

func TestCancelTwiceIsInvalidTransition(t *testing.T) {
	h := newHarness(t)
	ap := h.create(t, utc(2024, 1, 1, 10, 0), nil).Appointment
	uc := NewCancelAppointment(h.deps)

	if _, err := uc.Execute(context.Background(), StatusChangeInput{Actor: h.owner, AppointmentID: ap.ID}); err != nil {
		t.Fatal(err)
	}
	_, err := uc.Execute(context.Background(), StatusChangeInput{Actor: h.owner, AppointmentID: ap.ID})
	if !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
}

func TestChangeStatus(t *testing.T) {
	h := newHarness(t)
	ap := h.create(t, utc(2024, 1, 1, 10, 0), nil).Appointment
	uc := NewChangeStatus(h.deps)
	ctx := context.Background()

	if _, err := uc.Execute(ctx, ChangeStatusInput{Actor: h.owner, AppointmentID: ap.ID, Status: "completed"}); !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("scheduled -> completed must fail, got %v", err)
	}
	if _, err := uc.Execute(ctx, ChangeStatusInput{Actor: h.owner, AppointmentID: ap.ID, Status: "confirmed"}); err != nil {
		t.Fatal(err)
	}
	got, err := uc.Execute(ctx, ChangeStatusInput{Actor: h.owner, AppointmentID: ap.ID, Status: "no_show"})
	if err != nil {
		t.Fatal(err)
	}
	if got.Status != string(domain.StatusNoShow) {
		t.Fatalf("status %s", got.Status)
	}
	if _, err := uc.Execute(ctx, ChangeStatusInput{Actor: h.owner, AppointmentID: ap.ID, Status: "bogus"}); !errors.Is(err, domain.ErrInvalidStatus) {
		t.Fatalf("expected ErrInvalidStatus, got %v", err)
	}
}

func TestStatusChangeHonoursActor(t *testing.T) {
	h := newHarness(t)
	ap := h.create(t, utc(2024, 1, 1, 10, 0), nil).Appointment

	stranger := domain.Actor{AccountID: 2, UserID: 5, Role: domain.RoleOwner}
	_, err := NewCancelAppointment(h.deps).Execute(context.Background(), StatusChangeInput{Actor: stranger, AppointmentID: ap.ID})
	if !errors.Is(err, domain.ErrAppointmentNotFound) {
		t.Fatalf("other account must not see it, got %v", err)
	}

	other := domain.Actor{AccountID: 1, UserID: 6, Role: domain.RoleProfessional, ProfessionalID: 999}
	_, err = NewCancelAppointment(h.deps).Execute(context.Background(), StatusChangeInput{Actor: other, AppointmentID: ap.ID})
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("other professional must be forbidden, got %v", err)
	}
}
