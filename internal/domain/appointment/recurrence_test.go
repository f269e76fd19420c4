package appointment

import (
	"errors"
	"testing"
	"time"

	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

func sameDates(t *testing.T, got []time.Time, want ...time.Time) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %d dates %v, want %d", len(got), got, len(want))
	}
	for i := range want {
		if !got[i].Equal(want[i]) {
			t.Fatalf("date %d: got %v want %v", i, got[i], want[i])
		}
	}
}

func TestWeeklyThreeOccurrences(t *testing.T) {
	start := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	got, err := OccurrenceDates(start, RecurrenceRule{Pattern: PatternWeekly, Interval: 1, Occurrences: 3}, 0)
	if err != nil {
		t.Fatal(err)
	}
	sameDates(t, got,
		time.Date(2024, 1, 8, 9, 0, 0, 0, time.UTC),
		time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC),
		time.Date(2024, 1, 22, 9, 0, 0, 0, time.UTC),
	)
}

func TestDailyIntervalStopsAtEndDate(t *testing.T) {
	start := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	end := time.Date(2024, 1, 7, 9, 0, 0, 0, time.UTC)
	got, err := OccurrenceDates(start, RecurrenceRule{Pattern: PatternDaily, Interval: 2, EndDate: &end}, 0)
	if err != nil {
		t.Fatal(err)
	}
	sameDates(t, got,
		time.Date(2024, 1, 3, 9, 0, 0, 0, time.UTC),
		time.Date(2024, 1, 5, 9, 0, 0, 0, time.UTC),
		time.Date(2024, 1, 7, 9, 0, 0, 0, time.UTC),
	)
}

func TestUnboundedSeriesIsCapped(t *testing.T) {
	start := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	got, err := OccurrenceDates(start, RecurrenceRule{Pattern: PatternWeekly}, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != MaxSeriesOccurrences {
		t.Fatalf("expected %d occurrences, got %d", MaxSeriesOccurrences, len(got))
	}

	got, _ = OccurrenceDates(start, RecurrenceRule{Pattern: PatternDaily, Occurrences: 500}, 10)
	if len(got) != 10 {
		t.Fatalf("configured cap ignored: %d", len(got))
	}
}

func TestMonthlyKeepsDayOfMonth(t *testing.T) {
	start := time.Date(2024, 1, 15, 14, 0, 0, 0, time.UTC)
	got, err := OccurrenceDates(start, RecurrenceRule{Pattern: PatternMonthly, Interval: 1, Occurrences: 2}, 0)
	if err != nil {
		t.Fatal(err)
	}
	sameDates(t, got,
		time.Date(2024, 2, 15, 14, 0, 0, 0, time.UTC),
		time.Date(2024, 3, 15, 14, 0, 0, 0, time.UTC),
	)
}

func TestMonthlyFromEndOfMonthRollsOver(t *testing.T) {
	start := time.Date(2024, 1, 31, 10, 0, 0, 0, time.UTC)
	got, err := OccurrenceDates(start, RecurrenceRule{Pattern: PatternMonthly, Interval: 1, Occurrences: 3}, 0)
	if err != nil {
		t.Fatal(err)
	}
	sameDates(t, got,
		time.Date(2024, 3, 2, 10, 0, 0, 0, time.UTC),
		time.Date(2024, 4, 2, 10, 0, 0, 0, time.UTC),
		time.Date(2024, 5, 2, 10, 0, 0, 0, time.UTC),
	)
}

func TestWeeklyKeepsWallClockAcrossDST(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skip("tzdata indisponível")
	}
	start := time.Date(2024, 3, 4, 9, 0, 0, 0, loc)
	got, err := OccurrenceDates(start, RecurrenceRule{Pattern: PatternWeekly, Occurrences: 2}, 0)
	if err != nil {
		t.Fatal(err)
	}
	for _, d := range got {
		if d.Hour() != 9 {
			t.Fatalf("expected 09:00 local, got %v", d)
		}
	}
}

func TestCustomRule(t *testing.T) {
	start := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC) // segunda
	got, err := OccurrenceDates(start, RecurrenceRule{Pattern: PatternCustom, Rule: "RRULE:FREQ=WEEKLY;BYDAY=MO,WE;COUNT=4"}, 0)
	if err != nil {
		t.Fatal(err)
	}
	sameDates(t, got,
		time.Date(2024, 1, 3, 9, 0, 0, 0, time.UTC),
		time.Date(2024, 1, 8, 9, 0, 0, 0, time.UTC),
		time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC),
	)
}

func TestInvalidRules(t *testing.T) {
	start := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	bad := []RecurrenceRule{
		{Pattern: "yearly"},
		{Pattern: PatternWeekly, Interval: -1},
		{Pattern: PatternCustom},
	}
	for _, r := range bad {
		if _, err := OccurrenceDates(start, r, 0); !errors.Is(err, ErrInvalidRecurrence) {
			t.Errorf("%+v: expected ErrInvalidRecurrence, got %v", r, err)
		}
	}
}

func TestExpandCopiesRootFields(t *testing.T) {
	root := &models.Appointment{
		ID:             10,
		AccountID:      1,
		ClientID:       2,
		ProfessionalID: 3,
		ServiceID:      4,
		Date:           time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC),
		Duration:       45,
		Status:         string(StatusConfirmed),
		Notes:          "corte",
		Color:          "blue",
		SendReminder:   true,
		IsOverride:     true,
	}

	drafts, err := Expand(root, RecurrenceRule{Pattern: PatternWeekly, Occurrences: 2}, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(drafts) != 2 {
		t.Fatalf("expected 2 drafts, got %d", len(drafts))
	}

	for _, d := range drafts {
		if d.ID != 0 || d.RootID() != 10 {
			t.Fatalf("draft must point at root: %+v", d.Recurrence)
		}
		if d.ClientID != 2 || d.ProfessionalID != 3 || d.ServiceID != 4 || d.Duration != 45 {
			t.Fatalf("references not copied: %+v", d)
		}
		if d.Notes != "corte" || d.Color != "blue" || !d.SendReminder {
			t.Fatalf("fields not copied: %+v", d)
		}
		if d.Status != string(StatusScheduled) || d.IsOverride {
			t.Fatalf("children start scheduled without override: %+v", d)
		}
		if d.Recurrence.Interval != 1 || !d.Recurrence.IsRecurring {
			t.Fatalf("recurrence not tagged: %+v", d.Recurrence)
		}
	}
}

func TestShiftDate(t *testing.T) {
	from := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	to := time.Date(2024, 1, 3, 9, 0, 0, 0, time.UTC)

	sibling := time.Date(2024, 1, 8, 15, 30, 0, 0, time.UTC)
	got := ShiftDate(sibling, from, to)
	want := time.Date(2024, 1, 10, 15, 30, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("+2 days: got %v want %v", got, want)
	}

	later := time.Date(2024, 1, 1, 10, 30, 0, 0, time.UTC)
	got = ShiftDate(sibling, from, later)
	want = time.Date(2024, 1, 8, 17, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("+1h30: got %v want %v", got, want)
	}
}

func TestShiftDateKeepsWallClockAcrossDST(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skip("tzdata unavailable")
	}
	from := time.Date(2024, 3, 4, 9, 0, 0, 0, ny)
	to := time.Date(2024, 3, 5, 9, 0, 0, 0, ny)

	// 2024-03-10 é o dia da mudança de horário em Nova York.
	sibling := time.Date(2024, 3, 11, 9, 0, 0, 0, ny)
	got := ShiftDate(sibling, from, to)
	if got.Hour() != 9 || got.Day() != 12 {
		t.Fatalf("expected 2024-03-12 09:00, got %v", got)
	}
}
