package appointment

import (
	"testing"
	"time"

	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

func booked(id uint, start time.Time, minutes int, status Status) models.Appointment {
	return models.Appointment{ID: id, Date: start, Duration: minutes, Status: string(status)}
}

func TestFindConflict(t *testing.T) {
	nine := at(1, 9, 0)
	existing := []models.Appointment{
		booked(1, nine, 60, StatusScheduled),
		booked(2, at(1, 11, 0), 30, StatusCancelled),
		booked(3, at(1, 14, 0), 60, StatusConfirmed),
	}

	cases := []struct {
		name      string
		start     time.Time
		minutes   int
		exclude   uint
		wantID    uint
		wantFound bool
	}{
		{"touching end does not conflict", at(1, 10, 0), 30, 0, 0, false},
		{"touching start does not conflict", at(1, 8, 30), 30, 0, 0, false},
		{"overlap with scheduled", at(1, 9, 30), 60, 0, 1, true},
		{"cancelled never blocks", at(1, 11, 0), 30, 0, 0, false},
		{"confirmed blocks", at(1, 13, 30), 60, 0, 3, true},
		{"excluded id ignored", at(1, 9, 15), 15, 1, 0, false},
		{"containing interval", at(1, 8, 0), 180, 0, 1, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			end := tc.start.Add(time.Duration(tc.minutes) * time.Minute)
			got := FindConflict(existing, tc.start, end, tc.exclude)
			if (got != nil) != tc.wantFound {
				t.Fatalf("found=%v want %v", got != nil, tc.wantFound)
			}
			if got != nil && got.ID != tc.wantID {
				t.Fatalf("conflict id %d want %d", got.ID, tc.wantID)
			}
		})
	}
}

func TestFindConflictReturnsFirstInOrder(t *testing.T) {
	existing := []models.Appointment{
		booked(7, at(1, 9, 0), 60, StatusScheduled),
		booked(4, at(1, 9, 30), 60, StatusScheduled),
	}
	got := FindConflict(existing, at(1, 9, 45), at(1, 10, 0), 0)
	if got == nil || got.ID != 7 {
		t.Fatalf("expected first supplied conflict (7), got %+v", got)
	}
}
