package appointment

import (
	"time"

	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

// Overlaps compara intervalos semiabertos [start, end).
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && aEnd.After(bStart)
}

// FindConflict devolve o primeiro agendamento bloqueante de existing que
// sobrepõe [start, end), ignorando excludeID.
func FindConflict(
	existing []models.Appointment,
	start time.Time,
	end time.Time,
	excludeID uint,
) *models.Appointment {
	for i := range existing {
		ap := &existing[i]
		if excludeID != 0 && ap.ID == excludeID {
			continue
		}
		if !Status(ap.Status).Blocking() {
			continue
		}
		if Overlaps(start, end, ap.Date, ap.End()) {
			return ap
		}
	}
	return nil
}
