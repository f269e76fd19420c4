package calendar

import (
	"fmt"
	"time"

	ical "github.com/arran4/golang-ical"

	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

const productID = "-//salon-scheduler//agenda//PT"

func eventStatus(status string) string {
	switch status {
	case "confirmed", "completed":
		return "CONFIRMED"
	case "cancelled", "no_show":
		return "CANCELLED"
	default:
		return "TENTATIVE"
	}
}

func summary(ap models.Appointment) string {
	service := "Atendimento"
	if ap.Service != nil && ap.Service.Name != "" {
		service = ap.Service.Name
	}
	if ap.Client != nil && ap.Client.Name != "" {
		return service + " - " + ap.Client.Name
	}
	return service
}

// Build serializa os agendamentos como um VCALENDAR.
func Build(name string, appointments []models.Appointment, now time.Time) string {
	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId(productID)
	cal.SetXWRCalName(name)

	for _, ap := range appointments {
		ev := cal.AddEvent(fmt.Sprintf("appointment-%d@salon-scheduler", ap.ID))
		ev.SetDtStampTime(now)
		ev.SetCreatedTime(ap.CreatedAt)
		ev.SetModifiedAt(ap.UpdatedAt)
		ev.SetStartAt(ap.Date)
		ev.SetEndAt(ap.End())
		ev.SetSummary(summary(ap))
		if ap.Notes != "" {
			ev.SetDescription(ap.Notes)
		}
		ev.SetProperty(ical.ComponentPropertyStatus, eventStatus(ap.Status))
	}

	return cal.Serialize()
}
