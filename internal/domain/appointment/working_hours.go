package appointment

import (
	"fmt"
	"time"

	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

// Schedule reúne tudo que define quando um profissional atende.
type Schedule struct {
	ProfessionalID uint
	Location       *time.Location
	WorkingHours   models.WorkingHoursSpec
	Exceptions     []models.ScheduleException
}

func (s *Schedule) local(t time.Time) time.Time {
	if s.Location == nil {
		return t
	}
	return t.In(s.Location)
}

// NormalizeClock aceita "9:00" ou "09:00" e devolve sempre "HH:MM".
func NormalizeClock(hm string) (string, bool) {
	t, err := time.Parse("15:04", hm)
	if err != nil {
		return "", false
	}
	return t.Format("15:04"), true
}

// clockOn posiciona "HH:MM" no dia local de day.
func clockOn(day time.Time, hm string) time.Time {
	t, _ := time.Parse("15:04", hm)
	return time.Date(
		day.Year(), day.Month(), day.Day(),
		t.Hour(), t.Minute(), 0, 0,
		day.Location(),
	)
}

// DayHoursFor devolve o expediente normalizado do dia local de t. ok é
// false quando o dia não tem expediente utilizável.
func DayHoursFor(s *Schedule, t time.Time) (models.DayHours, bool) {
	if s == nil || len(s.WorkingHours) == 0 {
		return models.DayHours{}, false
	}

	hours, found := s.WorkingHours[models.WeekdayKey(s.local(t).Weekday())]
	if !found {
		return models.DayHours{}, false
	}

	start, okStart := NormalizeClock(hours.Start)
	end, okEnd := NormalizeClock(hours.End)
	if !okStart || !okEnd || end <= start {
		return models.DayHours{}, false
	}

	return models.DayHours{Start: start, End: end}, true
}

// DayBounds devolve [meia-noite local, próxima meia-noite local) do dia de t.
func DayBounds(s *Schedule, t time.Time) (time.Time, time.Time) {
	lt := s.local(t)
	start := time.Date(lt.Year(), lt.Month(), lt.Day(), 0, 0, 0, 0, lt.Location())
	return start, start.AddDate(0, 0, 1)
}

// DayKey identifica o dia local de t ("2006-01-02").
func DayKey(s *Schedule, t time.Time) string {
	return s.local(t).Format("2006-01-02")
}

// IsWithinWorkingHours compara apenas o horário de início, com ambos os
// limites inclusivos.
func IsWithinWorkingHours(s *Schedule, start time.Time) bool {
	hours, ok := DayHoursFor(s, start)
	if !ok {
		return false
	}

	hm := s.local(start).Format("15:04")
	return hm >= hours.Start && hm <= hours.End
}

func exceptionApplies(ex models.ScheduleException, localDay time.Time) bool {
	if ex.Date != nil {
		y, m, d := ex.Date.UTC().Date()
		ly, lm, ld := localDay.Date()
		return y == ly && m == lm && d == ld
	}
	if ex.Weekday != nil {
		return *ex.Weekday == int(localDay.Weekday())
	}
	return false
}

// IsOnBreak verifica se [start, end) cruza algum intervalo do dia.
func IsOnBreak(s *Schedule, start, end time.Time) bool {
	if s == nil {
		return false
	}

	day := s.local(start)
	for _, ex := range s.Exceptions {
		if ex.Kind != models.ExceptionBreak || !exceptionApplies(ex, day) {
			continue
		}
		if Overlaps(start, end, clockOn(day, ex.Start), clockOn(day, ex.End)) {
			return true
		}
	}
	return false
}

func IsTimeOff(s *Schedule, start time.Time) bool {
	if s == nil {
		return false
	}

	day := s.local(start)
	for _, ex := range s.Exceptions {
		if ex.Kind == models.ExceptionTimeOff && exceptionApplies(ex, day) {
			return true
		}
	}
	return false
}

// ===============================
// Validations
// ===============================

// ValidateWorkingHours aceita dias ausentes ou vazios (folga) e recusa
// horários malformados ou com fim antes do início.
func ValidateWorkingHours(spec models.WorkingHoursSpec) error {
	for day, hours := range spec {
		if !models.IsWeekdayKey(day) {
			return invalidWorkingHours("unknown day %q", day)
		}
		if hours.Start == "" && hours.End == "" {
			continue
		}

		start, okStart := NormalizeClock(hours.Start)
		end, okEnd := NormalizeClock(hours.End)
		if !okStart || !okEnd {
			return invalidWorkingHours("%s: malformed time", day)
		}
		if end <= start {
			return invalidWorkingHours("%s: end must be after start", day)
		}
	}
	return nil
}

// NormalizeWorkingHours zero-pads every configured clock.
func NormalizeWorkingHours(spec models.WorkingHoursSpec) models.WorkingHoursSpec {
	out := make(models.WorkingHoursSpec, len(spec))
	for day, hours := range spec {
		start, _ := NormalizeClock(hours.Start)
		end, _ := NormalizeClock(hours.End)
		out[day] = models.DayHours{Start: start, End: end}
	}
	return out
}

func ValidateException(ex *models.ScheduleException) error {
	switch ex.Kind {
	case models.ExceptionBreak:
		if (ex.Weekday == nil) == (ex.Date == nil) {
			return invalidException("break needs exactly one of weekday or date")
		}
		start, okStart := NormalizeClock(ex.Start)
		end, okEnd := NormalizeClock(ex.End)
		if !okStart || !okEnd || end <= start {
			return invalidException("break needs start < end")
		}
		ex.Start, ex.End = start, end
	case models.ExceptionTimeOff:
		if ex.Date == nil {
			return invalidException("time off needs a date")
		}
	default:
		return invalidException(fmt.Sprintf("unknown kind %q", ex.Kind))
	}

	if ex.Weekday != nil && (*ex.Weekday < 0 || *ex.Weekday > 6) {
		return invalidException("weekday must be 0..6")
	}
	return nil
}
