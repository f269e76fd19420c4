package appointment

import (
	"fmt"
	"strings"
	"time"

	"github.com/teambition/rrule-go"

	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type Pattern string

const (
	PatternDaily   Pattern = "daily"
	PatternWeekly  Pattern = "weekly"
	PatternMonthly Pattern = "monthly"
	PatternCustom  Pattern = "custom"
)

// MaxSeriesOccurrences limita geração e cascatas (um ano semanal).
const MaxSeriesOccurrences = 52

// RecurrenceRule descreve a cadência de uma série. Occurrences conta
// apenas os filhos. Rule é um RRULE (RFC 5545) usado com PatternCustom.
type RecurrenceRule struct {
	Pattern     Pattern    `json:"pattern"`
	Interval    int        `json:"interval"`
	EndDate     *time.Time `json:"end_date,omitempty"`
	Occurrences int        `json:"occurrences,omitempty"`
	Rule        string     `json:"rule,omitempty"`
}

func (r *RecurrenceRule) Normalize() {
	if r.Interval == 0 {
		r.Interval = 1
	}
	r.Rule = strings.TrimPrefix(strings.TrimSpace(r.Rule), "RRULE:")
}

func (r RecurrenceRule) Validate() error {
	switch r.Pattern {
	case PatternDaily, PatternWeekly, PatternMonthly:
	case PatternCustom:
		if r.Rule == "" {
			return invalidRecurrence("custom pattern needs a rule")
		}
		if _, err := rrule.StrToROption(r.Rule); err != nil {
			return invalidRecurrence(err.Error())
		}
	default:
		return invalidRecurrence(fmt.Sprintf("unknown pattern %q", r.Pattern))
	}

	if r.Interval < 1 {
		return invalidRecurrence("interval must be >= 1")
	}
	if r.Occurrences < 0 {
		return invalidRecurrence("occurrences must be >= 0")
	}
	return nil
}

// ToModel grava a regra no agendamento; parentID nil marca a raiz.
func (r RecurrenceRule) ToModel(parentID *uint) models.Recurrence {
	rec := models.Recurrence{
		IsRecurring:         true,
		Pattern:             string(r.Pattern),
		Interval:            r.Interval,
		EndDate:             r.EndDate,
		Rule:                r.Rule,
		ParentAppointmentID: parentID,
	}
	if r.Occurrences > 0 {
		n := r.Occurrences
		rec.Occurrences = &n
	}
	return rec
}

func RuleFromModel(rec models.Recurrence) RecurrenceRule {
	r := RecurrenceRule{
		Pattern:  Pattern(rec.Pattern),
		Interval: rec.Interval,
		EndDate:  rec.EndDate,
		Rule:     rec.Rule,
	}
	if rec.Occurrences != nil {
		r.Occurrences = *rec.Occurrences
	}
	return r
}

// OccurrenceDates devolve as datas dos filhos a partir de start (exclusivo),
// limitadas por EndDate (inclusivo), Occurrences e maxOccurrences.
func OccurrenceDates(start time.Time, rule RecurrenceRule, maxOccurrences int) ([]time.Time, error) {
	rule.Normalize()
	if err := rule.Validate(); err != nil {
		return nil, err
	}

	limit := maxOccurrences
	if limit <= 0 || limit > MaxSeriesOccurrences {
		limit = MaxSeriesOccurrences
	}
	if rule.Occurrences > 0 && rule.Occurrences < limit {
		limit = rule.Occurrences
	}

	if rule.Pattern != PatternCustom {
		return stepDates(start, rule, limit), nil
	}

	opt, err := rrule.StrToROption(rule.Rule)
	if err != nil {
		return nil, invalidRecurrence(err.Error())
	}
	// COUNT de um RRULE inclui a raiz.
	if opt.Count > 0 && opt.Count-1 < limit {
		limit = opt.Count - 1
	}
	if limit <= 0 {
		return nil, nil
	}

	opt.Dtstart = start
	opt.Count = limit + 1

	r, err := rrule.NewRRule(*opt)
	if err != nil {
		return nil, invalidRecurrence(err.Error())
	}

	out := make([]time.Time, 0, limit)
	for _, t := range r.All() {
		if !t.After(start) {
			continue
		}
		if rule.EndDate != nil && t.After(*rule.EndDate) {
			break
		}
		out = append(out, t)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

// stepDates avança a partir da data anterior. No mensal, um dia que não
// existe no mês de destino transborda (31/01 + 1 mês = 02/03).
func stepDates(start time.Time, rule RecurrenceRule, limit int) []time.Time {
	out := make([]time.Time, 0, limit)
	current := start
	for len(out) < limit {
		switch rule.Pattern {
		case PatternDaily:
			current = current.AddDate(0, 0, rule.Interval)
		case PatternWeekly:
			current = current.AddDate(0, 0, 7*rule.Interval)
		case PatternMonthly:
			current = current.AddDate(0, rule.Interval, 0)
		}
		if rule.EndDate != nil && current.After(*rule.EndDate) {
			break
		}
		out = append(out, current)
	}
	return out
}

// Expand gera os rascunhos dos filhos de root. root já precisa ter id.
func Expand(root *models.Appointment, rule RecurrenceRule, maxOccurrences int) ([]models.Appointment, error) {
	dates, err := OccurrenceDates(root.Date, rule, maxOccurrences)
	if err != nil {
		return nil, err
	}

	rule.Normalize()
	drafts := make([]models.Appointment, 0, len(dates))
	for _, d := range dates {
		parentID := root.ID
		drafts = append(drafts, models.Appointment{
			AccountID:      root.AccountID,
			ClientID:       root.ClientID,
			ProfessionalID: root.ProfessionalID,
			ServiceID:      root.ServiceID,
			Date:           d,
			Duration:       root.Duration,
			Status:         string(InitialStatus()),
			Notes:          root.Notes,
			Color:          root.Color,
			SendReminder:   root.SendReminder,
			Recurrence:     rule.ToModel(&parentID),
		})
	}
	return drafts, nil
}

// ShiftDate move t pelo mesmo deslocamento que levou from até to:
// dias de calendário mais a diferença de horário, ambos no fuso de from.
func ShiftDate(t, from, to time.Time) time.Time {
	loc := from.Location()
	to = to.In(loc)
	t = t.In(loc)

	fromDay := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	toDay := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC)
	days := int(toDay.Sub(fromDay).Hours() / 24)

	clock := clockOf(t) + clockOf(to) - clockOf(from)

	return time.Date(t.Year(), t.Month(), t.Day()+days, 0, 0, 0, int(clock), loc)
}

func clockOf(t time.Time) time.Duration {
	return time.Duration(t.Hour())*time.Hour +
		time.Duration(t.Minute())*time.Minute +
		time.Duration(t.Second())*time.Second +
		time.Duration(t.Nanosecond())
}

func invalidRecurrence(msg string) error {
	return httperr.WithMessage(ErrInvalidRecurrence, msg)
}
