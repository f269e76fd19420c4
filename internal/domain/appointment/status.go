package appointment

import (
	"fmt"

	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
)

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusScheduled Status = "scheduled"
	StatusConfirmed Status = "confirmed"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
	StatusNoShow    Status = "no_show"
)

// transitions é a única fonte das mudanças de status permitidas.
var transitions = map[Status][]Status{
	StatusScheduled: {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusCompleted, StatusCancelled, StatusNoShow},
	StatusCompleted: {},
	StatusCancelled: {},
	StatusNoShow:    {},
}

func ParseStatus(s string) (Status, error) {
	st := Status(s)
	if !st.Valid() {
		return "", httperr.WithMessage(ErrInvalidStatus, s)
	}
	return st, nil
}

func (s Status) Valid() bool {
	_, ok := transitions[s]
	return ok
}

func (s Status) IsTerminal() bool {
	return s.Valid() && len(transitions[s]) == 0
}

// Blocking indica se o status ocupa a agenda.
func (s Status) Blocking() bool {
	return s == StatusScheduled || s == StatusConfirmed
}

func CanTransitionTo(current, next Status) bool {
	for _, allowed := range transitions[current] {
		if allowed == next {
			return true
		}
	}
	return false
}

// ===============================
// Validations
// ===============================

func CheckTransition(current, next Status) error {
	if !CanTransitionTo(current, next) {
		return httperr.WithMessage(
			ErrInvalidTransition,
			fmt.Sprintf("%s -> %s", current, next),
		)
	}
	return nil
}

func InitialStatus() Status {
	return StatusScheduled
}

func BlockingStatuses() []Status {
	return []Status{StatusScheduled, StatusConfirmed}
}
