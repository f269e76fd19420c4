package appointment

import (
	"fmt"

	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
)

var (
	ErrAppointmentNotFound  = httperr.ErrNotFound("appointment")
	ErrProfessionalNotFound = httperr.ErrNotFound("professional")
	ErrServiceNotFound      = httperr.ErrNotFound("service")
	ErrClientNotFound       = httperr.ErrNotFound("client")

	ErrForbidden            = httperr.ErrBusiness("forbidden")
	ErrProfessionalInactive = httperr.ErrBusiness("professional_inactive")

	ErrScheduleNotConfigured = httperr.ErrBusiness("schedule_not_configured")
	ErrOutsideWorkingHours   = httperr.ErrBusiness("outside_working_hours")
	ErrOnBreak               = httperr.ErrBusiness("on_break")
	ErrTimeOff               = httperr.ErrBusiness("time_off")
	ErrSlotConflict          = httperr.ErrBusiness("slot_conflict")
	ErrOverrideCapExceeded   = httperr.ErrBusiness("override_cap_exceeded")

	ErrInvalidTransition   = httperr.ErrBusiness("invalid_transition")
	ErrInvalidStatus       = httperr.ErrBusiness("invalid_status")
	ErrInvalidDuration     = httperr.ErrBusiness("invalid_duration")
	ErrStartInPast         = httperr.ErrBusiness("start_in_past")
	ErrInvalidDate         = httperr.ErrBusiness("invalid_date")
	ErrInvalidRecurrence   = httperr.ErrBusiness("invalid_recurrence")
	ErrInvalidWorkingHours = httperr.ErrBusiness("invalid_working_hours")
	ErrInvalidException    = httperr.ErrBusiness("invalid_exception")
	ErrLockUnavailable     = httperr.ErrBusiness("lock_unavailable")
)

func invalidWorkingHours(format string, args ...any) error {
	return httperr.WithMessage(ErrInvalidWorkingHours, fmt.Sprintf(format, args...))
}

func invalidException(msg string) error {
	return httperr.WithMessage(ErrInvalidException, msg)
}
