package httperr

import (
	"errors"
	"strings"
)

// BusinessError carries a stable machine code plus an optional detail.
// Two BusinessErrors match under errors.Is when their codes are equal.
type BusinessError struct {
	Code    string
	Message string
}

func (e BusinessError) Error() string {
	if e.Message != "" {
		return e.Code + ": " + e.Message
	}
	return e.Code
}

func (e BusinessError) Is(target error) bool {
	var t BusinessError
	if errors.As(target, &t) {
		return t.Code == e.Code
	}
	return false
}

func ErrBusiness(code string) error {
	return BusinessError{Code: code}
}

// ErrNotFound builds the "<entity>_not_found" code.
func ErrNotFound(entity string) error {
	return BusinessError{Code: entity + "_not_found"}
}

// WithMessage attaches a detail to a business error, keeping its code.
func WithMessage(err error, message string) error {
	var be BusinessError
	if errors.As(err, &be) {
		be.Message = message
		return be
	}
	return err
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

func CodeOf(err error) (string, bool) {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code, true
	}
	return "", false
}

func IsNotFound(err error) bool {
	code, ok := CodeOf(err)
	return ok && strings.HasSuffix(code, "_not_found")
}
