package booking

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrSchedulingConflict = errors.New("scheduling conflict")
	ErrInvalidState       = errors.New("invalid state")
	ErrValidation         = errors.New("validation failed")
)

// BookingError carries the failing operation alongside one of the sentinel
// codes above. Match it with errors.Is against the sentinel.
type BookingError struct {
	Op      string
	Code    error
	Message string
	Err     error
}

func (e *BookingError) Error() string {
	msg := fmt.Sprintf("%s: %v: %s", e.Op, e.Code, e.Message)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *BookingError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Code}
	}
	return []error{e.Code, e.Err}
}

func newError(op string, code error, format string, args ...any) error {
	return &BookingError{Op: op, Code: code, Message: fmt.Sprintf(format, args...)}
}

func wrapError(op string, code error, err error, format string, args ...any) error {
	return &BookingError{Op: op, Code: code, Message: fmt.Sprintf(format, args...), Err: err}
}
