package workflow

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation marks input rejected locally; no request was sent.
	ErrValidation = errors.New("invalid input")
	// ErrUnavailable marks a transport failure reaching the workflow service.
	ErrUnavailable = errors.New("workflow service unavailable")
	// ErrPayload marks a success status whose body lacks the expected shape.
	ErrPayload = errors.New("unexpected response payload")
)

// StatusError is returned when the workflow service answers with a non-2xx status.
type StatusError struct {
	Op     string
	Status int
	// Message is the service's "error" field, if it sent one.
	Message string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: status %d: %s", e.Op, e.Status, e.Message)
	}
	return fmt.Sprintf("%s: status %d", e.Op, e.Status)
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}
