package booking

import "errors"

var (
	ErrForbidden       = errors.New("forbidden")
	ErrNotFound        = errors.New("booking or worker not found")
	ErrValidation      = errors.New("validation error")
	ErrServiceRequired = errors.New("service must be selected")
	ErrServiceMismatch = errors.New("service does not belong to worker")
	ErrInvalidStatus   = errors.New("invalid status value")
	ErrTerminalState   = errors.New("booking is in a terminal state")
)
