package services

import (
	"errors"
	"fmt"
)

// Lifecycle errors surfaced to controllers, which map them to HTTP statuses.
var (
	// ErrConflict: the store rejected a write because another non-cancelled
	// appointment already occupies the (date, time) slot.
	ErrConflict = errors.New("slot already taken")

	ErrNotFound          = errors.New("appointment not found")
	ErrProfileRequired   = errors.New("client profile required before booking")
	ErrPetOwnership      = errors.New("pet does not belong to the selected client")
	ErrForbidden         = errors.New("insufficient role for this operation")
	ErrInvalidTransition = errors.New("transition not allowed from current status")
	ErrTerminalState     = errors.New("appointment is in a terminal state")
	ErrValidation        = errors.New("validation failed")
)

func validationError(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}
