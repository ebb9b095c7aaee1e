package domain

import (
	"errors"
	"fmt"
)

var (
	ErrUnauthenticated  = errors.New("you must login in this page")
	ErrForbidden        = errors.New("you are not authorized to enter this page")
	ErrNotFound         = errors.New("not found")
	ErrConflict         = errors.New("conflict")
	ErrStoreUnavailable = errors.New("store unavailable")

	ErrNoSeats           = fmt.Errorf("%w: no available tickets left", ErrConflict)
	ErrFlightHasBookings = fmt.Errorf("%w: there are bookings for this flight", ErrConflict)
	ErrDuplicateUser     = fmt.Errorf("%w: a user with the given email or username already exists", ErrConflict)
)

type ValidationError struct {
	Field   string
	Message string
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
