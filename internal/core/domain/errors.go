package domain

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthenticated    = errors.New("unauthorized")
	ErrForbidden          = errors.New("access forbidden")
	ErrValidation         = errors.New("validation failed")

	// ErrSelfDeletion is a Forbidden outcome: errors.Is(ErrSelfDeletion, ErrForbidden) holds.
	ErrSelfDeletion = fmt.Errorf("%w: cannot delete your own account", ErrForbidden)

	ErrUserNotFound    = errors.New("user not found")
	ErrUserExists      = errors.New("user with this email already exists")
	ErrBookingNotFound = errors.New("booking not found")
	ErrContactNotFound = errors.New("contact not found")
	ErrPhotoNotFound   = errors.New("photo not found")
	ErrVideoNotFound   = errors.New("video not found")

	ErrDuplicateSubmission = errors.New("submission already in progress")
)

// ValidationError wraps ErrValidation with a caller-facing message.
func ValidationError(msg string) error {
	return fmt.Errorf("%w: %s", ErrValidation, msg)
}
