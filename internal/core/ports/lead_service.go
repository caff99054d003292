package ports

import (
	"context"

	"github.com/czarstudio/studio-api/internal/core/domain"
)

type CreateBookingInput struct {
	Name      string
	Email     string
	Phone     string
	EventType string
	EventDate string
	EventTime string
	Location  string
	Message   string
	// IdempotencyKey is optional; a repeated key returns the original booking.
	IdempotencyKey string
}

type CreateContactInput struct {
	Name           string
	Email          string
	Phone          string
	Message        string
	IdempotencyKey string
}

// CreateResult reports whether the record was created by this call or
// replayed from an earlier submission with the same idempotency key.
type CreateResult[T any] struct {
	Record   *T
	Replayed bool
}

type BookingService interface {
	Create(ctx context.Context, in CreateBookingInput) (*CreateResult[domain.Booking], error)
	List(ctx context.Context, status string) ([]*domain.Booking, error)
	SetStatus(ctx context.Context, actor domain.Identity, id, status string) (*domain.Booking, error)
	Delete(ctx context.Context, actor domain.Identity, id string) error
}

type ContactService interface {
	Create(ctx context.Context, in CreateContactInput) (*CreateResult[domain.Contact], error)
	List(ctx context.Context, status string) ([]*domain.Contact, error)
	SetStatus(ctx context.Context, actor domain.Identity, id, status string) (*domain.Contact, error)
	Delete(ctx context.Context, actor domain.Identity, id string) error
}

// IdempotencyStore remembers which record a public submission key produced.
type IdempotencyStore interface {
	// Reserve claims key. When the key was already claimed it returns the
	// record id stored for it (possibly empty while the first call is in flight).
	Reserve(ctx context.Context, scope, key string) (existingID string, reserved bool, err error)
	Complete(ctx context.Context, scope, key, recordID string) error
	Release(ctx context.Context, scope, key string) error
}
