package ports

import (
	"context"

	"github.com/czarstudio/studio-api/internal/core/domain"
)

// BookingRepository persists booking requests.
type BookingRepository interface {
	Create(ctx context.Context, b *domain.Booking) error
	FindByID(ctx context.Context, id string) (*domain.Booking, error)
	// List returns bookings newest first; an empty status means no filter.
	List(ctx context.Context, status domain.BookingStatus) ([]*domain.Booking, error)
	UpdateStatus(ctx context.Context, id string, status domain.BookingStatus) (*domain.Booking, error)
	Delete(ctx context.Context, id string) error
	CountByStatus(ctx context.Context) (map[domain.BookingStatus]int64, error)
}

// ContactRepository persists contact form messages.
type ContactRepository interface {
	Create(ctx context.Context, c *domain.Contact) error
	FindByID(ctx context.Context, id string) (*domain.Contact, error)
	List(ctx context.Context, status domain.ContactStatus) ([]*domain.Contact, error)
	UpdateStatus(ctx context.Context, id string, status domain.ContactStatus) (*domain.Contact, error)
	Delete(ctx context.Context, id string) error
	CountByStatus(ctx context.Context) (map[domain.ContactStatus]int64, error)
}
