package ports

import (
	"context"

	"github.com/czarstudio/studio-api/internal/core/domain"
)

// UserUpdate carries the fields of a partial user update. Nil means unchanged.
type UserUpdate struct {
	Email        *string
	Name         *string
	Role         *domain.Role
	Permissions  *[]string
	Active       *bool
	PasswordHash *string
}

// UserRepository is the credential store.
type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	Update(ctx context.Context, id string, upd UserUpdate) (*domain.User, error)
	Delete(ctx context.Context, id string) error
}
