package ports

import (
	"context"

	"github.com/czarstudio/studio-api/internal/core/domain"
)

type CreateUserInput struct {
	Email       string
	Password    string
	Name        string
	Role        string
	Permissions []string
	Active      *bool
}

type UpdateUserInput struct {
	ID          string
	Email       *string
	Name        *string
	Role        *string
	Permissions *[]string
	Active      *bool
	Password    *string
}

// UserService implements staff account management. Every method expects the
// caller to have passed the admin role check already.
type UserService interface {
	List(ctx context.Context) ([]*domain.User, error)
	Get(ctx context.Context, id string) (*domain.User, error)
	Create(ctx context.Context, actor domain.Identity, in CreateUserInput) (*domain.User, error)
	Update(ctx context.Context, actor domain.Identity, in UpdateUserInput) (*domain.User, error)
	Delete(ctx context.Context, actor domain.Identity, id string) error
}
