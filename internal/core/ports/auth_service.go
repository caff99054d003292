package ports

import (
	"context"
	"time"

	"github.com/czarstudio/studio-api/internal/core/domain"
)

// LoginResult is returned on a successful credential check.
type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	User      *domain.User
}

type AuthService interface {
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	ChangePassword(ctx context.Context, identity domain.Identity, current, next string) error
}

// TokenVerifier resolves a raw bearer token to an Identity.
type TokenVerifier interface {
	Verify(token string) (*domain.Identity, error)
}
