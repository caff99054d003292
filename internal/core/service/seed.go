package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/czarstudio/studio-api/internal/core/domain"
	"github.com/czarstudio/studio-api/internal/core/ports"
)

// SeedAdmin creates the bootstrap admin account, or resets its password when
// an account with that email already exists. It reports whether a new
// account was created.
func SeedAdmin(ctx context.Context, repo ports.UserRepository, email, password, name string) (bool, error) {
	email = domain.NormalizeEmail(email)
	if email == "" || password == "" {
		return false, domain.ValidationError("seed admin email and password are required")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return false, fmt.Errorf("seed admin: %w", err)
	}
	h := string(hash)

	existing, err := repo.FindByEmail(ctx, email)
	switch {
	case err == nil:
		if _, err := repo.Update(ctx, existing.ID, ports.UserUpdate{PasswordHash: &h}); err != nil {
			return false, fmt.Errorf("seed admin: reset password: %w", err)
		}
		return false, nil
	case !errors.Is(err, domain.ErrUserNotFound):
		return false, fmt.Errorf("seed admin: %w", err)
	}

	if _, err := repo.Create(ctx, &domain.User{
		Email:        email,
		Name:         name,
		PasswordHash: h,
		Role:         domain.RoleAdmin,
		Permissions:  []string{},
		Active:       true,
		CreatedAt:    time.Now().UTC(),
	}); err != nil {
		return false, fmt.Errorf("seed admin: %w", err)
	}
	return true, nil
}
