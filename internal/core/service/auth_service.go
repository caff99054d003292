package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/czarstudio/studio-api/internal/core/domain"
	"github.com/czarstudio/studio-api/internal/core/ports"
	"github.com/czarstudio/studio-api/internal/pkg/metrics"
)

// dummyHash is compared against when the email is unknown so that a missing
// account costs the same bcrypt work as a wrong password.
var dummyHash = sync.OnceValue(func() []byte {
	h, _ := bcrypt.GenerateFromPassword([]byte("not-a-real-password"), bcrypt.DefaultCost)
	return h
})

// AuthService implements login and self-service password changes.
type AuthService struct {
	repo     ports.UserRepository
	tokens   *TokenManager
	activity ports.ActivityRecorder
	log      zerolog.Logger
}

func NewAuthService(repo ports.UserRepository, tokens *TokenManager, activity ports.ActivityRecorder, log zerolog.Logger) *AuthService {
	return &AuthService{repo: repo, tokens: tokens, activity: activity, log: log}
}

// Login checks email and password and issues an access token. Unknown email,
// inactive account and wrong password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, email, password string) (*ports.LoginResult, error) {
	email = domain.NormalizeEmail(email)
	if email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, domain.ErrUserNotFound) {
			return nil, fmt.Errorf("login: %w", err)
		}
		_ = bcrypt.CompareHashAndPassword(dummyHash(), []byte(password))
		s.loginFailed(email, "", "unknown email")
		return nil, domain.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		s.loginFailed(email, user.ID, "password mismatch")
		return nil, domain.ErrInvalidCredentials
	}
	if !user.Active {
		s.loginFailed(email, user.ID, "inactive account")
		return nil, domain.ErrInvalidCredentials
	}

	token, expiresAt, err := s.tokens.Issue(user)
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}

	metrics.LoginAttemptsTotal.WithLabelValues("success").Inc()
	s.activity.Enqueue(ports.ActivityInput{
		ActorID:    user.ID,
		Action:     "auth.login",
		Resource:   "user",
		ResourceID: user.ID,
		At:         time.Now().UTC(),
	})
	s.log.Info().Str("user_id", user.ID).Str("role", string(user.Role)).Msg("login succeeded")

	return &ports.LoginResult{Token: token, ExpiresAt: expiresAt, User: user}, nil
}

// ChangePassword replaces the caller's own password after checking the current one.
func (s *AuthService) ChangePassword(ctx context.Context, identity domain.Identity, current, next string) error {
	if current == "" || next == "" {
		return domain.ValidationError("currentPassword and newPassword are required")
	}

	user, err := s.repo.FindByID(ctx, identity.UserID)
	if err != nil {
		return fmt.Errorf("change password: %w", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(current)); err != nil {
		return domain.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(next), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("change password: %w", err)
	}
	h := string(hash)
	if _, err := s.repo.Update(ctx, user.ID, ports.UserUpdate{PasswordHash: &h}); err != nil {
		return fmt.Errorf("change password: %w", err)
	}

	s.activity.Enqueue(ports.ActivityInput{
		ActorID:    user.ID,
		Action:     "auth.password_changed",
		Resource:   "user",
		ResourceID: user.ID,
		At:         time.Now().UTC(),
	})
	return nil
}

func (s *AuthService) loginFailed(email, userID, reason string) {
	metrics.LoginAttemptsTotal.WithLabelValues("failure").Inc()
	s.activity.Enqueue(ports.ActivityInput{
		ActorID:    userID,
		Action:     "auth.login_failed",
		Resource:   "user",
		ResourceID: userID,
		Detail:     reason,
		At:         time.Now().UTC(),
	})
	s.log.Warn().Str("email", email).Str("reason", reason).Msg("login rejected")
}
