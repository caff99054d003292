package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/czarstudio/studio-api/internal/core/domain"
	"github.com/czarstudio/studio-api/internal/core/ports"
	"github.com/czarstudio/studio-api/internal/pkg/metrics"
)

const (
	bearerPrefix = "Bearer "
	identityKey  = "identity"
)

// Authenticate resolves the caller from the Authorization header. The scheme
// must be exactly "Bearer" followed by a single space. It performs no I/O.
func Authenticate(verifier ports.TokenVerifier, r *http.Request) (*domain.Identity, bool) {
	header := r.Header.Get(echo.HeaderAuthorization)
	token, ok := strings.CutPrefix(header, bearerPrefix)
	if !ok || token == "" {
		return nil, false
	}
	identity, err := verifier.Verify(token)
	if err != nil {
		return nil, false
	}
	return identity, true
}

// SetIdentity stores the authenticated caller on the request context.
func SetIdentity(c echo.Context, identity *domain.Identity) {
	c.Set(identityKey, identity)
}

// IdentityFrom returns the caller stored by Auth, or nil when the request is
// anonymous.
func IdentityFrom(c echo.Context) *domain.Identity {
	identity, _ := c.Get(identityKey).(*domain.Identity)
	return identity
}

type authConfig struct {
	users ports.UserRepository
}

type AuthOption func(*authConfig)

// WithReverify makes Auth reload the account on every request. Missing or
// inactive accounts are rejected and the stored role replaces the token role.
func WithReverify(users ports.UserRepository) AuthOption {
	return func(cfg *authConfig) { cfg.users = users }
}

// Auth rejects requests without a valid bearer token and injects the Identity
// into the context.
func Auth(verifier ports.TokenVerifier, opts ...AuthOption) echo.MiddlewareFunc {
	var cfg authConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			identity, ok := Authenticate(verifier, c.Request())
			if !ok {
				metrics.AuthRejectionsTotal.WithLabelValues("unauthenticated").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
			}

			if cfg.users != nil {
				user, err := cfg.users.FindByID(c.Request().Context(), identity.UserID)
				switch {
				case errors.Is(err, domain.ErrUserNotFound):
					metrics.AuthRejectionsTotal.WithLabelValues("unauthenticated").Inc()
					return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
				case err != nil:
					return err
				case !user.Active:
					metrics.AuthRejectionsTotal.WithLabelValues("inactive").Inc()
					return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
				}
				identity = &domain.Identity{UserID: user.ID, Role: user.Role}
			}

			SetIdentity(c, identity)
			return next(c)
		}
	}
}
