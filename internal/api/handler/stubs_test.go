package handler

import (
	"context"
	"errors"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/czarstudio/studio-api/internal/api/middleware"
	"github.com/czarstudio/studio-api/internal/core/domain"
	"github.com/czarstudio/studio-api/internal/core/ports"
)

var adminIdentity = &domain.Identity{UserID: "admin-1", Role: domain.RoleAdmin}

// newTestContext builds an Echo context with the validator registered and,
// when identity is non-nil, the caller injected as the Auth middleware would.
func newTestContext(method, target, body string, identity *domain.Identity) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if identity != nil {
		middleware.SetIdentity(c, identity)
	}
	return c, rec
}

// httpError asserts err is an *echo.HTTPError with the given code and returns its message.
func httpError(t *testing.T, err error, code int) string {
	t.Helper()
	var he *echo.HTTPError
	if !errors.As(err, &he) {
		t.Fatalf("expected *echo.HTTPError %d, got %v", code, err)
	}
	if he.Code != code {
		t.Fatalf("expected status %d, got %d (%v)", code, he.Code, he.Message)
	}
	msg, _ := he.Message.(string)
	return msg
}

type stubAuthService struct {
	loginFn          func(ctx context.Context, email, password string) (*ports.LoginResult, error)
	changePasswordFn func(ctx context.Context, identity domain.Identity, current, next string) error
}

func (s *stubAuthService) Login(ctx context.Context, email, password string) (*ports.LoginResult, error) {
	return s.loginFn(ctx, email, password)
}

func (s *stubAuthService) ChangePassword(ctx context.Context, identity domain.Identity, current, next string) error {
	return s.changePasswordFn(ctx, identity, current, next)
}

type stubUserService struct {
	listFn   func(ctx context.Context) ([]*domain.User, error)
	getFn    func(ctx context.Context, id string) (*domain.User, error)
	createFn func(ctx context.Context, actor domain.Identity, in ports.CreateUserInput) (*domain.User, error)
	updateFn func(ctx context.Context, actor domain.Identity, in ports.UpdateUserInput) (*domain.User, error)
	deleteFn func(ctx context.Context, actor domain.Identity, id string) error
}

func (s *stubUserService) List(ctx context.Context) ([]*domain.User, error) { return s.listFn(ctx) }
func (s *stubUserService) Get(ctx context.Context, id string) (*domain.User, error) {
	return s.getFn(ctx, id)
}
func (s *stubUserService) Create(ctx context.Context, a domain.Identity, in ports.CreateUserInput) (*domain.User, error) {
	return s.createFn(ctx, a, in)
}
func (s *stubUserService) Update(ctx context.Context, a domain.Identity, in ports.UpdateUserInput) (*domain.User, error) {
	return s.updateFn(ctx, a, in)
}
func (s *stubUserService) Delete(ctx context.Context, a domain.Identity, id string) error {
	return s.deleteFn(ctx, a, id)
}

type stubBookingService struct {
	createFn    func(ctx context.Context, in ports.CreateBookingInput) (*ports.CreateResult[domain.Booking], error)
	listFn      func(ctx context.Context, status string) ([]*domain.Booking, error)
	setStatusFn func(ctx context.Context, actor domain.Identity, id, status string) (*domain.Booking, error)
	deleteFn    func(ctx context.Context, actor domain.Identity, id string) error
}

func (s *stubBookingService) Create(ctx context.Context, in ports.CreateBookingInput) (*ports.CreateResult[domain.Booking], error) {
	return s.createFn(ctx, in)
}
func (s *stubBookingService) List(ctx context.Context, status string) ([]*domain.Booking, error) {
	return s.listFn(ctx, status)
}
func (s *stubBookingService) SetStatus(ctx context.Context, a domain.Identity, id, status string) (*domain.Booking, error) {
	return s.setStatusFn(ctx, a, id, status)
}
func (s *stubBookingService) Delete(ctx context.Context, a domain.Identity, id string) error {
	return s.deleteFn(ctx, a, id)
}

type stubContactService struct {
	createFn func(ctx context.Context, in ports.CreateContactInput) (*ports.CreateResult[domain.Contact], error)
}

func (s *stubContactService) Create(ctx context.Context, in ports.CreateContactInput) (*ports.CreateResult[domain.Contact], error) {
	return s.createFn(ctx, in)
}
func (s *stubContactService) List(context.Context, string) ([]*domain.Contact, error) {
	return nil, nil
}
func (s *stubContactService) SetStatus(context.Context, domain.Identity, string, string) (*domain.Contact, error) {
	return nil, nil
}
func (s *stubContactService) Delete(context.Context, domain.Identity, string) error { return nil }

type stubPhotoService struct {
	listFn   func(ctx context.Context, f ports.MediaFilter) ([]*domain.Photo, error)
	updateFn func(ctx context.Context, actor domain.Identity, in ports.UpdateMediaInput) (*domain.Photo, error)
}

func (s *stubPhotoService) Create(context.Context, domain.Identity, ports.CreatePhotoInput) (*domain.Photo, error) {
	return &domain.Photo{ID: "p1"}, nil
}
func (s *stubPhotoService) List(ctx context.Context, f ports.MediaFilter) ([]*domain.Photo, error) {
	return s.listFn(ctx, f)
}
func (s *stubPhotoService) Update(ctx context.Context, a domain.Identity, in ports.UpdateMediaInput) (*domain.Photo, error) {
	return s.updateFn(ctx, a, in)
}
func (s *stubPhotoService) Delete(context.Context, domain.Identity, string) error { return nil }
