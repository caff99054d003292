package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/czarstudio/studio-api/internal/core/domain"
	"github.com/czarstudio/studio-api/internal/core/ports"
	"github.com/czarstudio/studio-api/internal/core/service"
)

// ---------------------------------------------------------------------------
// In-memory stores
// ---------------------------------------------------------------------------

type memUsers struct {
	mu    sync.Mutex
	users map[string]*domain.User
	next  int
}

func (r *memUsers) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *memUsers) FindByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *memUsers) List(_ context.Context) ([]*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.User, 0, len(r.users))
	for _, u := range r.users {
		clone := *u
		out = append(out, &clone)
	}
	return out, nil
}

func (r *memUsers) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.next++
	clone := *user
	clone.ID = fmt.Sprintf("u%d", r.next)
	r.users[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *memUsers) Update(_ context.Context, id string, upd ports.UserUpdate) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	if upd.Active != nil {
		u.Active = *upd.Active
	}
	if upd.Role != nil {
		u.Role = *upd.Role
	}
	clone := *u
	return &clone, nil
}

func (r *memUsers) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

type memBookings struct {
	mu    sync.Mutex
	items map[string]*domain.Booking
	next  int
}

func (r *memBookings) Create(_ context.Context, b *domain.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.next++
	b.ID = fmt.Sprintf("b%d", r.next)
	clone := *b
	r.items[b.ID] = &clone
	return nil
}

func (r *memBookings) FindByID(_ context.Context, id string) (*domain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.items[id]
	if !ok {
		return nil, domain.ErrBookingNotFound
	}
	clone := *b
	return &clone, nil
}

func (r *memBookings) List(_ context.Context, _ domain.BookingStatus) ([]*domain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.Booking, 0, len(r.items))
	for _, b := range r.items {
		clone := *b
		out = append(out, &clone)
	}
	return out, nil
}

func (r *memBookings) UpdateStatus(_ context.Context, id string, status domain.BookingStatus) (*domain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.items[id]
	if !ok {
		return nil, domain.ErrBookingNotFound
	}
	b.Status = status
	clone := *b
	return &clone, nil
}

func (r *memBookings) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.items, id)
	return nil
}

func (r *memBookings) CountByStatus(_ context.Context) (map[domain.BookingStatus]int64, error) {
	return map[domain.BookingStatus]int64{}, nil
}

type nopRecorder struct{}

func (nopRecorder) Enqueue(ports.ActivityInput) {}

// ---------------------------------------------------------------------------
// Harness
// ---------------------------------------------------------------------------

type testServer struct {
	t      *testing.T
	h      http.Handler
	users  *memUsers
	tokens *service.TokenManager
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	users := &memUsers{users: make(map[string]*domain.User)}
	bookings := &memBookings{items: make(map[string]*domain.Booking)}
	tokens := service.NewTokenManager("router-test-secret", 24*time.Hour)
	log := zerolog.Nop()
	rec := nopRecorder{}

	reg := prometheus.NewRegistry()
	e := NewRouter(RouterConfig{
		Verifier:   tokens,
		Users:      users,
		Log:        log,
		Registerer: reg,
		Gatherer:   reg,
	}, Services{
		Auth:     service.NewAuthService(users, tokens, rec, log),
		Users:    service.NewUserService(users, rec, log),
		Bookings: service.NewBookingService(bookings, nil, rec, log),
	})

	return &testServer{t: t, h: e, users: users, tokens: tokens}
}

func (s *testServer) seed(email, password string, role domain.Role) *domain.User {
	s.t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		s.t.Fatalf("hash: %v", err)
	}
	u, _ := s.users.Create(context.Background(), &domain.User{
		Email: email, Name: "Test", PasswordHash: string(hash),
		Role: role, Permissions: []string{}, Active: true, CreatedAt: time.Now().UTC(),
	})
	return u
}

func (s *testServer) do(method, path, body, token string) *httptest.ResponseRecorder {
	s.t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.h.ServeHTTP(rec, req)
	return rec
}

func (s *testServer) login(email, password string) string {
	s.t.Helper()
	rec := s.do(http.MethodPost, "/auth/login", fmt.Sprintf(`{"email":%q,"password":%q}`, email, password), "")
	if rec.Code != http.StatusOK {
		s.t.Fatalf("login %s: expected 200, got %d: %s", email, rec.Code, rec.Body.String())
	}
	var resp struct {
		Token string `json:"token"`
		User  struct {
			Role string `json:"role"`
		} `json:"user"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		s.t.Fatalf("decode login: %v", err)
	}
	if resp.Token == "" {
		s.t.Fatalf("login returned no token")
	}
	return resp.Token
}

func errorMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid error body %q: %v", rec.Body.String(), err)
	}
	return body.Error
}

// ---------------------------------------------------------------------------
// Scenarios
// ---------------------------------------------------------------------------

func TestRouter_AdminListsUsersWithoutHashes(t *testing.T) {
	s := newTestServer(t)
	s.seed("admin@czarstudio.com", "admin123", domain.RoleAdmin)

	token := s.login("admin@czarstudio.com", "admin123")

	rec := s.do(http.MethodGet, "/users", "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if strings.Contains(rec.Body.String(), "passwordHash") || strings.Contains(rec.Body.String(), "$2a$") {
		t.Fatalf("password hash leaked: %s", rec.Body.String())
	}

	var users []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &users); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(users) != 1 || users[0]["email"] != "admin@czarstudio.com" {
		t.Fatalf("unexpected users: %+v", users)
	}
}

func TestRouter_WrongPassword(t *testing.T) {
	s := newTestServer(t)
	s.seed("admin@czarstudio.com", "admin123", domain.RoleAdmin)

	for _, body := range []string{
		`{"email":"admin@czarstudio.com","password":"nope"}`,
		`{"email":"ghost@czarstudio.com","password":"admin123"}`,
		`{"email":"admin@czarstudio.com"}`,
	} {
		rec := s.do(http.MethodPost, "/auth/login", body, "")
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("%s: expected 401, got %d", body, rec.Code)
		}
		if msg := errorMessage(t, rec); msg != "invalid credentials" {
			t.Fatalf("%s: unexpected message %q", body, msg)
		}
	}
}

func TestRouter_PublicBookingCapture(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(http.MethodPost, "/bookings",
		`{"name":"Ana","email":"ana@example.com","eventType":"wedding","eventDate":"2025-09-20","eventTime":"16:00"}`, "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var b domain.Booking
	if err := json.Unmarshal(rec.Body.Bytes(), &b); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b.Status != domain.BookingPending || b.ID == "" {
		t.Fatalf("unexpected booking: %+v", b)
	}

	rec = s.do(http.MethodPost, "/bookings",
		`{"name":"Ana","email":"ana@example.com","eventType":"wedding","eventTime":"16:00"}`, "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if msg := errorMessage(t, rec); msg != "eventDate is required" {
		t.Fatalf("unexpected message %q", msg)
	}
}

func TestRouter_ProtectedRoutesRequireToken(t *testing.T) {
	s := newTestServer(t)

	for _, route := range []struct{ method, path string }{
		{http.MethodGet, "/bookings"},
		{http.MethodPatch, "/bookings"},
		{http.MethodGet, "/contacts"},
		{http.MethodGet, "/photos"},
		{http.MethodPost, "/videos"},
		{http.MethodGet, "/stats"},
		{http.MethodGet, "/users"},
		{http.MethodGet, "/auth/me"},
	} {
		rec := s.do(route.method, route.path, "", "")
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("%s %s: expected 401, got %d", route.method, route.path, rec.Code)
		}
	}
}

func TestRouter_NonAdminForbiddenFromUsers(t *testing.T) {
	s := newTestServer(t)

	for _, role := range []domain.Role{domain.RoleViewer, domain.RoleUser} {
		email := string(role) + "@czarstudio.com"
		s.seed(email, "secret1", role)
		token := s.login(email, "secret1")

		rec := s.do(http.MethodGet, "/users", "", token)
		if rec.Code != http.StatusForbidden {
			t.Fatalf("%s: expected 403, got %d", role, rec.Code)
		}

		// Staff routes stay open to any authenticated role.
		if rec := s.do(http.MethodGet, "/bookings", "", token); rec.Code != http.StatusOK {
			t.Fatalf("%s: expected 200 on /bookings, got %d", role, rec.Code)
		}
	}
}

func TestRouter_UsersReverifiesAgainstStore(t *testing.T) {
	s := newTestServer(t)
	admin := s.seed("admin@czarstudio.com", "admin123", domain.RoleAdmin)
	token := s.login("admin@czarstudio.com", "admin123")

	demoted := domain.RoleViewer
	if _, err := s.users.Update(context.Background(), admin.ID, ports.UserUpdate{Role: &demoted}); err != nil {
		t.Fatalf("update: %v", err)
	}
	if rec := s.do(http.MethodGet, "/users", "", token); rec.Code != http.StatusForbidden {
		t.Fatalf("demoted admin: expected 403, got %d", rec.Code)
	}

	inactive := false
	if _, err := s.users.Update(context.Background(), admin.ID, ports.UserUpdate{Active: &inactive}); err != nil {
		t.Fatalf("update: %v", err)
	}
	if rec := s.do(http.MethodGet, "/users", "", token); rec.Code != http.StatusUnauthorized {
		t.Fatalf("inactive admin: expected 401, got %d", rec.Code)
	}
}

func TestRouter_AdminCannotDeleteSelf(t *testing.T) {
	s := newTestServer(t)
	admin := s.seed("admin@czarstudio.com", "admin123", domain.RoleAdmin)
	token := s.login("admin@czarstudio.com", "admin123")

	rec := s.do(http.MethodDelete, "/users?id="+admin.ID, "", token)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if msg := errorMessage(t, rec); msg != "cannot delete your own account" {
		t.Fatalf("unexpected message %q", msg)
	}
	if _, err := s.users.FindByID(context.Background(), admin.ID); err != nil {
		t.Fatalf("admin should still exist: %v", err)
	}
}

func TestRouter_OperationalEndpoints(t *testing.T) {
	s := newTestServer(t)

	if rec := s.do(http.MethodGet, "/health", "", ""); rec.Code != http.StatusOK {
		t.Fatalf("/health: expected 200, got %d", rec.Code)
	}
	if rec := s.do(http.MethodGet, "/health/ready", "", ""); rec.Code != http.StatusOK {
		t.Fatalf("/health/ready: expected 200, got %d", rec.Code)
	}

	s.do(http.MethodGet, "/health", "", "")
	rec := s.do(http.MethodGet, "/metrics", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("/metrics: expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "studio_http_requests_total") {
		t.Fatalf("expected HTTP metrics in exposition")
	}
}
