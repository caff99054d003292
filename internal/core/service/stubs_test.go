package service

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/czarstudio/studio-api/internal/core/domain"
	"github.com/czarstudio/studio-api/internal/core/ports"
)

// ---------------------------------------------------------------------------
// Users
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	users  map[string]*domain.User
	nextID int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	clone.Permissions = slices.Clone(u.Permissions)
	return &clone
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) List(_ context.Context) ([]*domain.User, error) {
	out := make([]*domain.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, cloneUser(u))
	}
	return out, nil
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == user.Email {
			return nil, domain.ErrUserExists
		}
	}
	r.nextID++
	stored := cloneUser(user)
	stored.ID = fmt.Sprintf("u%d", r.nextID)
	r.users[stored.ID] = stored
	return cloneUser(stored), nil
}

func (r *stubUserRepo) Update(_ context.Context, id string, upd ports.UserUpdate) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	if upd.Email != nil {
		u.Email = *upd.Email
	}
	if upd.Name != nil {
		u.Name = *upd.Name
	}
	if upd.Role != nil {
		u.Role = *upd.Role
	}
	if upd.Permissions != nil {
		u.Permissions = slices.Clone(*upd.Permissions)
	}
	if upd.Active != nil {
		u.Active = *upd.Active
	}
	if upd.PasswordHash != nil {
		u.PasswordHash = *upd.PasswordHash
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

// ---------------------------------------------------------------------------
// Activity
// ---------------------------------------------------------------------------

type stubRecorder struct {
	mu      sync.Mutex
	entries []ports.ActivityInput
}

func (r *stubRecorder) Enqueue(entry ports.ActivityInput) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, entry)
}

func (r *stubRecorder) actions() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.entries))
	for i, e := range r.entries {
		out[i] = e.Action
	}
	return out
}

type stubActivityRepo struct {
	inserted  []*domain.Activity
	insertErr error
}

func (r *stubActivityRepo) Insert(_ context.Context, a *domain.Activity) error {
	if r.insertErr != nil {
		return r.insertErr
	}
	r.inserted = append(r.inserted, a)
	return nil
}

// ---------------------------------------------------------------------------
// Bookings and contacts
// ---------------------------------------------------------------------------

type stubBookingRepo struct {
	items     map[string]*domain.Booking
	nextID    int
	createErr error
}

func newStubBookingRepo() *stubBookingRepo {
	return &stubBookingRepo{items: make(map[string]*domain.Booking)}
}

func (r *stubBookingRepo) Create(_ context.Context, b *domain.Booking) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.nextID++
	b.ID = fmt.Sprintf("b%d", r.nextID)
	clone := *b
	r.items[b.ID] = &clone
	return nil
}

func (r *stubBookingRepo) FindByID(_ context.Context, id string) (*domain.Booking, error) {
	b, ok := r.items[id]
	if !ok {
		return nil, domain.ErrBookingNotFound
	}
	clone := *b
	return &clone, nil
}

func (r *stubBookingRepo) List(_ context.Context, status domain.BookingStatus) ([]*domain.Booking, error) {
	var out []*domain.Booking
	for _, b := range r.items {
		if status != "" && b.Status != status {
			continue
		}
		clone := *b
		out = append(out, &clone)
	}
	return out, nil
}

func (r *stubBookingRepo) UpdateStatus(_ context.Context, id string, status domain.BookingStatus) (*domain.Booking, error) {
	b, ok := r.items[id]
	if !ok {
		return nil, domain.ErrBookingNotFound
	}
	b.Status = status
	clone := *b
	return &clone, nil
}

func (r *stubBookingRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.items[id]; !ok {
		return domain.ErrBookingNotFound
	}
	delete(r.items, id)
	return nil
}

func (r *stubBookingRepo) CountByStatus(_ context.Context) (map[domain.BookingStatus]int64, error) {
	out := make(map[domain.BookingStatus]int64)
	for _, b := range r.items {
		out[b.Status]++
	}
	return out, nil
}

type stubContactRepo struct {
	items  map[string]*domain.Contact
	nextID int
}

func newStubContactRepo() *stubContactRepo {
	return &stubContactRepo{items: make(map[string]*domain.Contact)}
}

func (r *stubContactRepo) Create(_ context.Context, c *domain.Contact) error {
	r.nextID++
	c.ID = fmt.Sprintf("c%d", r.nextID)
	clone := *c
	r.items[c.ID] = &clone
	return nil
}

func (r *stubContactRepo) FindByID(_ context.Context, id string) (*domain.Contact, error) {
	c, ok := r.items[id]
	if !ok {
		return nil, domain.ErrContactNotFound
	}
	clone := *c
	return &clone, nil
}

func (r *stubContactRepo) List(_ context.Context, status domain.ContactStatus) ([]*domain.Contact, error) {
	var out []*domain.Contact
	for _, c := range r.items {
		if status != "" && c.Status != status {
			continue
		}
		clone := *c
		out = append(out, &clone)
	}
	return out, nil
}

func (r *stubContactRepo) UpdateStatus(_ context.Context, id string, status domain.ContactStatus) (*domain.Contact, error) {
	c, ok := r.items[id]
	if !ok {
		return nil, domain.ErrContactNotFound
	}
	c.Status = status
	clone := *c
	return &clone, nil
}

func (r *stubContactRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.items[id]; !ok {
		return domain.ErrContactNotFound
	}
	delete(r.items, id)
	return nil
}

func (r *stubContactRepo) CountByStatus(_ context.Context) (map[domain.ContactStatus]int64, error) {
	out := make(map[domain.ContactStatus]int64)
	for _, c := range r.items {
		out[c.Status]++
	}
	return out, nil
}

// stubIdempotency mirrors the Redis store: a reserved key holds "" until completed.
type stubIdempotency struct {
	keys       map[string]string
	reserveErr error
}

func newStubIdempotency() *stubIdempotency {
	return &stubIdempotency{keys: make(map[string]string)}
}

func (s *stubIdempotency) Reserve(_ context.Context, scope, key string) (string, bool, error) {
	if s.reserveErr != nil {
		return "", false, s.reserveErr
	}
	k := scope + ":" + key
	if id, ok := s.keys[k]; ok {
		return id, false, nil
	}
	s.keys[k] = ""
	return "", true, nil
}

func (s *stubIdempotency) Complete(_ context.Context, scope, key, id string) error {
	s.keys[scope+":"+key] = id
	return nil
}

func (s *stubIdempotency) Release(_ context.Context, scope, key string) error {
	delete(s.keys, scope+":"+key)
	return nil
}

// ---------------------------------------------------------------------------
// Photos and videos
// ---------------------------------------------------------------------------

type stubPhotoRepo struct {
	items      map[string]*domain.Photo
	nextID     int
	lastFilter ports.MediaFilter
}

func newStubPhotoRepo() *stubPhotoRepo {
	return &stubPhotoRepo{items: make(map[string]*domain.Photo)}
}

func (r *stubPhotoRepo) Create(_ context.Context, p *domain.Photo) error {
	r.nextID++
	p.ID = fmt.Sprintf("p%d", r.nextID)
	clone := *p
	r.items[p.ID] = &clone
	return nil
}

func (r *stubPhotoRepo) List(_ context.Context, f ports.MediaFilter) ([]*domain.Photo, error) {
	r.lastFilter = f
	var out []*domain.Photo
	for _, p := range r.items {
		if f.Category != "" && p.Category != f.Category {
			continue
		}
		clone := *p
		out = append(out, &clone)
	}
	return out, nil
}

func (r *stubPhotoRepo) Update(_ context.Context, id string, upd ports.MediaUpdate) (*domain.Photo, error) {
	p, ok := r.items[id]
	if !ok {
		return nil, domain.ErrPhotoNotFound
	}
	if upd.Title != nil {
		p.Title = *upd.Title
	}
	if upd.Date != nil {
		p.Date = *upd.Date
	}
	if upd.Published != nil {
		p.Published = *upd.Published
	}
	clone := *p
	return &clone, nil
}

func (r *stubPhotoRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.items[id]; !ok {
		return domain.ErrPhotoNotFound
	}
	delete(r.items, id)
	return nil
}

func (r *stubPhotoRepo) Count(_ context.Context) (int64, int64, error) {
	var published int64
	for _, p := range r.items {
		if p.Published {
			published++
		}
	}
	return int64(len(r.items)), published, nil
}

type stubVideoRepo struct {
	items  map[string]*domain.Video
	nextID int
}

func newStubVideoRepo() *stubVideoRepo {
	return &stubVideoRepo{items: make(map[string]*domain.Video)}
}

func (r *stubVideoRepo) Create(_ context.Context, v *domain.Video) error {
	r.nextID++
	v.ID = fmt.Sprintf("v%d", r.nextID)
	clone := *v
	r.items[v.ID] = &clone
	return nil
}

func (r *stubVideoRepo) List(_ context.Context, _ ports.MediaFilter) ([]*domain.Video, error) {
	var out []*domain.Video
	for _, v := range r.items {
		clone := *v
		out = append(out, &clone)
	}
	return out, nil
}

func (r *stubVideoRepo) Update(_ context.Context, id string, upd ports.MediaUpdate) (*domain.Video, error) {
	v, ok := r.items[id]
	if !ok {
		return nil, domain.ErrVideoNotFound
	}
	if upd.ThumbnailURL != nil {
		v.ThumbnailURL = *upd.ThumbnailURL
	}
	clone := *v
	return &clone, nil
}

func (r *stubVideoRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.items[id]; !ok {
		return domain.ErrVideoNotFound
	}
	delete(r.items, id)
	return nil
}

func (r *stubVideoRepo) Count(_ context.Context) (int64, int64, error) {
	var published int64
	for _, v := range r.items {
		if v.Published {
			published++
		}
	}
	return int64(len(r.items)), published, nil
}
