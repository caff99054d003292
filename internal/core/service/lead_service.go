package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/czarstudio/studio-api/internal/core/domain"
	"github.com/czarstudio/studio-api/internal/core/ports"
	"github.com/czarstudio/studio-api/internal/pkg/metrics"
)

// dateLayouts are accepted for date fields coming from HTML date and
// datetime-local inputs as well as full timestamps.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04",
	"2006-01-02",
}

func parseDate(field, raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, domain.ValidationError(field + " must be a date (YYYY-MM-DD or RFC 3339)")
}

// captureOnce runs create at most once per idempotency key. When the key was
// seen before, the original record is looked up and returned as replayed. A
// key whose record has since been deleted is released and claimed again.
// Store failures degrade to a plain create.
func captureOnce[T any](
	ctx context.Context,
	store ports.IdempotencyStore,
	log zerolog.Logger,
	scope, key string,
	notFound error,
	find func(ctx context.Context, id string) (*T, error),
	create func(ctx context.Context) (*T, string, error),
) (*ports.CreateResult[T], error) {
	plain := func() (*ports.CreateResult[T], error) {
		rec, _, err := create(ctx)
		if err != nil {
			return nil, err
		}
		return &ports.CreateResult[T]{Record: rec}, nil
	}

	if key == "" || store == nil {
		return plain()
	}

	existingID, reserved, err := store.Reserve(ctx, scope, key)
	if err != nil {
		log.Warn().Err(err).Str("scope", scope).Msg("idempotency reserve failed, creating anyway")
		return plain()
	}

	if !reserved {
		if existingID == "" {
			return nil, domain.ErrDuplicateSubmission
		}
		rec, err := find(ctx, existingID)
		if err == nil {
			return &ports.CreateResult[T]{Record: rec, Replayed: true}, nil
		}
		if !errors.Is(err, notFound) {
			return nil, err
		}

		log.Info().Str("scope", scope).Str("record_id", existingID).Msg("idempotency key points at a deleted record, reclaiming")
		if err := store.Release(ctx, scope, key); err != nil {
			return nil, fmt.Errorf("release stale idempotency key: %w", err)
		}
		_, reserved, err = store.Reserve(ctx, scope, key)
		if err != nil {
			return nil, fmt.Errorf("reclaim idempotency key: %w", err)
		}
		if !reserved {
			// Another submission claimed the key in between.
			return nil, domain.ErrDuplicateSubmission
		}
	}

	rec, id, err := create(ctx)
	if err != nil {
		if relErr := store.Release(ctx, scope, key); relErr != nil {
			log.Warn().Err(relErr).Str("scope", scope).Msg("idempotency release failed")
		}
		return nil, err
	}
	if err := store.Complete(ctx, scope, key, id); err != nil {
		log.Warn().Err(err).Str("scope", scope).Msg("idempotency complete failed")
	}
	return &ports.CreateResult[T]{Record: rec}, nil
}

func leadResult(replayed bool) string {
	if replayed {
		return "replayed"
	}
	return "created"
}

// ── Bookings ──────────────────────────────────────────────────────────────────

type bookingService struct {
	repo     ports.BookingRepository
	idem     ports.IdempotencyStore
	activity ports.ActivityRecorder
	log      zerolog.Logger
}

// NewBookingService returns the booking use cases. idem may be nil, which
// disables Idempotency-Key handling.
func NewBookingService(repo ports.BookingRepository, idem ports.IdempotencyStore, activity ports.ActivityRecorder, log zerolog.Logger) ports.BookingService {
	return &bookingService{repo: repo, idem: idem, activity: activity, log: log}
}

// Create stores a public booking request with status pending.
func (s *bookingService) Create(ctx context.Context, in ports.CreateBookingInput) (*ports.CreateResult[domain.Booking], error) {
	if in.Name == "" || in.Email == "" || in.EventType == "" || in.EventDate == "" || in.EventTime == "" {
		return nil, domain.ValidationError("missing required fields")
	}
	eventDate, err := parseDate("eventDate", in.EventDate)
	if err != nil {
		return nil, err
	}

	res, err := captureOnce(ctx, s.idem, s.log, "booking", in.IdempotencyKey, domain.ErrBookingNotFound, s.repo.FindByID,
		func(ctx context.Context) (*domain.Booking, string, error) {
			now := time.Now().UTC()
			b := &domain.Booking{
				Name:      strings.TrimSpace(in.Name),
				Email:     strings.TrimSpace(in.Email),
				Phone:     in.Phone,
				EventType: in.EventType,
				EventDate: eventDate,
				EventTime: in.EventTime,
				Location:  in.Location,
				Message:   in.Message,
				Status:    domain.BookingPending,
				CreatedAt: now,
				UpdatedAt: now,
			}
			if err := s.repo.Create(ctx, b); err != nil {
				return nil, "", fmt.Errorf("create booking: %w", err)
			}
			return b, b.ID, nil
		})
	if err != nil {
		return nil, err
	}

	metrics.LeadsCapturedTotal.WithLabelValues("booking", leadResult(res.Replayed)).Inc()
	if !res.Replayed {
		s.log.Info().Str("booking_id", res.Record.ID).Str("event_type", res.Record.EventType).Msg("booking received")
	}
	return res, nil
}

func (s *bookingService) List(ctx context.Context, status string) ([]*domain.Booking, error) {
	st := domain.BookingStatus(status)
	if status != "" && !st.Valid() {
		return nil, domain.ValidationError("status must be one of: pending confirmed cancelled")
	}
	bookings, err := s.repo.List(ctx, st)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	return bookings, nil
}

// SetStatus accepts any known status regardless of the current one.
func (s *bookingService) SetStatus(ctx context.Context, actor domain.Identity, id, status string) (*domain.Booking, error) {
	st := domain.BookingStatus(status)
	if id == "" || status == "" {
		return nil, domain.ValidationError("missing required fields")
	}
	if !st.Valid() {
		return nil, domain.ValidationError("status must be one of: pending confirmed cancelled")
	}

	b, err := s.repo.UpdateStatus(ctx, id, st)
	if err != nil {
		return nil, fmt.Errorf("update booking: %w", err)
	}

	metrics.StatusChangesTotal.WithLabelValues("booking", status).Inc()
	s.activity.Enqueue(ports.ActivityInput{
		ActorID: actor.UserID, Action: "booking.status_changed", Resource: "booking",
		ResourceID: id, Detail: status, At: time.Now().UTC(),
	})
	return b, nil
}

func (s *bookingService) Delete(ctx context.Context, actor domain.Identity, id string) error {
	if id == "" {
		return domain.ValidationError("booking id required")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete booking: %w", err)
	}
	s.activity.Enqueue(ports.ActivityInput{
		ActorID: actor.UserID, Action: "booking.deleted", Resource: "booking",
		ResourceID: id, At: time.Now().UTC(),
	})
	return nil
}

// ── Contacts ──────────────────────────────────────────────────────────────────

type contactService struct {
	repo     ports.ContactRepository
	idem     ports.IdempotencyStore
	activity ports.ActivityRecorder
	log      zerolog.Logger
}

func NewContactService(repo ports.ContactRepository, idem ports.IdempotencyStore, activity ports.ActivityRecorder, log zerolog.Logger) ports.ContactService {
	return &contactService{repo: repo, idem: idem, activity: activity, log: log}
}

// Create stores a public contact message with status new.
func (s *contactService) Create(ctx context.Context, in ports.CreateContactInput) (*ports.CreateResult[domain.Contact], error) {
	if in.Name == "" || in.Email == "" || in.Message == "" {
		return nil, domain.ValidationError("missing required fields")
	}

	res, err := captureOnce(ctx, s.idem, s.log, "contact", in.IdempotencyKey, domain.ErrContactNotFound, s.repo.FindByID,
		func(ctx context.Context) (*domain.Contact, string, error) {
			now := time.Now().UTC()
			c := &domain.Contact{
				Name:      strings.TrimSpace(in.Name),
				Email:     strings.TrimSpace(in.Email),
				Phone:     in.Phone,
				Message:   in.Message,
				Status:    domain.ContactNew,
				CreatedAt: now,
				UpdatedAt: now,
			}
			if err := s.repo.Create(ctx, c); err != nil {
				return nil, "", fmt.Errorf("create contact: %w", err)
			}
			return c, c.ID, nil
		})
	if err != nil {
		return nil, err
	}

	metrics.LeadsCapturedTotal.WithLabelValues("contact", leadResult(res.Replayed)).Inc()
	return res, nil
}

func (s *contactService) List(ctx context.Context, status string) ([]*domain.Contact, error) {
	st := domain.ContactStatus(status)
	if status != "" && !st.Valid() {
		return nil, domain.ValidationError("status must be one of: new read replied")
	}
	contacts, err := s.repo.List(ctx, st)
	if err != nil {
		return nil, fmt.Errorf("list contacts: %w", err)
	}
	return contacts, nil
}

func (s *contactService) SetStatus(ctx context.Context, actor domain.Identity, id, status string) (*domain.Contact, error) {
	st := domain.ContactStatus(status)
	if id == "" || status == "" {
		return nil, domain.ValidationError("missing required fields")
	}
	if !st.Valid() {
		return nil, domain.ValidationError("status must be one of: new read replied")
	}

	c, err := s.repo.UpdateStatus(ctx, id, st)
	if err != nil {
		return nil, fmt.Errorf("update contact: %w", err)
	}

	metrics.StatusChangesTotal.WithLabelValues("contact", status).Inc()
	s.activity.Enqueue(ports.ActivityInput{
		ActorID: actor.UserID, Action: "contact.status_changed", Resource: "contact",
		ResourceID: id, Detail: status, At: time.Now().UTC(),
	})
	return c, nil
}

func (s *contactService) Delete(ctx context.Context, actor domain.Identity, id string) error {
	if id == "" {
		return domain.ValidationError("contact id required")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete contact: %w", err)
	}
	s.activity.Enqueue(ports.ActivityInput{
		ActorID: actor.UserID, Action: "contact.deleted", Resource: "contact",
		ResourceID: id, At: time.Now().UTC(),
	})
	return nil
}
