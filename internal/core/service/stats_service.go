package service

import (
	"context"
	"fmt"

	"github.com/czarstudio/studio-api/internal/core/domain"
	"github.com/czarstudio/studio-api/internal/core/ports"
)

type statsService struct {
	bookings ports.BookingRepository
	contacts ports.ContactRepository
	photos   ports.PhotoRepository
	videos   ports.VideoRepository
}

// NewStatsService returns the dashboard summary use case.
func NewStatsService(bookings ports.BookingRepository, contacts ports.ContactRepository, photos ports.PhotoRepository, videos ports.VideoRepository) ports.StatsService {
	return &statsService{bookings: bookings, contacts: contacts, photos: photos, videos: videos}
}

func (s *statsService) Dashboard(ctx context.Context) (*ports.DashboardStats, error) {
	var out ports.DashboardStats

	byBooking, err := s.bookings.CountByStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("booking stats: %w", err)
	}
	for _, n := range byBooking {
		out.Bookings.Total += n
	}
	out.Bookings.Pending = byBooking[domain.BookingPending]
	out.Bookings.Confirmed = byBooking[domain.BookingConfirmed]
	out.Bookings.Cancelled = byBooking[domain.BookingCancelled]

	byContact, err := s.contacts.CountByStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("message stats: %w", err)
	}
	for _, n := range byContact {
		out.Messages.Total += n
	}
	out.Messages.Unread = byContact[domain.ContactNew]
	out.Messages.Replied = byContact[domain.ContactReplied]

	if out.Photos.Total, out.Photos.Published, err = s.photos.Count(ctx); err != nil {
		return nil, fmt.Errorf("photo stats: %w", err)
	}
	if out.Videos.Total, out.Videos.Published, err = s.videos.Count(ctx); err != nil {
		return nil, fmt.Errorf("video stats: %w", err)
	}

	return &out, nil
}
