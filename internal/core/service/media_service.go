package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/czarstudio/studio-api/internal/core/domain"
	"github.com/czarstudio/studio-api/internal/core/ports"
)

// allCategories is the gallery filter value meaning "no category filter".
const allCategories = "All"

func normalizeFilter(f ports.MediaFilter) ports.MediaFilter {
	if f.Category == allCategories {
		f.Category = ""
	}
	return f
}

// toMediaUpdate converts the transport update, parsing the optional date.
func toMediaUpdate(in ports.UpdateMediaInput) (ports.MediaUpdate, error) {
	upd := ports.MediaUpdate{
		Title:        in.Title,
		Description:  in.Description,
		Category:     in.Category,
		URL:          in.URL,
		ThumbnailURL: in.ThumbnailURL,
		Duration:     in.Duration,
		Location:     in.Location,
		Featured:     in.Featured,
		Published:    in.Published,
	}
	if in.Date != nil && *in.Date != "" {
		d, err := parseDate("date", *in.Date)
		if err != nil {
			return ports.MediaUpdate{}, err
		}
		upd.Date = &d
	}
	return upd, nil
}

func boolOr(v *bool, def bool) bool {
	if v == nil {
		return def
	}
	return *v
}

// ── Photos ────────────────────────────────────────────────────────────────────

type photoService struct {
	repo     ports.PhotoRepository
	activity ports.ActivityRecorder
	log      zerolog.Logger
}

func NewPhotoService(repo ports.PhotoRepository, activity ports.ActivityRecorder, log zerolog.Logger) ports.PhotoService {
	return &photoService{repo: repo, activity: activity, log: log}
}

func (s *photoService) Create(ctx context.Context, actor domain.Identity, in ports.CreatePhotoInput) (*domain.Photo, error) {
	if in.Title == "" || in.Category == "" || in.ImageURL == "" || in.Date == "" {
		return nil, domain.ValidationError("missing required fields")
	}
	date, err := parseDate("date", in.Date)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	p := &domain.Photo{
		Title:       in.Title,
		Description: in.Description,
		Category:    in.Category,
		ImageURL:    in.ImageURL,
		Location:    in.Location,
		Date:        date,
		Featured:    boolOr(in.Featured, false),
		Published:   boolOr(in.Published, true),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("create photo: %w", err)
	}

	s.audit(actor, "photo.created", p.ID)
	return p, nil
}

func (s *photoService) List(ctx context.Context, f ports.MediaFilter) ([]*domain.Photo, error) {
	photos, err := s.repo.List(ctx, normalizeFilter(f))
	if err != nil {
		return nil, fmt.Errorf("list photos: %w", err)
	}
	return photos, nil
}

func (s *photoService) Update(ctx context.Context, actor domain.Identity, in ports.UpdateMediaInput) (*domain.Photo, error) {
	if in.ID == "" {
		return nil, domain.ValidationError("photo id required")
	}
	upd, err := toMediaUpdate(in)
	if err != nil {
		return nil, err
	}
	// Thumbnails and durations only exist on videos.
	upd.ThumbnailURL, upd.Duration = nil, nil

	p, err := s.repo.Update(ctx, in.ID, upd)
	if err != nil {
		return nil, fmt.Errorf("update photo: %w", err)
	}
	s.audit(actor, "photo.updated", p.ID)
	return p, nil
}

func (s *photoService) Delete(ctx context.Context, actor domain.Identity, id string) error {
	if id == "" {
		return domain.ValidationError("photo id required")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete photo: %w", err)
	}
	s.audit(actor, "photo.deleted", id)
	return nil
}

func (s *photoService) audit(actor domain.Identity, action, id string) {
	s.activity.Enqueue(ports.ActivityInput{
		ActorID: actor.UserID, Action: action, Resource: "photo", ResourceID: id, At: time.Now().UTC(),
	})
}

// ── Videos ────────────────────────────────────────────────────────────────────

type videoService struct {
	repo     ports.VideoRepository
	activity ports.ActivityRecorder
	log      zerolog.Logger
}

func NewVideoService(repo ports.VideoRepository, activity ports.ActivityRecorder, log zerolog.Logger) ports.VideoService {
	return &videoService{repo: repo, activity: activity, log: log}
}

func (s *videoService) Create(ctx context.Context, actor domain.Identity, in ports.CreateVideoInput) (*domain.Video, error) {
	if in.Title == "" || in.Category == "" || in.VideoURL == "" || in.ThumbnailURL == "" || in.Date == "" {
		return nil, domain.ValidationError("missing required fields")
	}
	date, err := parseDate("date", in.Date)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	v := &domain.Video{
		Title:        in.Title,
		Description:  in.Description,
		Category:     in.Category,
		VideoURL:     in.VideoURL,
		ThumbnailURL: in.ThumbnailURL,
		Duration:     in.Duration,
		Location:     in.Location,
		Date:         date,
		Featured:     boolOr(in.Featured, false),
		Published:    boolOr(in.Published, true),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.repo.Create(ctx, v); err != nil {
		return nil, fmt.Errorf("create video: %w", err)
	}

	s.audit(actor, "video.created", v.ID)
	return v, nil
}

func (s *videoService) List(ctx context.Context, f ports.MediaFilter) ([]*domain.Video, error) {
	videos, err := s.repo.List(ctx, normalizeFilter(f))
	if err != nil {
		return nil, fmt.Errorf("list videos: %w", err)
	}
	return videos, nil
}

func (s *videoService) Update(ctx context.Context, actor domain.Identity, in ports.UpdateMediaInput) (*domain.Video, error) {
	if in.ID == "" {
		return nil, domain.ValidationError("video id required")
	}
	upd, err := toMediaUpdate(in)
	if err != nil {
		return nil, err
	}

	v, err := s.repo.Update(ctx, in.ID, upd)
	if err != nil {
		return nil, fmt.Errorf("update video: %w", err)
	}
	s.audit(actor, "video.updated", v.ID)
	return v, nil
}

func (s *videoService) Delete(ctx context.Context, actor domain.Identity, id string) error {
	if id == "" {
		return domain.ValidationError("video id required")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete video: %w", err)
	}
	s.audit(actor, "video.deleted", id)
	return nil
}

func (s *videoService) audit(actor domain.Identity, action, id string) {
	s.activity.Enqueue(ports.ActivityInput{
		ActorID: actor.UserID, Action: action, Resource: "video", ResourceID: id, At: time.Now().UTC(),
	})
}
