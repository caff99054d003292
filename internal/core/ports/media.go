package ports

import (
	"context"
	"time"

	"github.com/czarstudio/studio-api/internal/core/domain"
)

// MediaFilter narrows portfolio listings. Nil pointers mean no filter.
type MediaFilter struct {
	Category  string
	Featured  *bool
	Published *bool
}

// MediaUpdate is a partial update shared by photos and videos. URL holds the
// image URL for photos and the video URL for videos.
type MediaUpdate struct {
	Title        *string
	Description  *string
	Category     *string
	URL          *string
	ThumbnailURL *string
	Duration     *string
	Location     *string
	Date         *time.Time
	Featured     *bool
	Published    *bool
}

type PhotoRepository interface {
	Create(ctx context.Context, p *domain.Photo) error
	List(ctx context.Context, f MediaFilter) ([]*domain.Photo, error)
	Update(ctx context.Context, id string, upd MediaUpdate) (*domain.Photo, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (total, published int64, err error)
}

type VideoRepository interface {
	Create(ctx context.Context, v *domain.Video) error
	List(ctx context.Context, f MediaFilter) ([]*domain.Video, error)
	Update(ctx context.Context, id string, upd MediaUpdate) (*domain.Video, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (total, published int64, err error)
}

type CreatePhotoInput struct {
	Title       string
	Description string
	Category    string
	ImageURL    string
	Location    string
	Date        string
	Featured    *bool
	Published   *bool
}

type CreateVideoInput struct {
	Title        string
	Description  string
	Category     string
	VideoURL     string
	ThumbnailURL string
	Duration     string
	Location     string
	Date         string
	Featured     *bool
	Published    *bool
}

// UpdateMediaInput is the transport-level partial update; Date is still raw.
type UpdateMediaInput struct {
	ID           string
	Title        *string
	Description  *string
	Category     *string
	URL          *string
	ThumbnailURL *string
	Duration     *string
	Location     *string
	Date         *string
	Featured     *bool
	Published    *bool
}

type PhotoService interface {
	Create(ctx context.Context, actor domain.Identity, in CreatePhotoInput) (*domain.Photo, error)
	List(ctx context.Context, f MediaFilter) ([]*domain.Photo, error)
	Update(ctx context.Context, actor domain.Identity, in UpdateMediaInput) (*domain.Photo, error)
	Delete(ctx context.Context, actor domain.Identity, id string) error
}

type VideoService interface {
	Create(ctx context.Context, actor domain.Identity, in CreateVideoInput) (*domain.Video, error)
	List(ctx context.Context, f MediaFilter) ([]*domain.Video, error)
	Update(ctx context.Context, actor domain.Identity, in UpdateMediaInput) (*domain.Video, error)
	Delete(ctx context.Context, actor domain.Identity, id string) error
}
