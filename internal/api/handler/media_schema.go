package handler

import "github.com/czarstudio/studio-api/internal/core/ports"

type createPhotoRequest struct {
	Title       string `json:"title"    validate:"required"`
	Description string `json:"description"`
	Category    string `json:"category" validate:"required"`
	ImageURL    string `json:"imageUrl" validate:"required"`
	Location    string `json:"location"`
	Date        string `json:"date"     validate:"required"`
	Featured    *bool  `json:"featured"`
	Published   *bool  `json:"published"`
}

type createVideoRequest struct {
	Title        string `json:"title"        validate:"required"`
	Description  string `json:"description"`
	Category     string `json:"category"     validate:"required"`
	VideoURL     string `json:"videoUrl"     validate:"required"`
	ThumbnailURL string `json:"thumbnailUrl" validate:"required"`
	Duration     string `json:"duration"`
	Location     string `json:"location"`
	Date         string `json:"date"         validate:"required"`
	Featured     *bool  `json:"featured"`
	Published    *bool  `json:"published"`
}

// updateMediaRequest is shared by photos and videos; fields that do not apply
// to the resource are ignored.
type updateMediaRequest struct {
	ID           string  `json:"id" validate:"required"`
	Title        *string `json:"title"`
	Description  *string `json:"description"`
	Category     *string `json:"category"`
	ImageURL     *string `json:"imageUrl"`
	VideoURL     *string `json:"videoUrl"`
	ThumbnailURL *string `json:"thumbnailUrl"`
	Duration     *string `json:"duration"`
	Location     *string `json:"location"`
	Date         *string `json:"date"`
	Featured     *bool   `json:"featured"`
	Published    *bool   `json:"published"`
}

func (r updateMediaRequest) toInput(url *string) ports.UpdateMediaInput {
	return ports.UpdateMediaInput{
		ID:           r.ID,
		Title:        r.Title,
		Description:  r.Description,
		Category:     r.Category,
		URL:          url,
		ThumbnailURL: r.ThumbnailURL,
		Duration:     r.Duration,
		Location:     r.Location,
		Date:         r.Date,
		Featured:     r.Featured,
		Published:    r.Published,
	}
}
