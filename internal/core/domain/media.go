package domain

import "time"

// Photo is a portfolio image entry.
type Photo struct {
	ID          string    `json:"id" bson:"_id,omitempty"`
	Title       string    `json:"title" bson:"title"`
	Description string    `json:"description,omitempty" bson:"description,omitempty"`
	Category    string    `json:"category" bson:"category"`
	ImageURL    string    `json:"imageUrl" bson:"image_url"`
	Location    string    `json:"location,omitempty" bson:"location,omitempty"`
	Date        time.Time `json:"date" bson:"date"`
	Featured    bool      `json:"featured" bson:"featured"`
	Published   bool      `json:"published" bson:"published"`
	CreatedAt   time.Time `json:"createdAt" bson:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" bson:"updated_at"`
}

// Video is a portfolio film entry.
type Video struct {
	ID           string    `json:"id" bson:"_id,omitempty"`
	Title        string    `json:"title" bson:"title"`
	Description  string    `json:"description,omitempty" bson:"description,omitempty"`
	Category     string    `json:"category" bson:"category"`
	VideoURL     string    `json:"videoUrl" bson:"video_url"`
	ThumbnailURL string    `json:"thumbnailUrl" bson:"thumbnail_url"`
	Duration     string    `json:"duration,omitempty" bson:"duration,omitempty"`
	Location     string    `json:"location,omitempty" bson:"location,omitempty"`
	Date         time.Time `json:"date" bson:"date"`
	Featured     bool      `json:"featured" bson:"featured"`
	Published    bool      `json:"published" bson:"published"`
	CreatedAt    time.Time `json:"createdAt" bson:"created_at"`
	UpdatedAt    time.Time `json:"updatedAt" bson:"updated_at"`
}
