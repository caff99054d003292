package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/czarstudio/studio-api/internal/core/domain"
	"github.com/czarstudio/studio-api/internal/core/ports"
)

func TestPhotoHandler_List_Filters(t *testing.T) {
	var got ports.MediaFilter
	svc := &stubPhotoService{
		listFn: func(ctx context.Context, f ports.MediaFilter) ([]*domain.Photo, error) {
			got = f
			return []*domain.Photo{{ID: "p1"}}, nil
		},
	}
	h := NewPhotoHandler(svc)

	c, rec := newTestContext(http.MethodGet, "/photos?category=Weddings&featured=true", "", adminIdentity)
	if err := h.List(c); err != nil || rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (%v)", rec.Code, err)
	}
	if got.Category != "Weddings" || got.Featured == nil || !*got.Featured || got.Published != nil {
		t.Fatalf("unexpected filter: %+v", got)
	}
}

func TestPhotoHandler_Update_UsesImageURL(t *testing.T) {
	var got ports.UpdateMediaInput
	svc := &stubPhotoService{
		updateFn: func(ctx context.Context, actor domain.Identity, in ports.UpdateMediaInput) (*domain.Photo, error) {
			got = in
			return &domain.Photo{ID: in.ID}, nil
		},
	}
	h := NewPhotoHandler(svc)

	c, _ := newTestContext(http.MethodPatch, "/photos", `{"id":"p1","imageUrl":"https://cdn/x.jpg","videoUrl":"ignored"}`, adminIdentity)
	if err := h.Update(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if got.URL == nil || *got.URL != "https://cdn/x.jpg" {
		t.Fatalf("expected image url forwarded, got %+v", got.URL)
	}
}

func TestPhotoHandler_Create_Validation(t *testing.T) {
	h := NewPhotoHandler(&stubPhotoService{})

	c, _ := newTestContext(http.MethodPost, "/photos", `{"title":"a","category":"c","date":"2025-01-01"}`, adminIdentity)
	if msg := httpError(t, h.Create(c), http.StatusBadRequest); msg != "imageUrl is required" {
		t.Fatalf("unexpected message: %q", msg)
	}

	c, rec := newTestContext(http.MethodPost, "/photos", `{"title":"a","category":"c","imageUrl":"u","date":"2025-01-01"}`, adminIdentity)
	if err := h.Create(c); err != nil || rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d (%v)", rec.Code, err)
	}

	c, _ = newTestContext(http.MethodPost, "/photos", `{"title":"a","category":"c","imageUrl":"u","date":"2025-01-01"}`, nil)
	httpError(t, h.Create(c), http.StatusUnauthorized)
}
