package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/czarstudio/studio-api/internal/core/domain"
	"github.com/czarstudio/studio-api/internal/core/ports"
)

func mediaFilterFrom(c echo.Context) ports.MediaFilter {
	return ports.MediaFilter{
		Category:  c.QueryParam("category"),
		Featured:  queryBool(c, "featured"),
		Published: queryBool(c, "published"),
	}
}

// PhotoHandler serves the photo portfolio.
type PhotoHandler struct {
	service ports.PhotoService
}

func NewPhotoHandler(service ports.PhotoService) *PhotoHandler {
	return &PhotoHandler{service: service}
}

// List returns photos, most recent first.
//
// @Summary      List photos
// @Tags         photos
// @Produce      json
// @Security     BearerAuth
// @Param        category   query     string  false  "Category; All disables the filter"
// @Param        featured   query     bool    false  "Only featured or non-featured"
// @Param        published  query     bool    false  "Only published or drafts"
// @Success      200        {array}   domain.Photo
// @Failure      401        {object}  map[string]string
// @Router       /photos [get]
func (h *PhotoHandler) List(c echo.Context) error {
	photos, err := h.service.List(c.Request().Context(), mediaFilterFrom(c))
	if err != nil {
		return err
	}
	if photos == nil {
		photos = []*domain.Photo{}
	}
	return c.JSON(http.StatusOK, photos)
}

// Create adds a photo.
//
// @Summary      Create photo
// @Tags         photos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createPhotoRequest  true  "Photo"
// @Success      201   {object}  domain.Photo
// @Failure      400   {object}  map[string]string
// @Router       /photos [post]
func (h *PhotoHandler) Create(c echo.Context) error {
	identity, err := actor(c)
	if err != nil {
		return err
	}

	var req createPhotoRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	photo, err := h.service.Create(c.Request().Context(), identity, ports.CreatePhotoInput{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		ImageURL:    req.ImageURL,
		Location:    req.Location,
		Date:        req.Date,
		Featured:    req.Featured,
		Published:   req.Published,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, photo)
}

// Update applies a partial update to a photo.
//
// @Summary      Update photo
// @Tags         photos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      updateMediaRequest  true  "Fields to change"
// @Success      200   {object}  domain.Photo
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /photos [patch]
func (h *PhotoHandler) Update(c echo.Context) error {
	identity, err := actor(c)
	if err != nil {
		return err
	}

	var req updateMediaRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	photo, err := h.service.Update(c.Request().Context(), identity, req.toInput(req.ImageURL))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, photo)
}

// Delete removes a photo.
//
// @Summary      Delete photo
// @Tags         photos
// @Produce      json
// @Security     BearerAuth
// @Param        id   query     string  true  "Photo id"
// @Success      200  {object}  messageResponse
// @Failure      404  {object}  map[string]string
// @Router       /photos [delete]
func (h *PhotoHandler) Delete(c echo.Context) error {
	identity, err := actor(c)
	if err != nil {
		return err
	}

	id := c.QueryParam("id")
	if id == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "id is required")
	}
	if err := h.service.Delete(c.Request().Context(), identity, id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "photo deleted"})
}

// VideoHandler serves the video portfolio.
type VideoHandler struct {
	service ports.VideoService
}

func NewVideoHandler(service ports.VideoService) *VideoHandler {
	return &VideoHandler{service: service}
}

// List returns videos, most recent first.
//
// @Summary      List videos
// @Tags         videos
// @Produce      json
// @Security     BearerAuth
// @Param        category   query     string  false  "Category; All disables the filter"
// @Param        featured   query     bool    false  "Only featured or non-featured"
// @Param        published  query     bool    false  "Only published or drafts"
// @Success      200        {array}   domain.Video
// @Failure      401        {object}  map[string]string
// @Router       /videos [get]
func (h *VideoHandler) List(c echo.Context) error {
	videos, err := h.service.List(c.Request().Context(), mediaFilterFrom(c))
	if err != nil {
		return err
	}
	if videos == nil {
		videos = []*domain.Video{}
	}
	return c.JSON(http.StatusOK, videos)
}

// Create adds a video.
//
// @Summary      Create video
// @Tags         videos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createVideoRequest  true  "Video"
// @Success      201   {object}  domain.Video
// @Failure      400   {object}  map[string]string
// @Router       /videos [post]
func (h *VideoHandler) Create(c echo.Context) error {
	identity, err := actor(c)
	if err != nil {
		return err
	}

	var req createVideoRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	video, err := h.service.Create(c.Request().Context(), identity, ports.CreateVideoInput{
		Title:        req.Title,
		Description:  req.Description,
		Category:     req.Category,
		VideoURL:     req.VideoURL,
		ThumbnailURL: req.ThumbnailURL,
		Duration:     req.Duration,
		Location:     req.Location,
		Date:         req.Date,
		Featured:     req.Featured,
		Published:    req.Published,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, video)
}

// Update applies a partial update to a video.
//
// @Summary      Update video
// @Tags         videos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      updateMediaRequest  true  "Fields to change"
// @Success      200   {object}  domain.Video
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /videos [patch]
func (h *VideoHandler) Update(c echo.Context) error {
	identity, err := actor(c)
	if err != nil {
		return err
	}

	var req updateMediaRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	video, err := h.service.Update(c.Request().Context(), identity, req.toInput(req.VideoURL))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, video)
}

// Delete removes a video.
//
// @Summary      Delete video
// @Tags         videos
// @Produce      json
// @Security     BearerAuth
// @Param        id   query     string  true  "Video id"
// @Success      200  {object}  messageResponse
// @Failure      404  {object}  map[string]string
// @Router       /videos [delete]
func (h *VideoHandler) Delete(c echo.Context) error {
	identity, err := actor(c)
	if err != nil {
		return err
	}

	id := c.QueryParam("id")
	if id == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "id is required")
	}
	if err := h.service.Delete(c.Request().Context(), identity, id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "video deleted"})
}
