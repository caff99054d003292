package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/czarstudio/studio-api/internal/core/domain"
	"github.com/czarstudio/studio-api/internal/core/ports"
)

// BookingHandler serves the public booking form and its admin views.
type BookingHandler struct {
	service ports.BookingService
}

func NewBookingHandler(service ports.BookingService) *BookingHandler {
	return &BookingHandler{service: service}
}

// List returns bookings, newest first.
//
// @Summary      List bookings
// @Tags         bookings
// @Produce      json
// @Security     BearerAuth
// @Param        status  query     string  false  "Filter by status (pending, confirmed, cancelled)"
// @Success      200     {array}   domain.Booking
// @Failure      400     {object}  map[string]string
// @Failure      401     {object}  map[string]string
// @Router       /bookings [get]
func (h *BookingHandler) List(c echo.Context) error {
	bookings, err := h.service.List(c.Request().Context(), c.QueryParam("status"))
	if err != nil {
		return err
	}
	if bookings == nil {
		bookings = []*domain.Booking{}
	}
	return c.JSON(http.StatusOK, bookings)
}

// Create stores a booking request from the public site. A repeated
// Idempotency-Key returns the original booking with 200.
//
// @Summary      Submit a booking request
// @Tags         bookings
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key  header    string                false  "Idempotency key to prevent duplicate submissions"
// @Param        body             body      createBookingRequest  true   "Booking details"
// @Success      201              {object}  domain.Booking
// @Success      200              {object}  domain.Booking
// @Failure      400              {object}  map[string]string
// @Failure      409              {object}  map[string]string
// @Router       /bookings [post]
func (h *BookingHandler) Create(c echo.Context) error {
	var req createBookingRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	res, err := h.service.Create(c.Request().Context(), ports.CreateBookingInput{
		Name:           req.Name,
		Email:          req.Email,
		Phone:          req.Phone,
		EventType:      req.EventType,
		EventDate:      req.EventDate,
		EventTime:      req.EventTime,
		Location:       req.Location,
		Message:        req.Message,
		IdempotencyKey: c.Request().Header.Get(headerIdempotencyKey),
	})
	if err != nil {
		return err
	}

	if res.Replayed {
		return c.JSON(http.StatusOK, res.Record)
	}
	return c.JSON(http.StatusCreated, res.Record)
}

// Update sets the status of a booking.
//
// @Summary      Update booking status
// @Tags         bookings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      updateBookingRequest  true  "Booking id and new status"
// @Success      200   {object}  domain.Booking
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /bookings [patch]
func (h *BookingHandler) Update(c echo.Context) error {
	identity, err := actor(c)
	if err != nil {
		return err
	}

	var req updateBookingRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	booking, err := h.service.SetStatus(c.Request().Context(), identity, req.ID, req.Status)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, booking)
}

// Delete removes a booking.
//
// @Summary      Delete booking
// @Tags         bookings
// @Produce      json
// @Security     BearerAuth
// @Param        id   query     string  true  "Booking id"
// @Success      200  {object}  messageResponse
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /bookings [delete]
func (h *BookingHandler) Delete(c echo.Context) error {
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
	return c.JSON(http.StatusOK, messageResponse{Message: "booking deleted"})
}
