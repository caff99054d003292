package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/czarstudio/studio-api/internal/core/domain"
	"github.com/czarstudio/studio-api/internal/core/ports"
)

// ContactHandler serves the public contact form and the admin inbox.
type ContactHandler struct {
	service ports.ContactService
}

func NewContactHandler(service ports.ContactService) *ContactHandler {
	return &ContactHandler{service: service}
}

// List returns contact messages, newest first.
//
// @Summary      List contact messages
// @Tags         contacts
// @Produce      json
// @Security     BearerAuth
// @Param        status  query     string  false  "Filter by status (new, read, replied)"
// @Success      200     {array}   domain.Contact
// @Failure      400     {object}  map[string]string
// @Failure      401     {object}  map[string]string
// @Router       /contacts [get]
func (h *ContactHandler) List(c echo.Context) error {
	contacts, err := h.service.List(c.Request().Context(), c.QueryParam("status"))
	if err != nil {
		return err
	}
	if contacts == nil {
		contacts = []*domain.Contact{}
	}
	return c.JSON(http.StatusOK, contacts)
}

// Create stores a message from the public contact form.
//
// @Summary      Send a contact message
// @Tags         contacts
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key  header    string                false  "Idempotency key to prevent duplicate submissions"
// @Param        body             body      createContactRequest  true   "Message"
// @Success      201              {object}  domain.Contact
// @Success      200              {object}  domain.Contact
// @Failure      400              {object}  map[string]string
// @Failure      409              {object}  map[string]string
// @Router       /contacts [post]
func (h *ContactHandler) Create(c echo.Context) error {
	var req createContactRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	res, err := h.service.Create(c.Request().Context(), ports.CreateContactInput{
		Name:           req.Name,
		Email:          req.Email,
		Phone:          req.Phone,
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

// Update sets the status of a contact message.
//
// @Summary      Update message status
// @Tags         contacts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      updateContactRequest  true  "Message id and new status"
// @Success      200   {object}  domain.Contact
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /contacts [patch]
func (h *ContactHandler) Update(c echo.Context) error {
	identity, err := actor(c)
	if err != nil {
		return err
	}

	var req updateContactRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	contact, err := h.service.SetStatus(c.Request().Context(), identity, req.ID, req.Status)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, contact)
}

// Delete removes a contact message.
//
// @Summary      Delete contact message
// @Tags         contacts
// @Produce      json
// @Security     BearerAuth
// @Param        id   query     string  true  "Message id"
// @Success      200  {object}  messageResponse
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /contacts [delete]
func (h *ContactHandler) Delete(c echo.Context) error {
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
	return c.JSON(http.StatusOK, messageResponse{Message: "message deleted"})
}
