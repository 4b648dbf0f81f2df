package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/casadecultura/backend/internal/application/services"
	"github.com/casadecultura/backend/internal/infrastructure/logger"
	"github.com/casadecultura/backend/internal/ports"
)

// ContactHandler handles the contact document and the message inbox
type ContactHandler struct {
	contactService *services.ContactService
	logger         *logger.Logger
}

// NewContactHandler creates a new contact handler
func NewContactHandler(contactService *services.ContactService, logger *logger.Logger) *ContactHandler {
	return &ContactHandler{
		contactService: contactService,
		logger:         logger,
	}
}

// GetContact returns the public contact document
func (h *ContactHandler) GetContact(c echo.Context) error {
	info, err := h.contactService.GetContact(c.Request().Context())
	if err != nil {
		h.logger.Error("Get contact failed", "error", err)
		return httpError(err)
	}

	return respond(c, http.StatusOK, info)
}

// UpdateContact overwrites the contact document
func (h *ContactHandler) UpdateContact(c echo.Context) error {
	var req ports.UpdateContactRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request format")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	info, err := h.contactService.UpdateContact(c.Request().Context(), req)
	if err != nil {
		h.logger.Error("Update contact failed", "error", err)
		return httpError(err)
	}

	return respond(c, http.StatusOK, info)
}

// SubmitMessage accepts a message from the public contact form
func (h *ContactHandler) SubmitMessage(c echo.Context) error {
	var req ports.CreateMessageRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request format")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	msg, err := h.contactService.SubmitMessage(c.Request().Context(), req)
	if err != nil {
		h.logger.Error("Submit message failed", "error", err)
		return httpError(err)
	}

	return respond(c, http.StatusCreated, msg)
}

// ListMessages returns the message inbox, newest first
func (h *ContactHandler) ListMessages(c echo.Context) error {
	msgs, err := h.contactService.ListMessages(c.Request().Context())
	if err != nil {
		h.logger.Error("List messages failed", "error", err)
		return httpError(err)
	}

	return respondList(c, msgs, len(msgs))
}

// GetMessage returns one inbox message by id
func (h *ContactHandler) GetMessage(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}

	msg, err := h.contactService.GetMessage(c.Request().Context(), id)
	if err != nil {
		return httpError(err)
	}

	return respond(c, http.StatusOK, msg)
}

// UpdateMessage flips the read/responded flags on a message
func (h *ContactHandler) UpdateMessage(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}

	var upd ports.MessageUpdate
	if err := c.Bind(&upd); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request format")
	}

	msg, err := h.contactService.UpdateMessage(c.Request().Context(), id, upd)
	if err != nil {
		return httpError(err)
	}

	return respond(c, http.StatusOK, msg)
}

// DeleteMessage removes a message permanently
func (h *ContactHandler) DeleteMessage(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}

	if err := h.contactService.DeleteMessage(c.Request().Context(), id); err != nil {
		return httpError(err)
	}

	return respondMessage(c, http.StatusOK, "message deleted")
}
