package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/casadecultura/backend/internal/application/services"
	"github.com/casadecultura/backend/internal/infrastructure/logger"
	"github.com/casadecultura/backend/internal/ports"
)

// EventHandler handles event-related requests
type EventHandler struct {
	eventService *services.EventService
	logger       *logger.Logger
}

// NewEventHandler creates a new event handler
func NewEventHandler(eventService *services.EventService, logger *logger.Logger) *EventHandler {
	return &EventHandler{
		eventService: eventService,
		logger:       logger,
	}
}

// ListEvents returns the public event listing
func (h *EventHandler) ListEvents(c echo.Context) error {
	events, err := h.eventService.ListPublicEvents(c.Request().Context())
	if err != nil {
		h.logger.Error("List events failed", "error", err)
		return httpError(err)
	}

	return respondList(c, events, len(events))
}

// ListAllEvents returns every event, including deactivated ones
func (h *EventHandler) ListAllEvents(c echo.Context) error {
	events, err := h.eventService.ListAllEvents(c.Request().Context())
	if err != nil {
		h.logger.Error("List all events failed", "error", err)
		return httpError(err)
	}

	return respondList(c, events, len(events))
}

// GetEvent returns one event by id
func (h *EventHandler) GetEvent(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}

	event, err := h.eventService.GetEvent(c.Request().Context(), id)
	if err != nil {
		return httpError(err)
	}

	return respond(c, http.StatusOK, event)
}

// CreateEvent creates a new event
func (h *EventHandler) CreateEvent(c echo.Context) error {
	var req ports.CreateEventRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request format")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	event, err := h.eventService.CreateEvent(c.Request().Context(), req)
	if err != nil {
		h.logger.Error("Create event failed", "error", err)
		return httpError(err)
	}

	return respond(c, http.StatusCreated, event)
}

// UpdateEvent applies a partial update to an event
func (h *EventHandler) UpdateEvent(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}

	var upd ports.EventUpdate
	if err := c.Bind(&upd); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request format")
	}

	event, err := h.eventService.UpdateEvent(c.Request().Context(), id, upd)
	if err != nil {
		return httpError(err)
	}

	return respond(c, http.StatusOK, event)
}

// DeleteEvent deactivates an event
func (h *EventHandler) DeleteEvent(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}

	if err := h.eventService.DeleteEvent(c.Request().Context(), id); err != nil {
		return httpError(err)
	}

	return respondMessage(c, http.StatusOK, "event deactivated")
}
