package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/casadecultura/backend/internal/application/services"
	"github.com/casadecultura/backend/internal/infrastructure/logger"
	"github.com/casadecultura/backend/internal/ports"
)

// NewsHandler handles news-related requests
type NewsHandler struct {
	newsService *services.NewsService
	logger      *logger.Logger
}

// NewNewsHandler creates a new news handler
func NewNewsHandler(newsService *services.NewsService, logger *logger.Logger) *NewsHandler {
	return &NewsHandler{
		newsService: newsService,
		logger:      logger,
	}
}

// ListNews returns the public news listing
func (h *NewsHandler) ListNews(c echo.Context) error {
	items, err := h.newsService.ListPublicNews(c.Request().Context())
	if err != nil {
		h.logger.Error("List news failed", "error", err)
		return httpError(err)
	}

	return respondList(c, items, len(items))
}

// ListAllNews returns every news item, including deactivated ones
func (h *NewsHandler) ListAllNews(c echo.Context) error {
	items, err := h.newsService.ListAllNews(c.Request().Context())
	if err != nil {
		h.logger.Error("List all news failed", "error", err)
		return httpError(err)
	}

	return respondList(c, items, len(items))
}

// GetNews returns one news item by id
func (h *NewsHandler) GetNews(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}

	item, err := h.newsService.GetNews(c.Request().Context(), id)
	if err != nil {
		return httpError(err)
	}

	return respond(c, http.StatusOK, item)
}

// CreateNews creates a new news item
func (h *NewsHandler) CreateNews(c echo.Context) error {
	var req ports.CreateNewsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request format")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	item, err := h.newsService.CreateNews(c.Request().Context(), req)
	if err != nil {
		h.logger.Error("Create news failed", "error", err)
		return httpError(err)
	}

	return respond(c, http.StatusCreated, item)
}

// UpdateNews applies a partial update to a news item
func (h *NewsHandler) UpdateNews(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}

	var upd ports.NewsUpdate
	if err := c.Bind(&upd); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request format")
	}

	item, err := h.newsService.UpdateNews(c.Request().Context(), id, upd)
	if err != nil {
		return httpError(err)
	}

	return respond(c, http.StatusOK, item)
}

// DeleteNews deactivates a news item
func (h *NewsHandler) DeleteNews(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}

	if err := h.newsService.DeleteNews(c.Request().Context(), id); err != nil {
		return httpError(err)
	}

	return respondMessage(c, http.StatusOK, "news item deactivated")
}
