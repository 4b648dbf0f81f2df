package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/casadecultura/backend/internal/application/services"
	"github.com/casadecultura/backend/internal/domain/entities"
	"github.com/casadecultura/backend/internal/infrastructure/logger"
	"github.com/casadecultura/backend/internal/ports"
)

// Envelope is the response shape shared by every endpoint.
type Envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
	Total   *int   `json:"total,omitempty"`
}

func respond(c echo.Context, status int, data any) error {
	return c.JSON(status, Envelope{Success: true, Data: data})
}

func respondList(c echo.Context, data any, total int) error {
	return c.JSON(http.StatusOK, Envelope{Success: true, Data: data, Total: &total})
}

func respondMessage(c echo.Context, status int, message string) error {
	return c.JSON(status, Envelope{Success: true, Message: message})
}

// httpError maps domain errors onto HTTP status codes. Anything not
// recognized is a storage or internal failure.
func httpError(err error) *echo.HTTPError {
	switch {
	case errors.Is(err, entities.ErrEventNotFound),
		errors.Is(err, entities.ErrNewsNotFound),
		errors.Is(err, entities.ErrMessageNotFound),
		errors.Is(err, entities.ErrAdminNotFound),
		errors.Is(err, entities.ErrBackupNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, entities.ErrEmailTaken),
		errors.Is(err, entities.ErrLastSuperAdmin),
		errors.Is(err, entities.ErrInvalidBackup),
		errors.Is(err, entities.ErrPasswordTooShort),
		errors.Is(err, services.ErrInvalidEmail),
		errors.Is(err, services.ErrUnsupportedImage),
		errors.Is(err, services.ErrImageTooLarge):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, entities.ErrInvalidCredentials),
		errors.Is(err, entities.ErrAccountInactive):
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid credentials")
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error").SetInternal(err)
	}
}

func idParam(c echo.Context) (int, error) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id < 1 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	return id, nil
}

func principal(c echo.Context) *ports.Claims {
	if claims, ok := c.Get("principal").(*ports.Claims); ok {
		return claims
	}
	return nil
}

// AuthHandler handles authentication-related requests
type AuthHandler struct {
	authService *services.AuthService
	logger      *logger.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *services.AuthService, logger *logger.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		logger:      logger,
	}
}

// Login handles administrator login
func (h *AuthHandler) Login(c echo.Context) error {
	var req ports.LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request format")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	response, err := h.authService.Login(c.Request().Context(), req)
	if err != nil {
		h.logger.Warn("Login failed", "email", req.Email, "ip", c.RealIP())
		return httpError(err)
	}

	return respond(c, http.StatusOK, response)
}

// Me returns the principal derived from the presented token
func (h *AuthHandler) Me(c echo.Context) error {
	claims := principal(c)
	if claims == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "missing token")
	}

	return respond(c, http.StatusOK, claims)
}
