package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/casadecultura/backend/internal/application/services"
	"github.com/casadecultura/backend/internal/infrastructure/logger"
	"github.com/casadecultura/backend/internal/ports"
)

// AdminHandler handles administrator account management
type AdminHandler struct {
	adminService *services.AdminService
	logger       *logger.Logger
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(adminService *services.AdminService, logger *logger.Logger) *AdminHandler {
	return &AdminHandler{
		adminService: adminService,
		logger:       logger,
	}
}

// ListAdmins returns every administrator account
func (h *AdminHandler) ListAdmins(c echo.Context) error {
	admins, err := h.adminService.ListAdmins(c.Request().Context())
	if err != nil {
		h.logger.Error("List admins failed", "error", err)
		return httpError(err)
	}

	return respondList(c, admins, len(admins))
}

// GetAdmin returns one administrator by id
func (h *AdminHandler) GetAdmin(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}

	admin, err := h.adminService.GetAdmin(c.Request().Context(), id)
	if err != nil {
		return httpError(err)
	}

	return respond(c, http.StatusOK, admin)
}

// CreateAdmin creates a new administrator account
func (h *AdminHandler) CreateAdmin(c echo.Context) error {
	var req ports.CreateAdminRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request format")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	admin, err := h.adminService.CreateAdmin(c.Request().Context(), req)
	if err != nil {
		h.logger.Error("Create admin failed", "error", err)
		return httpError(err)
	}

	return respond(c, http.StatusCreated, admin)
}

// UpdateAdmin applies a partial update to an administrator account
func (h *AdminHandler) UpdateAdmin(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}

	var req ports.UpdateAdminRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request format")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	admin, err := h.adminService.UpdateAdmin(c.Request().Context(), id, req)
	if err != nil {
		h.logger.Error("Update admin failed", "error", err, "admin_id", id)
		return httpError(err)
	}

	return respond(c, http.StatusOK, admin)
}

// DeleteAdmin removes an administrator account
func (h *AdminHandler) DeleteAdmin(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}

	if err := h.adminService.DeleteAdmin(c.Request().Context(), id); err != nil {
		h.logger.Error("Delete admin failed", "error", err, "admin_id", id)
		return httpError(err)
	}

	return respondMessage(c, http.StatusOK, "admin deleted")
}
