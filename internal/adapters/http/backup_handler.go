package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/casadecultura/backend/internal/application/services"
	"github.com/casadecultura/backend/internal/infrastructure/logger"
	"github.com/casadecultura/backend/internal/ports"
)

// BackupHandler handles snapshot creation, listing, and restore
type BackupHandler struct {
	backupService *services.BackupService
	logger        *logger.Logger
}

// NewBackupHandler creates a new backup handler
func NewBackupHandler(backupService *services.BackupService, logger *logger.Logger) *BackupHandler {
	return &BackupHandler{
		backupService: backupService,
		logger:        logger,
	}
}

// CreateBackup snapshots the events and news collections
func (h *BackupHandler) CreateBackup(c echo.Context) error {
	record, err := h.backupService.CreateBackup(c.Request().Context())
	if err != nil {
		h.logger.Error("Create backup failed", "error", err)
		return httpError(err)
	}

	return respond(c, http.StatusCreated, record)
}

// ListBackups lists available snapshots, newest filename first
func (h *BackupHandler) ListBackups(c echo.Context) error {
	records, err := h.backupService.ListBackups(c.Request().Context())
	if err != nil {
		h.logger.Error("List backups failed", "error", err)
		return httpError(err)
	}

	return respondList(c, records, len(records))
}

// Restore replaces the live collections with a named snapshot
func (h *BackupHandler) Restore(c echo.Context) error {
	var req ports.RestoreRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request format")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	claims := principal(c)
	result, err := h.backupService.Restore(c.Request().Context(), req.Filename)
	if err != nil {
		h.logger.Error("Restore failed", "error", err, "filename", req.Filename)
		return httpError(err)
	}

	if claims != nil {
		h.logger.Info("Restore performed", "filename", req.Filename, "admin_id", claims.AdminID)
	}

	return respond(c, http.StatusOK, result)
}

// UploadHandler handles image uploads
type UploadHandler struct {
	uploadService *services.UploadService
	logger        *logger.Logger
}

// NewUploadHandler creates a new upload handler
func NewUploadHandler(uploadService *services.UploadService, logger *logger.Logger) *UploadHandler {
	return &UploadHandler{
		uploadService: uploadService,
		logger:        logger,
	}
}

// Upload stores one multipart image and returns its URLs
func (h *UploadHandler) Upload(c echo.Context) error {
	file, err := c.FormFile("image")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "image file is required")
	}

	result, err := h.uploadService.SaveImage(c.Request().Context(), file)
	if err != nil {
		h.logger.Error("Upload failed", "error", err, "filename", file.Filename)
		return httpError(err)
	}

	return respond(c, http.StatusCreated, result)
}

// StatsHandler serves the admin dashboard counters
type StatsHandler struct {
	statsService *services.StatsService
	logger       *logger.Logger
}

// NewStatsHandler creates a new stats handler
func NewStatsHandler(statsService *services.StatsService, logger *logger.Logger) *StatsHandler {
	return &StatsHandler{
		statsService: statsService,
		logger:       logger,
	}
}

// Dashboard returns collection counters
func (h *StatsHandler) Dashboard(c echo.Context) error {
	stats, err := h.statsService.Dashboard(c.Request().Context())
	if err != nil {
		h.logger.Error("Dashboard stats failed", "error", err)
		return httpError(err)
	}

	return respond(c, http.StatusOK, stats)
}
