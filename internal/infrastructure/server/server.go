package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	httpHandlers "github.com/casadecultura/backend/internal/adapters/http"
	"github.com/casadecultura/backend/internal/adapters/repository"
	"github.com/casadecultura/backend/internal/application/services"
	"github.com/casadecultura/backend/internal/domain/entities"
	"github.com/casadecultura/backend/internal/infrastructure/config"
	"github.com/casadecultura/backend/internal/infrastructure/datastore"
	"github.com/casadecultura/backend/internal/infrastructure/logger"
	"github.com/casadecultura/backend/internal/ports"
)

// Server represents the HTTP server
type Server struct {
	echo   *echo.Echo
	config *config.Config
	logger *logger.Logger
	store  *datastore.Store
}

// CustomValidator wraps the validator
type CustomValidator struct {
	validator *validator.Validate
}

// Validate validates structs
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

// New creates a new server instance
func New(cfg *config.Config, bootstrap entities.Admin, appLogger *logger.Logger) (*Server, error) {
	e := echo.New()

	// Set custom validator
	e.Validator = &CustomValidator{validator: validator.New()}

	// Configure Echo
	e.HideBanner = true
	e.HidePort = true

	// Custom error handler
	e.HTTPErrorHandler = customErrorHandler(appLogger)

	store := datastore.New(appLogger)

	// Initialize repositories
	eventRepo := repository.NewEventRepository(store, cfg.Storage.EventsFile())
	newsRepo := repository.NewNewsRepository(store, cfg.Storage.NewsFile())
	contactRepo := repository.NewContactRepository(store, cfg.Storage.ContactFile())
	messageRepo := repository.NewMessageRepository(store, cfg.Storage.MessagesFile())
	adminRepo := repository.NewAdminRepository(store, cfg.Storage.AdminsFile(), bootstrap)

	// Initialize services
	authService := services.NewAuthService(adminRepo, cfg.JWT, appLogger)
	eventService := services.NewEventService(eventRepo, appLogger)
	newsService := services.NewNewsService(newsRepo, appLogger)
	contactService := services.NewContactService(contactRepo, messageRepo, appLogger)
	adminService := services.NewAdminService(adminRepo, appLogger)
	backupService := services.NewBackupService(store, cfg.Storage.EventsFile(), cfg.Storage.NewsFile(), cfg.Storage.BackupDir, appLogger)
	uploadService := services.NewUploadService(cfg.Storage.UploadDir, cfg.Security.MaxUploadSize, appLogger)
	statsService := services.NewStatsService(eventRepo, newsRepo, messageRepo, adminRepo, backupService, appLogger)

	// Initialize handlers
	authHandler := httpHandlers.NewAuthHandler(authService, appLogger)
	eventHandler := httpHandlers.NewEventHandler(eventService, appLogger)
	newsHandler := httpHandlers.NewNewsHandler(newsService, appLogger)
	contactHandler := httpHandlers.NewContactHandler(contactService, appLogger)
	adminHandler := httpHandlers.NewAdminHandler(adminService, appLogger)
	backupHandler := httpHandlers.NewBackupHandler(backupService, appLogger)
	uploadHandler := httpHandlers.NewUploadHandler(uploadService, appLogger)
	statsHandler := httpHandlers.NewStatsHandler(statsService, appLogger)

	server := &Server{
		echo:   e,
		config: cfg,
		logger: appLogger,
		store:  store,
	}

	// Setup middleware
	server.setupMiddleware()

	// Setup routes
	server.setupRoutes(routeHandlers{
		auth:    authHandler,
		events:  eventHandler,
		news:    newsHandler,
		contact: contactHandler,
		admins:  adminHandler,
		backups: backupHandler,
		uploads: uploadHandler,
		stats:   statsHandler,
	}, authService)

	// Setup metrics
	if cfg.Metrics.Enabled {
		server.setupMetrics()
	}

	return server, nil
}

type routeHandlers struct {
	auth    *httpHandlers.AuthHandler
	events  *httpHandlers.EventHandler
	news    *httpHandlers.NewsHandler
	contact *httpHandlers.ContactHandler
	admins  *httpHandlers.AdminHandler
	backups *httpHandlers.BackupHandler
	uploads *httpHandlers.UploadHandler
	stats   *httpHandlers.StatsHandler
}

// setupMiddleware configures middleware
func (s *Server) setupMiddleware() {
	// Recovery middleware
	s.echo.Use(middleware.Recover())

	// Logger middleware
	s.echo.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:       true,
		LogStatus:    true,
		LogMethod:    true,
		LogLatency:   true,
		LogError:     true,
		LogRemoteIP:  true,
		LogUserAgent: true,
		LogValuesFunc: func(c echo.Context, values middleware.RequestLoggerValues) error {
			fields := []interface{}{
				"method", values.Method,
				"uri", values.URI,
				"status", values.Status,
				"latency_ms", float64(values.Latency.Nanoseconds()) / 1000000,
				"remote_ip", values.RemoteIP,
				"user_agent", values.UserAgent,
			}

			if values.Error != nil {
				fields = append(fields, "error", values.Error.Error())
				s.logger.Errorw("HTTP request failed", fields...)
			} else {
				s.logger.Infow("HTTP request", fields...)
			}

			return nil
		},
	}))

	// CORS middleware
	s.echo.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: strings.Split(s.config.Security.CORSAllowedOrigins, ","),
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		AllowMethods: []string{echo.GET, echo.HEAD, echo.PUT, echo.PATCH, echo.POST, echo.DELETE},
	}))

	// Rate limiting middleware
	s.echo.Use(middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		Store: middleware.NewRateLimiterMemoryStoreWithConfig(
			middleware.RateLimiterMemoryStoreConfig{
				Rate:      rate.Limit(s.config.Security.RateLimitRequests),
				Burst:     s.config.Security.RateLimitRequests,
				ExpiresIn: s.config.Security.RateLimitWindow,
			},
		),
		IdentifierExtractor: func(ctx echo.Context) (string, error) {
			return ctx.RealIP(), nil
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return c.JSON(http.StatusForbidden, httpHandlers.Envelope{Success: false, Message: "rate limit exceeded"})
		},
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			return c.JSON(http.StatusTooManyRequests, httpHandlers.Envelope{Success: false, Message: "rate limit exceeded"})
		},
	}))

	// Security headers
	s.echo.Use(middleware.SecureWithConfig(middleware.SecureConfig{
		XSSProtection:      "1; mode=block",
		ContentTypeNosniff: "nosniff",
		XFrameOptions:      "DENY",
		HSTSMaxAge:         31536000,
	}))

	// Request ID middleware
	s.echo.Use(middleware.RequestID())

	// Timeout middleware
	s.echo.Use(middleware.TimeoutWithConfig(middleware.TimeoutConfig{
		Timeout: 30 * time.Second,
	}))
}

// setupRoutes configures all routes
func (s *Server) setupRoutes(h routeHandlers, authService *services.AuthService) {
	// Health check routes
	s.echo.GET("/health", s.healthCheck)
	s.echo.GET("/ready", s.readinessCheck)

	// Uploaded images
	s.echo.Static("/uploads", s.config.Storage.UploadDir)

	// API v1 routes
	v1 := s.echo.Group("/api/v1")

	// Auth routes
	authGroup := v1.Group("/auth")
	authGroup.POST("/login", h.auth.Login)
	authGroup.GET("/me", h.auth.Me, s.authMiddleware(authService))

	// Public routes
	v1.GET("/events", h.events.ListEvents)
	v1.GET("/events/:id", h.events.GetEvent)
	v1.GET("/news", h.news.ListNews)
	v1.GET("/news/:id", h.news.GetNews)
	v1.GET("/contact", h.contact.GetContact)
	v1.POST("/contact/messages", h.contact.SubmitMessage)

	// Admin routes (authenticated)
	admin := v1.Group("/admin", s.authMiddleware(authService))

	admin.GET("/events", h.events.ListAllEvents)
	admin.POST("/events", h.events.CreateEvent)
	admin.PUT("/events/:id", h.events.UpdateEvent)
	admin.DELETE("/events/:id", h.events.DeleteEvent)

	admin.GET("/news", h.news.ListAllNews)
	admin.POST("/news", h.news.CreateNews)
	admin.PUT("/news/:id", h.news.UpdateNews)
	admin.DELETE("/news/:id", h.news.DeleteNews)

	admin.PUT("/contact", h.contact.UpdateContact)

	admin.GET("/messages", h.contact.ListMessages)
	admin.GET("/messages/:id", h.contact.GetMessage)
	admin.PUT("/messages/:id", h.contact.UpdateMessage)
	admin.DELETE("/messages/:id", h.contact.DeleteMessage)

	// Account management is super_admin only
	admin.GET("/admins", h.admins.ListAdmins, s.requireSuperAdmin())
	admin.POST("/admins", h.admins.CreateAdmin, s.requireSuperAdmin())
	admin.GET("/admins/:id", h.admins.GetAdmin, s.requireSuperAdmin())
	admin.PUT("/admins/:id", h.admins.UpdateAdmin, s.requireSuperAdmin())
	admin.DELETE("/admins/:id", h.admins.DeleteAdmin, s.requireSuperAdmin())

	admin.GET("/stats", h.stats.Dashboard)
	admin.POST("/upload", h.uploads.Upload)

	admin.GET("/backups", h.backups.ListBackups)
	admin.POST("/backups", h.backups.CreateBackup)
	admin.POST("/backups/restore", h.backups.Restore)
}

// setupMetrics configures Prometheus metrics
func (s *Server) setupMetrics() {
	registry := prometheus.NewRegistry()

	requestsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	requestDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	registry.MustRegister(requestsTotal, requestDuration)

	// Custom metrics middleware
	s.echo.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)

			duration := time.Since(start)
			status := c.Response().Status

			requestsTotal.WithLabelValues(
				c.Request().Method,
				c.Path(),
				fmt.Sprintf("%d", status),
			).Inc()

			requestDuration.WithLabelValues(
				c.Request().Method,
				c.Path(),
			).Observe(duration.Seconds())

			return err
		}
	})

	// Metrics endpoint
	metricsHandler := promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
	s.echo.GET("/metrics", echo.WrapHandler(metricsHandler))
}

// Health check handlers
func (s *Server) healthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) readinessCheck(c echo.Context) error {
	// Ready once the data directory is writable.
	probe := filepath.Join(s.config.Storage.DataDir, ".ready")
	if err := os.MkdirAll(s.config.Storage.DataDir, 0o755); err != nil {
		return c.JSON(http.StatusServiceUnavailable, map[string]string{
			"status": "not_ready",
			"reason": "data_dir_not_writable",
		})
	}
	if err := os.WriteFile(probe, []byte("ok"), 0o644); err != nil {
		return c.JSON(http.StatusServiceUnavailable, map[string]string{
			"status": "not_ready",
			"reason": "data_dir_not_writable",
		})
	}
	_ = os.Remove(probe)

	return c.JSON(http.StatusOK, map[string]string{
		"status": "ready",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

// Start starts the HTTP server
func (s *Server) Start(address string) error {
	s.logger.Infow("Starting server", "address", address)
	return s.echo.Start(address)
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down server")
	return s.echo.Shutdown(ctx)
}

func principalFromContext(c echo.Context) *ports.Claims {
	claims, ok := c.Get("principal").(*ports.Claims)
	if !ok {
		return nil
	}
	return claims
}

// customErrorHandler shapes every error into the response envelope
func customErrorHandler(appLogger *logger.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		var (
			code = http.StatusInternalServerError
			msg  = http.StatusText(http.StatusInternalServerError)
		)

		if he, ok := err.(*echo.HTTPError); ok {
			code = he.Code
			if m, ok := he.Message.(string); ok {
				msg = m
			}
			if he.Internal != nil {
				err = fmt.Errorf("%v, %v", err, he.Internal)
			}
		} else if _, ok := err.(validator.ValidationErrors); ok {
			code = http.StatusBadRequest
			msg = "validation failed"
		}

		if code == http.StatusInternalServerError {
			appLogger.Errorw("Internal server error", "error", err, "path", c.Request().URL.Path)
		}

		if !c.Response().Committed {
			var werr error
			if c.Request().Method == echo.HEAD {
				werr = c.NoContent(code)
			} else {
				werr = c.JSON(code, httpHandlers.Envelope{Success: false, Message: msg})
			}
			if werr != nil {
				appLogger.Errorw("Error sending response", "error", werr)
			}
		}
	}
}
