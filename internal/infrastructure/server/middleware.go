package server

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/casadecultura/backend/internal/application/services"
	"github.com/casadecultura/backend/internal/domain/entities"
)

// authMiddleware validates bearer tokens. A request without an
// Authorization header is unauthenticated (401); a present but
// malformed, expired, or badly signed token is forbidden (403).
func (s *Server) authMiddleware(authService *services.AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			tokenString := strings.TrimPrefix(authHeader, "Bearer ")
			if tokenString == authHeader {
				return echo.NewHTTPError(http.StatusForbidden, "invalid authorization header format")
			}

			claims, err := authService.ValidateToken(tokenString)
			if err != nil {
				s.logger.LogSecurityEvent("invalid_token", "", c.RealIP(), map[string]interface{}{
					"error": err.Error(),
				})
				return echo.NewHTTPError(http.StatusForbidden, "invalid token")
			}

			if !claims.IsAdministrator() {
				return echo.NewHTTPError(http.StatusForbidden, "insufficient permissions")
			}

			c.Set("principal", claims)

			return next(c)
		}
	}
}

// requireSuperAdmin restricts a route to super_admin principals.
func (s *Server) requireSuperAdmin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims := principalFromContext(c)
			if claims == nil {
				return echo.NewHTTPError(http.StatusForbidden, "role information not found")
			}

			if claims.Role != entities.RoleSuperAdmin {
				s.logger.LogSecurityEvent("insufficient_permissions",
					claims.Email,
					c.RealIP(),
					map[string]interface{}{
						"required_role": entities.RoleSuperAdmin,
						"role":          claims.Role,
						"endpoint":      c.Request().URL.Path,
					})
				return echo.NewHTTPError(http.StatusForbidden, "insufficient permissions")
			}

			return next(c)
		}
	}
}
