package ports

import (
	"github.com/casadecultura/backend/internal/domain/entities"
)

// Claims is the principal derived from a verified token.
type Claims struct {
	AdminID int                `json:"admin_id"`
	Email   string             `json:"email"`
	Name    string             `json:"name"`
	Role    entities.AdminRole `json:"role"`
}

// IsAdministrator reports whether the principal satisfies the
// administrator capability.
func (c *Claims) IsAdministrator() bool {
	return c.Role == entities.RoleAdmin || c.Role == entities.RoleSuperAdmin
}

// LoginRequest is the credentials payload for the login endpoint.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse is returned on successful login.
type AuthResponse struct {
	Token     string          `json:"token"`
	TokenType string          `json:"tokenType"`
	ExpiresIn int64           `json:"expiresIn"`
	Admin     *entities.Admin `json:"admin"`
}

// CreateEventRequest is the payload for creating an event.
type CreateEventRequest struct {
	Title        string `json:"title" validate:"required"`
	Description  string `json:"description" validate:"required"`
	Date         string `json:"date" validate:"required"`
	Location     string `json:"location" validate:"required"`
	Participants string `json:"participants"`
	Category     string `json:"category"`
	Image        string `json:"image"`
	Featured     bool   `json:"featured"`
}

// CreateNewsRequest is the payload for creating a news item.
type CreateNewsRequest struct {
	Title    string `json:"title" validate:"required"`
	Summary  string `json:"summary" validate:"required"`
	Content  string `json:"content" validate:"required"`
	Date     string `json:"date" validate:"required"`
	Author   string `json:"author" validate:"required"`
	Category string `json:"category"`
	Image    string `json:"image"`
	Link     string `json:"link"`
	Featured bool   `json:"featured"`
}

// UpdateContactRequest overwrites the contact document wholesale.
type UpdateContactRequest struct {
	Email       string            `json:"email" validate:"required,email"`
	Phone       string            `json:"phone" validate:"required"`
	Address     string            `json:"address" validate:"required"`
	Hours       string            `json:"hours"`
	SocialMedia map[string]string `json:"socialMedia"`
}

// CreateMessageRequest is the public contact-form payload.
type CreateMessageRequest struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Message string `json:"message" validate:"required"`
}

// CreateAdminRequest is the payload for creating an administrator.
type CreateAdminRequest struct {
	Name     string             `json:"name" validate:"required"`
	Email    string             `json:"email" validate:"required,email"`
	Password string             `json:"password" validate:"required,min=8"`
	Role     entities.AdminRole `json:"role" validate:"omitempty,oneof=admin super_admin"`
}

// UpdateAdminRequest is the payload for a partial admin update. The
// plaintext password, when present, is hashed by the service before it
// reaches the repository.
type UpdateAdminRequest struct {
	Name     *string             `json:"name"`
	Email    *string             `json:"email" validate:"omitempty,email"`
	Password *string             `json:"password" validate:"omitempty,min=8"`
	Role     *entities.AdminRole `json:"role" validate:"omitempty,oneof=admin super_admin"`
	Active   *bool               `json:"active"`
}

// RestoreRequest names the backup file to restore.
type RestoreRequest struct {
	Filename string `json:"filename" validate:"required"`
}

// DashboardStats aggregates collection counts for the admin dashboard.
type DashboardStats struct {
	Events   EntityStats  `json:"events"`
	News     EntityStats  `json:"news"`
	Messages MessageStats `json:"messages"`
	Admins   EntityStats  `json:"admins"`
	Backups  int          `json:"backups"`
}

// EntityStats is a total/active pair for one collection.
type EntityStats struct {
	Total  int `json:"total"`
	Active int `json:"active"`
}

// MessageStats summarizes the contact inbox.
type MessageStats struct {
	Total  int `json:"total"`
	Unread int `json:"unread"`
}

// UploadResult describes a stored image and its thumbnail.
type UploadResult struct {
	URL          string `json:"url"`
	ThumbnailURL string `json:"thumbnailUrl"`
	Width        int    `json:"width"`
	Height       int    `json:"height"`
	Size         int64  `json:"size"`
}

// RestoreResult reports the outcome of a restore, including the safety
// snapshot written before live data was replaced.
type RestoreResult struct {
	Restored       string `json:"restored"`
	SafetySnapshot string `json:"safetySnapshot"`
	Events         int    `json:"events"`
	News           int    `json:"news"`
}
