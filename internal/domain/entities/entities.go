package entities

import (
	"errors"
	"fmt"
	"time"
)

// Common errors
var (
	ErrEventNotFound      = errors.New("event not found")
	ErrNewsNotFound       = errors.New("news item not found")
	ErrMessageNotFound    = errors.New("message not found")
	ErrAdminNotFound      = errors.New("admin not found")
	ErrBackupNotFound     = errors.New("backup not found")
	ErrEmailTaken         = errors.New("email already in use")
	ErrLastSuperAdmin     = errors.New("cannot remove the last active super admin")
	ErrInvalidBackup      = errors.New("backup file is missing events or news data")
	ErrPasswordTooShort   = errors.New("password must be at least 8 characters")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountInactive    = errors.New("account is inactive")
)

// AdminRole distinguishes regular administrators from super admins.
type AdminRole string

const (
	RoleAdmin      AdminRole = "admin"
	RoleSuperAdmin AdminRole = "super_admin"
)

// IsValid reports whether the role is one of the known values.
func (r AdminRole) IsValid() bool {
	return r == RoleAdmin || r == RoleSuperAdmin
}

// Placeholder values filled in when optional fields are omitted.
const (
	PlaceholderImage = "/images/placeholder.jpg"
	PlaceholderLink  = "#"
)

// Event represents a cultural event published on the site.
type Event struct {
	ID            int       `json:"id"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	Date          string    `json:"date"`
	FormattedDate string    `json:"formattedDate"`
	Location      string    `json:"location"`
	Participants  string    `json:"participants"`
	Category      string    `json:"category"`
	Image         string    `json:"image"`
	Featured      bool      `json:"featured"`
	Active        bool      `json:"active"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// News represents a news article.
type News struct {
	ID            int       `json:"id"`
	Title         string    `json:"title"`
	Summary       string    `json:"summary"`
	Content       string    `json:"content"`
	Date          string    `json:"date"`
	FormattedDate string    `json:"formattedDate"`
	Author        string    `json:"author"`
	Category      string    `json:"category"`
	Image         string    `json:"image"`
	Link          string    `json:"link"`
	Featured      bool      `json:"featured"`
	Active        bool      `json:"active"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// ContactInfo is the singleton contact document shown on the site.
type ContactInfo struct {
	Email       string            `json:"email"`
	Phone       string            `json:"phone"`
	Address     string            `json:"address"`
	Hours       string            `json:"hours"`
	SocialMedia map[string]string `json:"socialMedia"`
	UpdatedAt   time.Time         `json:"updatedAt"`
}

// DefaultContactInfo returns the placeholder contact document used when
// the contacts file is absent or unreadable.
func DefaultContactInfo() *ContactInfo {
	return &ContactInfo{
		Email:   "contato@casadecultura.org",
		Phone:   "(00) 0000-0000",
		Address: "Rua da Cultura, 100 - Centro",
		Hours:   "Ter-Dom: 9h as 18h",
		SocialMedia: map[string]string{
			"facebook":  "#",
			"instagram": "#",
			"youtube":   "#",
		},
		UpdatedAt: time.Now(),
	}
}

// ContactMessage is a message submitted through the public contact form.
type ContactMessage struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Message   string    `json:"message"`
	Read      bool      `json:"read"`
	Responded bool      `json:"responded"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Admin represents an administrator account. The password hash is
// persisted in the admins file, so it carries a JSON tag; services must
// strip it before an account leaves the application layer.
type Admin struct {
	ID           int        `json:"id"`
	Name         string     `json:"name"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"passwordHash,omitempty"`
	Role         AdminRole  `json:"role"`
	Active       bool       `json:"active"`
	LastLogin    *time.Time `json:"lastLogin"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

// IsSuperAdmin reports whether the account carries the super_admin role.
func (a *Admin) IsSuperAdmin() bool {
	return a.Role == RoleSuperAdmin
}

// Backup is the document written for each snapshot of the events and
// news collections.
type Backup struct {
	Timestamp time.Time `json:"timestamp"`
	Events    []Event   `json:"events"`
	News      []News    `json:"news"`
}

// BackupRecord is the listing view derived from a backup filename.
type BackupRecord struct {
	Filename      string `json:"filename"`
	Timestamp     string `json:"timestamp"`
	FormattedDate string `json:"formattedDate"`
	Size          int64  `json:"size"`
}

// DateLayout is the calendar-date format accepted for event and news
// dates.
const DateLayout = "2006-01-02"

var monthNames = [...]string{
	"janeiro", "fevereiro", "março", "abril", "maio", "junho",
	"julho", "agosto", "setembro", "outubro", "novembro", "dezembro",
}

// FormatDate renders a YYYY-MM-DD date in the site's long form, e.g.
// "15 de março de 2025". Dates that do not parse are returned as-is so
// a bad stored value never breaks a listing.
func FormatDate(date string) string {
	t, err := time.Parse(DateLayout, date)
	if err != nil {
		return date
	}
	return fmt.Sprintf("%d de %s de %d", t.Day(), monthNames[t.Month()-1], t.Year())
}
