package ports

import (
	"context"
	"time"

	"github.com/casadecultura/backend/internal/domain/entities"
)

// EventRepository defines the interface for event data operations.
// ListPublic returns active events sorted by date descending; ListAll
// returns every event, including soft-deleted ones, sorted by creation
// time descending.
type EventRepository interface {
	ListPublic(ctx context.Context) ([]entities.Event, error)
	ListAll(ctx context.Context) ([]entities.Event, error)
	GetByID(ctx context.Context, id int) (*entities.Event, error)
	Create(ctx context.Context, event *entities.Event) error
	Update(ctx context.Context, id int, upd EventUpdate) (*entities.Event, error)
	SoftDelete(ctx context.Context, id int) error
}

// NewsRepository defines the interface for news data operations.
type NewsRepository interface {
	ListPublic(ctx context.Context) ([]entities.News, error)
	ListAll(ctx context.Context) ([]entities.News, error)
	GetByID(ctx context.Context, id int) (*entities.News, error)
	Create(ctx context.Context, item *entities.News) error
	Update(ctx context.Context, id int, upd NewsUpdate) (*entities.News, error)
	SoftDelete(ctx context.Context, id int) error
}

// ContactRepository manages the singleton contact-info document. Get
// materializes the default document on first access.
type ContactRepository interface {
	Get(ctx context.Context) (*entities.ContactInfo, error)
	Update(ctx context.Context, info *entities.ContactInfo) error
}

// MessageRepository defines the interface for contact-message
// operations. Messages are never soft-deleted; Delete removes the
// record entirely.
type MessageRepository interface {
	ListAll(ctx context.Context) ([]entities.ContactMessage, error)
	GetByID(ctx context.Context, id int) (*entities.ContactMessage, error)
	Create(ctx context.Context, msg *entities.ContactMessage) error
	Update(ctx context.Context, id int, upd MessageUpdate) (*entities.ContactMessage, error)
	Delete(ctx context.Context, id int) (*entities.ContactMessage, error)
}

// AdminRepository defines the interface for administrator accounts.
// Update and Delete enforce the last-active-super-admin invariant and
// email uniqueness.
type AdminRepository interface {
	ListAll(ctx context.Context) ([]entities.Admin, error)
	GetByID(ctx context.Context, id int) (*entities.Admin, error)
	GetByEmail(ctx context.Context, email string) (*entities.Admin, error)
	Create(ctx context.Context, admin *entities.Admin) error
	Update(ctx context.Context, id int, upd AdminUpdate) (*entities.Admin, error)
	Delete(ctx context.Context, id int) (*entities.Admin, error)
	UpdateLastLogin(ctx context.Context, id int, at time.Time) error
}

// EventUpdate carries the whitelisted fields of a partial event update.
// Nil fields are left untouched, never nulled.
type EventUpdate struct {
	Title        *string `json:"title"`
	Description  *string `json:"description"`
	Date         *string `json:"date"`
	Location     *string `json:"location"`
	Participants *string `json:"participants"`
	Category     *string `json:"category"`
	Image        *string `json:"image"`
	Featured     *bool   `json:"featured"`
	Active       *bool   `json:"active"`
}

// NewsUpdate carries the whitelisted fields of a partial news update.
type NewsUpdate struct {
	Title    *string `json:"title"`
	Summary  *string `json:"summary"`
	Content  *string `json:"content"`
	Date     *string `json:"date"`
	Author   *string `json:"author"`
	Category *string `json:"category"`
	Image    *string `json:"image"`
	Link     *string `json:"link"`
	Featured *bool   `json:"featured"`
	Active   *bool   `json:"active"`
}

// MessageUpdate carries the only mutable message fields. Sender and
// body are immutable after submission.
type MessageUpdate struct {
	Read      *bool `json:"read"`
	Responded *bool `json:"responded"`
}

// AdminUpdate carries the whitelisted fields of a partial admin update.
// PasswordHash is already hashed by the service layer.
type AdminUpdate struct {
	Name         *string             `json:"name"`
	Email        *string             `json:"email"`
	PasswordHash *string             `json:"-"`
	Role         *entities.AdminRole `json:"role"`
	Active       *bool               `json:"active"`
}
