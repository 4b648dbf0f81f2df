package repository

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/casadecultura/backend/internal/domain/entities"
	"github.com/casadecultura/backend/internal/infrastructure/datastore"
	"github.com/casadecultura/backend/internal/ports"
)

// ContactRepositoryImpl manages the singleton contact-info document.
type ContactRepositoryImpl struct {
	store *datastore.Store
	path  string
}

// NewContactRepository creates a new contact repository.
func NewContactRepository(store *datastore.Store, path string) ports.ContactRepository {
	return &ContactRepositoryImpl{store: store, path: path}
}

// Get returns the contact document. A missing or corrupt file is
// replaced with the fixed default object, which is also persisted.
func (r *ContactRepositoryImpl) Get(ctx context.Context) (*entities.ContactInfo, error) {
	info, _, err := datastore.Load(r.store, r.path, *entities.DefaultContactInfo())
	if err != nil {
		return nil, fmt.Errorf("load contact info: %w", err)
	}
	return &info, nil
}

// Update overwrites the contact document wholesale.
func (r *ContactRepositoryImpl) Update(ctx context.Context, info *entities.ContactInfo) error {
	info.UpdatedAt = time.Now()
	if info.SocialMedia == nil {
		info.SocialMedia = map[string]string{}
	}

	if err := r.store.Save(r.path, info); err != nil {
		return fmt.Errorf("save contact info: %w", err)
	}

	return nil
}

// MessageRepositoryImpl implements the MessageRepository interface over
// a single JSON file.
type MessageRepositoryImpl struct {
	store *datastore.Store
	path  string
}

// NewMessageRepository creates a new message repository.
func NewMessageRepository(store *datastore.Store, path string) ports.MessageRepository {
	return &MessageRepositoryImpl{store: store, path: path}
}

func (r *MessageRepositoryImpl) load() ([]entities.ContactMessage, error) {
	msgs, _, err := datastore.Load(r.store, r.path, []entities.ContactMessage{})
	if err != nil {
		return nil, fmt.Errorf("load messages: %w", err)
	}
	return msgs, nil
}

func (r *MessageRepositoryImpl) ListAll(ctx context.Context) ([]entities.ContactMessage, error) {
	msgs, err := r.load()
	if err != nil {
		return nil, err
	}

	sort.SliceStable(msgs, func(i, j int) bool {
		return msgs[i].CreatedAt.After(msgs[j].CreatedAt)
	})

	return msgs, nil
}

func (r *MessageRepositoryImpl) GetByID(ctx context.Context, id int) (*entities.ContactMessage, error) {
	msgs, err := r.load()
	if err != nil {
		return nil, err
	}

	for i := range msgs {
		if msgs[i].ID == id {
			return &msgs[i], nil
		}
	}

	return nil, entities.ErrMessageNotFound
}

func (r *MessageRepositoryImpl) Create(ctx context.Context, msg *entities.ContactMessage) error {
	msgs, err := r.load()
	if err != nil {
		return err
	}

	maxID := 0
	for _, m := range msgs {
		if m.ID > maxID {
			maxID = m.ID
		}
	}

	now := time.Now()
	msg.ID = maxID + 1
	msg.Read = false
	msg.Responded = false
	msg.CreatedAt = now
	msg.UpdatedAt = now

	msgs = append(msgs, *msg)

	if err := r.store.Save(r.path, msgs); err != nil {
		return fmt.Errorf("save messages: %w", err)
	}

	return nil
}

func (r *MessageRepositoryImpl) Update(ctx context.Context, id int, upd ports.MessageUpdate) (*entities.ContactMessage, error) {
	msgs, err := r.load()
	if err != nil {
		return nil, err
	}

	idx := -1
	for i := range msgs {
		if msgs[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, entities.ErrMessageNotFound
	}

	m := &msgs[idx]
	if upd.Read != nil {
		m.Read = *upd.Read
	}
	if upd.Responded != nil {
		m.Responded = *upd.Responded
	}
	m.UpdatedAt = time.Now()

	if err := r.store.Save(r.path, msgs); err != nil {
		return nil, fmt.Errorf("save messages: %w", err)
	}

	updated := *m
	return &updated, nil
}

func (r *MessageRepositoryImpl) Delete(ctx context.Context, id int) (*entities.ContactMessage, error) {
	msgs, err := r.load()
	if err != nil {
		return nil, err
	}

	idx := -1
	for i := range msgs {
		if msgs[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, entities.ErrMessageNotFound
	}

	removed := msgs[idx]
	msgs = append(msgs[:idx], msgs[idx+1:]...)

	if err := r.store.Save(r.path, msgs); err != nil {
		return nil, fmt.Errorf("save messages: %w", err)
	}

	return &removed, nil
}
