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

// EventRepositoryImpl implements the EventRepository interface over a
// single JSON file.
type EventRepositoryImpl struct {
	store *datastore.Store
	path  string
}

// NewEventRepository creates a new event repository.
func NewEventRepository(store *datastore.Store, path string) ports.EventRepository {
	return &EventRepositoryImpl{store: store, path: path}
}

func (r *EventRepositoryImpl) load() ([]entities.Event, error) {
	events, _, err := datastore.Load(r.store, r.path, []entities.Event{})
	if err != nil {
		return nil, fmt.Errorf("load events: %w", err)
	}
	return events, nil
}

func (r *EventRepositoryImpl) ListPublic(ctx context.Context) ([]entities.Event, error) {
	events, err := r.load()
	if err != nil {
		return nil, err
	}

	public := make([]entities.Event, 0, len(events))
	for _, e := range events {
		if e.Active {
			public = append(public, e)
		}
	}

	// Date is YYYY-MM-DD, so a string comparison orders chronologically.
	sort.SliceStable(public, func(i, j int) bool {
		return public[i].Date > public[j].Date
	})

	return public, nil
}

func (r *EventRepositoryImpl) ListAll(ctx context.Context) ([]entities.Event, error) {
	events, err := r.load()
	if err != nil {
		return nil, err
	}

	sort.SliceStable(events, func(i, j int) bool {
		return events[i].CreatedAt.After(events[j].CreatedAt)
	})

	return events, nil
}

func (r *EventRepositoryImpl) GetByID(ctx context.Context, id int) (*entities.Event, error) {
	events, err := r.load()
	if err != nil {
		return nil, err
	}

	for i := range events {
		if events[i].ID == id {
			return &events[i], nil
		}
	}

	return nil, entities.ErrEventNotFound
}

func (r *EventRepositoryImpl) Create(ctx context.Context, event *entities.Event) error {
	events, err := r.load()
	if err != nil {
		return err
	}

	maxID := 0
	for _, e := range events {
		if e.ID > maxID {
			maxID = e.ID
		}
	}

	now := time.Now()
	event.ID = maxID + 1
	event.FormattedDate = entities.FormatDate(event.Date)
	event.Active = true
	event.CreatedAt = now
	event.UpdatedAt = now
	if event.Image == "" {
		event.Image = entities.PlaceholderImage
	}
	if event.Participants == "" {
		event.Participants = "0"
	}

	events = append(events, *event)

	if err := r.store.Save(r.path, events); err != nil {
		return fmt.Errorf("save events: %w", err)
	}

	return nil
}

func (r *EventRepositoryImpl) Update(ctx context.Context, id int, upd ports.EventUpdate) (*entities.Event, error) {
	events, err := r.load()
	if err != nil {
		return nil, err
	}

	idx := -1
	for i := range events {
		if events[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, entities.ErrEventNotFound
	}

	e := &events[idx]
	if upd.Title != nil {
		e.Title = *upd.Title
	}
	if upd.Description != nil {
		e.Description = *upd.Description
	}
	if upd.Date != nil {
		e.Date = *upd.Date
		e.FormattedDate = entities.FormatDate(e.Date)
	}
	if upd.Location != nil {
		e.Location = *upd.Location
	}
	if upd.Participants != nil {
		e.Participants = *upd.Participants
	}
	if upd.Category != nil {
		e.Category = *upd.Category
	}
	if upd.Image != nil {
		e.Image = *upd.Image
	}
	if upd.Featured != nil {
		e.Featured = *upd.Featured
	}
	if upd.Active != nil {
		e.Active = *upd.Active
	}
	e.UpdatedAt = time.Now()

	if err := r.store.Save(r.path, events); err != nil {
		return nil, fmt.Errorf("save events: %w", err)
	}

	updated := *e
	return &updated, nil
}

func (r *EventRepositoryImpl) SoftDelete(ctx context.Context, id int) error {
	events, err := r.load()
	if err != nil {
		return err
	}

	idx := -1
	for i := range events {
		if events[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return entities.ErrEventNotFound
	}

	events[idx].Active = false
	events[idx].UpdatedAt = time.Now()

	if err := r.store.Save(r.path, events); err != nil {
		return fmt.Errorf("save events: %w", err)
	}

	return nil
}
