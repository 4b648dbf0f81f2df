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

// NewsRepositoryImpl implements the NewsRepository interface over a
// single JSON file.
type NewsRepositoryImpl struct {
	store *datastore.Store
	path  string
}

// NewNewsRepository creates a new news repository.
func NewNewsRepository(store *datastore.Store, path string) ports.NewsRepository {
	return &NewsRepositoryImpl{store: store, path: path}
}

func (r *NewsRepositoryImpl) load() ([]entities.News, error) {
	items, _, err := datastore.Load(r.store, r.path, []entities.News{})
	if err != nil {
		return nil, fmt.Errorf("load news: %w", err)
	}
	return items, nil
}

func (r *NewsRepositoryImpl) ListPublic(ctx context.Context) ([]entities.News, error) {
	items, err := r.load()
	if err != nil {
		return nil, err
	}

	public := make([]entities.News, 0, len(items))
	for _, n := range items {
		if n.Active {
			public = append(public, n)
		}
	}

	sort.SliceStable(public, func(i, j int) bool {
		return public[i].Date > public[j].Date
	})

	return public, nil
}

func (r *NewsRepositoryImpl) ListAll(ctx context.Context) ([]entities.News, error) {
	items, err := r.load()
	if err != nil {
		return nil, err
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})

	return items, nil
}

func (r *NewsRepositoryImpl) GetByID(ctx context.Context, id int) (*entities.News, error) {
	items, err := r.load()
	if err != nil {
		return nil, err
	}

	for i := range items {
		if items[i].ID == id {
			return &items[i], nil
		}
	}

	return nil, entities.ErrNewsNotFound
}

func (r *NewsRepositoryImpl) Create(ctx context.Context, item *entities.News) error {
	items, err := r.load()
	if err != nil {
		return err
	}

	maxID := 0
	for _, n := range items {
		if n.ID > maxID {
			maxID = n.ID
		}
	}

	now := time.Now()
	item.ID = maxID + 1
	item.FormattedDate = entities.FormatDate(item.Date)
	item.Active = true
	item.CreatedAt = now
	item.UpdatedAt = now
	if item.Image == "" {
		item.Image = entities.PlaceholderImage
	}
	if item.Link == "" {
		item.Link = entities.PlaceholderLink
	}

	items = append(items, *item)

	if err := r.store.Save(r.path, items); err != nil {
		return fmt.Errorf("save news: %w", err)
	}

	return nil
}

func (r *NewsRepositoryImpl) Update(ctx context.Context, id int, upd ports.NewsUpdate) (*entities.News, error) {
	items, err := r.load()
	if err != nil {
		return nil, err
	}

	idx := -1
	for i := range items {
		if items[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, entities.ErrNewsNotFound
	}

	n := &items[idx]
	if upd.Title != nil {
		n.Title = *upd.Title
	}
	if upd.Summary != nil {
		n.Summary = *upd.Summary
	}
	if upd.Content != nil {
		n.Content = *upd.Content
	}
	if upd.Date != nil {
		n.Date = *upd.Date
		n.FormattedDate = entities.FormatDate(n.Date)
	}
	if upd.Author != nil {
		n.Author = *upd.Author
	}
	if upd.Category != nil {
		n.Category = *upd.Category
	}
	if upd.Image != nil {
		n.Image = *upd.Image
	}
	if upd.Link != nil {
		n.Link = *upd.Link
	}
	if upd.Featured != nil {
		n.Featured = *upd.Featured
	}
	if upd.Active != nil {
		n.Active = *upd.Active
	}
	n.UpdatedAt = time.Now()

	if err := r.store.Save(r.path, items); err != nil {
		return nil, fmt.Errorf("save news: %w", err)
	}

	updated := *n
	return &updated, nil
}

func (r *NewsRepositoryImpl) SoftDelete(ctx context.Context, id int) error {
	items, err := r.load()
	if err != nil {
		return err
	}

	idx := -1
	for i := range items {
		if items[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return entities.ErrNewsNotFound
	}

	items[idx].Active = false
	items[idx].UpdatedAt = time.Now()

	if err := r.store.Save(r.path, items); err != nil {
		return fmt.Errorf("save news: %w", err)
	}

	return nil
}
