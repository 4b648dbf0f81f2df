package repository

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/casadecultura/backend/internal/domain/entities"
	"github.com/casadecultura/backend/internal/infrastructure/datastore"
	"github.com/casadecultura/backend/internal/infrastructure/logger"
	"github.com/casadecultura/backend/internal/ports"
)

func newNewsRepo(t *testing.T) ports.NewsRepository {
	t.Helper()
	store := datastore.New(logger.NewNop())
	return NewNewsRepository(store, filepath.Join(t.TempDir(), "news.json"))
}

func TestNewsCreateSetsDefaults(t *testing.T) {
	repo := newNewsRepo(t)
	ctx := context.Background()

	item := &entities.News{Title: "Nova oficina", Date: "2025-05-20"}
	require.NoError(t, repo.Create(ctx, item))

	assert.Equal(t, 1, item.ID)
	assert.True(t, item.Active)
	assert.Equal(t, "20 de maio de 2025", item.FormattedDate)
	assert.Equal(t, entities.PlaceholderImage, item.Image)
	assert.Equal(t, entities.PlaceholderLink, item.Link)
}

func TestNewsSoftDeleteHidesFromPublicListing(t *testing.T) {
	repo := newNewsRepo(t)
	ctx := context.Background()

	item := &entities.News{Title: "Nova oficina", Date: "2025-05-20"}
	require.NoError(t, repo.Create(ctx, item))
	require.NoError(t, repo.SoftDelete(ctx, item.ID))

	public, err := repo.ListPublic(ctx)
	require.NoError(t, err)
	assert.Empty(t, public)

	all, err := repo.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.False(t, all[0].Active)
}

func TestNewsUpdateAppliesOnlyProvidedFields(t *testing.T) {
	repo := newNewsRepo(t)
	ctx := context.Background()

	item := &entities.News{Title: "Nova oficina", Date: "2025-05-20", Author: "Equipe"}
	require.NoError(t, repo.Create(ctx, item))

	updated, err := repo.Update(ctx, item.ID, ports.NewsUpdate{Summary: strPtr("resumo")})
	require.NoError(t, err)
	assert.Equal(t, "resumo", updated.Summary)
	assert.Equal(t, "Nova oficina", updated.Title)
	assert.Equal(t, "Equipe", updated.Author)
}

func TestNewsNotFound(t *testing.T) {
	repo := newNewsRepo(t)
	ctx := context.Background()

	_, err := repo.GetByID(ctx, 7)
	assert.ErrorIs(t, err, entities.ErrNewsNotFound)
}
