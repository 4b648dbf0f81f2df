package repository

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/casadecultura/backend/internal/domain/entities"
	"github.com/casadecultura/backend/internal/infrastructure/datastore"
	"github.com/casadecultura/backend/internal/infrastructure/logger"
	"github.com/casadecultura/backend/internal/ports"
)

func newEventRepo(t *testing.T) ports.EventRepository {
	t.Helper()
	store := datastore.New(logger.NewNop())
	return NewEventRepository(store, filepath.Join(t.TempDir(), "events.json"))
}

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }

func TestEventCreateAssignsSequentialIDs(t *testing.T) {
	repo := newEventRepo(t)
	ctx := context.Background()

	first := &entities.Event{Title: "Sarau", Date: "2025-03-15"}
	require.NoError(t, repo.Create(ctx, first))
	assert.Equal(t, 1, first.ID)

	second := &entities.Event{Title: "Exposição", Date: "2025-04-01"}
	require.NoError(t, repo.Create(ctx, second))
	assert.Equal(t, 2, second.ID)
}

func TestEventCreateSetsDefaults(t *testing.T) {
	repo := newEventRepo(t)
	ctx := context.Background()

	event := &entities.Event{Title: "Sarau", Date: "2025-03-15"}
	require.NoError(t, repo.Create(ctx, event))

	assert.True(t, event.Active)
	assert.Equal(t, "15 de março de 2025", event.FormattedDate)
	assert.Equal(t, entities.PlaceholderImage, event.Image)
	assert.Equal(t, "0", event.Participants)
	assert.False(t, event.CreatedAt.IsZero())

	got, err := repo.GetByID(ctx, event.ID)
	require.NoError(t, err)
	assert.Equal(t, event.Title, got.Title)
	assert.Equal(t, event.FormattedDate, got.FormattedDate)
}

func TestEventIDNotReusedAfterSoftDelete(t *testing.T) {
	repo := newEventRepo(t)
	ctx := context.Background()

	a := &entities.Event{Title: "A", Date: "2025-01-01"}
	b := &entities.Event{Title: "B", Date: "2025-01-02"}
	require.NoError(t, repo.Create(ctx, a))
	require.NoError(t, repo.Create(ctx, b))

	// Soft delete keeps the record, so its id stays occupied.
	require.NoError(t, repo.SoftDelete(ctx, b.ID))

	c := &entities.Event{Title: "C", Date: "2025-01-03"}
	require.NoError(t, repo.Create(ctx, c))
	assert.Equal(t, 3, c.ID)
}

func TestEventSoftDeleteHidesFromPublicListing(t *testing.T) {
	repo := newEventRepo(t)
	ctx := context.Background()

	event := &entities.Event{Title: "Sarau", Date: "2025-03-15"}
	require.NoError(t, repo.Create(ctx, event))
	require.NoError(t, repo.SoftDelete(ctx, event.ID))

	public, err := repo.ListPublic(ctx)
	require.NoError(t, err)
	assert.Empty(t, public)

	all, err := repo.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.False(t, all[0].Active)

	// The record itself is still addressable.
	got, err := repo.GetByID(ctx, event.ID)
	require.NoError(t, err)
	assert.False(t, got.Active)
}

func TestEventListPublicSortsByDateDescending(t *testing.T) {
	repo := newEventRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &entities.Event{Title: "old", Date: "2024-06-01"}))
	require.NoError(t, repo.Create(ctx, &entities.Event{Title: "new", Date: "2025-06-01"}))
	require.NoError(t, repo.Create(ctx, &entities.Event{Title: "mid", Date: "2024-12-25"}))

	public, err := repo.ListPublic(ctx)
	require.NoError(t, err)
	require.Len(t, public, 3)
	assert.Equal(t, "new", public[0].Title)
	assert.Equal(t, "mid", public[1].Title)
	assert.Equal(t, "old", public[2].Title)
}

func TestEventUpdateAppliesOnlyProvidedFields(t *testing.T) {
	repo := newEventRepo(t)
	ctx := context.Background()

	event := &entities.Event{
		Title:    "Sarau",
		Date:     "2025-03-15",
		Location: "Auditório",
		Category: "música",
	}
	require.NoError(t, repo.Create(ctx, event))

	updated, err := repo.Update(ctx, event.ID, ports.EventUpdate{
		Title: strPtr("Sarau de Inverno"),
		Date:  strPtr("2025-07-10"),
	})
	require.NoError(t, err)

	assert.Equal(t, "Sarau de Inverno", updated.Title)
	assert.Equal(t, "2025-07-10", updated.Date)
	assert.Equal(t, "10 de julho de 2025", updated.FormattedDate)
	assert.Equal(t, "Auditório", updated.Location)
	assert.Equal(t, "música", updated.Category)
}

func TestEventUpdateCanReactivate(t *testing.T) {
	repo := newEventRepo(t)
	ctx := context.Background()

	event := &entities.Event{Title: "Sarau", Date: "2025-03-15"}
	require.NoError(t, repo.Create(ctx, event))
	require.NoError(t, repo.SoftDelete(ctx, event.ID))

	updated, err := repo.Update(ctx, event.ID, ports.EventUpdate{Active: boolPtr(true)})
	require.NoError(t, err)
	assert.True(t, updated.Active)

	public, err := repo.ListPublic(ctx)
	require.NoError(t, err)
	assert.Len(t, public, 1)
}

func TestEventConcurrentCreatesLastWriterWins(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.json")
	store := datastore.New(logger.NewNop())
	repoA := NewEventRepository(store, path)
	repoB := NewEventRepository(store, path)
	ctx := context.Background()

	// Both writers start from the same empty snapshot.
	require.NoError(t, store.Save(path, []entities.Event{}))
	stale, err := os.ReadFile(path)
	require.NoError(t, err)

	a := &entities.Event{Title: "A", Date: "2025-01-01"}
	require.NoError(t, repoA.Create(ctx, a))

	// Writer B read before A's save landed: rewind the file to the
	// stale snapshot so B computes the same next id, then let its
	// whole-file save land second.
	require.NoError(t, os.WriteFile(path, stale, 0o644))
	b := &entities.Event{Title: "B", Date: "2025-01-02"}
	require.NoError(t, repoB.Create(ctx, b))

	assert.Equal(t, a.ID, b.ID)

	// The later save wins wholesale; at most one of the two survives.
	all, err := repoB.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "B", all[0].Title)

	got, err := repoA.GetByID(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, "B", got.Title)
}

func TestEventNotFound(t *testing.T) {
	repo := newEventRepo(t)
	ctx := context.Background()

	_, err := repo.GetByID(ctx, 42)
	assert.ErrorIs(t, err, entities.ErrEventNotFound)

	_, err = repo.Update(ctx, 42, ports.EventUpdate{Title: strPtr("x")})
	assert.ErrorIs(t, err, entities.ErrEventNotFound)

	err = repo.SoftDelete(ctx, 42)
	assert.ErrorIs(t, err, entities.ErrEventNotFound)
}
