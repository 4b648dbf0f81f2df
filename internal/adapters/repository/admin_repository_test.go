package repository

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/casadecultura/backend/internal/domain/entities"
	"github.com/casadecultura/backend/internal/infrastructure/datastore"
	"github.com/casadecultura/backend/internal/infrastructure/logger"
	"github.com/casadecultura/backend/internal/ports"
)

var testBootstrap = entities.Admin{
	Name:         "Administrador",
	Email:        "admin@casadecultura.org",
	PasswordHash: "$2a$10$abcdefghijklmnopqrstuv",
	Role:         entities.RoleSuperAdmin,
}

func newAdminRepo(t *testing.T) ports.AdminRepository {
	t.Helper()
	store := datastore.New(logger.NewNop())
	return NewAdminRepository(store, filepath.Join(t.TempDir(), "admins.json"), testBootstrap)
}

func rolePtr(r entities.AdminRole) *entities.AdminRole { return &r }

func TestAdminBootstrapSeededOnFirstLoad(t *testing.T) {
	repo := newAdminRepo(t)
	ctx := context.Background()

	admins, err := repo.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, admins, 1)

	a := admins[0]
	assert.Equal(t, 1, a.ID)
	assert.Equal(t, testBootstrap.Email, a.Email)
	assert.Equal(t, entities.RoleSuperAdmin, a.Role)
	assert.True(t, a.Active)
}

func TestAdminGetByEmailIsCaseSensitive(t *testing.T) {
	repo := newAdminRepo(t)
	ctx := context.Background()

	got, err := repo.GetByEmail(ctx, testBootstrap.Email)
	require.NoError(t, err)
	assert.Equal(t, 1, got.ID)

	_, err = repo.GetByEmail(ctx, "Admin@casadecultura.org")
	assert.ErrorIs(t, err, entities.ErrAdminNotFound)
}

func TestAdminCreateRejectsDuplicateEmail(t *testing.T) {
	repo := newAdminRepo(t)
	ctx := context.Background()

	dup := &entities.Admin{
		Name:         "Outro",
		Email:        testBootstrap.Email,
		PasswordHash: "hash",
		Role:         entities.RoleAdmin,
	}
	err := repo.Create(ctx, dup)
	assert.ErrorIs(t, err, entities.ErrEmailTaken)
}

func TestAdminCreateAssignsNextID(t *testing.T) {
	repo := newAdminRepo(t)
	ctx := context.Background()

	admin := &entities.Admin{
		Name:         "Editor",
		Email:        "editor@casadecultura.org",
		PasswordHash: "hash",
		Role:         entities.RoleAdmin,
	}
	require.NoError(t, repo.Create(ctx, admin))
	assert.Equal(t, 2, admin.ID)
	assert.True(t, admin.Active)
}

func TestAdminCannotDeleteLastSuperAdmin(t *testing.T) {
	repo := newAdminRepo(t)
	ctx := context.Background()

	_, err := repo.Delete(ctx, 1)
	assert.ErrorIs(t, err, entities.ErrLastSuperAdmin)
}

func TestAdminCannotDeactivateLastSuperAdmin(t *testing.T) {
	repo := newAdminRepo(t)
	ctx := context.Background()

	_, err := repo.Update(ctx, 1, ports.AdminUpdate{Active: boolPtr(false)})
	assert.ErrorIs(t, err, entities.ErrLastSuperAdmin)
}

func TestAdminCannotDemoteLastSuperAdmin(t *testing.T) {
	repo := newAdminRepo(t)
	ctx := context.Background()

	_, err := repo.Update(ctx, 1, ports.AdminUpdate{Role: rolePtr(entities.RoleAdmin)})
	assert.ErrorIs(t, err, entities.ErrLastSuperAdmin)
}

func TestAdminDeleteAllowedWithSecondSuperAdmin(t *testing.T) {
	repo := newAdminRepo(t)
	ctx := context.Background()

	second := &entities.Admin{
		Name:         "Segundo",
		Email:        "segundo@casadecultura.org",
		PasswordHash: "hash",
		Role:         entities.RoleSuperAdmin,
	}
	require.NoError(t, repo.Create(ctx, second))

	removed, err := repo.Delete(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, testBootstrap.Email, removed.Email)

	admins, err := repo.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, admins, 1)
	assert.Equal(t, second.Email, admins[0].Email)
}

func TestAdminIDReusedAfterDeletingHighest(t *testing.T) {
	repo := newAdminRepo(t)
	ctx := context.Background()

	second := &entities.Admin{
		Name:         "Segundo",
		Email:        "segundo@casadecultura.org",
		PasswordHash: "hash",
		Role:         entities.RoleAdmin,
	}
	require.NoError(t, repo.Create(ctx, second))
	require.Equal(t, 2, second.ID)

	_, err := repo.Delete(ctx, second.ID)
	require.NoError(t, err)

	third := &entities.Admin{
		Name:         "Terceiro",
		Email:        "terceiro@casadecultura.org",
		PasswordHash: "hash",
		Role:         entities.RoleAdmin,
	}
	require.NoError(t, repo.Create(ctx, third))
	assert.Equal(t, 2, third.ID)
}

func TestAdminUpdateRejectsTakenEmail(t *testing.T) {
	repo := newAdminRepo(t)
	ctx := context.Background()

	second := &entities.Admin{
		Name:         "Segundo",
		Email:        "segundo@casadecultura.org",
		PasswordHash: "hash",
		Role:         entities.RoleAdmin,
	}
	require.NoError(t, repo.Create(ctx, second))

	_, err := repo.Update(ctx, second.ID, ports.AdminUpdate{Email: strPtr(testBootstrap.Email)})
	assert.ErrorIs(t, err, entities.ErrEmailTaken)
}

func TestAdminUpdateLastLogin(t *testing.T) {
	repo := newAdminRepo(t)
	ctx := context.Background()

	at := time.Date(2025, 3, 15, 10, 0, 0, 0, time.UTC)
	require.NoError(t, repo.UpdateLastLogin(ctx, 1, at))

	got, err := repo.GetByID(ctx, 1)
	require.NoError(t, err)
	require.NotNil(t, got.LastLogin)
	assert.True(t, got.LastLogin.Equal(at))
}
