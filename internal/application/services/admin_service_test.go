package services

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/casadecultura/backend/internal/adapters/repository"
	"github.com/casadecultura/backend/internal/domain/entities"
	"github.com/casadecultura/backend/internal/infrastructure/datastore"
	"github.com/casadecultura/backend/internal/infrastructure/logger"
	"github.com/casadecultura/backend/internal/ports"
)

func newAdminService(t *testing.T) *AdminService {
	t.Helper()

	bootstrap := entities.Admin{
		Name:         "Administrador",
		Email:        "admin@casadecultura.org",
		PasswordHash: "$2a$10$abcdefghijklmnopqrstuv",
		Role:         entities.RoleSuperAdmin,
	}

	store := datastore.New(logger.NewNop())
	adminRepo := repository.NewAdminRepository(store, filepath.Join(t.TempDir(), "admins.json"), bootstrap)

	return NewAdminService(adminRepo, logger.NewNop())
}

func TestCreateAdminDefaultsToAdminRole(t *testing.T) {
	svc := newAdminService(t)
	ctx := context.Background()

	admin, err := svc.CreateAdmin(ctx, ports.CreateAdminRequest{
		Name:     "Editor",
		Email:    "editor@casadecultura.org",
		Password: "senha-segura",
	})
	require.NoError(t, err)

	assert.Equal(t, entities.RoleAdmin, admin.Role)
	assert.Empty(t, admin.PasswordHash)
	assert.True(t, admin.Active)
}

func TestCreateAdminRejectsShortPassword(t *testing.T) {
	svc := newAdminService(t)

	_, err := svc.CreateAdmin(context.Background(), ports.CreateAdminRequest{
		Name:     "Editor",
		Email:    "editor@casadecultura.org",
		Password: "curta",
	})
	assert.ErrorIs(t, err, entities.ErrPasswordTooShort)
}

func TestCreateAdminRejectsBadEmail(t *testing.T) {
	svc := newAdminService(t)

	_, err := svc.CreateAdmin(context.Background(), ports.CreateAdminRequest{
		Name:     "Editor",
		Email:    "sem-arroba",
		Password: "senha-segura",
	})
	assert.ErrorIs(t, err, ErrInvalidEmail)
}

func TestCreateAdminRejectsUnknownRole(t *testing.T) {
	svc := newAdminService(t)

	_, err := svc.CreateAdmin(context.Background(), ports.CreateAdminRequest{
		Name:     "Editor",
		Email:    "editor@casadecultura.org",
		Password: "senha-segura",
		Role:     entities.AdminRole("viewer"),
	})
	assert.Error(t, err)
}

func TestListAdminsStripsPasswordHashes(t *testing.T) {
	svc := newAdminService(t)
	ctx := context.Background()

	admins, err := svc.ListAdmins(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, admins)
	for _, a := range admins {
		assert.Empty(t, a.PasswordHash)
	}
}
