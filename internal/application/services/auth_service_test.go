package services

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/casadecultura/backend/internal/adapters/repository"
	"github.com/casadecultura/backend/internal/domain/entities"
	"github.com/casadecultura/backend/internal/infrastructure/config"
	"github.com/casadecultura/backend/internal/infrastructure/datastore"
	"github.com/casadecultura/backend/internal/infrastructure/logger"
	"github.com/casadecultura/backend/internal/ports"
)

const testPassword = "senha-segura-123"

func newAuthFixture(t *testing.T) (*AuthService, ports.AdminRepository) {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
	require.NoError(t, err)

	bootstrap := entities.Admin{
		Name:         "Administrador",
		Email:        "admin@casadecultura.org",
		PasswordHash: string(hash),
		Role:         entities.RoleSuperAdmin,
	}

	store := datastore.New(logger.NewNop())
	adminRepo := repository.NewAdminRepository(store, filepath.Join(t.TempDir(), "admins.json"), bootstrap)

	jwtConfig := config.JWTConfig{
		Secret:    "test-secret",
		ExpiresIn: time.Hour,
		Issuer:    "casadecultura-test",
	}

	return NewAuthService(adminRepo, jwtConfig, logger.NewNop()), adminRepo
}

func TestLoginSuccess(t *testing.T) {
	svc, repo := newAuthFixture(t)
	ctx := context.Background()

	resp, err := svc.Login(ctx, ports.LoginRequest{
		Email:    "admin@casadecultura.org",
		Password: testPassword,
	})
	require.NoError(t, err)

	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "Bearer", resp.TokenType)
	assert.Equal(t, int64(3600), resp.ExpiresIn)
	assert.Empty(t, resp.Admin.PasswordHash)
	assert.NotNil(t, resp.Admin.LastLogin)

	// The login stamp is persisted.
	stored, err := repo.GetByID(ctx, resp.Admin.ID)
	require.NoError(t, err)
	assert.NotNil(t, stored.LastLogin)
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _ := newAuthFixture(t)

	_, err := svc.Login(context.Background(), ports.LoginRequest{
		Email:    "admin@casadecultura.org",
		Password: "senha-errada",
	})
	assert.ErrorIs(t, err, entities.ErrInvalidCredentials)
}

func TestLoginUnknownEmail(t *testing.T) {
	svc, _ := newAuthFixture(t)

	_, err := svc.Login(context.Background(), ports.LoginRequest{
		Email:    "ninguem@casadecultura.org",
		Password: testPassword,
	})
	assert.ErrorIs(t, err, entities.ErrInvalidCredentials)
}

func TestLoginInactiveAccount(t *testing.T) {
	svc, repo := newAuthFixture(t)
	ctx := context.Background()

	// A second super admin makes deactivating the first one legal.
	hash, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
	require.NoError(t, err)
	second := &entities.Admin{
		Name:         "Segundo",
		Email:        "segundo@casadecultura.org",
		PasswordHash: string(hash),
		Role:         entities.RoleSuperAdmin,
	}
	require.NoError(t, repo.Create(ctx, second))

	inactive := false
	_, err = repo.Update(ctx, 1, ports.AdminUpdate{Active: &inactive})
	require.NoError(t, err)

	_, err = svc.Login(ctx, ports.LoginRequest{
		Email:    "admin@casadecultura.org",
		Password: testPassword,
	})
	assert.ErrorIs(t, err, entities.ErrAccountInactive)
}

func TestValidateTokenRoundTrips(t *testing.T) {
	svc, _ := newAuthFixture(t)
	ctx := context.Background()

	resp, err := svc.Login(ctx, ports.LoginRequest{
		Email:    "admin@casadecultura.org",
		Password: testPassword,
	})
	require.NoError(t, err)

	claims, err := svc.ValidateToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, resp.Admin.ID, claims.AdminID)
	assert.Equal(t, "admin@casadecultura.org", claims.Email)
	assert.Equal(t, entities.RoleSuperAdmin, claims.Role)
	assert.True(t, claims.IsAdministrator())
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	svc, _ := newAuthFixture(t)

	_, err := svc.ValidateToken("not-a-token")
	assert.Error(t, err)
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	svc, repo := newAuthFixture(t)
	ctx := context.Background()

	resp, err := svc.Login(ctx, ports.LoginRequest{
		Email:    "admin@casadecultura.org",
		Password: testPassword,
	})
	require.NoError(t, err)

	other := NewAuthService(repo, config.JWTConfig{
		Secret:    "different-secret",
		ExpiresIn: time.Hour,
		Issuer:    "casadecultura-test",
	}, logger.NewNop())

	_, err = other.ValidateToken(resp.Token)
	assert.Error(t, err)
}
