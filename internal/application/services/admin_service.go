package services

import (
	"context"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/casadecultura/backend/internal/domain/entities"
	"github.com/casadecultura/backend/internal/infrastructure/logger"
	"github.com/casadecultura/backend/internal/ports"
)

// AdminService handles administrator account management
type AdminService struct {
	adminRepo ports.AdminRepository
	logger    *logger.Logger
}

// NewAdminService creates a new admin service
func NewAdminService(adminRepo ports.AdminRepository, logger *logger.Logger) *AdminService {
	return &AdminService{
		adminRepo: adminRepo,
		logger:    logger,
	}
}

// ListAdmins returns every administrator account with password hashes
// stripped
func (s *AdminService) ListAdmins(ctx context.Context) ([]entities.Admin, error) {
	admins, err := s.adminRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list admins: %w", err)
	}

	for i := range admins {
		admins[i].PasswordHash = ""
	}

	return admins, nil
}

// GetAdmin retrieves an administrator by ID
func (s *AdminService) GetAdmin(ctx context.Context, id int) (*entities.Admin, error) {
	admin, err := s.adminRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	admin.PasswordHash = ""
	return admin, nil
}

// CreateAdmin creates a new administrator account
func (s *AdminService) CreateAdmin(ctx context.Context, req ports.CreateAdminRequest) (*entities.Admin, error) {
	if !emailRx.MatchString(req.Email) {
		return nil, ErrInvalidEmail
	}
	if len(req.Password) < 8 {
		return nil, entities.ErrPasswordTooShort
	}
	role := req.Role
	if role == "" {
		role = entities.RoleAdmin
	}
	if !role.IsValid() {
		return nil, fmt.Errorf("invalid role: %s", role)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	admin := &entities.Admin{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         role,
	}

	if err := s.adminRepo.Create(ctx, admin); err != nil {
		return nil, err
	}

	s.logger.Info("Admin created", "admin_id", admin.ID, "email", admin.Email, "role", admin.Role)

	created := *admin
	created.PasswordHash = ""
	return &created, nil
}

// UpdateAdmin applies a partial update to an administrator account. A
// plaintext password in the request is hashed here; the repository only
// ever sees the hash.
func (s *AdminService) UpdateAdmin(ctx context.Context, id int, req ports.UpdateAdminRequest) (*entities.Admin, error) {
	upd := ports.AdminUpdate{
		Name:   req.Name,
		Role:   req.Role,
		Active: req.Active,
	}

	if req.Email != nil {
		if !emailRx.MatchString(*req.Email) {
			return nil, ErrInvalidEmail
		}
		upd.Email = req.Email
	}

	if req.Password != nil {
		if len(*req.Password) < 8 {
			return nil, entities.ErrPasswordTooShort
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		hashStr := string(hash)
		upd.PasswordHash = &hashStr
	}

	admin, err := s.adminRepo.Update(ctx, id, upd)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Admin updated", "admin_id", admin.ID)

	admin.PasswordHash = ""
	return admin, nil
}

// DeleteAdmin removes an administrator account entirely
func (s *AdminService) DeleteAdmin(ctx context.Context, id int) error {
	removed, err := s.adminRepo.Delete(ctx, id)
	if err != nil {
		return err
	}

	s.logger.Info("Admin deleted", "admin_id", removed.ID, "email", removed.Email)

	return nil
}
