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

// AdminRepositoryImpl implements the AdminRepository interface over a
// single JSON file. When the file is missing or corrupt the collection
// defaults to a single bootstrap super admin, so a fresh install always
// has a working login.
type AdminRepositoryImpl struct {
	store     *datastore.Store
	path      string
	bootstrap entities.Admin
}

// NewAdminRepository creates a new admin repository. bootstrap must
// carry an already-hashed password.
func NewAdminRepository(store *datastore.Store, path string, bootstrap entities.Admin) ports.AdminRepository {
	return &AdminRepositoryImpl{store: store, path: path, bootstrap: bootstrap}
}

func (r *AdminRepositoryImpl) defaultCollection() []entities.Admin {
	now := time.Now()
	b := r.bootstrap
	b.ID = 1
	b.Role = entities.RoleSuperAdmin
	b.Active = true
	b.CreatedAt = now
	b.UpdatedAt = now
	return []entities.Admin{b}
}

func (r *AdminRepositoryImpl) load() ([]entities.Admin, error) {
	admins, _, err := datastore.Load(r.store, r.path, r.defaultCollection())
	if err != nil {
		return nil, fmt.Errorf("load admins: %w", err)
	}
	return admins, nil
}

func (r *AdminRepositoryImpl) ListAll(ctx context.Context) ([]entities.Admin, error) {
	admins, err := r.load()
	if err != nil {
		return nil, err
	}

	sort.SliceStable(admins, func(i, j int) bool {
		return admins[i].CreatedAt.After(admins[j].CreatedAt)
	})

	return admins, nil
}

func (r *AdminRepositoryImpl) GetByID(ctx context.Context, id int) (*entities.Admin, error) {
	admins, err := r.load()
	if err != nil {
		return nil, err
	}

	for i := range admins {
		if admins[i].ID == id {
			return &admins[i], nil
		}
	}

	return nil, entities.ErrAdminNotFound
}

func (r *AdminRepositoryImpl) GetByEmail(ctx context.Context, email string) (*entities.Admin, error) {
	admins, err := r.load()
	if err != nil {
		return nil, err
	}

	// Exact, case-sensitive match.
	for i := range admins {
		if admins[i].Email == email {
			return &admins[i], nil
		}
	}

	return nil, entities.ErrAdminNotFound
}

func (r *AdminRepositoryImpl) Create(ctx context.Context, admin *entities.Admin) error {
	admins, err := r.load()
	if err != nil {
		return err
	}

	maxID := 0
	for _, a := range admins {
		if a.Email == admin.Email {
			return entities.ErrEmailTaken
		}
		if a.ID > maxID {
			maxID = a.ID
		}
	}

	now := time.Now()
	admin.ID = maxID + 1
	admin.Active = true
	admin.CreatedAt = now
	admin.UpdatedAt = now

	admins = append(admins, *admin)

	if err := r.store.Save(r.path, admins); err != nil {
		return fmt.Errorf("save admins: %w", err)
	}

	return nil
}

func (r *AdminRepositoryImpl) Update(ctx context.Context, id int, upd ports.AdminUpdate) (*entities.Admin, error) {
	admins, err := r.load()
	if err != nil {
		return nil, err
	}

	idx := -1
	for i := range admins {
		if admins[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, entities.ErrAdminNotFound
	}

	a := &admins[idx]

	if upd.Email != nil && *upd.Email != a.Email {
		for i := range admins {
			if i != idx && admins[i].Email == *upd.Email {
				return nil, entities.ErrEmailTaken
			}
		}
	}

	// Refuse any change that would leave the system without an active
	// super admin.
	deactivating := upd.Active != nil && !*upd.Active
	demoting := upd.Role != nil && *upd.Role != entities.RoleSuperAdmin
	if a.Active && a.IsSuperAdmin() && (deactivating || demoting) {
		if countOtherActiveSuperAdmins(admins, id) == 0 {
			return nil, entities.ErrLastSuperAdmin
		}
	}

	if upd.Name != nil {
		a.Name = *upd.Name
	}
	if upd.Email != nil {
		a.Email = *upd.Email
	}
	if upd.PasswordHash != nil {
		a.PasswordHash = *upd.PasswordHash
	}
	if upd.Role != nil {
		a.Role = *upd.Role
	}
	if upd.Active != nil {
		a.Active = *upd.Active
	}
	a.UpdatedAt = time.Now()

	if err := r.store.Save(r.path, admins); err != nil {
		return nil, fmt.Errorf("save admins: %w", err)
	}

	updated := *a
	return &updated, nil
}

func (r *AdminRepositoryImpl) Delete(ctx context.Context, id int) (*entities.Admin, error) {
	admins, err := r.load()
	if err != nil {
		return nil, err
	}

	idx := -1
	for i := range admins {
		if admins[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, entities.ErrAdminNotFound
	}

	if admins[idx].Active && admins[idx].IsSuperAdmin() {
		if countOtherActiveSuperAdmins(admins, id) == 0 {
			return nil, entities.ErrLastSuperAdmin
		}
	}

	removed := admins[idx]
	admins = append(admins[:idx], admins[idx+1:]...)

	if err := r.store.Save(r.path, admins); err != nil {
		return nil, fmt.Errorf("save admins: %w", err)
	}

	return &removed, nil
}

func (r *AdminRepositoryImpl) UpdateLastLogin(ctx context.Context, id int, at time.Time) error {
	admins, err := r.load()
	if err != nil {
		return err
	}

	for i := range admins {
		if admins[i].ID == id {
			admins[i].LastLogin = &at
			admins[i].UpdatedAt = at
			if err := r.store.Save(r.path, admins); err != nil {
				return fmt.Errorf("save admins: %w", err)
			}
			return nil
		}
	}

	return entities.ErrAdminNotFound
}

func countOtherActiveSuperAdmins(admins []entities.Admin, excludeID int) int {
	count := 0
	for _, a := range admins {
		if a.ID != excludeID && a.Active && a.IsSuperAdmin() {
			count++
		}
	}
	return count
}
