package postgres

import (
	"context"

	"github.com/frahmantamala/conference-management/internal/auth"
	userDatamodel "github.com/frahmantamala/conference-management/internal/core/datamodel/user"
	"gorm.io/gorm"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// GetByEmail returns the user and stored password hash for a login attempt.
func (r *Repository) GetByEmail(email string) (*auth.User, string, error) {
	var record userDatamodel.User
	err := r.db.Where("email = ?", email).First(&record).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, "", auth.ErrUserNotFound
		}
		return nil, "", err
	}

	return &auth.User{
		ID:       record.ID,
		Email:    record.Email,
		IsActive: record.IsActive,
	}, record.PasswordHash, nil
}

func (r *Repository) GetUserByID(userID string) (*auth.User, error) {
	var record userDatamodel.User
	err := r.db.Where("id = ?", userID).First(&record).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, auth.ErrUserNotFound
		}
		return nil, err
	}

	return &auth.User{
		ID:       record.ID,
		Email:    record.Email,
		IsActive: record.IsActive,
	}, nil
}

// HasPermission reports whether any role held by the user grants the named
// permission. Explicit join over the role/permission tables, fresh per call.
func (r *Repository) HasPermission(ctx context.Context, userID string, permission string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("user_roles").
		Joins("JOIN role_permissions ON role_permissions.role_id = user_roles.role_id AND role_permissions.deleted_at IS NULL").
		Joins("JOIN permissions ON permissions.id = role_permissions.permission_id AND permissions.deleted_at IS NULL").
		Where("user_roles.user_id = ? AND user_roles.deleted_at IS NULL", userID).
		Where("permissions.name = ?", permission).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
