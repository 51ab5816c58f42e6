package postgres

import (
	"time"

	userDatamodel "github.com/frahmantamala/conference-management/internal/core/datamodel/user"
	"github.com/frahmantamala/conference-management/internal/user"
	"gorm.io/gorm"
)

// UserRepository implements the user.Repository interface using GORM.
// Soft-deleted rows are excluded by gorm.DeletedAt on every read.
type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) user.Repository {
	return &UserRepository{db: db}
}

func (r *UserRepository) GetByID(id string) (*userDatamodel.User, error) {
	var record userDatamodel.User
	err := r.db.Where("id = ?", id).First(&record).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, user.ErrNotFound
		}
		return nil, err
	}
	return &record, nil
}

func (r *UserRepository) GetByEmail(email string) (*userDatamodel.User, error) {
	var record userDatamodel.User
	err := r.db.Where("email = ?", email).First(&record).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, user.ErrNotFound
		}
		return nil, err
	}
	return &record, nil
}

func (r *UserRepository) Create(record *userDatamodel.User) error {
	return r.db.Create(record).Error
}

// UpdateFields applies a partial update and returns the refreshed row.
func (r *UserRepository) UpdateFields(id string, updates map[string]interface{}) (*userDatamodel.User, error) {
	existing, err := r.GetByID(id)
	if err != nil {
		return nil, err
	}

	updates["updated_at"] = time.Now()
	if err := r.db.Model(existing).Updates(updates).Error; err != nil {
		return nil, err
	}

	return r.GetByID(id)
}

// Delete is a soft delete: gorm sets deleted_at and the row stays in storage.
func (r *UserRepository) Delete(id string) error {
	result := r.db.Where("id = ?", id).Delete(&userDatamodel.User{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return user.ErrNotFound
	}
	return nil
}

func (r *UserRepository) List(limit, offset int) (int64, []*userDatamodel.User, error) {
	var total int64
	if err := r.db.Model(&userDatamodel.User{}).Count(&total).Error; err != nil {
		return 0, nil, err
	}

	var records []*userDatamodel.User
	err := r.db.Order("created_at ASC").
		Limit(limit).
		Offset(offset).
		Find(&records).Error
	if err != nil {
		return 0, nil, err
	}

	return total, records, nil
}
