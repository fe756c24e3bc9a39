// internal/domain/admin/repository.go
package admin

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// Repository stores admin accounts
type Repository interface {
	Find(ctx context.Context, username string) (*Admin, error)
	SetPassword(ctx context.Context, username, hash string) (int64, error)
}

// GormRepository keeps admins in the admins table
type GormRepository struct {
	db *gorm.DB
}

// NewGormRepository creates a repository over db
func NewGormRepository(db *gorm.DB) *GormRepository {
	return &GormRepository{db: db}
}

// Find returns ErrAdminNotFound for an unknown username
func (r *GormRepository) Find(ctx context.Context, username string) (*Admin, error) {
	var a Admin
	err := r.db.WithContext(ctx).Where("username = ?", username).First(&a).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrAdminNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load admin: %w", err)
	}
	return &a, nil
}

// SetPassword stores a new hash and reports the affected row count
func (r *GormRepository) SetPassword(ctx context.Context, username, hash string) (int64, error) {
	res := r.db.WithContext(ctx).Model(&Admin{}).Where("username = ?", username).Update("password", hash)
	if res.Error != nil {
		return 0, fmt.Errorf("failed to update password: %w", res.Error)
	}
	return res.RowsAffected, nil
}
