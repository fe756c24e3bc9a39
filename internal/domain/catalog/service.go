// internal/domain/catalog/service.go
package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrNotFound    = errors.New("catalog entry not found")
	ErrDuplicateID = errors.New("catalog entry with this id already exists")
	ErrInvalid     = errors.New("invalid catalog entry")
)

// Service handles menu item and offer persistence
type Service struct {
	db  *gorm.DB
	log logrus.FieldLogger
}

// NewService creates a new catalog service
func NewService(db *gorm.DB, log logrus.FieldLogger) *Service {
	return &Service{
		db:  db,
		log: log.WithField("component", "catalog"),
	}
}

// ListMenuItems returns every menu item in insertion order
func (s *Service) ListMenuItems(ctx context.Context) ([]MenuItem, error) {
	var items []MenuItem
	if err := s.db.WithContext(ctx).Order("created_at, id").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to list menu items: %w", err)
	}
	return items, nil
}

// GetMenuItem retrieves a menu item by id
func (s *Service) GetMenuItem(ctx context.Context, id string) (*MenuItem, error) {
	var item MenuItem
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get menu item %s: %w", id, err)
	}
	return &item, nil
}

// CreateMenuItem inserts a new menu item with a caller supplied id
func (s *Service) CreateMenuItem(ctx context.Context, item *MenuItem) error {
	if err := item.Validate(); err != nil {
		return err
	}
	if err := s.db.WithContext(ctx).Create(item).Error; err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateID
		}
		return fmt.Errorf("failed to create menu item: %w", err)
	}

	s.log.WithField("menu_item_id", item.ID).Info("menu item created")
	return nil
}

// UpdateMenuItem applies a partial update and returns the affected row count
func (s *Service) UpdateMenuItem(ctx context.Context, id string, patch MenuItemPatch) (int64, error) {
	updates, err := patch.updates()
	if err != nil {
		return 0, err
	}
	return s.update(ctx, &MenuItem{}, id, updates)
}

// DeleteMenuItem removes a menu item and returns the affected row count
func (s *Service) DeleteMenuItem(ctx context.Context, id string) (int64, error) {
	result := s.db.WithContext(ctx).Where("id = ?", id).Delete(&MenuItem{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to delete menu item %s: %w", id, result.Error)
	}
	return result.RowsAffected, nil
}

// CountMenuItems returns the number of menu items
func (s *Service) CountMenuItems(ctx context.Context) (int64, error) {
	var n int64
	if err := s.db.WithContext(ctx).Model(&MenuItem{}).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("failed to count menu items: %w", err)
	}
	return n, nil
}

// update runs a partial update against model's table. An empty patch
// reports whether the row exists so callers still see 0 for unknown ids.
func (s *Service) update(ctx context.Context, model interface{}, id string, updates map[string]interface{}) (int64, error) {
	db := s.db.WithContext(ctx).Model(model).Where("id = ?", id)
	if len(updates) == 0 {
		var n int64
		if err := db.Count(&n).Error; err != nil {
			return 0, fmt.Errorf("failed to look up %s: %w", id, err)
		}
		return n, nil
	}

	result := db.Updates(updates)
	if result.Error != nil {
		return 0, fmt.Errorf("failed to update %s: %w", id, result.Error)
	}
	return result.RowsAffected, nil
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation
}
