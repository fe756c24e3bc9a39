// internal/infrastructure/database/postgres/migration.go
package postgres

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-backend/internal/domain/admin"
	"github.com/your-org/storefront-backend/internal/domain/catalog"
	"gorm.io/gorm"
)

// Hasher hashes the seeded admin password
type Hasher interface {
	HashPassword(password string) (string, error)
}

// Migration handles database migrations
type Migration struct {
	db  *gorm.DB
	log logrus.FieldLogger
}

// NewMigration creates a new migration instance
func NewMigration(db *gorm.DB, log logrus.FieldLogger) *Migration {
	return &Migration{
		db:  db,
		log: log.WithField("component", "migration"),
	}
}

// RunAutoMigrations runs GORM auto-migrations for all models
func (m *Migration) RunAutoMigrations() error {
	m.log.Info("Running database auto-migrations")

	models := []interface{}{
		&catalog.MenuItem{},
		&catalog.Offer{},
		&admin.Admin{},
	}

	for _, model := range models {
		m.log.Debugf("Migrating model: %T", model)
		if err := m.db.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate model %T: %w", model, err)
		}
	}

	m.log.Info("Database auto-migrations completed")
	return nil
}

// CreateIndexes creates the indexes the list queries use
func (m *Migration) CreateIndexes() error {
	indexes := []string{
		"CREATE INDEX IF NOT EXISTS idx_menu_items_created_at ON menu_items(created_at, id)",
		"CREATE INDEX IF NOT EXISTS idx_menu_items_category ON menu_items(category)",
		"CREATE INDEX IF NOT EXISTS idx_offers_active_created ON offers(active, created_at)",
	}

	failed := 0
	for _, indexSQL := range indexes {
		if err := m.db.Exec(indexSQL).Error; err != nil {
			m.log.WithError(err).Warn("Failed to create index")
			failed++
		}
	}

	m.log.WithFields(logrus.Fields{
		"created": len(indexes) - failed,
		"failed":  failed,
	}).Info("Database indexes ensured")
	return nil
}

// SeedInitialData fills empty tables with the skin's catalogue and makes
// sure the default admin exists. Populated tables are left alone.
func (m *Migration) SeedInitialData(skin string, hasher Hasher) error {
	seed, ok := seeds[skin]
	if !ok {
		return fmt.Errorf("no seed data for skin %q", skin)
	}

	if err := m.seedMenuItems(seed.menuItems); err != nil {
		return fmt.Errorf("failed to seed menu items: %w", err)
	}
	if err := m.seedOffers(seed.offers); err != nil {
		return fmt.Errorf("failed to seed offers: %w", err)
	}
	if err := m.seedAdmin(hasher); err != nil {
		return fmt.Errorf("failed to seed admin: %w", err)
	}

	m.log.WithField("skin", skin).Info("Initial data seeded")
	return nil
}

func (m *Migration) seedMenuItems(items []catalog.MenuItem) error {
	var count int64
	if err := m.db.Model(&catalog.MenuItem{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		m.log.WithField("count", count).Debug("Menu items already present, skipping seed")
		return nil
	}
	return m.db.Create(&items).Error
}

func (m *Migration) seedOffers(offers []catalog.Offer) error {
	var count int64
	if err := m.db.Model(&catalog.Offer{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		m.log.WithField("count", count).Debug("Offers already present, skipping seed")
		return nil
	}
	return m.db.Select("*").Create(&offers).Error
}

func (m *Migration) seedAdmin(hasher Hasher) error {
	var count int64
	if err := m.db.Model(&admin.Admin{}).Where("username = ?", admin.DefaultUsername).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := hasher.HashPassword(admin.DefaultPassword)
	if err != nil {
		return err
	}
	if err := m.db.Create(&admin.Admin{Username: admin.DefaultUsername, Password: hash}).Error; err != nil {
		return err
	}

	m.log.WithField("username", admin.DefaultUsername).Warn("Created default admin account, change its password")
	return nil
}
