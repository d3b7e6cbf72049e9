package config

import (
	"fmt"

	"github.com/avolkov/musiccatalog/models"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// Open connects to MySQL and migrates the catalog schema.
func Open(cfg *Config) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(cfg.DSN), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}
	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate creates or updates the catalog tables. Referenced tables come
// first so the FK constraints can be created.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Artist{},
		&models.Label{},
		&models.Genre{},
		&models.Release{},
		&models.Track{},
		&models.Playlist{},
		&models.Scrobble{},
		&models.Document{},
		&models.Review{},
		&models.Favorite{},
	)
}
