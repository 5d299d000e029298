package database

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"union-backend/internal/config"
	"union-backend/internal/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Open connects to the embedded database file, runs migrations and seeds
// the singleton stats row. The returned handle is passed down to the
// repositories; there is no package-level connection.
func Open(cfg *config.Config) (*gorm.DB, error) {
	if dir := filepath.Dir(cfg.DatabasePath); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	db, err := gorm.Open(sqlite.Open(cfg.DatabasePath), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}

	log.Println("Database ready:", cfg.DatabasePath)
	return db, nil
}

// Migrate creates the schema and the singleton stats row. Exported so
// tests can bring up an in-memory database with the same shape.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.TeamMember{},
		&models.Category{},
		&models.DictionaryItem{},
		&models.Document{},
		&models.News{},
		&models.Project{},
		&models.MainPageStats{},
	)
	if err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	// The stats row always exists; counters start at zero.
	seed := models.MainPageStats{ID: 1}
	if err := db.Where("id = 1").FirstOrCreate(&seed).Error; err != nil {
		return fmt.Errorf("seed main page stats: %w", err)
	}
	return nil
}
