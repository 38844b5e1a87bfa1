package database

import (
	"fmt"
	"log"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/zmx4/aelp/internal/entities"
)

// Database is the per-user read/write store holding favorites, mistakes
// and test history. Schema creation happens exactly once here, during
// bootstrap, so repositories can assume an initialized handle.
type Database struct {
	DB   *gorm.DB
	path string
}

// NewDatabase opens (creating if needed) the user data store and ensures
// its schema exists.
func NewDatabase(dbPath string) (*Database, error) {
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to user database: %w", err)
	}

	err = db.AutoMigrate(
		&entities.Word{},
		&entities.Favorite{},
		&entities.Mistake{},
		&entities.TestRecord{},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to migrate user database: %w", err)
	}

	log.Printf("User database initialized at %s", dbPath)

	return &Database{DB: db, path: dbPath}, nil
}

// Path returns the file path the store was opened with.
func (d *Database) Path() string {
	return d.path
}

func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Wipe removes all user data in one transaction. Reference dictionary
// content is untouched; this is the only flow that deletes Word rows.
func (d *Database) Wipe() error {
	return d.DB.Transaction(func(tx *gorm.DB) error {
		for _, model := range []any{
			&entities.Favorite{},
			&entities.Mistake{},
			&entities.TestRecord{},
			&entities.Word{},
		} {
			if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(model).Error; err != nil {
				return fmt.Errorf("failed to wipe user data: %w", err)
			}
		}
		return nil
	})
}
