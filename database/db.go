package database

import (
	"fmt"
	"log"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"mention-radar/config"
	"mention-radar/models"
)

var DB *gorm.DB

// InitDB opens the configured store, migrates it and installs it as DB.
func InitDB(cfg config.Database) error {
	db, err := Open(cfg)
	if err != nil {
		return err
	}
	DB = db
	log.Printf("Database connected successfully (%s)", cfg.Driver)
	return nil
}

// Open connects to sqlite or postgres and applies the schema.
func Open(cfg config.Database) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case "postgres":
		dialector = postgres.Open(cfg.DSN)
	case "sqlite", "":
		dialector = sqlite.Open(cfg.DSN)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Keyword{},
		&models.Mention{},
		&models.Identity{},
		&models.Session{},
	)
	if err != nil {
		return nil, fmt.Errorf("migrate database: %w", err)
	}
	return db, nil
}

func GetDB() *gorm.DB {
	return DB
}

// Close releases the underlying connection pool.
func Close() error {
	if DB == nil {
		return nil
	}
	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
