package database

import (
	"fmt"
	"time"

	"github.com/justsurfingit/jobmarket/internal/models"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Connect opens the Postgres pool and migrates every table the API owns.
func Connect(dsn string, debug bool, log *zap.Logger) (*gorm.DB, error) {
	level := gormlogger.Warn
	if debug {
		level = gormlogger.Info
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		// Unique-key violations surface as gorm.ErrDuplicatedKey.
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(level),
	})
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql handle: %w", err)
	}
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(50)
	sqlDB.SetConnMaxLifetime(time.Hour)

	log.Info("database connection established")

	if err := Migrate(db); err != nil {
		return nil, err
	}
	log.Info("migrations complete")

	return db, nil
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.User{}, &models.Job{}, &models.Application{}, &models.Payment{}); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}
