// Package persistence provides database connection setup. Production runs on
// PostgreSQL; tests and local development can run on SQLite.
package persistence

import (
	"fmt"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	gormlib "gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/lunara/wellness/internal/infrastructure/config"
	gormModels "github.com/lunara/wellness/internal/infrastructure/persistence/gorm"
)

// Connect opens the configured database and applies pooling settings and, if
// enabled, auto-migration
func Connect(cfg *config.Config, logger *zap.Logger) (*gormlib.DB, error) {
	logLevel := gormlogger.Warn
	if cfg.App.Debug {
		logLevel = gormlogger.Info
	}
	gormCfg := &gormlib.Config{
		Logger: gormlogger.Default.LogMode(logLevel),
	}

	var db *gormlib.DB
	var err error
	switch cfg.Database.Driver {
	case "sqlite":
		path := cfg.Database.Database
		if path == "" {
			path = ":memory:"
		}
		db, err = gormlib.Open(sqlite.Open(path), gormCfg)
	default:
		db, err = gormlib.Open(postgres.Open(cfg.GetDSN()), gormCfg)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to access connection pool: %w", err)
	}
	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	if cfg.Database.AutoMigrate {
		if err := gormModels.AutoMigrate(db); err != nil {
			return nil, fmt.Errorf("failed to migrate database: %w", err)
		}
	}

	logger.Info("Database connected",
		zap.String("driver", cfg.Database.Driver),
		zap.Bool("auto_migrate", cfg.Database.AutoMigrate),
	)

	return db, nil
}
