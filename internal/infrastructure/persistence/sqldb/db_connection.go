// Package sqldb provides the GORM-backed repositories of the MRM service.
// The same repositories run on SQLite for single-node deployments and on
// PostgreSQL for shared ones; the driver is selected by configuration.
package sqldb

import (
	"context"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/quantgov/mrm/internal/config"
	"github.com/quantgov/mrm/internal/domain/models"
	"github.com/quantgov/mrm/pkg/errors"
	"github.com/quantgov/mrm/pkg/logger"
)

// NewDB opens the database selected by cfg.Driver, configures the
// connection pool, and migrates the schema.
func NewDB(cfg *config.DatabaseConfig, log logger.Logger) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case "sqlite":
		dialector = sqlite.Open(cfg.Path)
	case "postgres":
		dialector = postgres.Open(cfg.DSN())
	default:
		return nil, errors.ErrInternal.WithMessage("unsupported database driver: %s", cfg.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, errors.ErrPersistenceFailure("open database", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, errors.ErrPersistenceFailure("access connection pool", err)
	}
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetime) * time.Minute)

	if err := db.AutoMigrate(&modelRow{}, &tieringRow{}, &models.AuditEvent{}); err != nil {
		return nil, errors.ErrPersistenceFailure("migrate schema", err)
	}

	log.Info(context.Background(), "database initialized",
		logger.String("driver", cfg.Driver),
	)

	return db, nil
}
