package cmd

import (
	"fmt"

	"fulfillment/internal/adapters/out/memory"
	"fulfillment/internal/adapters/out/postgres"
	"fulfillment/internal/core/ports"

	pgdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// OpenStorage returns the unit of work factory for the configured backend and
// a function that releases it.
func OpenStorage(cfg Config) (ports.UnitOfWorkFactory, func() error, error) {
	if cfg.Storage == StorageMemory {
		return memory.NewUnitOfWorkFactory(memory.NewStore()), func() error { return nil }, nil
	}

	db, err := gorm.Open(pgdriver.Open(cfg.DSN()), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, nil, fmt.Errorf("connect postgres: %w", err)
	}
	if err = postgres.Migrate(db); err != nil {
		return nil, nil, fmt.Errorf("migrate: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, nil, err
	}
	return postgres.NewGormUnitOfWorkFactory(db), sqlDB.Close, nil
}
