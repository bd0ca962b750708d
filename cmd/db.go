package cmd

import (
	"database/sql"
	"fmt"

	"dispatch/internal/adapters/out/postgres/allocationrepo"
	"dispatch/internal/adapters/out/postgres/earningsrepo"

	_ "github.com/lib/pq"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// NewGormDB verifies the database is reachable and opens the gorm handle.
// The reachability probe goes through database/sql so a bad DSN fails fast
// with a driver error instead of surfacing on the first query.
func NewGormDB(config Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		config.DBHost, config.DBPort, config.DBUser,
		config.DBPassword, config.DBName, config.DBSslMode)

	probe, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := probe.Ping(); err != nil {
		_ = probe.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	if err := probe.Close(); err != nil {
		return nil, fmt.Errorf("close postgres probe: %w", err)
	}

	db, err := gorm.Open(gormpostgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("open gorm postgres: %w", err)
	}
	return db, nil
}

// MigrateDB creates or updates the allocation log and earnings tables.
func MigrateDB(db *gorm.DB) error {
	return db.AutoMigrate(
		&allocationrepo.AllocationDTO{},
		&earningsrepo.EarningsDTO{},
	)
}
