// Package database manages the GORM connection for the configured driver.
// SQLite is the default for single-user local use; Postgres is supported for
// hosted deployments and uses golang-migrate for schema management.
package database

import (
	"fmt"
	"time"

	"emitrack/internal/config"
	"emitrack/internal/logger"
	"emitrack/internal/models"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Manager handles database connection and schema lifecycle.
type Manager struct {
	db     *gorm.DB
	driver string
	dsn    string
}

// NewManager opens a connection for the configured driver.
func NewManager(cfg *config.Config) (*Manager, error) {
	switch cfg.DBDriver {
	case "sqlite":
		db, err := gorm.Open(sqlite.Open(cfg.SQLitePath), &gorm.Config{})
		if err != nil {
			return nil, fmt.Errorf("failed to open sqlite database: %w", err)
		}
		return &Manager{db: db, driver: cfg.DBDriver}, nil

	case "postgres":
		dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
			cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBSSLMode)
		db, err := gorm.Open(postgres.New(postgres.Config{
			DSN:                  dsn,
			PreferSimpleProtocol: true,
		}), &gorm.Config{})
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}

		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to get underlying DB: %w", err)
		}
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetMaxOpenConns(100)
		sqlDB.SetConnMaxLifetime(time.Hour)

		pgURL := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
			cfg.DBUser, cfg.DBPassword, cfg.DBHost, cfg.DBPort, cfg.DBName, cfg.DBSSLMode)

		return &Manager{db: db, driver: cfg.DBDriver, dsn: pgURL}, nil

	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q (use sqlite or postgres)", cfg.DBDriver)
	}
}

// Migrate brings the schema up to date: SQL migrations via golang-migrate on
// Postgres, GORM auto-migration on SQLite.
func (m *Manager) Migrate() error {
	logger.Get().Info("Running database migrations...")

	if m.driver == "postgres" {
		mig, err := migrate.New("file://migrations", m.dsn)
		if err != nil {
			return fmt.Errorf("failed to create migrate instance: %w", err)
		}
		defer func() {
			srcErr, dbErr := mig.Close()
			if srcErr != nil {
				logger.Get().Warnf("migrate source close error: %v", srcErr)
			}
			if dbErr != nil {
				logger.Get().Warnf("migrate database close error: %v", dbErr)
			}
		}()

		if err := mig.Up(); err != nil && err != migrate.ErrNoChange {
			return fmt.Errorf("migration failed: %w", err)
		}
	} else {
		if err := m.db.AutoMigrate(
			&models.Loan{},
			&models.Installment{},
			&models.Modification{},
			&models.AuditLog{},
		); err != nil {
			return fmt.Errorf("auto-migration failed: %w", err)
		}
	}

	logger.Get().Info("Database migrations completed successfully")
	return nil
}

// DB returns the underlying GORM database instance.
func (m *Manager) DB() *gorm.DB {
	return m.db
}
