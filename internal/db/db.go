package db

import (
	"fmt"
	"strings"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"bookdrive/internal/config"
)

// Supported values for config.Config.DBDriver.
const (
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Open returns a connected GORM DB instance for the configured driver.
func Open(cfg *config.Config) (*gorm.DB, error) {
	gcfg := &gorm.Config{
		Logger:         NewLogger(ParseLogLevel(cfg.LogLevel), cfg.SlowQuery),
		TranslateError: true,
	}

	switch strings.ToLower(cfg.DBDriver) {
	case DriverMySQL:
		return NewMySQL(cfg.DatabaseDSN, gcfg)
	case DriverPostgres, "postgresql":
		return NewPostgres(cfg.DatabaseDSN, gcfg)
	case DriverSQLite, "sqlite3":
		return NewSQLite(cfg.DatabaseDSN, gcfg)
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}
}

// NewMySQL returns a connected GORM DB instance.
func NewMySQL(dsn string, gcfg *gorm.Config) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(dsn), gcfg)
	if err != nil {
		return nil, fmt.Errorf("connect mysql: %w", err)
	}
	return db, nil
}

// NewPostgres returns a connected GORM DB instance.
func NewPostgres(dsn string, gcfg *gorm.Config) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  dsn,
		PreferSimpleProtocol: true,
	}), gcfg)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	return db, nil
}

// NewSQLite opens a sqlite database with foreign key enforcement switched on
// for every pooled connection.
// In-memory databases are pinned to a single connection so every query sees
// the same schema.
func NewSQLite(dsn string, gcfg *gorm.Config) (*gorm.DB, error) {
	dsn = withForeignKeys(dsn)
	db, err := gorm.Open(sqlite.Open(dsn), gcfg)
	if err != nil {
		return nil, fmt.Errorf("connect sqlite: %w", err)
	}

	if strings.Contains(dsn, ":memory:") || strings.Contains(dsn, "mode=memory") {
		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("sqlite pool: %w", err)
		}
		sqlDB.SetMaxOpenConns(1)
	}

	if err := db.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
		return nil, fmt.Errorf("enable sqlite foreign keys: %w", err)
	}
	return db, nil
}

// withForeignKeys adds the driver's _foreign_keys option unless the DSN sets it.
// A PRAGMA only reaches the connection it runs on.
func withForeignKeys(dsn string) string {
	if strings.Contains(dsn, "_foreign_keys=") || strings.Contains(dsn, "_fk=") {
		return dsn
	}
	if strings.Contains(dsn, "?") {
		return dsn + "&_foreign_keys=on"
	}
	return dsn + "?_foreign_keys=on"
}

// NewMemory opens a private in-memory sqlite database. Used by tests and
// throwaway local runs.
func NewMemory() (*gorm.DB, error) {
	return NewSQLite("file::memory:?_foreign_keys=on", &gorm.Config{
		Logger:         gormLogger.Discard,
		TranslateError: true,
	})
}
