package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"bookdrive/internal/auth"
	"bookdrive/internal/cache"
	"bookdrive/internal/config"
	"bookdrive/internal/db"
	"bookdrive/internal/migration"
	"bookdrive/internal/repository"
	"bookdrive/internal/service"
)

var (
	driverFlag string
	dsnFlag    string
)

var rootCmd = &cobra.Command{
	Use:   "bookdrive",
	Short: "Manage the bookdrive database, accounts and catalog",
	Long: `bookdrive applies schema migrations and manages users, sponsors and books.

Examples:

  bookdrive migrate
  bookdrive status
  bookdrive createsuperuser --email admin@example.com --password secret
  bookdrive seed -f fixtures.yaml
`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&driverFlag, "driver", "", "database driver: mysql, postgres or sqlite (overrides DB_DRIVER)")
	rootCmd.PersistentFlags().StringVar(&dsnFlag, "dsn", "", "database DSN (overrides DATABASE_DSN)")

	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(rollbackCmd)
	rootCmd.AddCommand(createUserCmd)
	rootCmd.AddCommand(createSuperuserCmd)
	rootCmd.AddCommand(seedCmd)
}

// app holds the wired dependencies shared by the subcommands.
type app struct {
	cfg    *config.Config
	db     *gorm.DB
	cache  *cache.Client
	store  repository.Store
	runner *migration.Runner
}

func newApp() (*app, error) {
	cfg := config.Load()
	if driverFlag != "" {
		cfg.DBDriver = driverFlag
	}
	if dsnFlag != "" {
		cfg.DatabaseDSN = dsnFlag
	}

	gormDB, err := db.Open(cfg)
	if err != nil {
		return nil, fmt.Errorf("database init: %w", err)
	}

	return &app{
		cfg:    cfg,
		db:     gormDB,
		cache:  cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB),
		store:  repository.NewStore(gormDB),
		runner: migration.NewRunner(gormDB, migration.History),
	}, nil
}

func (a *app) users() service.UserService {
	return service.NewUserService(a.store.Users(), a.cache, auth.NewBcryptHasher(a.cfg.BcryptCost))
}

func (a *app) Close() {
	_ = a.cache.Close()
	if sqlDB, err := a.db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
