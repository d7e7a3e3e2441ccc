package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"bookdrive/internal/auth"
	"bookdrive/internal/db"
	"bookdrive/internal/migration"
	"bookdrive/internal/repository"
)

// newTestDB opens a private in-memory database with the full schema applied.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	gormDB, err := db.NewMemory()
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := gormDB.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	_, err = migration.NewRunner(gormDB, migration.History).Migrate(context.Background(), "")
	require.NoError(t, err)
	return gormDB
}

func newTestStore(t *testing.T) repository.Store {
	t.Helper()
	return repository.NewStore(newTestDB(t))
}

func testHasher() auth.PasswordHasher {
	return auth.NewBcryptHasher(bcrypt.MinCost)
}
