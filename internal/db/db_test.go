package db

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

func TestWithForeignKeys(t *testing.T) {
	tests := map[string]string{
		"bookdrive.db":                   "bookdrive.db?_foreign_keys=on",
		"file:bookdrive.db?cache=shared": "file:bookdrive.db?cache=shared&_foreign_keys=on",
		"file::memory:?_foreign_keys=on": "file::memory:?_foreign_keys=on",
		"file:bookdrive.db?_fk=1":        "file:bookdrive.db?_fk=1",
	}
	for in, want := range tests {
		assert.Equal(t, want, withForeignKeys(in), in)
	}
}

func TestNewSQLite_FileEnforcesForeignKeysOnEveryConnection(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bookdrive.db")
	gormDB, err := NewSQLite(path, &gorm.Config{Logger: gormLogger.Discard})
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := gormDB.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	// hold one connection so the next query opens another
	tx := gormDB.Begin()
	require.NoError(t, tx.Error)
	defer tx.Rollback()

	var held, other int
	require.NoError(t, tx.Raw("PRAGMA foreign_keys").Scan(&held).Error)
	require.NoError(t, gormDB.Raw("PRAGMA foreign_keys").Scan(&other).Error)

	assert.Equal(t, 1, held)
	assert.Equal(t, 1, other)
}
