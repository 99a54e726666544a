package db

import (
	"path/filepath"
	"testing"

	"github.com/monocle-dev/holdings/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDialector(t *testing.T) {
	cases := []struct {
		driver string
		name   string
	}{
		{"", "postgres"},
		{"postgres", "postgres"},
		{"postgresql", "postgres"},
		{"mysql", "mysql"},
		{"sqlite", "sqlite"},
		{"sqlite3", "sqlite"},
	}

	for _, tc := range cases {
		t.Run(tc.driver, func(t *testing.T) {
			dialector, err := Dialector(tc.driver, "dsn")
			require.NoError(t, err)
			assert.Equal(t, tc.name, dialector.Name())
		})
	}

	_, err := Dialector("oracle", "dsn")
	require.Error(t, err)
}

func TestSQLiteEnforcesForeignKeys(t *testing.T) {
	previous := DB
	t.Cleanup(func() { DB = previous })

	require.NoError(t, ConnectDatabase("sqlite", filepath.Join(t.TempDir(), "holdings.db")))
	t.Cleanup(func() {
		if sqlDB, err := DB.DB(); err == nil {
			sqlDB.Close()
		}
	})
	require.NoError(t, MigrateDatabase())

	var enabled int
	require.NoError(t, DB.Raw("PRAGMA foreign_keys").Scan(&enabled).Error)
	assert.Equal(t, 1, enabled)

	orphan := models.Investment{UserID: 42, Ticker: "TSLA"}
	assert.Error(t, DB.Create(&orphan).Error)

	for _, table := range []string{"users", "investments", "tags", "activities", "investment_tags"} {
		assert.True(t, DB.Migrator().HasTable(table), table)
	}
}
