package persistence

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/erp/ledger/internal/infrastructure/config"
	"github.com/erp/ledger/tests/testutil"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"gorm.io/gorm"
)

// newTestDatabase opens a private in-memory SQLite database with the schema applied.
func newTestDatabase(t *testing.T) *Database {
	t.Helper()
	cfg := &config.Config{
		Database: config.DatabaseConfig{Driver: DriverSQLite, Path: ":memory:", LogLevel: "silent"},
	}
	db, err := NewDatabase(cfg, zaptest.NewLogger(t))
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate())
	t.Cleanup(func() { _ = db.Close() })
	return db
}

// newSeededDatabase is newTestDatabase plus the default master data.
func newSeededDatabase(t *testing.T) (*Database, *SeedResult) {
	t.Helper()
	db := newTestDatabase(t)
	seed, err := NewSeeder(db.DB, nil).Seed(context.Background())
	require.NoError(t, err)
	return db, seed
}

// newMockDB wires gorm's postgres dialector to sqlmock so tests can assert
// on the generated SQL.
func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	m := testutil.NewMockDB(t)
	t.Cleanup(func() { _ = m.Close() })
	return m.DB, m.Mock, m.SqlDB
}
