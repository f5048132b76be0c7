// Package testfixtures provides temporary-database helpers for
// integration-style tests.
package testfixtures

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/example/sqlite-store/sqlitedb"
	"github.com/example/sqlite-store/sqlitedb/migration"
)

// NewHarness opens a database in a temporary file and registers cleanup
// with the provided testing.TB.
func NewHarness(tb testing.TB) *sqlitedb.DB {
	tb.Helper()

	path := filepath.Join(tb.TempDir(), "store.db")
	db, err := sqlitedb.Open(sqlitedb.DefaultConfig(path))
	if err != nil {
		tb.Fatalf("failed to open database: %v", err)
	}
	tb.Cleanup(func() {
		_ = db.Close()
	})
	return db
}

// MigrateHarness opens a temporary database and applies the given
// migrations, failing the test if any step does not succeed.
func MigrateHarness(tb testing.TB, migrations []migration.Migration) *sqlitedb.DB {
	tb.Helper()

	db := NewHarness(tb)
	if _, err := migration.NewRunner(db).Migrate(context.Background(), migrations); err != nil {
		tb.Fatalf("failed to apply migrations: %v", err)
	}
	return db
}
