package sqlitedb_test

import (
	"context"
	"errors"
	"testing"

	"github.com/example/sqlite-store/internal/testfixtures"
	"github.com/example/sqlite-store/sqlitedb"
)

func newAccountsDB(t *testing.T) *sqlitedb.DB {
	t.Helper()

	db := testfixtures.NewHarness(t)
	if _, err := db.ExecAffected(context.Background(), `
		CREATE TABLE accounts (
			id INTEGER PRIMARY KEY,
			login TEXT NOT NULL UNIQUE,
			role TEXT NOT NULL DEFAULT 'member'
		)`); err != nil {
		t.Fatalf("failed to create table: %v", err)
	}
	return db
}

func TestSaveRecord_InsertAndReadback(t *testing.T) {
	db := newAccountsDB(t)
	ctx := context.Background()

	record, err := db.SaveRecord(ctx, "accounts", map[string]any{"login": "alice"}, sqlitedb.ConflictReplace)
	if err != nil {
		t.Fatalf("SaveRecord failed: %v", err)
	}
	if record == nil {
		t.Fatal("expected the persisted record, got nil")
	}

	// The readback reflects engine-applied defaults.
	if role, _ := record.Get("role"); role != "member" {
		t.Errorf("role = %v, want default member", role)
	}
	if id, _ := record.Get("id"); id != int64(1) {
		t.Errorf("id = %v, want 1", id)
	}
}

func TestSaveRecord_ReplaceOverwritesConflictingRow(t *testing.T) {
	db := newAccountsDB(t)
	ctx := context.Background()

	if _, err := db.SaveRecord(ctx, "accounts",
		map[string]any{"id": 1, "login": "alice", "role": "admin"}, sqlitedb.ConflictReplace); err != nil {
		t.Fatalf("SaveRecord failed: %v", err)
	}

	record, err := db.SaveRecord(ctx, "accounts",
		map[string]any{"login": "alice"}, sqlitedb.ConflictReplace)
	if err != nil {
		t.Fatalf("SaveRecord failed: %v", err)
	}
	if record == nil {
		t.Fatal("expected the replacement record, got nil")
	}

	// Full row replacement: the role falls back to the column default
	// instead of keeping the replaced row's value.
	if role, _ := record.Get("role"); role != "member" {
		t.Errorf("role = %v, want member after full replacement", role)
	}

	n, _, err := db.QueryValue(ctx, "SELECT COUNT(*) FROM accounts")
	if err != nil {
		t.Fatalf("QueryValue failed: %v", err)
	}
	if n != int64(1) {
		t.Errorf("expected a single row after replace, got %v", n)
	}
}

func TestSaveRecord_IgnoreConflictReturnsNil(t *testing.T) {
	db := newAccountsDB(t)
	ctx := context.Background()

	if _, err := db.SaveRecord(ctx, "accounts",
		map[string]any{"login": "alice", "role": "admin"}, sqlitedb.ConflictReplace); err != nil {
		t.Fatalf("SaveRecord failed: %v", err)
	}

	record, err := db.SaveRecord(ctx, "accounts",
		map[string]any{"login": "alice", "role": "guest"}, sqlitedb.ConflictIgnore)
	if err != nil {
		t.Fatalf("SaveRecord failed: %v", err)
	}
	if record != nil {
		t.Fatalf("expected nil for an ignored conflict, got %+v", record)
	}

	// The original row is untouched.
	role, _, err := db.QueryValue(ctx, "SELECT role FROM accounts WHERE login = ?", "alice")
	if err != nil {
		t.Fatalf("QueryValue failed: %v", err)
	}
	if role != "admin" {
		t.Errorf("role = %v, want original admin", role)
	}
}

func TestSaveRecord_RejectsInvalidInput(t *testing.T) {
	db := newAccountsDB(t)
	ctx := context.Background()

	if _, err := db.SaveRecord(ctx, "accounts", nil, sqlitedb.ConflictReplace); err == nil {
		t.Error("expected error for empty data")
	}
	if _, err := db.SaveRecord(ctx, "accounts; DROP TABLE accounts",
		map[string]any{"login": "x"}, sqlitedb.ConflictReplace); err == nil {
		t.Error("expected error for invalid table name")
	}
	if _, err := db.SaveRecord(ctx, "accounts",
		map[string]any{`login"`: "x"}, sqlitedb.ConflictReplace); err == nil {
		t.Error("expected error for invalid column name")
	}
}

func TestSaveRecord_NonUniquenessConstraintPropagates(t *testing.T) {
	db := newAccountsDB(t)
	ctx := context.Background()

	// A NOT NULL violation on a column without a default aborts even in
	// replace mode and must surface.
	_, err := db.SaveRecord(ctx, "accounts", map[string]any{"login": nil}, sqlitedb.ConflictReplace)
	if err == nil {
		t.Fatal("expected constraint error")
	}
	var stmtErr *sqlitedb.StatementError
	if !errors.As(err, &stmtErr) {
		t.Fatalf("expected StatementError, got %v", err)
	}
}
