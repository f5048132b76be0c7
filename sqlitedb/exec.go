package sqlitedb

import (
	"context"
	"fmt"
	"strings"
)

// ExecAffected runs a mutating statement and returns the number of rows it
// affected.
func (s session) ExecAffected(ctx context.Context, query string, args ...any) (int64, error) {
	res, err := s.ex.ExecContext(ctx, query, normalizeParams(args)...)
	if err != nil {
		return 0, newStatementError(query, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("sqlitedb: rows affected: %w", err)
	}
	return affected, nil
}

// Insert runs an insert statement and returns the engine-assigned rowid of
// the new row. The rowid is scoped to this handle's connection.
func (s session) Insert(ctx context.Context, query string, args ...any) (int64, error) {
	res, err := s.ex.ExecContext(ctx, query, normalizeParams(args)...)
	if err != nil {
		return 0, newStatementError(query, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("sqlitedb: last insert id: %w", err)
	}
	return id, nil
}

// Exec runs a mutating statement under the compatibility contract: when the
// statement begins with the INSERT keyword and affected at least one row,
// the return value is the new row's engine-assigned identifier; otherwise
// it is the affected-row count. Callers with a known intent should prefer
// ExecAffected or Insert.
func (s session) Exec(ctx context.Context, query string, args ...any) (int64, error) {
	res, err := s.ex.ExecContext(ctx, query, normalizeParams(args)...)
	if err != nil {
		return 0, newStatementError(query, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("sqlitedb: rows affected: %w", err)
	}
	if affected > 0 && isInsert(query) {
		id, err := res.LastInsertId()
		if err != nil {
			return 0, fmt.Errorf("sqlitedb: last insert id: %w", err)
		}
		return id, nil
	}
	return affected, nil
}

// isInsert reports whether the statement syntactically begins with the
// INSERT keyword.
func isInsert(query string) bool {
	trimmed := strings.TrimSpace(query)
	if len(trimmed) < len("INSERT") {
		return false
	}
	return strings.EqualFold(trimmed[:len("INSERT")], "INSERT")
}
