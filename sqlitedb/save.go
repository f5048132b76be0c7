package sqlitedb

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// ConflictMode controls how SaveRecord behaves when the new row violates a
// uniqueness constraint.
type ConflictMode int

const (
	// ConflictReplace replaces the conflicting row with the new values
	// (full row replacement, not a partial update).
	ConflictReplace ConflictMode = iota

	// ConflictIgnore turns the insert into a no-op when it would
	// conflict.
	ConflictIgnore
)

// identifierPattern restricts table and column names to plain identifiers.
var identifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// SaveRecord inserts data into table as one row, resolving uniqueness
// conflicts according to mode. On success the persisted row is read back by
// its rowid and returned in full, so engine-applied defaults and trigger
// effects are reflected. When mode is ConflictIgnore and the insert was a
// no-op, SaveRecord returns nil without reading anything back.
//
// Columns are emitted in sorted name order, so the generated statement is
// deterministic for a given column set.
func (s session) SaveRecord(ctx context.Context, table string, data map[string]any, mode ConflictMode) (*Record, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("sqlitedb: SaveRecord requires at least one column")
	}
	if !identifierPattern.MatchString(table) {
		return nil, fmt.Errorf("sqlitedb: invalid table name %q", table)
	}

	columns := make([]string, 0, len(data))
	for col := range data {
		if !identifierPattern.MatchString(col) {
			return nil, fmt.Errorf("sqlitedb: invalid column name %q", col)
		}
		columns = append(columns, col)
	}
	sort.Strings(columns)

	quoted := make([]string, len(columns))
	placeholders := make([]string, len(columns))
	args := make([]any, len(columns))
	for i, col := range columns {
		quoted[i] = `"` + col + `"`
		placeholders[i] = "?"
		args[i] = data[col]
	}

	verb := "INSERT OR REPLACE"
	if mode == ConflictIgnore {
		verb = "INSERT OR IGNORE"
	}
	query := fmt.Sprintf(`%s INTO "%s" (%s) VALUES (%s)`,
		verb, table, strings.Join(quoted, ", "), strings.Join(placeholders, ", "))

	res, err := s.ex.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, newStatementError(query, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("sqlitedb: rows affected: %w", err)
	}
	if affected == 0 {
		return nil, nil
	}

	rowid, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("sqlitedb: last insert id: %w", err)
	}
	return s.QueryRecord(ctx, fmt.Sprintf(`SELECT * FROM "%s" WHERE rowid = ?`, table), rowid)
}
