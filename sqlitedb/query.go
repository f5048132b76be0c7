package sqlitedb

import (
	"context"
	"fmt"
)

// QueryAll runs query and returns every row as a Record. The result is
// never nil on success; a query matching nothing yields an empty slice.
func (s session) QueryAll(ctx context.Context, query string, args ...any) ([]Record, error) {
	rows, err := s.ex.QueryContext(ctx, query, normalizeParams(args)...)
	if err != nil {
		return nil, newStatementError(query, err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, newStatementError(query, err)
	}

	records := make([]Record, 0)
	for rows.Next() {
		values, err := scanValues(rows, len(columns))
		if err != nil {
			return nil, newStatementError(query, err)
		}
		records = append(records, *newRecord(columns, values))
	}
	if err := rows.Err(); err != nil {
		return nil, newStatementError(query, err)
	}
	return records, nil
}

// QueryRecord runs query and returns its first row, or nil when the result
// has zero rows or zero columns. A nil Record is never an empty one.
func (s session) QueryRecord(ctx context.Context, query string, args ...any) (*Record, error) {
	rows, err := s.ex.QueryContext(ctx, query, normalizeParams(args)...)
	if err != nil {
		return nil, newStatementError(query, err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, newStatementError(query, err)
	}
	if len(columns) == 0 || !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, newStatementError(query, err)
		}
		return nil, nil
	}

	values, err := scanValues(rows, len(columns))
	if err != nil {
		return nil, newStatementError(query, err)
	}
	return newRecord(columns, values), nil
}

// QueryValue runs query and returns the first column of the first row. The
// second return value is false when the result has zero rows; a stored NULL
// is returned as a nil value with ok set to true.
func (s session) QueryValue(ctx context.Context, query string, args ...any) (any, bool, error) {
	rows, err := s.ex.QueryContext(ctx, query, normalizeParams(args)...)
	if err != nil {
		return nil, false, newStatementError(query, err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, false, newStatementError(query, err)
	}
	if len(columns) == 0 || !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, false, newStatementError(query, err)
		}
		return nil, false, nil
	}

	values, err := scanValues(rows, len(columns))
	if err != nil {
		return nil, false, newStatementError(query, err)
	}
	return values[0], true, nil
}

// QueryKeyValueList runs query, which must return exactly two columns, and
// builds an ordered key to value list across all rows. A result with any
// other column count fails with a ShapeError; an empty result yields an
// empty list.
func (s session) QueryKeyValueList(ctx context.Context, query string, args ...any) ([]KeyValue, error) {
	rows, err := s.ex.QueryContext(ctx, query, normalizeParams(args)...)
	if err != nil {
		return nil, newStatementError(query, err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, newStatementError(query, err)
	}
	if len(columns) != 2 {
		return nil, &ShapeError{Op: "QueryKeyValueList", Want: 2, Got: len(columns)}
	}

	pairs := make([]KeyValue, 0)
	for rows.Next() {
		values, err := scanValues(rows, 2)
		if err != nil {
			return nil, newStatementError(query, err)
		}
		pairs = append(pairs, KeyValue{Key: values[0], Value: values[1]})
	}
	if err := rows.Err(); err != nil {
		return nil, newStatementError(query, err)
	}
	return pairs, nil
}

// QueryValueList runs query, which must return exactly one column, and
// returns that column's values across all rows in order. Any other column
// count fails with a ShapeError.
func (s session) QueryValueList(ctx context.Context, query string, args ...any) ([]any, error) {
	rows, err := s.ex.QueryContext(ctx, query, normalizeParams(args)...)
	if err != nil {
		return nil, newStatementError(query, err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, newStatementError(query, err)
	}
	if len(columns) != 1 {
		return nil, &ShapeError{Op: "QueryValueList", Want: 1, Got: len(columns)}
	}

	values := make([]any, 0)
	for rows.Next() {
		row, err := scanValues(rows, 1)
		if err != nil {
			return nil, newStatementError(query, err)
		}
		values = append(values, row[0])
	}
	if err := rows.Err(); err != nil {
		return nil, newStatementError(query, err)
	}
	return values, nil
}

// rowScanner matches *sql.Rows for scanning one materialized row.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanValues scans the current row into a slice of driver values.
func scanValues(row rowScanner, n int) ([]any, error) {
	values := make([]any, n)
	targets := make([]any, n)
	for i := range values {
		targets[i] = &values[i]
	}
	if err := row.Scan(targets...); err != nil {
		return nil, fmt.Errorf("scan row: %w", err)
	}
	return values, nil
}
