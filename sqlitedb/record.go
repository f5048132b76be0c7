package sqlitedb

// Record is one row shaped as an ordered column to value mapping. Column
// order follows the result set.
type Record struct {
	columns []string
	values  map[string]any
}

// newRecord builds a Record from parallel column and value slices.
func newRecord(columns []string, values []any) *Record {
	byName := make(map[string]any, len(columns))
	for i, col := range columns {
		byName[col] = values[i]
	}
	return &Record{columns: columns, values: byName}
}

// Columns returns the column names in result order.
func (r *Record) Columns() []string {
	return r.columns
}

// Len returns the number of columns.
func (r *Record) Len() int {
	return len(r.columns)
}

// Get returns the value stored under the named column. The second return
// value reports whether the column exists in the record.
func (r *Record) Get(column string) (any, bool) {
	v, ok := r.values[column]
	return v, ok
}

// Value returns the value of the i-th column in result order. It panics if
// i is out of range, mirroring slice indexing.
func (r *Record) Value(i int) any {
	return r.values[r.columns[i]]
}

// KeyValue is one entry of an ordered key to value mapping produced by
// QueryKeyValueList.
type KeyValue struct {
	Key   any
	Value any
}
