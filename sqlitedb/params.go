package sqlitedb

import "reflect"

// normalizeParams applies the single implicit parameter convenience: when
// exactly one argument is given and it is itself list-shaped, its elements
// become the positional parameters. Scalars are never coerced, and []byte
// stays a single blob parameter.
func normalizeParams(args []any) []any {
	if len(args) != 1 || args[0] == nil {
		return args
	}
	if _, ok := args[0].([]byte); ok {
		return args
	}
	if flat, ok := args[0].([]any); ok {
		return flat
	}

	v := reflect.ValueOf(args[0])
	if v.Kind() != reflect.Slice && v.Kind() != reflect.Array {
		return args
	}
	flat := make([]any, v.Len())
	for i := range flat {
		flat[i] = v.Index(i).Interface()
	}
	return flat
}
