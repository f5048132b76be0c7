package sqlitedb

import (
	"errors"
	"fmt"

	sqlite "modernc.org/sqlite"
)

// StatementError reports a failed statement against the engine. Preparation
// and execution failures are unified into this one kind; callers never see a
// different error type depending on which phase failed.
type StatementError struct {
	Query   string // statement that failed
	Message string // engine message
	Code    int    // engine result code, 0 when unavailable
	Err     error  // underlying driver error
}

// Error implements the error interface.
func (e *StatementError) Error() string {
	if e.Code != 0 {
		return fmt.Sprintf("sqlitedb: statement failed (code %d): %s", e.Code, e.Message)
	}
	return fmt.Sprintf("sqlitedb: statement failed: %s", e.Message)
}

// Unwrap returns the underlying driver error.
func (e *StatementError) Unwrap() error {
	return e.Err
}

// newStatementError wraps a driver error with the statement that caused it,
// preserving the engine result code when the driver exposes one.
func newStatementError(query string, err error) error {
	if err == nil {
		return nil
	}
	stmtErr := &StatementError{
		Query:   query,
		Message: err.Error(),
		Err:     err,
	}
	var driverErr *sqlite.Error
	if errors.As(err, &driverErr) {
		stmtErr.Code = driverErr.Code()
	}
	return stmtErr
}

// ShapeError reports that a shaping query's column-count precondition was
// violated. The result is never silently truncated to fit.
type ShapeError struct {
	Op   string // operation whose precondition failed
	Want int    // required column count
	Got  int    // actual column count
}

// Error implements the error interface.
func (e *ShapeError) Error() string {
	return fmt.Sprintf("sqlitedb: %s requires %d result columns, got %d", e.Op, e.Want, e.Got)
}
