package migration

import (
	"errors"
	"fmt"
)

var (
	// ErrDuplicateVersion indicates that two migrations carry the same
	// version. Duplicates are a data-integrity defect and are rejected,
	// never resolved by letting one of them win.
	ErrDuplicateVersion = errors.New("duplicate migration version")

	// ErrInvalidVersion indicates a migration version that is not a
	// positive integer.
	ErrInvalidVersion = errors.New("invalid migration version")

	// ErrEmptyScript indicates a migration whose script contains no
	// executable statements.
	ErrEmptyScript = errors.New("migration script is empty")

	// ErrInvalidFilename indicates a .sql file that does not follow the
	// {version}_{name}.sql naming convention.
	ErrInvalidFilename = errors.New("invalid migration filename")
)

// MigrationError wraps a failure while applying one migration. The stored
// schema version is left at the last successfully committed value, so a
// later run resumes at the failed migration.
type MigrationError struct {
	Version int    // version of the migration that failed
	Source  string // origin identifier, typically a file name
	Err     error  // underlying error
}

// Error implements the error interface.
func (e *MigrationError) Error() string {
	if e.Source != "" {
		return fmt.Sprintf("migration %d (%s): %v", e.Version, e.Source, e.Err)
	}
	return fmt.Sprintf("migration %d: %v", e.Version, e.Err)
}

// Unwrap returns the underlying error.
func (e *MigrationError) Unwrap() error {
	return e.Err
}

// Is reports whether the underlying error matches target.
func (e *MigrationError) Is(target error) bool {
	return errors.Is(e.Err, target)
}

// BootstrapError wraps a failure to create or seed the reserved
// configuration table on first use. It is only raised when the table was
// genuinely absent; any other version-lookup failure propagates as itself.
type BootstrapError struct {
	Err error
}

// Error implements the error interface.
func (e *BootstrapError) Error() string {
	return fmt.Sprintf("bootstrap reserved configuration table: %v", e.Err)
}

// Unwrap returns the underlying error.
func (e *BootstrapError) Unwrap() error {
	return e.Err
}
