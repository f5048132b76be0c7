package sqlitedb

import (
	"fmt"
	"time"
)

// Config holds connection configuration for an embedded SQLite database.
type Config struct {
	// Path is the database file path, or ":memory:" for an in-memory
	// database.
	Path string

	// BusyTimeout sets how long a statement waits for a lock before
	// failing with a busy error. Callers decide whether to retry;
	// nothing in this package retries automatically.
	BusyTimeout time.Duration

	// ForeignKeys enables foreign key constraint enforcement.
	ForeignKeys bool

	// JournalMode sets the SQLite journal mode. WAL allows concurrent
	// readers while a single writer holds a transaction. Enabling the
	// journal mode is best-effort: a failure to switch is ignored.
	JournalMode string
}

// DefaultConfig returns a configuration with safe defaults for the given
// database path.
func DefaultConfig(path string) Config {
	return Config{
		Path:        path,
		BusyTimeout: 10 * time.Second,
		ForeignKeys: true,
		JournalMode: "WAL",
	}
}

// validate reports configuration errors before any connection is opened.
func (c Config) validate() error {
	if c.Path == "" {
		return fmt.Errorf("sqlitedb: database path cannot be empty")
	}
	if c.BusyTimeout < 0 {
		return fmt.Errorf("sqlitedb: busy timeout cannot be negative")
	}
	switch c.JournalMode {
	case "", "DELETE", "TRUNCATE", "PERSIST", "MEMORY", "WAL", "OFF":
		return nil
	default:
		return fmt.Errorf("sqlitedb: invalid journal mode %q", c.JournalMode)
	}
}
