package migration

import (
	"context"
	"fmt"
	"strconv"

	"github.com/google/uuid"

	"github.com/example/sqlite-store/sqlitedb"
)

const (
	// optTable is the reserved configuration table. It is owned by the
	// migration subsystem; applications read and write entries through
	// VersionStore but must not redefine its semantics.
	optTable = "opts"

	// versionKey is the reserved key holding the schema version.
	versionKey = "dbversion"

	// instanceKey is the reserved key holding the database instance
	// identifier assigned at bootstrap.
	instanceKey = "dbident"
)

// VersionStore persists the current schema version and arbitrary opaque
// configuration entries in the reserved table, creating and seeding the
// table on first use.
type VersionStore struct {
	db *sqlitedb.DB
}

// NewVersionStore returns a VersionStore over db.
func NewVersionStore(db *sqlitedb.DB) *VersionStore {
	return &VersionStore{db: db}
}

// Version returns the stored schema version. A missing reserved table is
// first-run bootstrap: the table is created, seeded with version 0, and 0
// returned. Any other failure propagates; corruption is never masked as a
// fresh database.
func (s *VersionStore) Version(ctx context.Context) (int, error) {
	if err := s.ensure(ctx); err != nil {
		return 0, err
	}

	value, ok, err := s.db.QueryValue(ctx,
		"SELECT oval FROM opts WHERE okey = ?", versionKey)
	if err != nil {
		return 0, err
	}
	if !ok {
		// Table present but the seed row is gone; reseed rather than
		// failing every later lookup.
		if _, err := s.db.ExecAffected(ctx,
			"INSERT OR IGNORE INTO opts (okey, oval) VALUES (?, ?)", versionKey, 0); err != nil {
			return 0, err
		}
		return 0, nil
	}
	return parseVersion(value)
}

// GetConfig returns the stored value for key, or def when the key is
// absent.
func (s *VersionStore) GetConfig(ctx context.Context, key string, def any) (any, error) {
	if err := s.ensure(ctx); err != nil {
		return nil, err
	}
	value, ok, err := s.db.QueryValue(ctx,
		"SELECT oval FROM opts WHERE okey = ?", key)
	if err != nil {
		return nil, err
	}
	if !ok {
		return def, nil
	}
	return value, nil
}

// SetConfig upserts key to value. Earlier values are overwritten; no
// history is retained.
func (s *VersionStore) SetConfig(ctx context.Context, key string, value any) error {
	if err := s.ensure(ctx); err != nil {
		return err
	}
	_, err := s.db.ExecAffected(ctx,
		"INSERT OR REPLACE INTO opts (okey, oval) VALUES (?, ?)", key, value)
	return err
}

// InstanceID returns the identifier assigned to this database when the
// reserved table was bootstrapped.
func (s *VersionStore) InstanceID(ctx context.Context) (string, error) {
	value, err := s.GetConfig(ctx, instanceKey, "")
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%v", value), nil
}

// setVersionTx advances the stored version within the caller's
// transaction, so the version counter commits or rolls back together with
// the migration script it belongs to.
func (s *VersionStore) setVersionTx(ctx context.Context, tx *sqlitedb.Tx, version int) error {
	_, err := tx.ExecAffected(ctx,
		"INSERT OR REPLACE INTO opts (okey, oval) VALUES (?, ?)", versionKey, version)
	return err
}

// ensure bootstraps the reserved table when, and only when, it is
// genuinely absent. The existence check queries the engine catalog
// explicitly so that corruption or permission failures propagate instead
// of being treated as a fresh database.
func (s *VersionStore) ensure(ctx context.Context) error {
	_, exists, err := s.db.QueryValue(ctx,
		"SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?", optTable)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	// CREATE TABLE IF NOT EXISTS and INSERT OR IGNORE tolerate a
	// concurrent bootstrap attempt; the last writer wins on the seed
	// row.
	err = s.db.WithTx(ctx, func(tx *sqlitedb.Tx) error {
		if _, err := tx.ExecAffected(ctx,
			"CREATE TABLE IF NOT EXISTS opts (okey TEXT PRIMARY KEY, oval DEFAULT '')"); err != nil {
			return err
		}
		if _, err := tx.ExecAffected(ctx,
			"INSERT OR IGNORE INTO opts (okey, oval) VALUES (?, ?)", versionKey, 0); err != nil {
			return err
		}
		_, err := tx.ExecAffected(ctx,
			"INSERT OR IGNORE INTO opts (okey, oval) VALUES (?, ?)", instanceKey, uuid.NewString())
		return err
	})
	if err != nil {
		return &BootstrapError{Err: err}
	}
	return nil
}

// parseVersion converts a stored version value to an int. The reserved
// column has no type affinity, so the driver may hand back an integer,
// text, or a blob depending on how the value was written.
func parseVersion(value any) (int, error) {
	switch v := value.(type) {
	case int64:
		return int(v), nil
	case string:
		n, err := strconv.Atoi(v)
		if err != nil {
			return 0, fmt.Errorf("stored schema version %q is not numeric", v)
		}
		return n, nil
	case []byte:
		return parseVersion(string(v))
	default:
		return 0, fmt.Errorf("stored schema version has unexpected type %T", value)
	}
}
