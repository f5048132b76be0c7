package migration

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/example/sqlite-store/sqlitedb"
)

// Runner discovers pending migrations against the stored schema version
// and applies them one at a time, each inside its own transaction.
type Runner struct {
	db     *sqlitedb.DB
	store  *VersionStore
	logger *slog.Logger
}

// NewRunner returns a Runner over db using the default logger.
func NewRunner(db *sqlitedb.DB) *Runner {
	return NewRunnerWithLogger(db, slog.Default())
}

// NewRunnerWithLogger returns a Runner that logs progress to logger.
func NewRunnerWithLogger(db *sqlitedb.DB, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{
		db:     db,
		store:  NewVersionStore(db),
		logger: logger,
	}
}

// Store returns the version store backing this runner.
func (r *Runner) Store() *VersionStore {
	return r.store
}

// Migrate reads the current schema version, selects the supplied
// migrations with a higher version, and applies them in ascending order.
// Each migration commits together with its version advance. On failure the
// loop halts: the failed migration is rolled back, earlier ones stay
// committed, and the returned Result reflects the partial progress. A
// later call resumes at the failed version.
//
// When at least one migration was applied, the database file is compacted
// once after the loop, outside any migration transaction.
func (r *Runner) Migrate(ctx context.Context, migrations []Migration) (Result, error) {
	if err := validateSet(migrations); err != nil {
		return Result{}, err
	}

	current, err := r.store.Version(ctx)
	if err != nil {
		return Result{}, err
	}

	pending := make([]Migration, 0, len(migrations))
	for _, m := range migrations {
		if m.Version > current {
			pending = append(pending, m)
		}
	}
	sort.Slice(pending, func(i, j int) bool {
		return pending[i].Version < pending[j].Version
	})

	result := Result{From: current, To: current}
	if len(pending) == 0 {
		r.logger.Debug("schema up to date", "version", current)
		return result, nil
	}

	for _, m := range pending {
		if err := r.apply(ctx, m); err != nil {
			return result, err
		}
		result.To = m.Version
		result.Applied++
		r.logger.Info("applied migration", "version", m.Version, "source", m.Source)
	}

	// Reclaim storage once per advancing run. VACUUM cannot run inside
	// a transaction, and a failure here does not undo committed
	// migrations.
	if _, err := r.db.ExecAffected(ctx, "VACUUM"); err != nil {
		r.logger.Warn("storage reclamation failed", "error", err)
	}

	r.logger.Info("schema advanced", "from", result.From, "to", result.To, "applied", result.Applied)
	return result, nil
}

// apply runs one migration script and the version advance in a single
// transaction.
func (r *Runner) apply(ctx context.Context, m Migration) error {
	statements := splitStatements(m.SQL)
	if len(statements) == 0 {
		return &MigrationError{Version: m.Version, Source: m.Source, Err: ErrEmptyScript}
	}

	err := r.db.WithTx(ctx, func(tx *sqlitedb.Tx) error {
		for _, stmt := range statements {
			if _, err := tx.ExecAffected(ctx, stmt); err != nil {
				return err
			}
		}
		if err := r.store.setVersionTx(ctx, tx, m.Version); err != nil {
			return err
		}
		if m.Checksum != "" {
			key := fmt.Sprintf("migration_checksum_%d", m.Version)
			if _, err := tx.ExecAffected(ctx,
				"INSERT OR REPLACE INTO opts (okey, oval) VALUES (?, ?)", key, m.Checksum); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return &MigrationError{Version: m.Version, Source: m.Source, Err: err}
	}
	return nil
}

// validateSet rejects non-positive and duplicate versions before anything
// touches the database.
func validateSet(migrations []Migration) error {
	seen := make(map[int]string, len(migrations))
	for _, m := range migrations {
		if m.Version <= 0 {
			return fmt.Errorf("%w: %d (%s)", ErrInvalidVersion, m.Version, m.Source)
		}
		if prev, dup := seen[m.Version]; dup {
			return fmt.Errorf("%w: version %d supplied by both %s and %s",
				ErrDuplicateVersion, m.Version, prev, m.Source)
		}
		seen[m.Version] = m.Source
	}
	return nil
}
