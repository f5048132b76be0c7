package sqlitedb

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// executor is the subset of database/sql shared by *sql.DB and *sql.Tx.
// Every facade operation runs through it, so queries inside and outside
// transactions use the same parameter binding and error normalization.
type executor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// session carries the facade methods. It is embedded by both DB and Tx so
// the full query surface is available in and out of transactions.
type session struct {
	ex executor
}

// DB is a handle to an open SQLite database. It is backed by a single
// underlying connection used synchronously.
type DB struct {
	session
	sql *sql.DB
}

// Tx exposes the facade methods within an open transaction.
type Tx struct {
	session
	tx *sql.Tx
}

// Open opens the database described by cfg and applies its pragmas. The
// connection pool is limited to one connection so that the engine's
// last-inserted-rowid facility stays scoped to the caller's session.
func Open(cfg Config) (*DB, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("sqlitedb: open %s: %w", cfg.Path, err)
	}

	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	pragmas := []string{
		fmt.Sprintf("PRAGMA busy_timeout = %d", cfg.BusyTimeout.Milliseconds()),
	}
	if cfg.ForeignKeys {
		pragmas = append(pragmas, "PRAGMA foreign_keys = ON")
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("sqlitedb: set %s: %w", pragma, err)
		}
	}

	// Journal switching can fail on read-only media or shared setups;
	// running without WAL is degraded but functional.
	if cfg.JournalMode != "" {
		_, _ = db.Exec(fmt.Sprintf("PRAGMA journal_mode = %s", cfg.JournalMode))
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlitedb: ping %s: %w", cfg.Path, err)
	}

	return &DB{session: session{ex: db}, sql: db}, nil
}

// Close releases the underlying connection.
func (db *DB) Close() error {
	if db.sql != nil {
		return db.sql.Close()
	}
	return nil
}

// Ping verifies the database is reachable.
func (db *DB) Ping(ctx context.Context) error {
	return db.sql.PingContext(ctx)
}

// TxFunc is executed within a transaction by WithTx.
type TxFunc func(tx *Tx) error

// WithTx runs fn inside a transaction. If fn returns an error the
// transaction is rolled back and the error returned; otherwise the
// transaction is committed.
func (db *DB) WithTx(ctx context.Context, fn TxFunc) error {
	tx, err := db.sql.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("sqlitedb: begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(&Tx{session: session{ex: tx}, tx: tx}); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("sqlitedb: transaction failed (rollback error: %v): %w", rbErr, err)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("sqlitedb: commit transaction: %w", err)
	}
	return nil
}
