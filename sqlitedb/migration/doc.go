// Package migration evolves the schema of a sqlitedb database through
// ordered, versioned migration scripts.
//
// The package tracks the applied schema version in a reserved configuration
// table owned by this subsystem. Each pending migration is applied inside
// its own transaction that also advances the stored version, so a script's
// effects and the version counter are atomic together: a failure rolls back
// exactly one version step and leaves earlier steps committed.
//
// Migration scripts are supplied as descriptors, typically discovered with
// ScanDir or ScanFS from files named {version}_{name}.sql (for example
// "0001_initial_schema.sql"). Duplicate versions are rejected at discovery
// time, never silently collapsed.
//
// Example:
//
//	db, err := sqlitedb.Open(sqlitedb.DefaultConfig("app.db"))
//	if err != nil {
//		return err
//	}
//	migrations, err := migration.ScanDir("migrations")
//	if err != nil {
//		return err
//	}
//	result, err := migration.NewRunner(db).Migrate(ctx, migrations)
package migration
