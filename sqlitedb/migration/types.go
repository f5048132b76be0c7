package migration

// Migration is one ordered unit of schema change.
type Migration struct {
	// Version is the positive ordinal this migration advances the
	// schema to. Versions must be unique within a run.
	Version int

	// SQL is the full script source and may contain multiple
	// statements.
	SQL string

	// Source identifies where the script came from, typically a file
	// name. It is used in diagnostics only.
	Source string

	// Checksum is an optional content fingerprint of the script,
	// recorded in the reserved table when the migration is applied.
	Checksum string
}

// Result describes the outcome of one Migrate call.
type Result struct {
	// From is the schema version before the call.
	From int

	// To is the schema version after the call. Equal to From when
	// nothing was pending.
	To int

	// Applied is the number of migrations committed during the call.
	Applied int
}

// UpToDate reports whether the call found nothing pending.
func (r Result) UpToDate() bool {
	return r.Applied == 0
}
