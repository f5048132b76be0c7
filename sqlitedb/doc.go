// Package sqlitedb provides a thin query facade over an embedded SQLite
// database owned by a single process.
//
// The package wraps database/sql with:
//
//   - Connection setup with safe pragma defaults (busy timeout, foreign
//     keys, best-effort WAL journaling)
//   - Parameter normalization with positional ? placeholders
//   - Result shaping helpers that return whole result sets, single
//     records, single values, key/value pairs, or value lists
//   - An insert-or-replace / insert-or-ignore record writer with
//     readback of the persisted row
//
// A DB is backed by exactly one underlying connection and is intended for
// synchronous use by a single writer. The last-inserted-rowid contract
// used by Insert and SaveRecord is scoped to that connection; sharing a DB
// between concurrently writing goroutines requires external serialization.
//
// Schema evolution for databases opened with this package lives in the
// nested migration package.
package sqlitedb
