package migration_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/example/sqlite-store/sqlitedb/migration"
)

func writeMigrationFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
}

func TestScanDir(t *testing.T) {
	dir := t.TempDir()
	writeMigrationFile(t, dir, "0002_groups.sql", "CREATE TABLE groups (id INTEGER);")
	writeMigrationFile(t, dir, "0001_contacts.sql", "CREATE TABLE contacts (id INTEGER);")
	writeMigrationFile(t, dir, "0010_extra.sql", "CREATE TABLE extra (id INTEGER);")
	writeMigrationFile(t, dir, "README.md", "not a migration")

	migrations, err := migration.ScanDir(dir)
	if err != nil {
		t.Fatalf("ScanDir failed: %v", err)
	}

	wantVersions := []int{1, 2, 10}
	if len(migrations) != len(wantVersions) {
		t.Fatalf("expected %d migrations, got %d", len(wantVersions), len(migrations))
	}
	for i, want := range wantVersions {
		if migrations[i].Version != want {
			t.Errorf("migration %d version = %d, want %d", i, migrations[i].Version, want)
		}
	}
	if migrations[0].Source != "0001_contacts.sql" {
		t.Errorf("source = %q, want 0001_contacts.sql", migrations[0].Source)
	}
	if migrations[0].Checksum == "" {
		t.Error("expected a content checksum")
	}
	if migrations[0].Checksum == migrations[1].Checksum {
		t.Error("expected distinct checksums for distinct scripts")
	}
}

func TestScanDir_DuplicateVersions(t *testing.T) {
	dir := t.TempDir()
	writeMigrationFile(t, dir, "1_first.sql", "CREATE TABLE a (id INTEGER);")
	writeMigrationFile(t, dir, "01_second.sql", "CREATE TABLE b (id INTEGER);")

	_, err := migration.ScanDir(dir)
	if !errors.Is(err, migration.ErrDuplicateVersion) {
		t.Fatalf("expected ErrDuplicateVersion, got %v", err)
	}
}

func TestScanDir_InvalidFilename(t *testing.T) {
	dir := t.TempDir()
	writeMigrationFile(t, dir, "schema.sql", "CREATE TABLE a (id INTEGER);")

	_, err := migration.ScanDir(dir)
	if !errors.Is(err, migration.ErrInvalidFilename) {
		t.Fatalf("expected ErrInvalidFilename, got %v", err)
	}
}

func TestScanDir_EmptyScript(t *testing.T) {
	dir := t.TempDir()
	writeMigrationFile(t, dir, "0001_empty.sql", "   \n")

	_, err := migration.ScanDir(dir)
	if !errors.Is(err, migration.ErrEmptyScript) {
		t.Fatalf("expected ErrEmptyScript, got %v", err)
	}
}

func TestScanDir_MissingDirectory(t *testing.T) {
	if _, err := migration.ScanDir(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Fatal("expected an error for a missing directory")
	}
}

func TestScanFS(t *testing.T) {
	fsys := fstest.MapFS{
		"migrations/0001_init.sql": &fstest.MapFile{Data: []byte("CREATE TABLE a (id INTEGER);")},
		"migrations/0002_data.sql": &fstest.MapFile{Data: []byte("INSERT INTO a VALUES (1);")},
		"migrations/notes.txt":     &fstest.MapFile{Data: []byte("ignored")},
	}

	migrations, err := migration.ScanFS(fsys, "migrations")
	if err != nil {
		t.Fatalf("ScanFS failed: %v", err)
	}
	if len(migrations) != 2 {
		t.Fatalf("expected 2 migrations, got %d", len(migrations))
	}
	if migrations[0].Version != 1 || migrations[1].Version != 2 {
		t.Errorf("versions = %d, %d; want 1, 2", migrations[0].Version, migrations[1].Version)
	}
}
