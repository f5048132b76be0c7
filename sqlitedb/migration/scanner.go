package migration

import (
	"encoding/hex"
	"fmt"
	"io/fs"
	"os"
	"path"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/crypto/blake2b"
)

// filenamePattern is the required naming convention for migration files:
// leading digits denote the version, e.g. "0001_initial_schema.sql" is
// version 1.
var filenamePattern = regexp.MustCompile(`^(\d+)_([A-Za-z0-9_-]+)\.sql$`)

// ScanDir reads migration descriptors from the .sql files in dir, sorted
// ascending by version.
func ScanDir(dir string) ([]Migration, error) {
	return ScanFS(os.DirFS(dir), ".")
}

// ScanFS reads migration descriptors from the .sql files under dir in
// fsys, sorted ascending by version. fsys is typically an embed.FS so
// migration scripts ship inside the binary.
//
// Files that are not .sql are ignored. A .sql file that does not follow
// the {version}_{name}.sql convention, an empty script, or a duplicate
// version is an error.
func ScanFS(fsys fs.FS, dir string) ([]Migration, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("read migration directory %s: %w", dir, err)
	}

	seen := make(map[int]string)
	var migrations []Migration
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".sql") {
			continue
		}

		match := filenamePattern.FindStringSubmatch(name)
		if match == nil {
			return nil, fmt.Errorf("%w: %q does not match {version}_{name}.sql", ErrInvalidFilename, name)
		}
		version, err := strconv.Atoi(match[1])
		if err != nil || version <= 0 {
			return nil, fmt.Errorf("%w: %q", ErrInvalidVersion, name)
		}
		if prev, dup := seen[version]; dup {
			return nil, fmt.Errorf("%w: version %d found in both %s and %s",
				ErrDuplicateVersion, version, prev, name)
		}
		seen[version] = name

		raw, err := fs.ReadFile(fsys, path.Join(dir, name))
		if err != nil {
			return nil, fmt.Errorf("read migration %s: %w", name, err)
		}
		if strings.TrimSpace(string(raw)) == "" {
			return nil, fmt.Errorf("%w: %s", ErrEmptyScript, name)
		}

		sum := blake2b.Sum256(raw)
		migrations = append(migrations, Migration{
			Version:  version,
			SQL:      string(raw),
			Source:   name,
			Checksum: hex.EncodeToString(sum[:]),
		})
	}

	sort.Slice(migrations, func(i, j int) bool {
		return migrations[i].Version < migrations[j].Version
	})
	return migrations, nil
}
