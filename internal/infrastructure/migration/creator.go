package migration

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// FilePair describes the up/down SQL files backing one migration.
type FilePair struct {
	Version  string
	Name     string
	UpPath   string
	DownPath string
}

const upStub = `-- %s
-- created %s

`

const downStub = `-- %s (rollback)
-- created %s

`

// CreateMigration writes an empty up/down file pair into migrationsDir.
// The version prefix is a timestamp so files sort in creation order.
func CreateMigration(migrationsDir, name string) (*FilePair, error) {
	if err := os.MkdirAll(migrationsDir, 0o755); err != nil {
		return nil, fmt.Errorf("create migrations directory: %w", err)
	}

	now := time.Now()
	version := now.Format("20060102150405")
	base := fmt.Sprintf("%s_%s", version, sanitizeName(name))

	fp := &FilePair{
		Version:  version,
		Name:     name,
		UpPath:   filepath.Join(migrationsDir, base+".up.sql"),
		DownPath: filepath.Join(migrationsDir, base+".down.sql"),
	}

	created := now.Format(time.RFC3339)
	if err := os.WriteFile(fp.UpPath, []byte(fmt.Sprintf(upStub, name, created)), 0o644); err != nil {
		return nil, fmt.Errorf("write up migration: %w", err)
	}
	if err := os.WriteFile(fp.DownPath, []byte(fmt.Sprintf(downStub, name, created)), 0o644); err != nil {
		_ = os.Remove(fp.UpPath)
		return nil, fmt.Errorf("write down migration: %w", err)
	}

	return fp, nil
}

// sanitizeName lowercases a migration name and collapses separators so it
// is safe to embed in a file name.
func sanitizeName(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for i := 0; i < len(name); i++ {
		c := name[i]
		switch {
		case c >= 'a' && c <= 'z', c >= '0' && c <= '9':
			b.WriteByte(c)
		case c >= 'A' && c <= 'Z':
			b.WriteByte(c + 'a' - 'A')
		case c == ' ' || c == '-' || c == '_':
			s := b.String()
			if len(s) > 0 && s[len(s)-1] != '_' {
				b.WriteByte('_')
			}
		}
	}
	return strings.TrimSuffix(b.String(), "_")
}

// ListMigrations returns the base names of every migration pair found in
// migrationsDir, identified by their .up.sql file.
func ListMigrations(migrationsDir string) ([]string, error) {
	entries, err := os.ReadDir(migrationsDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("read migrations directory: %w", err)
	}

	names := make([]string, 0, len(entries)/2)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if base, ok := strings.CutSuffix(entry.Name(), ".up.sql"); ok {
			names = append(names, base)
		}
	}
	return names, nil
}
