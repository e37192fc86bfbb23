package migrate

import (
	"database/sql"
	"fmt"
	"io/fs"
	"path"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

var (
	upRe   = regexp.MustCompile(`^(\d+)_(.+)\.up\.sql$`)
	downRe = regexp.MustCompile(`^(\d+)_(.+)\.down\.sql$`)
)

// FSProvider loads migrations from a filesystem, typically one embedded
// in the binary, and tracks versions in an SQLite table.
type FSProvider struct {
	fsys  fs.FS
	dir   string
	table string
}

// NewFSProvider reads NNN_description.{up,down}.sql files from dir
// within fsys. An empty table name selects "schema_migrations".
func NewFSProvider(fsys fs.FS, dir, table string) *FSProvider {
	if table == "" {
		table = "schema_migrations"
	}
	return &FSProvider{fsys: fsys, dir: dir, table: table}
}

// Migrations loads the migration set, pairing up and down scripts by
// version.
func (p *FSProvider) Migrations() ([]Migration, error) {
	entries, err := fs.ReadDir(p.fsys, p.dir)
	if err != nil {
		return nil, fmt.Errorf("reading migration directory %s: %w", p.dir, err)
	}

	byVersion := make(map[int]*Migration)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()

		matches := upRe.FindStringSubmatch(name)
		up := true
		if matches == nil {
			matches = downRe.FindStringSubmatch(name)
			up = false
		}
		if matches == nil {
			continue
		}

		version, err := strconv.Atoi(matches[1])
		if err != nil {
			return nil, fmt.Errorf("bad version number in %s: %w", name, err)
		}
		content, err := fs.ReadFile(p.fsys, path.Join(p.dir, name))
		if err != nil {
			return nil, fmt.Errorf("reading migration %s: %w", name, err)
		}

		mig := byVersion[version]
		if mig == nil {
			mig = &Migration{Version: version, Name: strings.ReplaceAll(matches[2], "_", " ")}
			byVersion[version] = mig
		}
		if up {
			mig.Up = string(content)
		} else {
			mig.Down = string(content)
		}
	}

	migrations := make([]Migration, 0, len(byVersion))
	for _, mig := range byVersion {
		migrations = append(migrations, *mig)
	}
	sort.Slice(migrations, func(i, j int) bool { return migrations[i].Version < migrations[j].Version })
	return migrations, nil
}

// CreateVersionTable creates the version tracking table if absent.
func (p *FSProvider) CreateVersionTable(db *sql.DB) error {
	query := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
	version    INTEGER PRIMARY KEY,
	applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
)`, p.table)
	if _, err := db.Exec(query); err != nil {
		return fmt.Errorf("creating version table: %w", err)
	}
	return nil
}

// CurrentVersion returns the highest applied version, 0 for a fresh
// database.
func (p *FSProvider) CurrentVersion(db *sql.DB) (int, error) {
	var version int
	query := fmt.Sprintf("SELECT COALESCE(MAX(version), 0) FROM %s", p.table)
	if err := db.QueryRow(query).Scan(&version); err != nil {
		return 0, fmt.Errorf("reading current version: %w", err)
	}
	return version, nil
}

// SetVersion records the applied version, discarding history above it
// so rollbacks land on the right version. Version 0 clears the history.
func (p *FSProvider) SetVersion(db DB, version int) error {
	if version == 0 {
		if _, err := db.Exec(fmt.Sprintf("DELETE FROM %s", p.table)); err != nil {
			return fmt.Errorf("setting version: %w", err)
		}
		return nil
	}

	query := fmt.Sprintf("INSERT OR REPLACE INTO %s (version, applied_at) VALUES (?, CURRENT_TIMESTAMP)", p.table)
	if _, err := db.Exec(query, version); err != nil {
		return fmt.Errorf("setting version: %w", err)
	}
	if _, err := db.Exec(fmt.Sprintf("DELETE FROM %s WHERE version > ?", p.table), version); err != nil {
		return fmt.Errorf("pruning version history: %w", err)
	}
	return nil
}
