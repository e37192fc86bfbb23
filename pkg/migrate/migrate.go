// Package migrate applies versioned schema migrations to the archive
// database. Migrations are plain SQL files named
// NNN_description.up.sql / NNN_description.down.sql; the applied
// version is tracked in a table so opening an older archive upgrades it
// in place.
package migrate

import (
	"database/sql"
	"fmt"
	"sort"

	"go.uber.org/zap"
)

// Migration is a single schema version change.
type Migration struct {
	Version int
	Name    string
	Up      string
	Down    string
}

// DB is the subset of database/sql both connections and transactions
// satisfy.
type DB interface {
	Exec(query string, args ...interface{}) (sql.Result, error)
	QueryRow(query string, args ...interface{}) *sql.Row
}

// Provider supplies migrations and tracks the applied version.
type Provider interface {
	Migrations() ([]Migration, error)
	CurrentVersion(db *sql.DB) (int, error)
	SetVersion(db DB, version int) error
	CreateVersionTable(db *sql.DB) error
}

// Migrator executes migrations against one database.
type Migrator struct {
	db       *sql.DB
	provider Provider
	logger   *zap.SugaredLogger
}

// NewMigrator builds a migrator. A nil logger silences progress output,
// which embedded callers like the archive store want.
func NewMigrator(db *sql.DB, provider Provider, logger *zap.SugaredLogger) *Migrator {
	return &Migrator{db: db, provider: provider, logger: logger}
}

// Up applies all pending migrations.
func (m *Migrator) Up() error {
	return m.To(-1)
}

// Down rolls back to targetVersion, which must be below the current
// version. Version 0 reverts everything.
func (m *Migrator) Down(targetVersion int) error {
	current, err := m.provider.CurrentVersion(m.db)
	if err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}
	if targetVersion >= current {
		return fmt.Errorf("target version %d must be below current version %d", targetVersion, current)
	}

	migrations, err := m.provider.Migrations()
	if err != nil {
		return fmt.Errorf("loading migrations: %w", err)
	}
	sort.Slice(migrations, func(i, j int) bool { return migrations[i].Version > migrations[j].Version })

	for _, mig := range migrations {
		if mig.Version > targetVersion && mig.Version <= current {
			if err := m.execute(mig, false); err != nil {
				return fmt.Errorf("rolling back migration %d: %w", mig.Version, err)
			}
		}
	}
	return nil
}

// To migrates up or down to targetVersion; -1 selects the latest.
func (m *Migrator) To(targetVersion int) error {
	if err := m.provider.CreateVersionTable(m.db); err != nil {
		return fmt.Errorf("creating version table: %w", err)
	}

	current, err := m.provider.CurrentVersion(m.db)
	if err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	migrations, err := m.provider.Migrations()
	if err != nil {
		return fmt.Errorf("loading migrations: %w", err)
	}
	sort.Slice(migrations, func(i, j int) bool { return migrations[i].Version < migrations[j].Version })

	if targetVersion == -1 && len(migrations) > 0 {
		targetVersion = migrations[len(migrations)-1].Version
	}
	if targetVersion < current {
		return m.Down(targetVersion)
	}

	for _, mig := range migrations {
		if mig.Version > current && mig.Version <= targetVersion {
			if err := m.execute(mig, true); err != nil {
				return fmt.Errorf("applying migration %d: %w", mig.Version, err)
			}
		}
	}
	return nil
}

// CurrentVersion returns the applied schema version, creating the
// tracking table if the database is fresh.
func (m *Migrator) CurrentVersion() (int, error) {
	if err := m.provider.CreateVersionTable(m.db); err != nil {
		return 0, fmt.Errorf("creating version table: %w", err)
	}
	return m.provider.CurrentVersion(m.db)
}

// Pending returns the migrations above the current version, ascending.
func (m *Migrator) Pending() ([]Migration, error) {
	current, err := m.CurrentVersion()
	if err != nil {
		return nil, err
	}
	migrations, err := m.provider.Migrations()
	if err != nil {
		return nil, err
	}

	var pending []Migration
	for _, mig := range migrations {
		if mig.Version > current {
			pending = append(pending, mig)
		}
	}
	sort.Slice(pending, func(i, j int) bool { return pending[i].Version < pending[j].Version })
	return pending, nil
}

// execute runs one migration and its version update in a transaction.
func (m *Migrator) execute(mig Migration, up bool) error {
	direction, script := "down", mig.Down
	if up {
		direction, script = "up", mig.Up
	}
	if script == "" {
		return fmt.Errorf("migration %d has no %s SQL", mig.Version, direction)
	}

	tx, err := m.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(script); err != nil {
		return fmt.Errorf("executing migration SQL: %w", err)
	}

	version := mig.Version
	if !up {
		version = mig.Version - 1
	}
	if err := m.provider.SetVersion(tx, version); err != nil {
		return fmt.Errorf("updating version: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing migration: %w", err)
	}

	if m.logger != nil {
		m.logger.Infow("applied migration", "version", mig.Version, "name", mig.Name, "direction", direction)
	}
	return nil
}
