package store

import (
	"embed"

	"github.com/chrissnell/climdex/pkg/migrate"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// MigrationProvider returns the archive schema migration set. Open
// applies it automatically; climdex-migrate drives it by hand.
func MigrationProvider() *migrate.FSProvider {
	return migrate.NewFSProvider(migrationsFS, "migrations", "schema_migrations")
}
