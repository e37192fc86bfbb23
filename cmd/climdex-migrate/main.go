package main

import (
	"database/sql"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	_ "modernc.org/sqlite"

	"github.com/chrissnell/climdex/internal/log"
	"github.com/chrissnell/climdex/internal/store"
	"github.com/chrissnell/climdex/pkg/config"
	"github.com/chrissnell/climdex/pkg/migrate"
)

const version = "1.0-" + runtime.GOOS + "/" + runtime.GOARCH

func main() {
	cfgFile := flag.String("config", "config.yaml", "Path to configuration file")
	archivePath := flag.String("archive", "", "Archive database path; overrides the configured one")
	command := flag.String("command", "status", "Migration command: up, down, to, version, status")
	target := flag.Int("target", -1, "Target schema version for down/to commands")
	debug := flag.Bool("debug", false, "Turn on debugging output")
	showVersion := flag.Bool("version", false, "Show version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("climdex-migrate %s\n", version)
		os.Exit(0)
	}

	logger, err := log.New(*debug)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync(logger)

	path := *archivePath
	if path == "" {
		filename, _ := filepath.Abs(*cfgFile)
		cfg, err := config.NewYAMLProvider(filename).LoadConfig()
		if err != nil {
			logger.Errorf("Failed to load configuration: %v", err)
			os.Exit(1)
		}
		path = cfg.Archive.Path
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		logger.Errorf("Failed to open archive database: %v", err)
		os.Exit(1)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		logger.Errorf("Failed to ping archive database: %v", err)
		os.Exit(1)
	}

	migrator := migrate.NewMigrator(db, store.MigrationProvider(), logger)

	switch *command {
	case "up":
		err = migrator.Up()
	case "down":
		if *target < 0 {
			logger.Errorf("The down command needs -target")
			os.Exit(1)
		}
		err = migrator.Down(*target)
	case "to":
		if *target < 0 {
			logger.Errorf("The to command needs -target")
			os.Exit(1)
		}
		err = migrator.To(*target)
	case "version":
		current, verr := migrator.CurrentVersion()
		if verr != nil {
			logger.Errorf("Failed to read schema version: %v", verr)
			os.Exit(1)
		}
		fmt.Printf("Archive schema version: %d\n", current)
		return
	case "status":
		if err := showStatus(migrator); err != nil {
			logger.Errorf("Failed to read migration status: %v", err)
			os.Exit(1)
		}
		return
	default:
		logger.Errorf("Unknown command %q: use up, down, to, version or status", *command)
		os.Exit(1)
	}

	if err != nil {
		logger.Errorf("Migration failed: %v", err)
		os.Exit(1)
	}
	fmt.Println("Migration completed successfully")
}

func showStatus(migrator *migrate.Migrator) error {
	current, err := migrator.CurrentVersion()
	if err != nil {
		return err
	}
	pending, err := migrator.Pending()
	if err != nil {
		return err
	}

	fmt.Printf("Archive schema version: %d\n", current)
	fmt.Printf("Pending migrations: %d\n", len(pending))
	for _, mig := range pending {
		fmt.Printf("  %d: %s\n", mig.Version, mig.Name)
	}
	return nil
}
