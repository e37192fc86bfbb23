package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"

	"github.com/chrissnell/climdex/pkg/config"
)

const version = "1.0-" + runtime.GOOS + "/" + runtime.GOARCH

func main() {
	cfgFile := flag.String("config", "config.yaml", "Path to configuration file")
	showVersion := flag.Bool("version", false, "Show version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("climdex-config-check %s\n", version)
		os.Exit(0)
	}

	filename, _ := filepath.Abs(*cfgFile)
	fmt.Printf("Checking configuration: %s\n\n", filename)

	cfg, err := config.NewYAMLProvider(filename).LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "✗ %v\n", err)
		os.Exit(1)
	}

	fmt.Println("✓ Configuration loads and validates")
	fmt.Println()

	if cfg.Station != "" {
		fmt.Printf("Station:      %s\n", cfg.Station)
	} else {
		fmt.Printf("Station:      (none; results will be unlabeled)\n")
	}

	switch cfg.Source.Backend {
	case "timescaledb":
		fmt.Printf("Source:       timescaledb\n")
	case "csv":
		fmt.Printf("Source:       csv (%s)\n", cfg.Source.CSV.Path)
		if len(cfg.Source.CSV.Units) > 0 {
			vars := make([]string, 0, len(cfg.Source.CSV.Units))
			for v := range cfg.Source.CSV.Units {
				vars = append(vars, v)
			}
			sort.Strings(vars)
			for _, v := range vars {
				fmt.Printf("              %s in %s\n", v, cfg.Source.CSV.Units[v])
			}
		}
	default:
		fmt.Printf("Source:       (none; only the API server will run)\n")
	}

	fmt.Printf("Archive:      %s\n", cfg.Archive.Path)
	fmt.Printf("HTTP:         %s:%d\n", cfg.HTTP.ListenAddr, cfg.HTTP.Port)
	fmt.Printf("Climatology:  window %d days", cfg.Climatology.Window)
	if cfg.Climatology.ReferenceStart != "" && cfg.Climatology.ReferenceEnd != "" {
		fmt.Printf(", reference %s to %s", cfg.Climatology.ReferenceStart, cfg.Climatology.ReferenceEnd)
	}
	fmt.Println()
}
