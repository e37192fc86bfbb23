package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/chrissnell/climdex/internal/app"
	"github.com/chrissnell/climdex/internal/log"
	"github.com/chrissnell/climdex/pkg/config"
)

const version = "1.0-" + runtime.GOOS + "/" + runtime.GOARCH

func main() {
	cfgFile := flag.String("config", "config.yaml", "Path to configuration file")
	debug := flag.Bool("debug", false, "Turn on debugging output")
	showVersion := flag.Bool("version", false, "Show version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("climdex-server %s\n", version)
		os.Exit(0)
	}

	logger, err := log.New(*debug)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync(logger)

	filename, _ := filepath.Abs(*cfgFile)
	provider := config.NewYAMLProvider(filename)

	application := app.New(provider, logger)
	if err := application.Run(context.Background()); err != nil {
		logger.Errorf("Application error: %v", err)
		os.Exit(1)
	}
}
