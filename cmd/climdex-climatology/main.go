package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/chrissnell/climdex/internal/log"
	"github.com/chrissnell/climdex/internal/source"
	"github.com/chrissnell/climdex/internal/store"
	"github.com/chrissnell/climdex/pkg/climatology"
	"github.com/chrissnell/climdex/pkg/config"
	"github.com/chrissnell/climdex/pkg/indices"
)

const version = "1.0-" + runtime.GOOS + "/" + runtime.GOARCH

const dateLayout = "2006-01-02"

func main() {
	cfgFile := flag.String("config", "config.yaml", "Path to configuration file")
	name := flag.String("name", "", "Archive name for the climatology, e.g. 'suncrest-tn10'")
	variable := flag.String("variable", "tasmin", "Reference variable: tas, tasmin, tasmax, pr or q")
	quantile := flag.Float64("quantile", 0.10, "Quantile in (0, 1), e.g. 0.10 or 0.90")
	window := flag.Int("window", 0, "Day-of-year pooling window in days, odd; defaults from configuration")
	startStr := flag.String("start", "", "First day of the reference period (YYYY-MM-DD); defaults from configuration")
	endStr := flag.String("end", "", "Last day of the reference period (YYYY-MM-DD); defaults from configuration")
	export := flag.String("export", "", "Also write the curve snapshot to a file")
	debug := flag.Bool("debug", false, "Turn on debugging output")
	showVersion := flag.Bool("version", false, "Show version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("climdex-climatology %s\n", version)
		os.Exit(0)
	}

	logger, err := log.New(*debug)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync(logger)

	if *name == "" {
		logger.Errorf("A climatology needs a -name to be archived under")
		os.Exit(1)
	}

	filename, _ := filepath.Abs(*cfgFile)
	cfg, err := config.NewYAMLProvider(filename).LoadConfig()
	if err != nil {
		logger.Errorf("Failed to load configuration: %v", err)
		os.Exit(1)
	}

	start, end, err := referencePeriod(cfg, *startStr, *endStr)
	if err != nil {
		logger.Errorf("%v", err)
		os.Exit(1)
	}
	if *window == 0 {
		*window = cfg.Climatology.Window
	}

	src, err := source.Open(cfg, logger)
	if err != nil {
		logger.Errorf("Failed to open observation source: %v", err)
		os.Exit(1)
	}
	defer src.Close()

	in, err := src.Daily(context.Background(), indices.Variable(*variable), start, end)
	if err != nil {
		logger.Errorf("Failed to load reference series: %v", err)
		os.Exit(1)
	}
	logger.Infow("loaded reference series",
		"variable", *variable, "days", in.Series.Len(), "unit", in.Unit.String())

	curve, err := climatology.PercentileDoY(in.Series, *quantile, *window)
	if err != nil {
		logger.Errorf("Failed to build climatology: %v", err)
		os.Exit(1)
	}

	archive, err := store.Open(cfg.Archive.Path, nil)
	if err != nil {
		logger.Errorf("Failed to open archive: %v", err)
		os.Exit(1)
	}
	defer archive.Close()

	clim := &store.Climatology{
		Name:     *name,
		Station:  cfg.Station,
		Variable: *variable,
		Quantile: *quantile,
		Window:   *window,
		Unit:     in.Unit.String(),
		RefStart: start,
		RefEnd:   end,
		Curve:    curve,
	}
	if err := archive.SaveClimatology(clim); err != nil {
		logger.Errorf("Failed to archive climatology: %v", err)
		os.Exit(1)
	}

	fmt.Printf("Climatology %q archived\n", *name)
	fmt.Printf("  Variable:  %s (%s)\n", *variable, in.Unit)
	fmt.Printf("  Quantile:  %.2f, window %d days\n", *quantile, *window)
	fmt.Printf("  Reference: %s to %s\n", start.Format(dateLayout), end.Format(dateLayout))
	fmt.Printf("  Calendar:  %s, %d days\n", curve.Calendar(), len(curve.Days()))

	if *export != "" {
		blob, err := store.EncodeCurve(curve)
		if err != nil {
			logger.Errorf("Failed to encode curve snapshot: %v", err)
			os.Exit(1)
		}
		if err := os.WriteFile(*export, blob, 0o644); err != nil {
			logger.Errorf("Failed to write curve snapshot: %v", err)
			os.Exit(1)
		}
		fmt.Printf("  Snapshot:  %s\n", *export)
	}
}

func referencePeriod(cfg *config.Config, startStr, endStr string) (time.Time, time.Time, error) {
	if startStr == "" {
		startStr = cfg.Climatology.ReferenceStart
	}
	if endStr == "" {
		endStr = cfg.Climatology.ReferenceEnd
	}
	if startStr == "" || endStr == "" {
		return time.Time{}, time.Time{}, fmt.Errorf("no reference period: pass -start/-end or configure climatology reference dates")
	}

	start, err := time.Parse(dateLayout, startStr)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("bad reference start date: %w", err)
	}
	end, err := time.Parse(dateLayout, endStr)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("bad reference end date: %w", err)
	}
	if end.Before(start) {
		return time.Time{}, time.Time{}, fmt.Errorf("reference end %s is before start %s", endStr, startStr)
	}
	return start, end, nil
}
