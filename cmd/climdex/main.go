package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/chrissnell/climdex/internal/log"
	"github.com/chrissnell/climdex/internal/report"
	"github.com/chrissnell/climdex/internal/source"
	"github.com/chrissnell/climdex/internal/store"
	"github.com/chrissnell/climdex/pkg/config"
	"github.com/chrissnell/climdex/pkg/indices"
	"github.com/chrissnell/climdex/pkg/resample"
	"github.com/chrissnell/climdex/pkg/units"
)

const version = "1.0-" + runtime.GOOS + "/" + runtime.GOARCH

const dateLayout = "2006-01-02"

func main() {
	cfgFile := flag.String("config", "config.yaml", "Path to configuration file")
	indicatorList := flag.String("indicators", "", "Comma-separated indicator names to compute, or 'all'")
	listIndicators := flag.Bool("list", false, "List the indicator catalogue and exit")
	startStr := flag.String("start", "", "First day of the computation range (YYYY-MM-DD)")
	endStr := flag.String("end", "", "Last day of the computation range (YYYY-MM-DD)")
	freqStr := flag.String("freq", "", "Resampling frequency override (YS, AS-JUL, QS-DEC, MS); defaults per indicator")
	climName := flag.String("climatology", "", "Archived climatology name for percentile-based indicators")
	threshold := flag.String("threshold", "", "Threshold override, e.g. '25 degC' or '0.5 mm/day'")
	thresholdMin := flag.String("threshold-min", "", "Daily minimum threshold override for heat wave indicators")
	thresholdMax := flag.String("threshold-max", "", "Daily maximum threshold override for heat wave indicators")
	window := flag.Int("window", 0, "Spell length or accumulation window override in days")
	output := flag.String("output", "", "Write results to a .csv or .xlsx file instead of stdout")
	save := flag.Bool("save", false, "Archive the results for the API server")
	debug := flag.Bool("debug", false, "Turn on debugging output")
	showVersion := flag.Bool("version", false, "Show version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("climdex %s\n", version)
		os.Exit(0)
	}

	registry := indices.Registry()

	if *listIndicators {
		printCatalogue(registry)
		os.Exit(0)
	}

	logger, err := log.New(*debug)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync(logger)

	cfg, err := loadConfig(*cfgFile)
	if err != nil {
		logger.Errorf("Failed to load configuration: %v", err)
		os.Exit(1)
	}

	names, err := resolveIndicators(registry, *indicatorList)
	if err != nil {
		logger.Errorf("%v", err)
		os.Exit(1)
	}

	start, end, err := parseRange(*startStr, *endStr)
	if err != nil {
		logger.Errorf("%v", err)
		os.Exit(1)
	}

	src, err := source.Open(cfg, logger)
	if err != nil {
		logger.Errorf("Failed to open observation source: %v", err)
		os.Exit(1)
	}
	defer src.Close()

	var archive *store.Store
	if *save || anyNeedsCurve(registry, names) {
		archive, err = store.Open(cfg.Archive.Path, nil)
		if err != nil {
			logger.Errorf("Failed to open archive: %v", err)
			os.Exit(1)
		}
		defer archive.Close()
	}

	var curve *indices.CurveInput
	if anyNeedsCurve(registry, names) {
		if *climName == "" {
			logger.Errorf("Percentile indicators need -climatology; build one with climdex-climatology")
			os.Exit(1)
		}
		curve, err = loadCurve(archive, *climName)
		if err != nil {
			logger.Errorf("Failed to load climatology: %v", err)
			os.Exit(1)
		}
	}

	params := indices.Params{
		Threshold:    *threshold,
		ThresholdMin: *thresholdMin,
		ThresholdMax: *thresholdMax,
		Window:       *window,
	}

	ctx := context.Background()
	inputs := make(map[indices.Variable]indices.Input)
	var rows []report.Row

	for _, name := range names {
		ind := registry[name]

		freq, err := indicatorFreq(ind, *freqStr)
		if err != nil {
			logger.Errorf("%v", err)
			os.Exit(1)
		}

		in, err := fetchInputs(ctx, src, inputs, ind.Requires, start, end, logger)
		if err != nil {
			logger.Errorf("Failed to load inputs for %s: %v", name, err)
			os.Exit(1)
		}

		values, err := ind.Compute(in, curve, params, freq)
		if err != nil {
			logger.Errorf("Failed to compute %s: %v", name, err)
			os.Exit(1)
		}
		logger.Infow("computed indicator", "indicator", name, "periods", len(values), "freq", freq.String())

		rows = append(rows, report.FromValues(name, cfg.Station, freq.String(), ind.Units, values)...)

		if *save {
			run := &store.Run{Station: cfg.Station, Indicator: name, Freq: freq.String(), Units: ind.Units}
			if err := archive.SaveRun(run, values); err != nil {
				logger.Errorf("Failed to archive %s results: %v", name, err)
				os.Exit(1)
			}
			logger.Infow("archived run", "indicator", name, "run", run.ID)
		}
	}

	if *output != "" {
		if err := report.Write(*output, rows); err != nil {
			logger.Errorf("Failed to write report: %v", err)
			os.Exit(1)
		}
		fmt.Printf("Results written to %s\n", *output)
		return
	}
	printResults(rows)
}

func loadConfig(cfgFile string) (*config.Config, error) {
	filename, _ := filepath.Abs(cfgFile)
	cfg, err := config.NewYAMLProvider(filename).LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("error reading config file. Did you pass the -config flag? Run with -h for help: %w", err)
	}
	return cfg, nil
}

func resolveIndicators(registry map[string]indices.Indicator, list string) ([]string, error) {
	if list == "" {
		return nil, fmt.Errorf("no indicators selected; pass -indicators or -list to see the catalogue")
	}
	if list == "all" {
		names := make([]string, 0, len(registry))
		for name := range registry {
			names = append(names, name)
		}
		sort.Strings(names)
		return names, nil
	}

	var names []string
	for _, name := range strings.Split(list, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if _, ok := registry[name]; !ok {
			return nil, fmt.Errorf("unknown indicator %q; pass -list to see the catalogue", name)
		}
		names = append(names, name)
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("no indicators selected; pass -indicators or -list to see the catalogue")
	}
	return names, nil
}

func parseRange(startStr, endStr string) (time.Time, time.Time, error) {
	if startStr == "" || endStr == "" {
		return time.Time{}, time.Time{}, fmt.Errorf("both -start and -end are required (YYYY-MM-DD)")
	}
	start, err := time.Parse(dateLayout, startStr)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("bad -start date: %w", err)
	}
	end, err := time.Parse(dateLayout, endStr)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("bad -end date: %w", err)
	}
	if end.Before(start) {
		return time.Time{}, time.Time{}, fmt.Errorf("-end %s is before -start %s", endStr, startStr)
	}
	return start, end, nil
}

func indicatorFreq(ind indices.Indicator, override string) (resample.Frequency, error) {
	code := ind.DefaultFreq
	if override != "" {
		code = override
	}
	freq, err := resample.ParseFrequency(code)
	if err != nil {
		return resample.Frequency{}, fmt.Errorf("bad frequency for %s: %w", ind.Name, err)
	}
	return freq, nil
}

func anyNeedsCurve(registry map[string]indices.Indicator, names []string) bool {
	for _, name := range names {
		if registry[name].NeedsCurve {
			return true
		}
	}
	return false
}

func loadCurve(archive *store.Store, name string) (*indices.CurveInput, error) {
	clim, err := archive.GetClimatology(name)
	if err != nil {
		return nil, err
	}
	unit, err := units.Parse(clim.Unit)
	if err != nil {
		return nil, fmt.Errorf("climatology %q: %w", name, err)
	}
	return &indices.CurveInput{Curve: clim.Curve, Unit: unit}, nil
}

// fetchInputs loads each required variable once and caches it, so a
// multi-indicator invocation hits the source once per variable.
func fetchInputs(ctx context.Context, src source.Source, cache map[indices.Variable]indices.Input,
	requires []indices.Variable, start, end time.Time, logger *zap.SugaredLogger) (map[indices.Variable]indices.Input, error) {
	for _, v := range requires {
		if _, ok := cache[v]; ok {
			continue
		}
		in, err := src.Daily(ctx, v, start, end)
		if err != nil {
			return nil, err
		}
		logger.Debugw("loaded series", "variable", v, "days", in.Series.Len(), "unit", in.Unit.String())
		cache[v] = in
	}
	return cache, nil
}

func printCatalogue(registry map[string]indices.Indicator) {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Printf("%-32s %-8s %-12s %-8s %s\n", "INDICATOR", "UNITS", "REQUIRES", "FREQ", "SUMMARY")
	for _, name := range names {
		ind := registry[name]
		requires := make([]string, len(ind.Requires))
		for i, v := range ind.Requires {
			requires[i] = string(v)
		}
		needs := ""
		if ind.NeedsCurve {
			needs = " (needs -climatology)"
		}
		fmt.Printf("%-32s %-8s %-12s %-8s %s%s\n",
			ind.Name, ind.Units, strings.Join(requires, ","), ind.DefaultFreq, ind.Summary, needs)
	}
}

func printResults(rows []report.Row) {
	fmt.Printf("%-32s %-12s %-6s %12s %-8s\n", "INDICATOR", "PERIOD", "FREQ", "VALUE", "UNITS")
	for _, r := range rows {
		value := "no data"
		if r.Valid {
			value = fmt.Sprintf("%.2f", r.Value)
		}
		fmt.Printf("%-32s %-12s %-6s %12s %-8s\n",
			r.Indicator, r.Period.Format(dateLayout), r.Freq, value, r.Units)
	}
}
