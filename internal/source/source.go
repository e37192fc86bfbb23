// Package source loads daily observation series for indicator
// computation, either from a remoteweather TimescaleDB station archive
// or from a CSV export.
package source

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/chrissnell/climdex/pkg/config"
	"github.com/chrissnell/climdex/pkg/indices"
)

// Source provides daily series for named variables.
type Source interface {
	// Daily returns the series for a variable over the inclusive date
	// range [start, end], with the unit its values are expressed in.
	// Days absent from the source yield gaps, not NaN padding.
	Daily(ctx context.Context, variable indices.Variable, start, end time.Time) (indices.Input, error)
	Close() error
}

// Open builds the configured source backend.
func Open(cfg *config.Config, logger *zap.SugaredLogger) (Source, error) {
	switch cfg.Source.Backend {
	case "timescaledb":
		return NewTimescaleSource(cfg.Source.TimescaleDB.ConnectionString, cfg.Station, logger)
	case "csv":
		return NewCSVSource(cfg.Source.CSV.Path, cfg.Source.CSV.Units, logger)
	case "":
		return nil, fmt.Errorf("no observation source configured")
	}
	return nil, fmt.Errorf("unknown source backend %q", cfg.Source.Backend)
}
