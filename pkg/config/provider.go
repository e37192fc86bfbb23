// Package config loads and validates climdex configuration. A Provider
// abstracts where the configuration comes from; the YAML provider is the
// file-based implementation commands use.
package config

import "fmt"

// Provider is a source of climdex configuration.
type Provider interface {
	// LoadConfig loads, defaults and validates the complete configuration.
	LoadConfig() (*Config, error)
}

// Config is the complete climdex configuration.
type Config struct {
	// Station is the station name indicator results are computed for and
	// labeled with.
	Station string

	Source      SourceConfig
	Archive     ArchiveConfig
	HTTP        HTTPConfig
	Climatology ClimatologyConfig
}

// SourceConfig selects and configures the daily observation source.
type SourceConfig struct {
	// Backend is "timescaledb" or "csv".
	Backend     string
	TimescaleDB *TimescaleDBConfig
	CSV         *CSVConfig
}

// TimescaleDBConfig configures the TimescaleDB observation source, which
// reads the station archive's daily continuous aggregate.
type TimescaleDBConfig struct {
	ConnectionString string
}

// CSVConfig configures the CSV file observation source.
type CSVConfig struct {
	// Path is the CSV file: a date column followed by one column per
	// variable (tasmin, tasmax, tas, pr, q).
	Path string
	// Units maps variable names to the units their column is expressed
	// in. Variables absent from the map use the conventional defaults
	// (degC for temperatures, mm/day for pr, m3/s for q).
	Units map[string]string
}

// ArchiveConfig configures the SQLite archive climatologies and computed
// indicator results are stored in.
type ArchiveConfig struct {
	Path string
}

// HTTPConfig configures the archive REST API server.
type HTTPConfig struct {
	ListenAddr string
	Port       int
}

// ClimatologyConfig carries defaults for percentile climatology builds.
type ClimatologyConfig struct {
	// Window is the day-of-year pooling window in days, odd.
	Window int
	// ReferenceStart and ReferenceEnd bound the default reference
	// period, as YYYY-MM-DD dates.
	ReferenceStart string
	ReferenceEnd   string
}

// Validate checks the configuration after defaults have been applied.
func (c *Config) Validate() error {
	switch c.Source.Backend {
	case "timescaledb":
		if c.Source.TimescaleDB == nil || c.Source.TimescaleDB.ConnectionString == "" {
			return fmt.Errorf("source backend is timescaledb but no connection-string is configured")
		}
		if c.Station == "" {
			return fmt.Errorf("timescaledb source requires a station name")
		}
	case "csv":
		if c.Source.CSV == nil || c.Source.CSV.Path == "" {
			return fmt.Errorf("source backend is csv but no file path is configured")
		}
	case "":
		// archive-only commands (the API server) run without a source
	default:
		return fmt.Errorf("unknown source backend %q: use timescaledb or csv", c.Source.Backend)
	}

	if c.Archive.Path == "" {
		return fmt.Errorf("archive path must be configured")
	}
	if c.HTTP.Port < 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http port %d out of range", c.HTTP.Port)
	}
	if c.Climatology.Window < 1 || c.Climatology.Window%2 == 0 {
		return fmt.Errorf("climatology window must be a positive odd day count, got %d", c.Climatology.Window)
	}
	return nil
}

// applyDefaults fills unset fields with their defaults.
func (c *Config) applyDefaults() {
	if c.HTTP.ListenAddr == "" {
		c.HTTP.ListenAddr = "0.0.0.0"
	}
	if c.HTTP.Port == 0 {
		c.HTTP.Port = 8750
	}
	if c.Climatology.Window == 0 {
		c.Climatology.Window = 5
	}
}
