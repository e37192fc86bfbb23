package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

// YAMLProvider implements Provider for YAML configuration files.
type YAMLProvider struct {
	filename string
}

// NewYAMLProvider creates a provider reading the given YAML file.
func NewYAMLProvider(filename string) *YAMLProvider {
	return &YAMLProvider{filename: filename}
}

// yamlConfig mirrors Config with YAML tags; keys are kebab-case.
type yamlConfig struct {
	Station string `yaml:"station,omitempty"`
	Source  struct {
		Backend     string `yaml:"backend"`
		TimescaleDB *struct {
			ConnectionString string `yaml:"connection-string"`
		} `yaml:"timescaledb,omitempty"`
		CSV *struct {
			Path  string            `yaml:"path"`
			Units map[string]string `yaml:"units,omitempty"`
		} `yaml:"csv,omitempty"`
	} `yaml:"source,omitempty"`
	Archive struct {
		Path string `yaml:"path"`
	} `yaml:"archive"`
	HTTP struct {
		ListenAddr string `yaml:"listen-addr,omitempty"`
		Port       int    `yaml:"port,omitempty"`
	} `yaml:"http,omitempty"`
	Climatology struct {
		Window         int    `yaml:"window,omitempty"`
		ReferenceStart string `yaml:"reference-start,omitempty"`
		ReferenceEnd   string `yaml:"reference-end,omitempty"`
	} `yaml:"climatology,omitempty"`
}

// LoadConfig loads the configuration file, applies defaults and
// validates the result.
func (y *YAMLProvider) LoadConfig() (*Config, error) {
	raw, err := os.ReadFile(y.filename)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var yc yamlConfig
	if err := yaml.Unmarshal(raw, &yc); err != nil {
		return nil, fmt.Errorf("parsing config file %s: %w", y.filename, err)
	}

	cfg := &Config{
		Station: yc.Station,
		Source: SourceConfig{
			Backend: yc.Source.Backend,
		},
		Archive: ArchiveConfig{Path: yc.Archive.Path},
		HTTP: HTTPConfig{
			ListenAddr: yc.HTTP.ListenAddr,
			Port:       yc.HTTP.Port,
		},
		Climatology: ClimatologyConfig{
			Window:         yc.Climatology.Window,
			ReferenceStart: yc.Climatology.ReferenceStart,
			ReferenceEnd:   yc.Climatology.ReferenceEnd,
		},
	}
	if yc.Source.TimescaleDB != nil {
		cfg.Source.TimescaleDB = &TimescaleDBConfig{
			ConnectionString: yc.Source.TimescaleDB.ConnectionString,
		}
	}
	if yc.Source.CSV != nil {
		cfg.Source.CSV = &CSVConfig{
			Path:  yc.Source.CSV.Path,
			Units: yc.Source.CSV.Units,
		}
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration in %s: %w", y.filename, err)
	}
	return cfg, nil
}
