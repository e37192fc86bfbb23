package source

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/chrissnell/climdex/pkg/config"
)

func TestOpenCSVBackend(t *testing.T) {
	path := writeCSV(t, "date,tas\n2021-01-01,1\n")
	cfg := &config.Config{
		Source: config.SourceConfig{
			Backend: "csv",
			CSV:     &config.CSVConfig{Path: path},
		},
	}
	src, err := Open(cfg, zap.NewNop().Sugar())
	require.NoError(t, err)
	defer src.Close()
	assert.IsType(t, &CSVSource{}, src)
}

func TestOpenRejectsUnknownBackend(t *testing.T) {
	_, err := Open(&config.Config{Source: config.SourceConfig{Backend: "netcdf"}}, zap.NewNop().Sugar())
	assert.Error(t, err)

	_, err = Open(&config.Config{}, zap.NewNop().Sugar())
	assert.Error(t, err)
}
