package source

import (
	"context"
	"fmt"
	"math"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/chrissnell/climdex/pkg/indices"
	"github.com/chrissnell/climdex/pkg/timeseries"
	"github.com/chrissnell/climdex/pkg/units"
)

// timescaleColumns maps indicator variables onto the columns of the
// weather_1d continuous aggregate. Station hardware reports imperial
// units: temperatures in degF, rain accumulation in inches per day.
var timescaleColumns = map[indices.Variable]struct {
	column string
	unit   units.Unit
}{
	indices.VarTas:    {"outtemp", units.DegF},
	indices.VarTasMin: {"min_outtemp", units.DegF},
	indices.VarTasMax: {"max_outtemp", units.DegF},
	indices.VarPrecip: {"period_rain", units.InPerDay},
}

// TimescaleSource reads daily aggregates from a remoteweather
// TimescaleDB archive.
type TimescaleSource struct {
	db      *gorm.DB
	station string
	logger  *zap.SugaredLogger
}

// NewTimescaleSource connects to the archive database. The station name
// selects which station's readings are loaded.
func NewTimescaleSource(connectionString, station string, logger *zap.SugaredLogger) (*TimescaleSource, error) {
	dbLogger := gormlogger.New(
		zap.NewStdLog(logger.Desugar()),
		gormlogger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  gormlogger.Warn,
			IgnoreRecordNotFoundError: true,
		},
	)

	logger.Info("connecting to TimescaleDB...")
	db, err := gorm.Open(postgres.Open(connectionString), &gorm.Config{Logger: dbLogger})
	if err != nil {
		return nil, fmt.Errorf("connecting to TimescaleDB: %w", err)
	}
	logger.Info("TimescaleDB connection successful")

	return &TimescaleSource{db: db, station: station, logger: logger}, nil
}

// dailyRow is one day of the weather_1d aggregate for a single column.
type dailyRow struct {
	Bucket time.Time
	Value  *float64
}

// Daily loads one variable's daily series over [start, end]. NULL
// aggregates become NaN so downstream reductions can skip them.
func (s *TimescaleSource) Daily(ctx context.Context, variable indices.Variable, start, end time.Time) (indices.Input, error) {
	col, ok := timescaleColumns[variable]
	if !ok {
		return indices.Input{}, fmt.Errorf("variable %q is not available from the station archive", variable)
	}

	var rows []dailyRow
	err := s.db.WithContext(ctx).
		Table("weather_1d").
		Select(fmt.Sprintf("bucket, %s AS value", col.column)).
		Where("stationname = ?", s.station).
		Where("bucket >= ? AND bucket < ?", start, end.AddDate(0, 0, 1)).
		Order("bucket ASC").
		Find(&rows).Error
	if err != nil {
		return indices.Input{}, fmt.Errorf("querying weather_1d for %s: %w", variable, err)
	}
	if len(rows) == 0 {
		return indices.Input{}, fmt.Errorf("no %s observations for station %q between %s and %s",
			variable, s.station, start.Format("2006-01-02"), end.Format("2006-01-02"))
	}
	s.logger.Debugf("loaded %d days of %s for station %s", len(rows), variable, s.station)

	times := make([]time.Time, len(rows))
	values := make([]float64, len(rows))
	for i, r := range rows {
		times[i] = r.Bucket
		if r.Value != nil {
			values[i] = *r.Value
		} else {
			values[i] = math.NaN()
		}
	}
	series, err := timeseries.New(times, values)
	if err != nil {
		return indices.Input{}, fmt.Errorf("weather_1d rows for %s: %w", variable, err)
	}
	return indices.Input{Series: series, Unit: col.unit}, nil
}

// Close closes the underlying database connection.
func (s *TimescaleSource) Close() error {
	db, err := s.db.DB()
	if err != nil {
		return err
	}
	return db.Close()
}
