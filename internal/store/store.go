// Package store is the climdex archive: an SQLite database of built
// percentile climatologies and computed indicator results. Commands
// write to it; the API server reads from it.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	_ "modernc.org/sqlite"

	"github.com/chrissnell/climdex/pkg/calendar"
	"github.com/chrissnell/climdex/pkg/indices"
	"github.com/chrissnell/climdex/pkg/migrate"
)

// ErrNotFound marks lookups of names or IDs the archive does not hold.
var ErrNotFound = errors.New("not found in archive")

const (
	dateLayout = "2006-01-02"
	timeLayout = time.RFC3339
)

// Climatology is one stored reference curve with its build metadata.
// Curve is nil in listings; Get decodes it from the stored snapshot.
type Climatology struct {
	ID        string
	Name      string
	Station   string
	Variable  string
	Quantile  float64
	Window    int
	Unit      string
	RefStart  time.Time
	RefEnd    time.Time
	CreatedAt time.Time
	Curve     *calendar.Curve
}

// Run is one archived indicator computation.
type Run struct {
	ID        string
	Station   string
	Indicator string
	Freq      string
	Units     string
	CreatedAt time.Time
}

// Store wraps the archive database.
type Store struct {
	db    *sql.DB
	path  string
	clock clockwork.Clock
}

// Open opens (creating if necessary) the archive at path, migrating
// its schema to the current version. A nil clock selects the real
// clock; tests pass a fake one for deterministic created-at stamps.
func Open(path string, clock clockwork.Clock) (*Store, error) {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening archive database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging archive database: %w", err)
	}
	if err := migrate.NewMigrator(db, MigrationProvider(), nil).Up(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrating archive schema: %w", err)
	}

	return &Store{db: db, path: path, clock: clock}, nil
}

// Close closes the archive database.
func (s *Store) Close() error { return s.db.Close() }

// SaveClimatology stores a curve under its name, replacing any existing
// curve of the same name. The ID and CreatedAt fields are assigned.
func (s *Store) SaveClimatology(c *Climatology) error {
	if c.Name == "" {
		return fmt.Errorf("climatology needs a name")
	}
	if c.Curve == nil {
		return fmt.Errorf("climatology %q has no curve", c.Name)
	}
	snapshot, err := EncodeCurve(c.Curve)
	if err != nil {
		return fmt.Errorf("encoding curve for %q: %w", c.Name, err)
	}

	c.ID = uuid.New().String()
	c.CreatedAt = s.clock.Now().UTC()

	_, err = s.db.Exec(`
		INSERT INTO climatologies (id, name, station, variable, quantile, window, unit, ref_start, ref_end, created_at, snapshot)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			id = excluded.id, station = excluded.station, variable = excluded.variable,
			quantile = excluded.quantile, window = excluded.window, unit = excluded.unit,
			ref_start = excluded.ref_start, ref_end = excluded.ref_end,
			created_at = excluded.created_at, snapshot = excluded.snapshot`,
		c.ID, c.Name, c.Station, c.Variable, c.Quantile, c.Window, c.Unit,
		c.RefStart.Format(dateLayout), c.RefEnd.Format(dateLayout),
		c.CreatedAt.Format(timeLayout), snapshot,
	)
	if err != nil {
		return fmt.Errorf("saving climatology %q: %w", c.Name, err)
	}
	return nil
}

// GetClimatology loads a curve and its metadata by name.
func (s *Store) GetClimatology(name string) (*Climatology, error) {
	row := s.db.QueryRow(`
		SELECT id, name, station, variable, quantile, window, unit, ref_start, ref_end, created_at, snapshot
		FROM climatologies WHERE name = ?`, name)

	var c Climatology
	var refStart, refEnd, createdAt string
	var snapshot []byte
	err := row.Scan(&c.ID, &c.Name, &c.Station, &c.Variable, &c.Quantile, &c.Window,
		&c.Unit, &refStart, &refEnd, &createdAt, &snapshot)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("climatology %q: %w", name, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("loading climatology %q: %w", name, err)
	}
	if err := parseStamps(&c, refStart, refEnd, createdAt); err != nil {
		return nil, fmt.Errorf("climatology %q: %w", name, err)
	}
	c.Curve, err = DecodeCurve(snapshot)
	if err != nil {
		return nil, fmt.Errorf("decoding curve for %q: %w", name, err)
	}
	return &c, nil
}

// ListClimatologies returns the stored climatologies' metadata, newest
// first, without decoding their curves.
func (s *Store) ListClimatologies() ([]Climatology, error) {
	rows, err := s.db.Query(`
		SELECT id, name, station, variable, quantile, window, unit, ref_start, ref_end, created_at
		FROM climatologies ORDER BY created_at DESC, name`)
	if err != nil {
		return nil, fmt.Errorf("listing climatologies: %w", err)
	}
	defer rows.Close()

	var out []Climatology
	for rows.Next() {
		var c Climatology
		var refStart, refEnd, createdAt string
		if err := rows.Scan(&c.ID, &c.Name, &c.Station, &c.Variable, &c.Quantile, &c.Window,
			&c.Unit, &refStart, &refEnd, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning climatology row: %w", err)
		}
		if err := parseStamps(&c, refStart, refEnd, createdAt); err != nil {
			return nil, fmt.Errorf("climatology %q: %w", c.Name, err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// SaveRun stores one indicator computation and its per-period results in
// a single transaction. The run's ID and CreatedAt fields are assigned.
func (s *Store) SaveRun(run *Run, values []indices.Value) error {
	run.ID = uuid.New().String()
	run.CreatedAt = s.clock.Now().UTC()

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("starting archive transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(`INSERT INTO runs (id, station, indicator, freq, units, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		run.ID, run.Station, run.Indicator, run.Freq, run.Units, run.CreatedAt.Format(timeLayout))
	if err != nil {
		return fmt.Errorf("saving run: %w", err)
	}

	stmt, err := tx.Prepare(`INSERT INTO results (run_id, period, value, valid) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing result insert: %w", err)
	}
	defer stmt.Close()

	for _, v := range values {
		var value sql.NullFloat64
		if v.Valid {
			value = sql.NullFloat64{Float64: v.Value, Valid: true}
		}
		if _, err := stmt.Exec(run.ID, v.Period.Format(dateLayout), value, v.Valid); err != nil {
			return fmt.Errorf("saving result for period %s: %w", v.Period.Format(dateLayout), err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing run: %w", err)
	}
	return nil
}

// ListRuns returns archived runs, newest first. Empty station or
// indicator filters match everything.
func (s *Store) ListRuns(station, indicator string) ([]Run, error) {
	rows, err := s.db.Query(`
		SELECT id, station, indicator, freq, units, created_at FROM runs
		WHERE (? = '' OR station = ?) AND (? = '' OR indicator = ?)
		ORDER BY created_at DESC, id`,
		station, station, indicator, indicator)
	if err != nil {
		return nil, fmt.Errorf("listing runs: %w", err)
	}
	defer rows.Close()

	var out []Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// GetRun loads one run by ID.
func (s *Store) GetRun(id string) (*Run, error) {
	row := s.db.QueryRow(`SELECT id, station, indicator, freq, units, created_at FROM runs WHERE id = ?`, id)
	r, err := scanRun(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("run %q: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// Results loads a run's per-period values in period order. Periods
// stored without data come back as NoData values.
func (s *Store) Results(runID string) ([]indices.Value, error) {
	rows, err := s.db.Query(`SELECT period, value, valid FROM results WHERE run_id = ? ORDER BY period`, runID)
	if err != nil {
		return nil, fmt.Errorf("loading results for run %s: %w", runID, err)
	}
	defer rows.Close()

	var out []indices.Value
	for rows.Next() {
		var period string
		var value sql.NullFloat64
		var valid bool
		if err := rows.Scan(&period, &value, &valid); err != nil {
			return nil, fmt.Errorf("scanning result row: %w", err)
		}
		p, err := time.Parse(dateLayout, period)
		if err != nil {
			return nil, fmt.Errorf("result period %q: %w", period, err)
		}
		if valid {
			out = append(out, indices.Computed(p, value.Float64))
		} else {
			out = append(out, indices.NoData(p))
		}
	}
	return out, rows.Err()
}

// Counts returns the number of stored climatologies and runs, for the
// status endpoint.
func (s *Store) Counts() (climatologies, runs int, err error) {
	if err = s.db.QueryRow(`SELECT COUNT(*) FROM climatologies`).Scan(&climatologies); err != nil {
		return 0, 0, fmt.Errorf("counting climatologies: %w", err)
	}
	if err = s.db.QueryRow(`SELECT COUNT(*) FROM runs`).Scan(&runs); err != nil {
		return 0, 0, fmt.Errorf("counting runs: %w", err)
	}
	return climatologies, runs, nil
}

// rowScanner covers *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (Run, error) {
	var r Run
	var createdAt string
	if err := row.Scan(&r.ID, &r.Station, &r.Indicator, &r.Freq, &r.Units, &createdAt); err != nil {
		return Run{}, err
	}
	t, err := time.Parse(timeLayout, createdAt)
	if err != nil {
		return Run{}, fmt.Errorf("run %s created_at %q: %w", r.ID, createdAt, err)
	}
	r.CreatedAt = t
	return r, nil
}

func parseStamps(c *Climatology, refStart, refEnd, createdAt string) error {
	var err error
	if c.RefStart, err = time.Parse(dateLayout, refStart); err != nil {
		return fmt.Errorf("ref_start %q: %w", refStart, err)
	}
	if c.RefEnd, err = time.Parse(dateLayout, refEnd); err != nil {
		return fmt.Errorf("ref_end %q: %w", refEnd, err)
	}
	if c.CreatedAt, err = time.Parse(timeLayout, createdAt); err != nil {
		return fmt.Errorf("created_at %q: %w", createdAt, err)
	}
	return nil
}
