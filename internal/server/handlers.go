package server

import (
	"errors"
	"net/http"
	"sort"
	"time"

	"github.com/gorilla/mux"

	"github.com/chrissnell/climdex/internal/store"
)

// indicatorInfo is one catalogue entry as served by the API.
type indicatorInfo struct {
	Name        string   `json:"name"`
	Summary     string   `json:"summary"`
	Units       string   `json:"units"`
	Requires    []string `json:"requires"`
	NeedsCurve  bool     `json:"needs_curve"`
	DefaultFreq string   `json:"default_freq"`
}

// climatologyInfo is stored climatology metadata; the detail endpoint
// adds the curve itself.
type climatologyInfo struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Station   string    `json:"station"`
	Variable  string    `json:"variable"`
	Quantile  float64   `json:"quantile"`
	Window    int       `json:"window"`
	Unit      string    `json:"unit"`
	RefStart  string    `json:"ref_start"`
	RefEnd    string    `json:"ref_end"`
	CreatedAt time.Time `json:"created_at"`

	Calendar string    `json:"calendar,omitempty"`
	Days     []int     `json:"days,omitempty"`
	Values   []float64 `json:"values,omitempty"`
}

// runInfo is one archived computation; the detail endpoint adds the
// per-period results.
type runInfo struct {
	ID        string      `json:"id"`
	Station   string      `json:"station"`
	Indicator string      `json:"indicator"`
	Freq      string      `json:"freq"`
	Units     string      `json:"units"`
	CreatedAt time.Time   `json:"created_at"`
	Results   []resultRow `json:"results,omitempty"`
}

// resultRow is one period's value; Value is null for periods without
// data, which is distinct from a computed zero.
type resultRow struct {
	Period string   `json:"period"`
	Value  *float64 `json:"value"`
}

func (s *Server) handleIndicators(w http.ResponseWriter, r *http.Request) {
	out := make([]indicatorInfo, 0, len(s.registry))
	for _, ind := range s.registry {
		requires := make([]string, len(ind.Requires))
		for i, v := range ind.Requires {
			requires[i] = string(v)
		}
		out = append(out, indicatorInfo{
			Name:        ind.Name,
			Summary:     ind.Summary,
			Units:       ind.Units,
			Requires:    requires,
			NeedsCurve:  ind.NeedsCurve,
			DefaultFreq: ind.DefaultFreq,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	s.formatter.write(w, r, http.StatusOK, out)
}

func (s *Server) handleClimatologies(w http.ResponseWriter, r *http.Request) {
	list, err := s.archive.ListClimatologies()
	if err != nil {
		s.serverError(w, r, err)
		return
	}
	out := make([]climatologyInfo, len(list))
	for i := range list {
		out[i] = climatologyMeta(&list[i])
	}
	s.formatter.write(w, r, http.StatusOK, out)
}

func (s *Server) handleClimatology(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]
	c, err := s.archive.GetClimatology(name)
	if errors.Is(err, store.ErrNotFound) {
		s.formatter.writeError(w, r, http.StatusNotFound, err.Error())
		return
	}
	if err != nil {
		s.serverError(w, r, err)
		return
	}

	out := climatologyMeta(c)
	out.Calendar = c.Curve.Calendar().String()
	out.Days = c.Curve.Days()
	out.Values = c.Curve.Values()
	s.formatter.write(w, r, http.StatusOK, out)
}

func (s *Server) handleRuns(w http.ResponseWriter, r *http.Request) {
	station := r.URL.Query().Get("station")
	indicator := r.URL.Query().Get("indicator")
	if indicator != "" {
		if _, ok := s.registry[indicator]; !ok {
			s.formatter.writeError(w, r, http.StatusBadRequest, "unknown indicator "+indicator)
			return
		}
	}

	runs, err := s.archive.ListRuns(station, indicator)
	if err != nil {
		s.serverError(w, r, err)
		return
	}
	out := make([]runInfo, len(runs))
	for i, run := range runs {
		out[i] = runMeta(&run)
	}
	s.formatter.write(w, r, http.StatusOK, out)
}

func (s *Server) handleRun(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	run, err := s.archive.GetRun(id)
	if errors.Is(err, store.ErrNotFound) {
		s.formatter.writeError(w, r, http.StatusNotFound, err.Error())
		return
	}
	if err != nil {
		s.serverError(w, r, err)
		return
	}
	values, err := s.archive.Results(id)
	if err != nil {
		s.serverError(w, r, err)
		return
	}

	out := runMeta(run)
	out.Results = make([]resultRow, len(values))
	for i, v := range values {
		row := resultRow{Period: v.Period.Format("2006-01-02")}
		if v.Valid {
			value := v.Value
			row.Value = &value
		}
		out.Results[i] = row
	}
	s.formatter.write(w, r, http.StatusOK, out)
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	climatologies, runs, err := s.archive.Counts()
	if err != nil {
		s.serverError(w, r, err)
		return
	}
	s.formatter.write(w, r, http.StatusOK, map[string]any{
		"status":        "ok",
		"indicators":    len(s.registry),
		"climatologies": climatologies,
		"runs":          runs,
	})
}

func (s *Server) serverError(w http.ResponseWriter, r *http.Request, err error) {
	s.logger.Errorf("archive API error on %s: %v", r.URL.Path, err)
	s.formatter.writeError(w, r, http.StatusInternalServerError, "archive error")
}

func climatologyMeta(c *store.Climatology) climatologyInfo {
	return climatologyInfo{
		ID:        c.ID,
		Name:      c.Name,
		Station:   c.Station,
		Variable:  c.Variable,
		Quantile:  c.Quantile,
		Window:    c.Window,
		Unit:      c.Unit,
		RefStart:  c.RefStart.Format("2006-01-02"),
		RefEnd:    c.RefEnd.Format("2006-01-02"),
		CreatedAt: c.CreatedAt,
	}
}

func runMeta(r *store.Run) runInfo {
	return runInfo{
		ID:        r.ID,
		Station:   r.Station,
		Indicator: r.Indicator,
		Freq:      r.Freq,
		Units:     r.Units,
		CreatedAt: r.CreatedAt,
	}
}
