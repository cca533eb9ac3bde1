package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"inversiones/internal/core"
)

const queryTimeout = 30 * time.Second

// handleIndex renders the dashboard shell. Filter options and figures are
// loaded by the page itself through the JSON API.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if s.templates == nil {
		slog.ErrorContext(r.Context(), "Templates not loaded", "url", r.URL.Path)
		http.Error(w, "templates not loaded", http.StatusInternalServerError)
		return
	}

	data := struct {
		MinYear            int
		MaxYear            int
		BaseYear           int
		InflationAvailable bool
	}{
		MinYear:            core.MinYear,
		MaxYear:            core.MaxYear,
		BaseYear:           s.dashboard.BaseYear(),
		InflationAvailable: s.dashboard.InflationAvailable(),
	}

	if err := s.templates.ExecuteTemplate(w, "index.html", data); err != nil {
		slog.ErrorContext(r.Context(), "Index template execution failed", "error", err, "template", "index.html")
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// summaryResponse decorates the raw aggregates with display strings and
// the inflation context they were computed under.
type summaryResponse struct {
	core.Aggregates
	TotalDisplay       string `json:"total_display"`
	AdjustedReal       bool   `json:"adjusted_real"`
	BaseYear           int    `json:"base_year"`
	InflationAvailable bool   `json:"inflation_available"`
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	state, err := parseFilterState(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "invalid_filter", err.Error())
		return
	}

	key := filterCacheKey(state)
	agg, hit := s.summaryCache.Get(key)
	if !hit {
		ctx, cancel := queryContext(r)
		defer cancel()
		agg, err = s.dashboard.Summary(ctx, state)
		if err != nil {
			s.writeDashboardError(w, r, err)
			return
		}
		s.summaryCache.Set(key, agg)
	} else {
		slog.DebugContext(r.Context(), "Summary cache hit", "key", key)
	}

	baseYear := s.dashboard.BaseYear()
	if state.BaseYear != 0 {
		baseYear = state.BaseYear
	}
	writeJSON(w, http.StatusOK, summaryResponse{
		Aggregates:         agg,
		TotalDisplay:       formatCOP(agg.Total),
		AdjustedReal:       state.AdjustReal && s.dashboard.InflationAvailable(),
		BaseYear:           baseYear,
		InflationAvailable: s.dashboard.InflationAvailable(),
	})
}

func (s *Server) handleOptions(w http.ResponseWriter, r *http.Request) {
	state, err := parseFilterState(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "invalid_filter", err.Error())
		return
	}

	ctx, cancel := queryContext(r)
	defer cancel()
	opts, err := s.dashboard.Options(ctx, state)
	if err != nil {
		s.writeDashboardError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, opts)
}

type compareResponse struct {
	core.PeriodComparison
	Total1Display string `json:"total1_display"`
	Total2Display string `json:"total2_display"`
}

func (s *Server) handleCompare(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	state, err := parseFilterState(query)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "invalid_filter", err.Error())
		return
	}
	p1, p2, err := parsePeriods(query)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "invalid_period", err.Error())
		return
	}

	ctx, cancel := queryContext(r)
	defer cancel()
	cmp, err := s.dashboard.Compare(ctx, state, p1, p2)
	if err != nil {
		s.writeDashboardError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, compareResponse{
		PeriodComparison: cmp,
		Total1Display:    formatCOP(cmp.Total1),
		Total2Display:    formatCOP(cmp.Total2),
	})
}

type mapResponse struct {
	Available bool   `json:"available"`
	Regions   any    `json:"regions,omitempty"`
	Message   string `json:"message,omitempty"`
}

func (s *Server) handleMap(w http.ResponseWriter, r *http.Request) {
	state, err := parseFilterState(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "invalid_filter", err.Error())
		return
	}

	ctx, cancel := queryContext(r)
	defer cancel()
	regions, ok, err := s.dashboard.MapRegions(ctx, state)
	if err != nil {
		s.writeDashboardError(w, r, err)
		return
	}
	if !ok {
		// Missing geometry downgrades the map, never the dashboard.
		writeJSON(w, http.StatusOK, mapResponse{Available: false, Message: "map geometry not available"})
		return
	}

	writeJSON(w, http.StatusOK, mapResponse{Available: true, Regions: regions})
}

// writeDashboardError maps service failures to the API error envelope.
// A failed base-table load means the upstream API was unreachable during
// this session.
func (s *Server) writeDashboardError(w http.ResponseWriter, r *http.Request, err error) {
	slog.ErrorContext(r.Context(), "Dashboard query failed", "error", err, "url", r.URL.Path)
	if errors.Is(err, core.ErrInvalidYearRange) {
		writeError(w, http.StatusUnprocessableEntity, "invalid_filter", err.Error())
		return
	}
	writeError(w, http.StatusServiceUnavailable, "dataset_unavailable", "the public-investment dataset could not be loaded")
}

func queryContext(r *http.Request) (context.Context, context.CancelFunc) {
	return context.WithTimeout(r.Context(), queryTimeout)
}
