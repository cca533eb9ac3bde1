// Package services wires the cached base table, the inflation factors and
// the map geometry into the operations the HTTP layer exposes.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"inversiones/internal/core"
	"inversiones/internal/geo"
	"inversiones/internal/socrata"
)

// DashboardService derives every dashboard figure from the session-cached
// base table. All methods are pure recomputations over that table: there is
// no state to lock beyond the memo cell itself.
type DashboardService struct {
	dataset *socrata.Dataset

	// nil when the configured base year is missing from the price index;
	// inflation adjustment is then silently disabled and nominal values
	// are used (the condition is logged once at construction). The rate
	// table is kept so per-request base-year overrides can derive their
	// own factor maps.
	rates    map[int]float64
	factors  map[int]float64
	baseYear int

	// nil when the geometry file could not be loaded; the map section is
	// then reported unavailable rather than failing requests.
	geometry *geo.FeatureCollection
}

// Option configures a DashboardService.
type Option func(*DashboardService)

// WithInflation supplies the CPI rate table and base year for real-value
// adjustment. A base year absent from the computed index disables the
// adjustment with a warning instead of failing construction.
func WithInflation(rates map[int]float64, baseYear int) Option {
	return func(s *DashboardService) {
		s.rates = rates
		s.baseYear = baseYear
		factors, err := core.DeflationFactors(rates, baseYear)
		if err != nil {
			slog.Warn("Inflation adjustment disabled, using nominal values",
				"component", "pipeline", "base_year", baseYear, "error", err)
			return
		}
		s.factors = factors
	}
}

// WithGeometry supplies the loaded map geometry. Pass nil to run without
// the map section.
func WithGeometry(fc *geo.FeatureCollection) Option {
	return func(s *DashboardService) { s.geometry = fc }
}

func NewDashboardService(dataset *socrata.Dataset, opts ...Option) *DashboardService {
	s := &DashboardService{dataset: dataset, baseYear: core.DefaultBaseYear}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// InflationAvailable reports whether real-value adjustment can be honored.
func (s *DashboardService) InflationAvailable() bool {
	return s.factors != nil
}

// BaseYear returns the configured inflation base year.
func (s *DashboardService) BaseYear() int {
	return s.baseYear
}

// view returns the filtered (and, when requested and available, deflated)
// rows for the given state. Every public operation goes through here so all
// derived numbers agree with each other.
func (s *DashboardService) view(ctx context.Context, state core.FilterState) ([]core.Record, error) {
	if err := state.Validate(); err != nil {
		return nil, fmt.Errorf("filter state: %w", err)
	}
	table, err := s.dataset.Records(ctx)
	if err != nil {
		return nil, fmt.Errorf("base table: %w", err)
	}
	rows := core.Filter(table, state)
	if state.AdjustReal {
		if factors := s.factorsFor(ctx, state.BaseYear); factors != nil {
			rows = core.Deflate(rows, factors)
		}
	}
	return rows, nil
}

// factorsFor returns the deflation factors for the requested base year, or
// the default factors when no override is given. An override whose base
// year is missing from the index falls back to the default factors.
func (s *DashboardService) factorsFor(ctx context.Context, baseYear int) map[int]float64 {
	if baseYear == 0 || baseYear == s.baseYear {
		return s.factors
	}
	factors, err := core.DeflationFactors(s.rates, baseYear)
	if err != nil {
		slog.WarnContext(ctx, "Base year override unavailable, using default",
			"component", "pipeline", "base_year", baseYear, "default", s.baseYear)
		return s.factors
	}
	return factors
}

// Summary computes every aggregate the dashboard renders for one filter state.
func (s *DashboardService) Summary(ctx context.Context, state core.FilterState) (core.Aggregates, error) {
	rows, err := s.view(ctx, state)
	if err != nil {
		return core.Aggregates{}, err
	}
	return core.Aggregate(rows), nil
}

// Compare sums two year sub-ranges over the filtered (and possibly
// deflated) rows and reports the percentage delta.
func (s *DashboardService) Compare(ctx context.Context, state core.FilterState, p1, p2 core.YearRange) (core.PeriodComparison, error) {
	if err := p1.Validate(); err != nil {
		return core.PeriodComparison{}, fmt.Errorf("period 1: %w", err)
	}
	if err := p2.Validate(); err != nil {
		return core.PeriodComparison{}, fmt.Errorf("period 2: %w", err)
	}
	rows, err := s.view(ctx, state)
	if err != nil {
		return core.PeriodComparison{}, err
	}
	return core.ComparePeriods(rows, p1, p2), nil
}

// FilteredRecords returns the raw filtered row set, for the CSV export and
// the data-table view.
func (s *DashboardService) FilteredRecords(ctx context.Context, state core.FilterState) ([]core.Record, error) {
	return s.view(ctx, state)
}

// MapRegions joins the per-department sums onto the geometry features.
// The second return is false when no geometry is available.
func (s *DashboardService) MapRegions(ctx context.Context, state core.FilterState) ([]geo.RegionValue, bool, error) {
	if s.geometry == nil {
		return nil, false, nil
	}
	rows, err := s.view(ctx, state)
	if err != nil {
		return nil, false, err
	}
	agg := core.Aggregate(rows)
	return s.geometry.Join(agg.ByDepartment), true, nil
}

// FilterOptions lists the selectable values for the secondary filters given
// the current state. Municipality options are scoped to the selected
// departments when any are selected; both lists always reflect the year
// range already applied.
type FilterOptions struct {
	Departments    []string `json:"departments"`
	Municipalities []string `json:"municipalities"`
	Sources        []string `json:"sources"`
	Years          []int    `json:"years"`
}

// Options computes the selectable filter values for the given state.
func (s *DashboardService) Options(ctx context.Context, state core.FilterState) (FilterOptions, error) {
	if err := state.Years.Validate(); err != nil {
		return FilterOptions{}, fmt.Errorf("filter state: %w", err)
	}
	table, err := s.dataset.Records(ctx)
	if err != nil {
		return FilterOptions{}, fmt.Errorf("base table: %w", err)
	}

	// Only the year range restricts the option lists; the secondary
	// selections must not hide their own alternatives.
	yearScoped := core.Filter(table, core.FilterState{Years: state.Years})

	opts := FilterOptions{
		Departments: distinct(yearScoped, func(r core.Record) string { return r.Department }),
		Sources:     distinct(yearScoped, func(r core.Record) string { return r.FundingSource }),
	}

	muniScope := yearScoped
	if len(state.Departments) > 0 {
		muniScope = core.Filter(table, core.FilterState{Years: state.Years, Departments: state.Departments})
	}
	opts.Municipalities = distinct(muniScope, func(r core.Record) string { return r.Municipality })

	yearSet := map[int]struct{}{}
	for _, rec := range yearScoped {
		yearSet[rec.Year] = struct{}{}
	}
	for y := range yearSet {
		opts.Years = append(opts.Years, y)
	}
	sort.Ints(opts.Years)

	return opts, nil
}

func distinct(records []core.Record, key func(core.Record) string) []string {
	seen := map[string]struct{}{}
	var out []string
	for _, rec := range records {
		v := key(rec)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}
