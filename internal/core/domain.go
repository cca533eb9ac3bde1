package core

import "errors"

// Year bounds of the dataset fetched from the open-data API. The remote
// resource is queried once for this whole span; everything narrower is a
// client-side filter.
const (
	MinYear = 2010
	MaxYear = 2025
)

type (
	// Record is one project-disbursement row of the base table.
	// Year and AmountPaid are guaranteed numeric: rows that fail coercion
	// are dropped at acquisition time and never reach this type.
	Record struct {
		Year          int     `json:"vigencia"`
		Department    string  `json:"departamento"`
		Municipality  string  `json:"municipio"`
		FundingSource string  `json:"fuentefinanciacion"`
		AmountPaid    float64 `json:"valorpagado"`
		Sector        string  `json:"sectorproyecto"`
		Project       string  `json:"nombreproyecto"`
	}

	// YearRange is an inclusive [From, To] span of fiscal years.
	YearRange struct {
		From int `json:"from"`
		To   int `json:"to"`
	}

	// FilterState is the user's current selection. Empty sets pass every
	// value through; the inflation toggle substitutes deflated amounts.
	// BaseYear optionally overrides the configured deflation base year;
	// zero means the service default.
	FilterState struct {
		Years          YearRange `json:"years"`
		Departments    []string  `json:"departments"`
		Municipalities []string  `json:"municipalities"`
		Sources        []string  `json:"sources"`
		AdjustReal     bool      `json:"adjust_real"`
		BaseYear       int       `json:"base_year,omitempty"`
	}
)

var (
	ErrInvalidYearRange = errors.New("invalid year range")
	ErrEmptyDataset     = errors.New("empty dataset")
)

// Contains reports whether year falls inside the inclusive range.
func (r YearRange) Contains(year int) bool {
	return year >= r.From && year <= r.To
}

func (r YearRange) Validate() error {
	if r.From > r.To {
		return ErrInvalidYearRange
	}
	return nil
}

// FullRange returns the complete dataset span.
func FullRange() YearRange {
	return YearRange{From: MinYear, To: MaxYear}
}

// Validate checks the filter state for internal consistency.
func (f FilterState) Validate() error {
	return f.Years.Validate()
}

// ClearSelections returns a copy with the department, municipality and
// funding-source selections emptied while keeping the year range.
func (f FilterState) ClearSelections() FilterState {
	f.Departments = nil
	f.Municipalities = nil
	f.Sources = nil
	return f
}
