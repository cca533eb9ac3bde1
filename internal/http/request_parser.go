package http

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"inversiones/internal/core"
)

// parseFilterState extracts the filter selection from query parameters.
// Missing year bounds default to the full dataset span; selection
// parameters repeat (?department=A&department=B) and are sanitized but
// never validated against the dataset, since unknown values simply match
// nothing.
func parseFilterState(query url.Values) (core.FilterState, error) {
	state := core.FilterState{Years: core.FullRange()}

	from, err := parseYearParam(query, "from", state.Years.From)
	if err != nil {
		return core.FilterState{}, err
	}
	to, err := parseYearParam(query, "to", state.Years.To)
	if err != nil {
		return core.FilterState{}, err
	}
	state.Years = core.YearRange{From: from, To: to}
	if err := state.Years.Validate(); err != nil {
		return core.FilterState{}, fmt.Errorf("years %d..%d: %w", from, to, err)
	}

	state.Departments = parseListParam(query, "department")
	state.Municipalities = parseListParam(query, "municipality")
	state.Sources = parseListParam(query, "source")
	state.AdjustReal = parseBoolParam(query.Get("real"))

	baseYear, err := parseYearParam(query, "base_year", 0)
	if err != nil {
		return core.FilterState{}, err
	}
	state.BaseYear = baseYear

	return state, nil
}

// parsePeriods extracts the two comparison sub-ranges (p1_from..p1_to,
// p2_from..p2_to). All four parameters are required.
func parsePeriods(query url.Values) (p1, p2 core.YearRange, err error) {
	for _, param := range []struct {
		key  string
		dest *int
	}{
		{"p1_from", &p1.From},
		{"p1_to", &p1.To},
		{"p2_from", &p2.From},
		{"p2_to", &p2.To},
	} {
		v := strings.TrimSpace(query.Get(param.key))
		if v == "" {
			return core.YearRange{}, core.YearRange{}, fmt.Errorf("missing parameter %q", param.key)
		}
		n, convErr := strconv.Atoi(v)
		if convErr != nil {
			return core.YearRange{}, core.YearRange{}, fmt.Errorf("parameter %q: not a year: %q", param.key, v)
		}
		*param.dest = n
	}

	if err := p1.Validate(); err != nil {
		return core.YearRange{}, core.YearRange{}, fmt.Errorf("period 1: %w", err)
	}
	if err := p2.Validate(); err != nil {
		return core.YearRange{}, core.YearRange{}, fmt.Errorf("period 2: %w", err)
	}
	return p1, p2, nil
}

func parseYearParam(query url.Values, key string, fallback int) (int, error) {
	v := strings.TrimSpace(query.Get(key))
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("parameter %q: not a year: %q", key, v)
	}
	return n, nil
}

func parseListParam(query url.Values, key string) []string {
	var out []string
	for _, v := range query[key] {
		v = sanitizeInput(v)
		if v == "" {
			continue
		}
		out = append(out, v)
	}
	return out
}

func parseBoolParam(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "on", "yes":
		return true
	}
	return false
}

// sanitizeInput removes control characters and trims whitespace.
func sanitizeInput(s string) string {
	s = strings.TrimSpace(s)
	return strings.Map(func(r rune) rune {
		if r < 32 && r != 9 && r != 10 && r != 13 {
			return -1
		}
		return r
	}, s)
}
