package http

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"inversiones/internal/core"
)

// formatCOP renders a peso amount in the dashboard's short form:
// "$2.50 B" above a billion of millions, "$3.1 M" above a million,
// "$1.5 K" above a thousand, grouped digits below that.
func formatCOP(amount float64) string {
	abs := amount
	if abs < 0 {
		abs = -abs
	}
	switch {
	case abs >= 1_000_000_000_000:
		return fmt.Sprintf("$%.2f B", amount/1_000_000_000_000)
	case abs >= 1_000_000:
		return fmt.Sprintf("$%.1f M", amount/1_000_000)
	case abs >= 1_000:
		return fmt.Sprintf("$%.1f K", amount/1_000)
	}
	return "$" + groupDigits(amount)
}

// groupDigits renders the rounded amount with comma thousand separators.
func groupDigits(amount float64) string {
	s := strconv.FormatFloat(amount, 'f', 0, 64)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	var parts []string
	for len(s) > 3 {
		parts = append([]string{s[len(s)-3:]}, parts...)
		s = s[:len(s)-3]
	}
	parts = append([]string{s}, parts...)
	out := strings.Join(parts, ",")
	if neg {
		return "-" + out
	}
	return out
}

// filterCacheKey canonicalizes a filter state so equivalent selections in
// different parameter order share one cache entry.
func filterCacheKey(state core.FilterState) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d-%d|real=%t|base=%d", state.Years.From, state.Years.To, state.AdjustReal, state.BaseYear)
	for _, set := range [][]string{state.Departments, state.Municipalities, state.Sources} {
		sorted := append([]string(nil), set...)
		sort.Strings(sorted)
		b.WriteByte('|')
		b.WriteString(strings.Join(sorted, ","))
	}
	return b.String()
}
