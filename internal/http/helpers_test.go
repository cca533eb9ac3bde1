package http

import (
	"testing"

	"inversiones/internal/core"
)

func TestFormatCOP(t *testing.T) {
	for _, tt := range []struct {
		in   float64
		want string
	}{
		{2_500_000_000_000, "$2.50 B"},
		{1_000_000_000_000, "$1.00 B"},
		{3_100_000, "$3.1 M"},
		{999_999_999_999, "$1000000.0 M"},
		{1_500, "$1.5 K"},
		{950, "$950"},
		{1_234.4, "$1.2 K"},
		{0, "$0"},
		{-3_100_000, "$-3.1 M"},
	} {
		if got := formatCOP(tt.in); got != tt.want {
			t.Errorf("formatCOP(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestGroupDigits(t *testing.T) {
	for _, tt := range []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{950, "950"},
		{-512, "-512"},
	} {
		if got := groupDigits(tt.in); got != tt.want {
			t.Errorf("groupDigits(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFilterCacheKeyOrderInsensitive(t *testing.T) {
	a := core.FilterState{
		Years:       core.YearRange{From: 2015, To: 2020},
		Departments: []string{"Nariño", "Antioquia"},
		Sources:     []string{"SGR", "PGN"},
	}
	b := core.FilterState{
		Years:       core.YearRange{From: 2015, To: 2020},
		Departments: []string{"Antioquia", "Nariño"},
		Sources:     []string{"PGN", "SGR"},
	}
	if filterCacheKey(a) != filterCacheKey(b) {
		t.Error("equivalent selections produced different cache keys")
	}

	c := b
	c.AdjustReal = true
	if filterCacheKey(b) == filterCacheKey(c) {
		t.Error("inflation toggle must change the cache key")
	}
}
