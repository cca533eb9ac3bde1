package core

import "testing"

func TestNormalize(t *testing.T) {
	cases := []struct {
		in  string
		out string
	}{
		{"Bogotá D.C.", "bogota d.c."},
		{" Nariño ", "narino"},
		{"BOYACÁ", "boyaca"},
		{"Chocó", "choco"},
		{"san andrés y providencia", "san andres y providencia"},
		{"Valle del Cauca", "valle del cauca"},
		{"", ""},
		{"  ", ""},
		{"1234-ABC", "1234-abc"},
	}
	for _, tc := range cases {
		if got := Normalize(tc.in); got != tc.out {
			t.Errorf("Normalize(%q) = %q, want %q", tc.in, got, tc.out)
		}
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{"Bogotá D.C.", " Nariño ", "Atlántico", "quindío", "plain"}
	for _, in := range inputs {
		once := Normalize(in)
		twice := Normalize(once)
		if once != twice {
			t.Errorf("Normalize not idempotent for %q: %q != %q", in, once, twice)
		}
	}
}

func TestNormalizeKeepsPunctuationAndDigits(t *testing.T) {
	if got := Normalize("Año 2023: $1.5M (aprox.)"); got != "ano 2023: $1.5m (aprox.)" {
		t.Errorf("unexpected result %q", got)
	}
}
