package core

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// stripMarks decomposes to NFD and removes nonspacing marks only, so base
// letters, punctuation and digits survive ("Bogotá D.C." -> "Bogota D.C.").
var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)))

// Normalize produces the canonical join key for a region name: lowercase,
// diacritic-free, trimmed. Dataset rows and GeoJSON feature names are run
// through the same function so inconsistently encoded names still match.
// Normalize is idempotent.
func Normalize(s string) string {
	out, _, err := transform.String(stripMarks, s)
	if err != nil {
		// Transform only fails on malformed UTF-8; fall back to the input
		// so a bad name degrades to a failed join, not a crash.
		out = s
	}
	return strings.ToLower(strings.TrimSpace(out))
}
