package core

// stringSet builds a membership set from a selection slice. A nil map means
// "nothing selected": every value passes.
func stringSet(values []string) map[string]struct{} {
	if len(values) == 0 {
		return nil
	}
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}

func inSet(set map[string]struct{}, v string) bool {
	if set == nil {
		return true
	}
	_, ok := set[v]
	return ok
}

// Filter applies the selection cascade to the base table and returns the
// surviving rows: year range first, then departments, municipalities and
// funding sources. Empty selections pass all values through. The base table
// is never mutated; the result is a fresh slice sharing the row values.
func Filter(records []Record, state FilterState) []Record {
	departments := stringSet(state.Departments)
	municipalities := stringSet(state.Municipalities)
	sources := stringSet(state.Sources)

	var out []Record
	for _, rec := range records {
		if !state.Years.Contains(rec.Year) {
			continue
		}
		if !inSet(departments, rec.Department) {
			continue
		}
		if !inSet(municipalities, rec.Municipality) {
			continue
		}
		if !inSet(sources, rec.FundingSource) {
			continue
		}
		out = append(out, rec)
	}
	return out
}

// Deflate returns a copy of records with AmountPaid multiplied by the
// deflation factor for each row's year. Years absent from the factor table
// keep their nominal amount (factor 1).
func Deflate(records []Record, factors map[int]float64) []Record {
	out := make([]Record, len(records))
	for i, rec := range records {
		factor, ok := factors[rec.Year]
		if !ok {
			factor = 1
		}
		rec.AmountPaid *= factor
		out[i] = rec
	}
	return out
}
