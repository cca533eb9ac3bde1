package core

import "sort"

const topGroupSize = 10

type (
	// GroupSum is an aggregate amount keyed by a grouping value.
	GroupSum struct {
		Name   string  `json:"name"`
		Amount float64 `json:"amount"`
	}

	// GroupCount is a distinct-project count keyed by a grouping value.
	GroupCount struct {
		Name  string `json:"name"`
		Count int    `json:"count"`
	}

	// YearSum is the aggregate amount for one fiscal year.
	YearSum struct {
		Year   int     `json:"year"`
		Amount float64 `json:"amount"`
	}

	// Aggregates holds every derived figure the dashboard renders. All of
	// it comes from one filtered view of the base table, so the metrics,
	// the map and every chart agree with each other.
	Aggregates struct {
		Total        float64 `json:"total"`
		ProjectCount int     `json:"project_count"`
		Empty        bool    `json:"empty"`

		ByDepartment []GroupSum `json:"by_department"`
		BySource     []GroupSum `json:"by_source"`
		ByYear       []YearSum  `json:"by_year"`

		TopDepartments           []GroupSum   `json:"top_departments"`
		TopMunicipalities        []GroupSum   `json:"top_municipalities"`
		TopSectors               []GroupSum   `json:"top_sectors"`
		TopProjectMunicipalities []GroupCount `json:"top_project_municipalities"`
	}

	// PeriodComparison holds the totals of two year sub-ranges and their
	// percentage delta. DeltaAvailable is false when the first period's
	// total is zero: the delta is undefined, not infinite.
	PeriodComparison struct {
		Period1        YearRange `json:"period1"`
		Period2        YearRange `json:"period2"`
		Total1         float64   `json:"total1"`
		Total2         float64   `json:"total2"`
		DeltaPct       float64   `json:"delta_pct"`
		DeltaAvailable bool      `json:"delta_available"`
	}
)

// Aggregate derives every dashboard figure from the already-filtered rows.
// An empty input yields zeroed totals and empty groupings, never an error.
func Aggregate(records []Record) Aggregates {
	agg := Aggregates{Empty: len(records) == 0}

	byDept := map[string]float64{}
	byMuni := map[string]float64{}
	bySource := map[string]float64{}
	bySector := map[string]float64{}
	byYear := map[int]float64{}
	projects := map[string]struct{}{}
	projectsByMuni := map[string]map[string]struct{}{}

	for _, rec := range records {
		agg.Total += rec.AmountPaid
		byDept[rec.Department] += rec.AmountPaid
		byMuni[rec.Municipality] += rec.AmountPaid
		bySource[rec.FundingSource] += rec.AmountPaid
		bySector[rec.Sector] += rec.AmountPaid
		byYear[rec.Year] += rec.AmountPaid
		projects[rec.Project] = struct{}{}
		if projectsByMuni[rec.Municipality] == nil {
			projectsByMuni[rec.Municipality] = map[string]struct{}{}
		}
		projectsByMuni[rec.Municipality][rec.Project] = struct{}{}
	}

	agg.ProjectCount = len(projects)
	agg.ByDepartment = sortedSums(byDept)
	agg.BySource = sortedSums(bySource)
	agg.ByYear = sortedYears(byYear)
	agg.TopDepartments = topN(agg.ByDepartment, topGroupSize)
	agg.TopMunicipalities = topN(sortedSums(byMuni), topGroupSize)
	agg.TopSectors = topN(sortedSums(bySector), topGroupSize)

	counts := make([]GroupCount, 0, len(projectsByMuni))
	for name, set := range projectsByMuni {
		counts = append(counts, GroupCount{Name: name, Count: len(set)})
	}
	sort.Slice(counts, func(i, j int) bool {
		if counts[i].Count != counts[j].Count {
			return counts[i].Count > counts[j].Count
		}
		return counts[i].Name < counts[j].Name
	})
	if len(counts) > topGroupSize {
		counts = counts[:topGroupSize]
	}
	agg.TopProjectMunicipalities = counts

	return agg
}

// ComparePeriods sums two year sub-ranges of the given rows and computes the
// percentage delta between them.
func ComparePeriods(records []Record, p1, p2 YearRange) PeriodComparison {
	cmp := PeriodComparison{Period1: p1, Period2: p2}
	for _, rec := range records {
		if p1.Contains(rec.Year) {
			cmp.Total1 += rec.AmountPaid
		}
		if p2.Contains(rec.Year) {
			cmp.Total2 += rec.AmountPaid
		}
	}
	if cmp.Total1 != 0 {
		cmp.DeltaPct = (cmp.Total2 - cmp.Total1) / cmp.Total1 * 100
		cmp.DeltaAvailable = true
	}
	return cmp
}

// sortedSums flattens a sum map, descending by amount. Ties break on name
// ascending so output is deterministic for a given input.
func sortedSums(m map[string]float64) []GroupSum {
	out := make([]GroupSum, 0, len(m))
	for name, amount := range m {
		out = append(out, GroupSum{Name: name, Amount: amount})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Amount != out[j].Amount {
			return out[i].Amount > out[j].Amount
		}
		return out[i].Name < out[j].Name
	})
	return out
}

func sortedYears(m map[int]float64) []YearSum {
	out := make([]YearSum, 0, len(m))
	for year, amount := range m {
		out = append(out, YearSum{Year: year, Amount: amount})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Year < out[j].Year })
	return out
}

func topN(sorted []GroupSum, n int) []GroupSum {
	if len(sorted) <= n {
		return append([]GroupSum(nil), sorted...)
	}
	return append([]GroupSum(nil), sorted[:n]...)
}
