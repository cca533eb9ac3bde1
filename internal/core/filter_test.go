package core

import (
	"reflect"
	"testing"
)

func sampleRecords() []Record {
	return []Record{
		{Year: 2018, Department: "Antioquia", Municipality: "Medellín", FundingSource: "PGN", AmountPaid: 100, Sector: "Salud", Project: "P1"},
		{Year: 2019, Department: "Antioquia", Municipality: "Envigado", FundingSource: "SGR", AmountPaid: 200, Sector: "Educación", Project: "P2"},
		{Year: 2019, Department: "Nariño", Municipality: "Pasto", FundingSource: "PGN", AmountPaid: 300, Sector: "Vías", Project: "P3"},
		{Year: 2020, Department: "Chocó", Municipality: "Quibdó", FundingSource: "SGR", AmountPaid: 400, Sector: "Salud", Project: "P4"},
		{Year: 2021, Department: "Antioquia", Municipality: "Medellín", FundingSource: "PGN", AmountPaid: 500, Sector: "Vías", Project: "P1"},
	}
}

func TestFilterYearRange(t *testing.T) {
	got := Filter(sampleRecords(), FilterState{Years: YearRange{From: 2019, To: 2020}})
	if len(got) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(got))
	}
	for _, rec := range got {
		if rec.Year < 2019 || rec.Year > 2020 {
			t.Errorf("row outside range: %+v", rec)
		}
	}
}

func TestFilterCascade(t *testing.T) {
	state := FilterState{
		Years:       FullRange(),
		Departments: []string{"Antioquia"},
		Sources:     []string{"PGN"},
	}
	got := Filter(sampleRecords(), state)
	if len(got) != 2 {
		t.Fatalf("expected 2 rows, got %d: %+v", len(got), got)
	}
	for _, rec := range got {
		if rec.Department != "Antioquia" || rec.FundingSource != "PGN" {
			t.Errorf("row escaped filter: %+v", rec)
		}
	}
}

func TestFilterEmptySelectionsPassThrough(t *testing.T) {
	got := Filter(sampleRecords(), FilterState{Years: FullRange()})
	if len(got) != len(sampleRecords()) {
		t.Fatalf("empty selections must pass all rows: got %d", len(got))
	}
}

func TestFilterNoMatches(t *testing.T) {
	got := Filter(sampleRecords(), FilterState{Years: YearRange{From: 2010, To: 2011}})
	if len(got) != 0 {
		t.Fatalf("expected no rows, got %d", len(got))
	}
}

// Widening a selection can only let more rows through.
func TestFilterMonotonicity(t *testing.T) {
	narrow := FilterState{Years: YearRange{From: 2019, To: 2020}, Departments: []string{"Antioquia"}}
	wide := FilterState{Years: YearRange{From: 2019, To: 2020}, Departments: []string{"Antioquia", "Nariño", "Chocó"}}

	narrowRows := Filter(sampleRecords(), narrow)
	wideRows := Filter(sampleRecords(), wide)
	if len(narrowRows) > len(wideRows) {
		t.Errorf("narrow filter returned more rows (%d) than wide (%d)", len(narrowRows), len(wideRows))
	}
	if Aggregate(narrowRows).Total > Aggregate(wideRows).Total {
		t.Error("narrow filter total exceeds wide filter total")
	}
}

func TestFilterIdempotent(t *testing.T) {
	state := FilterState{Years: FullRange(), Departments: []string{"Antioquia"}}
	first := Filter(sampleRecords(), state)
	second := Filter(sampleRecords(), state)
	if !reflect.DeepEqual(first, second) {
		t.Error("same state over same table must yield identical rows")
	}
}

func TestClearSelections(t *testing.T) {
	state := FilterState{
		Years:          YearRange{From: 2015, To: 2020},
		Departments:    []string{"Antioquia"},
		Municipalities: []string{"Medellín"},
		Sources:        []string{"PGN"},
		AdjustReal:     true,
	}

	cleared := state.ClearSelections()
	if cleared.Years != state.Years {
		t.Errorf("year range changed: %+v", cleared.Years)
	}
	if !cleared.AdjustReal {
		t.Error("inflation toggle must survive a selection reset")
	}
	if cleared.Departments != nil || cleared.Municipalities != nil || cleared.Sources != nil {
		t.Errorf("selections not emptied: %+v", cleared)
	}
	if len(state.Departments) != 1 {
		t.Error("ClearSelections mutated its receiver")
	}
}

func TestDeflate(t *testing.T) {
	records := []Record{
		{Year: 2019, AmountPaid: 100},
		{Year: 2020, AmountPaid: 100},
		{Year: 1990, AmountPaid: 100}, // no factor: nominal kept
	}
	factors := map[int]float64{2019: 1.5, 2020: 1.2}

	got := Deflate(records, factors)
	if got[0].AmountPaid != 150 || got[1].AmountPaid != 120 || got[2].AmountPaid != 100 {
		t.Errorf("unexpected deflated amounts: %+v", got)
	}
	// Input untouched.
	if records[0].AmountPaid != 100 {
		t.Error("Deflate mutated its input")
	}
}
