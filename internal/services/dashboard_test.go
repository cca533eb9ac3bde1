package services

import (
	"context"
	"reflect"
	"testing"

	"inversiones/internal/core"
	"inversiones/internal/geo"
	"inversiones/internal/socrata"
)

type staticSource struct{ records []core.Record }

func (s staticSource) Fetch(ctx context.Context) ([]core.Record, error) {
	return s.records, nil
}

func testService(t *testing.T, opts ...Option) *DashboardService {
	t.Helper()
	records := []core.Record{
		{Year: 2018, Department: "Antioquia", Municipality: "Medellín", FundingSource: "PGN", AmountPaid: 100, Sector: "Salud", Project: "P1"},
		{Year: 2019, Department: "Antioquia", Municipality: "Envigado", FundingSource: "SGR", AmountPaid: 200, Sector: "Educación", Project: "P2"},
		{Year: 2019, Department: "Nariño", Municipality: "Pasto", FundingSource: "PGN", AmountPaid: 300, Sector: "Vías", Project: "P3"},
		{Year: 2020, Department: "Chocó", Municipality: "Quibdó", FundingSource: "SGR", AmountPaid: 400, Sector: "Salud", Project: "P4"},
	}
	return NewDashboardService(socrata.NewDataset(staticSource{records}), opts...)
}

func TestSummary(t *testing.T) {
	svc := testService(t)
	agg, err := svc.Summary(context.Background(), core.FilterState{Years: core.FullRange()})
	if err != nil {
		t.Fatal(err)
	}
	if agg.Total != 1000 || agg.ProjectCount != 4 {
		t.Errorf("summary = total %v, projects %d", agg.Total, agg.ProjectCount)
	}
}

func TestSummaryIdempotent(t *testing.T) {
	svc := testService(t)
	state := core.FilterState{Years: core.FullRange(), Departments: []string{"Antioquia"}}

	first, err := svc.Summary(context.Background(), state)
	if err != nil {
		t.Fatal(err)
	}
	second, err := svc.Summary(context.Background(), state)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Error("summary is not a pure function of (table, state)")
	}
}

func TestSummaryInflationToggle(t *testing.T) {
	rates := map[int]float64{2019: 10, 2020: 10}
	svc := testService(t, WithInflation(rates, 2020))
	if !svc.InflationAvailable() {
		t.Fatal("inflation should be available")
	}

	state := core.FilterState{Years: core.YearRange{From: 2019, To: 2019}, AdjustReal: true}
	agg, err := svc.Summary(context.Background(), state)
	if err != nil {
		t.Fatal(err)
	}
	// 2019 amounts (500 nominal) carried to 2020 pesos: ×1.10.
	want := 500 * 1.10
	if diff := agg.Total - want; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("adjusted total = %v, want %v", agg.Total, want)
	}
}

func TestSummaryBaseYearOverride(t *testing.T) {
	rates := map[int]float64{2019: 10, 2020: 10}
	svc := testService(t, WithInflation(rates, 2020))

	// Override back to 2019: 2019 amounts stay nominal under their own base.
	state := core.FilterState{Years: core.YearRange{From: 2019, To: 2019}, AdjustReal: true, BaseYear: 2019}
	agg, err := svc.Summary(context.Background(), state)
	if err != nil {
		t.Fatal(err)
	}
	if diff := agg.Total - 500; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("total under 2019 base = %v, want 500", agg.Total)
	}

	// An override outside the index falls back to the default factors.
	state.BaseYear = 1990
	agg, err = svc.Summary(context.Background(), state)
	if err != nil {
		t.Fatal(err)
	}
	want := 500 * 1.10
	if diff := agg.Total - want; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("total under bad override = %v, want default-base %v", agg.Total, want)
	}
}

func TestSummaryInflationUnavailableFallsBack(t *testing.T) {
	svc := testService(t, WithInflation(map[int]float64{2019: 10}, 1990))
	if svc.InflationAvailable() {
		t.Fatal("inflation should be unavailable for a base year outside the index")
	}

	state := core.FilterState{Years: core.FullRange(), AdjustReal: true}
	agg, err := svc.Summary(context.Background(), state)
	if err != nil {
		t.Fatal(err)
	}
	if agg.Total != 1000 {
		t.Errorf("fallback total = %v, want nominal 1000", agg.Total)
	}
}

func TestCompare(t *testing.T) {
	svc := testService(t)
	state := core.FilterState{Years: core.FullRange()}

	cmp, err := svc.Compare(context.Background(), state,
		core.YearRange{From: 2018, To: 2018}, core.YearRange{From: 2019, To: 2019})
	if err != nil {
		t.Fatal(err)
	}
	if cmp.Total1 != 100 || cmp.Total2 != 500 {
		t.Errorf("totals = %v, %v", cmp.Total1, cmp.Total2)
	}
	if !cmp.DeltaAvailable || cmp.DeltaPct != 400 {
		t.Errorf("delta = %+v", cmp)
	}
}

func TestOptionsMunicipalityScoping(t *testing.T) {
	svc := testService(t)
	ctx := context.Background()

	all, err := svc.Options(ctx, core.FilterState{Years: core.FullRange()})
	if err != nil {
		t.Fatal(err)
	}
	if len(all.Municipalities) != 4 {
		t.Errorf("unscoped municipalities = %v", all.Municipalities)
	}
	if !reflect.DeepEqual(all.Departments, []string{"Antioquia", "Chocó", "Nariño"}) {
		t.Errorf("departments = %v", all.Departments)
	}

	scoped, err := svc.Options(ctx, core.FilterState{
		Years:       core.FullRange(),
		Departments: []string{"Antioquia"},
	})
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(scoped.Municipalities, []string{"Envigado", "Medellín"}) {
		t.Errorf("scoped municipalities = %v", scoped.Municipalities)
	}
	// Department options stay unscoped so the user can widen the selection.
	if !reflect.DeepEqual(scoped.Departments, all.Departments) {
		t.Errorf("department options changed under scoping: %v", scoped.Departments)
	}
}

func TestMapRegions(t *testing.T) {
	fc := &geo.FeatureCollection{
		Type: "FeatureCollection",
		Features: []geo.Feature{
			{Type: "Feature", Properties: map[string]any{"NOMBRE_DPT": "ANTIOQUIA"}},
			{Type: "Feature", Properties: map[string]any{"NOMBRE_DPT": "NARIÑO"}},
		},
	}
	svc := testService(t, WithGeometry(fc))

	regions, ok, err := svc.MapRegions(context.Background(), core.FilterState{Years: core.FullRange()})
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Fatal("map should be available")
	}
	if len(regions) != 2 {
		t.Fatalf("regions = %+v", regions)
	}
	for _, rv := range regions {
		switch rv.Key {
		case "antioquia":
			if rv.Amount != 300 {
				t.Errorf("antioquia = %v", rv.Amount)
			}
		case "narino":
			if rv.Amount != 300 {
				t.Errorf("narino = %v", rv.Amount)
			}
		}
	}
}

func TestMapRegionsWithoutGeometry(t *testing.T) {
	svc := testService(t)
	_, ok, err := svc.MapRegions(context.Background(), core.FilterState{Years: core.FullRange()})
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Error("map must be reported unavailable without geometry")
	}
}
