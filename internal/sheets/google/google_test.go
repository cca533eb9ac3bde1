package google

import (
	"testing"
	"time"

	"inversiones/internal/core"
)

func TestSummaryRowsLayout(t *testing.T) {
	agg := core.Aggregates{
		Total:        1500.5,
		ProjectCount: 3,
		TopDepartments: []core.GroupSum{
			{Name: "Antioquia", Amount: 1000},
			{Name: "Nariño", Amount: 500.5},
		},
	}
	now := time.Date(2025, 6, 1, 10, 30, 0, 0, time.UTC)

	rows := summaryRows(agg, now)
	if len(rows) != 4 {
		t.Fatalf("expected 4 rows, got %d", len(rows))
	}
	if rows[0][1] != "2025-06-01 10:30" {
		t.Errorf("header date = %v", rows[0][1])
	}
	if rows[0][3] != "1500.50" {
		t.Errorf("header total = %v", rows[0][3])
	}
	if rows[1][1] != 3 {
		t.Errorf("project count = %v", rows[1][1])
	}
	if rows[2][1] != "Antioquia" || rows[2][2] != "1000.00" {
		t.Errorf("top row = %v", rows[2])
	}
}

func TestSummaryRowsEmptyAggregates(t *testing.T) {
	rows := summaryRows(core.Aggregates{Empty: true}, time.Now())
	if len(rows) != 2 {
		t.Fatalf("empty aggregates should still emit header rows, got %d", len(rows))
	}
}
