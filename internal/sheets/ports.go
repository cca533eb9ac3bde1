package sheets

import (
	"context"

	"inversiones/internal/core"
)

// ReportWriter appends a dated summary of the current dataset to an external
// report surface. Outbound port; the Google Sheets adapter implements it.
type ReportWriter interface {
	// AppendSummary writes one report block: date, totals and the top
	// departments of the given aggregates.
	AppendSummary(ctx context.Context, agg core.Aggregates) error
}
