package http

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"
)

// handleExportCSV streams the currently filtered view as CSV. Amounts are
// written as plain numbers so spreadsheets parse them; the inflation
// toggle applies the same way it does for the on-screen figures.
func (s *Server) handleExportCSV(w http.ResponseWriter, r *http.Request) {
	state, err := parseFilterState(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "invalid_filter", err.Error())
		return
	}

	ctx, cancel := queryContext(r)
	defer cancel()
	records, err := s.dashboard.FilteredRecords(ctx, state)
	if err != nil {
		s.writeDashboardError(w, r, err)
		return
	}

	filename := fmt.Sprintf("inversiones_%d_%d_%s.csv", state.Years.From, state.Years.To, time.Now().Format("20060102"))
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)

	cw := csv.NewWriter(w)
	header := []string{"vigencia", "departamento", "municipio", "fuente_financiacion", "valor_pagado", "sector_proyecto", "nombre_proyecto"}
	if err := cw.Write(header); err != nil {
		slog.ErrorContext(r.Context(), "CSV header write failed", "error", err)
		return
	}

	for _, rec := range records {
		row := []string{
			strconv.Itoa(rec.Year),
			rec.Department,
			rec.Municipality,
			rec.FundingSource,
			strconv.FormatFloat(rec.AmountPaid, 'f', 2, 64),
			rec.Sector,
			rec.Project,
		}
		if err := cw.Write(row); err != nil {
			slog.ErrorContext(r.Context(), "CSV row write failed", "error", err)
			return
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		slog.ErrorContext(r.Context(), "CSV flush failed", "error", err)
	}
}
