// Package worker refreshes the local dataset snapshot from the open-data
// API and fans the result out to the audit channels.
package worker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"inversiones/internal/amqp"
	"inversiones/internal/core"
	"inversiones/internal/sheets"
	"inversiones/internal/storage"
)

// Fetcher is the slice of the Socrata client the worker needs.
type Fetcher interface {
	FetchWithStats(ctx context.Context) ([]core.Record, int, error)
}

// Publisher announces completed refreshes. Satisfied by *amqp.Client.
type Publisher interface {
	PublishDatasetRefresh(ctx context.Context, rowCount, droppedRows int) error
}

// SnapshotWorker pulls the full dataset, replaces the SQLite snapshot and
// publishes a refresh event. Publisher and report writer are optional.
type SnapshotWorker struct {
	fetcher   Fetcher
	storage   *storage.SnapshotRepository
	publisher Publisher
	reports   sheets.ReportWriter
	interval  time.Duration
}

func NewSnapshotWorker(fetcher Fetcher, storage *storage.SnapshotRepository, publisher Publisher, reports sheets.ReportWriter, interval time.Duration) *SnapshotWorker {
	return &SnapshotWorker{
		fetcher:   fetcher,
		storage:   storage,
		publisher: publisher,
		reports:   reports,
		interval:  interval,
	}
}

// RefreshOnce performs a single fetch-store-publish cycle.
func (w *SnapshotWorker) RefreshOnce(ctx context.Context) error {
	start := time.Now()

	records, dropped, err := w.fetcher.FetchWithStats(ctx)
	if err != nil {
		return fmt.Errorf("fetch dataset: %w", err)
	}

	if err := w.storage.Replace(ctx, records); err != nil {
		return fmt.Errorf("replace snapshot: %w", err)
	}

	slog.InfoContext(ctx, "Snapshot refreshed",
		"component", "worker",
		"rows", len(records),
		"dropped_rows", dropped,
		"duration_ms", time.Since(start).Milliseconds())

	if w.publisher != nil {
		if err := w.publisher.PublishDatasetRefresh(ctx, len(records), dropped); err != nil {
			// The snapshot is already durable; a lost event only delays
			// the report until the next cycle.
			slog.WarnContext(ctx, "Failed to publish refresh event",
				"component", "worker",
				"error", err)
		}
	}

	if w.reports != nil {
		agg := core.Aggregate(records)
		if err := w.reports.AppendSummary(ctx, agg); err != nil {
			slog.WarnContext(ctx, "Failed to append summary report",
				"component", "worker",
				"error", err)
		}
	}

	return nil
}

// Run refreshes immediately and then on every interval tick until the
// context is cancelled.
func (w *SnapshotWorker) Run(ctx context.Context) error {
	if err := w.RefreshOnce(ctx); err != nil {
		slog.ErrorContext(ctx, "Initial snapshot refresh failed",
			"component", "worker",
			"error", err)
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := w.RefreshOnce(ctx); err != nil {
				slog.ErrorContext(ctx, "Snapshot refresh failed",
					"component", "worker",
					"error", err)
			}
		}
	}
}

// ReportWorker consumes refresh events and appends a summary report built
// from the stored snapshot. It runs opposite SnapshotWorker when report
// writing is split into its own process.
type ReportWorker struct {
	storage *storage.SnapshotRepository
	reports sheets.ReportWriter
}

func NewReportWorker(storage *storage.SnapshotRepository, reports sheets.ReportWriter) *ReportWorker {
	return &ReportWorker{storage: storage, reports: reports}
}

// HandleRefreshMessage rebuilds aggregates from the snapshot and appends
// them to the report sheet.
func (w *ReportWorker) HandleRefreshMessage(ctx context.Context, msg *amqp.DatasetRefreshMessage) error {
	slog.InfoContext(ctx, "Processing refresh event",
		"component", "worker",
		"rows", msg.RowCount,
		"dropped_rows", msg.DroppedRows)

	records, err := w.storage.Fetch(ctx)
	if err != nil {
		return fmt.Errorf("read snapshot: %w", err)
	}

	agg := core.Aggregate(records)
	if err := w.reports.AppendSummary(ctx, agg); err != nil {
		return fmt.Errorf("append summary report: %w", err)
	}

	slog.InfoContext(ctx, "Summary report appended",
		"component", "worker",
		"total", agg.Total,
		"projects", agg.ProjectCount)
	return nil
}
