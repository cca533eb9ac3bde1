package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"inversiones/internal/core"

	_ "modernc.org/sqlite"
)

// SnapshotRepository persists an offline copy of the remote dataset. The
// worker refreshes it; the server falls back to it when the bulk fetch
// fails, so a flaky upstream does not blank the dashboard.
type SnapshotRepository struct {
	db *sql.DB
}

func NewSnapshotRepository(dbPath string) (*SnapshotRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SnapshotRepository{db: db}, nil
}

func (r *SnapshotRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Replace swaps the stored snapshot for the given records atomically.
func (r *SnapshotRepository) Replace(ctx context.Context, records []core.Record) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin snapshot transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM records`); err != nil {
		return fmt.Errorf("clear snapshot: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO records (vigencia, departamento, municipio, fuente_financiacion, valor_pagado, sector_proyecto, nombre_proyecto)
		VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare snapshot insert: %w", err)
	}
	defer stmt.Close()

	for _, rec := range records {
		if _, err := stmt.ExecContext(ctx,
			rec.Year, rec.Department, rec.Municipality, rec.FundingSource,
			rec.AmountPaid, rec.Sector, rec.Project); err != nil {
			return fmt.Errorf("insert snapshot row: %w", err)
		}
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO snapshot_meta (id, fetched_at, row_count) VALUES (1, ?, ?)
		ON CONFLICT(id) DO UPDATE SET fetched_at = excluded.fetched_at, row_count = excluded.row_count`,
		time.Now().UTC(), len(records)); err != nil {
		return fmt.Errorf("update snapshot meta: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit snapshot: %w", err)
	}

	slog.InfoContext(ctx, "Snapshot replaced", "component", "storage", "snapshot_rows", len(records))
	return nil
}

// Fetch loads the stored snapshot. It satisfies the same source contract as
// the remote client, so the dataset memo cell can sit in front of either.
func (r *SnapshotRepository) Fetch(ctx context.Context) ([]core.Record, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT vigencia, departamento, municipio, fuente_financiacion, valor_pagado, sector_proyecto, nombre_proyecto
		FROM records ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query snapshot: %w", err)
	}
	defer rows.Close()

	var records []core.Record
	for rows.Next() {
		var rec core.Record
		if err := rows.Scan(&rec.Year, &rec.Department, &rec.Municipality,
			&rec.FundingSource, &rec.AmountPaid, &rec.Sector, &rec.Project); err != nil {
			return nil, fmt.Errorf("scan snapshot row: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate snapshot rows: %w", err)
	}
	return records, nil
}

// Meta returns when the snapshot was last refreshed and how many rows it
// holds. sql.ErrNoRows means no snapshot has been taken yet.
func (r *SnapshotRepository) Meta(ctx context.Context) (fetchedAt time.Time, rowCount int, err error) {
	err = r.db.QueryRowContext(ctx, `SELECT fetched_at, row_count FROM snapshot_meta WHERE id = 1`).
		Scan(&fetchedAt, &rowCount)
	if err != nil {
		return time.Time{}, 0, fmt.Errorf("read snapshot meta: %w", err)
	}
	return fetchedAt, rowCount, nil
}
