package backend

import (
	"context"
	"log/slog"

	"inversiones/internal/core"
	"inversiones/internal/socrata"
)

// fallbackSource tries the primary source and serves the snapshot when the
// primary fails. An empty snapshot does not mask the primary error.
type fallbackSource struct {
	primary  socrata.Source
	fallback socrata.Source
	logger   *slog.Logger
}

func newFallbackSource(primary, fallback socrata.Source, logger *slog.Logger) *fallbackSource {
	if logger == nil {
		logger = slog.Default()
	}
	return &fallbackSource{primary: primary, fallback: fallback, logger: logger}
}

func (s *fallbackSource) Fetch(ctx context.Context) ([]core.Record, error) {
	records, err := s.primary.Fetch(ctx)
	if err == nil {
		return records, nil
	}

	s.logger.Warn("Primary source failed, trying snapshot", "error", err)

	snapshot, ferr := s.fallback.Fetch(ctx)
	if ferr != nil || len(snapshot) == 0 {
		if ferr != nil {
			s.logger.Warn("Snapshot fallback failed", "error", ferr)
		}
		return nil, err
	}

	s.logger.Info("Serving records from snapshot", "rows", len(snapshot))
	return snapshot, nil
}
