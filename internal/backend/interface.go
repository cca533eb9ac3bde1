package backend

import (
	"context"

	"inversiones/internal/socrata"
)

// CleanupFunc releases resources owned by a source.
type CleanupFunc func() error

// SourceResult contains the record source and optional cleanup function.
type SourceResult struct {
	Source  socrata.Source
	Cleanup CleanupFunc
}

// Factory creates record sources based on configuration.
type Factory interface {
	CreateSource(ctx context.Context, config Config) (*SourceResult, error)
}

// Config holds configuration for source creation.
type Config struct {
	Type SourceType

	// Socrata specific
	SocrataBaseURL    string
	SocrataResourceID string

	// Snapshot specific
	SQLiteDBPath string

	// Memory backend specific
	DataDirectory string
}

// SourceType selects where dashboard records come from.
type SourceType string

const (
	// SocrataSource fetches from the open-data API, falling back to the
	// local snapshot when the remote is unreachable.
	SocrataSource SourceType = "socrata"
	// SnapshotSource reads only the local SQLite snapshot.
	SnapshotSource SourceType = "snapshot"
	// MemorySource serves seed records from the data directory.
	MemorySource SourceType = "memory"
)

// IsValid reports whether the source type is one of the known backends.
func (t SourceType) IsValid() bool {
	switch t {
	case SocrataSource, SnapshotSource, MemorySource:
		return true
	}
	return false
}
