package backend

import (
	"context"
	"fmt"
	"log/slog"

	"inversiones/internal/socrata"
	"inversiones/internal/storage"
)

// DefaultFactory implements the Factory interface.
type DefaultFactory struct {
	logger *slog.Logger
}

// NewFactory creates a new source factory.
func NewFactory(logger *slog.Logger) Factory {
	if logger == nil {
		logger = slog.Default()
	}
	return &DefaultFactory{
		logger: logger,
	}
}

// CreateSource implements Factory.CreateSource.
func (f *DefaultFactory) CreateSource(ctx context.Context, config Config) (*SourceResult, error) {
	if !config.Type.IsValid() {
		return nil, fmt.Errorf("invalid backend type: %s", config.Type)
	}

	switch config.Type {
	case SocrataSource:
		return f.createSocrataSource(config)
	case SnapshotSource:
		return f.createSnapshotSource(config)
	case MemorySource:
		return f.createMemorySource(config)
	default:
		return nil, fmt.Errorf("unsupported backend type: %s", config.Type)
	}
}

func (f *DefaultFactory) createSocrataSource(config Config) (*SourceResult, error) {
	client := socrata.NewClient(
		socrata.WithBaseURL(config.SocrataBaseURL),
		socrata.WithResourceID(config.SocrataResourceID),
	)

	// A local snapshot, when configured, serves as fallback so the
	// dashboard survives open-data API outages.
	if config.SQLiteDBPath == "" {
		f.logger.Info("Initialized Socrata source without snapshot fallback",
			"base_url", config.SocrataBaseURL,
			"resource_id", config.SocrataResourceID)
		return &SourceResult{Source: client}, nil
	}

	repo, err := storage.NewSnapshotRepository(config.SQLiteDBPath)
	if err != nil {
		f.logger.Warn("Failed to open snapshot store, continuing without fallback", "error", err)
		return &SourceResult{Source: client}, nil
	}

	f.logger.Info("Initialized Socrata source with snapshot fallback",
		"base_url", config.SocrataBaseURL,
		"resource_id", config.SocrataResourceID,
		"db_path", config.SQLiteDBPath)

	return &SourceResult{
		Source:  newFallbackSource(client, repo, f.logger),
		Cleanup: repo.Close,
	}, nil
}

func (f *DefaultFactory) createSnapshotSource(config Config) (*SourceResult, error) {
	repo, err := storage.NewSnapshotRepository(config.SQLiteDBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize snapshot store: %w", err)
	}

	f.logger.Info("Initialized snapshot source", "db_path", config.SQLiteDBPath)

	return &SourceResult{
		Source:  repo,
		Cleanup: repo.Close,
	}, nil
}

func (f *DefaultFactory) createMemorySource(config Config) (*SourceResult, error) {
	dataDir := config.DataDirectory
	if dataDir == "" {
		dataDir = "data"
	}

	store := NewMemoryFromFiles(dataDir)

	f.logger.Info("Initialized memory source", "data_directory", dataDir)

	return &SourceResult{Source: store}, nil
}
