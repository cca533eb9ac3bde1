package backend

import (
	"fmt"

	"inversiones/internal/config"
)

// FromAppConfig converts the application config to backend config.
func FromAppConfig(appConfig *config.Config) (Config, error) {
	if appConfig == nil {
		return Config{}, fmt.Errorf("app config is nil")
	}

	sourceType := SourceType(appConfig.DataBackend)
	if !sourceType.IsValid() {
		return Config{}, fmt.Errorf("invalid backend type in config: %s", appConfig.DataBackend)
	}

	return Config{
		Type: sourceType,

		SocrataBaseURL:    appConfig.SocrataBaseURL,
		SocrataResourceID: appConfig.SocrataResourceID,

		SQLiteDBPath: appConfig.SQLiteDBPath,

		DataDirectory: "data",
	}, nil
}

// Validate validates the backend configuration.
func (c Config) Validate() error {
	if !c.Type.IsValid() {
		return fmt.Errorf("invalid backend type: %s", c.Type)
	}

	switch c.Type {
	case SocrataSource:
		if c.SocrataBaseURL == "" {
			return fmt.Errorf("Socrata base URL is required for socrata backend")
		}
		if c.SocrataResourceID == "" {
			return fmt.Errorf("Socrata resource ID is required for socrata backend")
		}
		// Snapshot fallback is optional, so the DB path is not validated here.

	case SnapshotSource:
		if c.SQLiteDBPath == "" {
			return fmt.Errorf("SQLite database path is required for snapshot backend")
		}

	case MemorySource:
		// DataDirectory defaults to "data" if empty.
	}

	return nil
}
