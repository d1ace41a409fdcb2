package store

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/afero"

	"watchtrack/internal/config"
	"watchtrack/internal/progress"
)

// ErrUnknownBackend is returned for a storage backend name Open does not know.
var ErrUnknownBackend = errors.New("unknown storage backend")

var (
	_ progress.Repository = (*SQLiteStore)(nil)
	_ progress.Repository = (*JSONStore)(nil)
)

// Open returns the repository selected by cfg.Storage.
func Open(cfg *config.Config, logger *slog.Logger) (progress.Repository, error) {
	if cfg == nil {
		return nil, errors.New("store: config is nil")
	}
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}
	switch cfg.Storage.Backend {
	case config.BackendSQLite:
		return OpenSQLite(cfg.Storage.RecordsFile)
	case config.BackendJSON:
		return NewJSONStore(afero.NewOsFs(), cfg.Storage.RecordsFile, logger), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, cfg.Storage.Backend)
	}
}
