package settings

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/afero"

	"watchtrack/internal/blacklist"
	"watchtrack/internal/fileutil"
	"watchtrack/internal/language"
	"watchtrack/internal/logging"
)

// Settings is the persisted settings document.
type Settings struct {
	BlacklistKeywords  []string `toml:"blacklist_keywords"`
	AutoTrackingActive bool     `toml:"is_auto_tracking_active"`
	ProgramActive      bool     `toml:"is_program_active"`
	Language           string   `toml:"language"`
}

// Default returns the settings used before anything was saved.
func Default() Settings {
	return Settings{
		BlacklistKeywords:  blacklist.DefaultKeywords(),
		AutoTrackingActive: false,
		ProgramActive:      true,
		Language:           language.Default,
	}
}

// Clone returns a copy that does not share the keyword slice.
func (s Settings) Clone() Settings {
	s.BlacklistKeywords = slices.Clone(s.BlacklistKeywords)
	return s
}

// Store reads and writes the settings file.
type Store struct {
	fs     afero.Fs
	path   string
	logger *slog.Logger
}

// NewStore returns a store for path on fsys.
func NewStore(fsys afero.Fs, path string, logger *slog.Logger) *Store {
	if fsys == nil {
		fsys = afero.NewOsFs()
	}
	return &Store{
		fs:     fsys,
		path:   path,
		logger: logging.NewComponentLogger(logger, "settings"),
	}
}

// Path returns the settings file location.
func (s *Store) Path() string { return s.path }

// Load reads the settings document. Keys absent from the file keep their
// default values. A missing file is written with defaults.
func (s *Store) Load(ctx context.Context) (Settings, error) {
	if err := ctx.Err(); err != nil {
		return Settings{}, err
	}
	data, ok, err := fileutil.ReadIfExists(s.fs, s.path)
	if err != nil {
		return Settings{}, fmt.Errorf("read settings: %w", err)
	}
	if !ok {
		defaults := Default()
		if err := s.Save(ctx, defaults); err != nil {
			return Settings{}, err
		}
		s.logger.Info("settings file created",
			logging.String("path", s.path),
			logging.String(logging.FieldEventType, "settings_created"),
		)
		return defaults, nil
	}

	loaded := Default()
	if err := toml.Unmarshal(data, &loaded); err != nil {
		logging.WarnWithContext(s.logger, "settings file unreadable; using defaults", "settings_parse_failed",
			logging.String("path", s.path),
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "fix or delete the settings file"),
			logging.String(logging.FieldImpact, "blacklist and switches reset to defaults until saved"),
		)
		return Default(), nil
	}
	loaded.BlacklistKeywords = blacklist.Dedupe(loaded.BlacklistKeywords)
	if code, ok := language.Canonical(loaded.Language); ok {
		loaded.Language = code
	} else {
		loaded.Language = language.Default
	}
	return loaded, nil
}

// Save writes the document atomically.
func (s *Store) Save(ctx context.Context, settings Settings) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if settings.BlacklistKeywords == nil {
		settings.BlacklistKeywords = []string{}
	}
	data, err := toml.Marshal(settings)
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	if err := fileutil.WriteAtomic(s.fs, s.path, data, 0o644); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}
	return nil
}
