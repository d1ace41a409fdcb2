package testsupport

import (
	"path/filepath"
	"testing"

	"watchtrack/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.DataDir = filepath.Join(base, "data")
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")
	cfgVal.Paths.SettingsFile = filepath.Join(base, "data", "settings.toml")
	cfgVal.Storage.Backend = config.BackendSQLite
	cfgVal.Storage.RecordsFile = filepath.Join(base, "data", "records.db")
	cfgVal.Logging.RetentionDays = 0

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithJSONBackend switches record storage to the JSON file backend.
func WithJSONBackend() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Storage.Backend = config.BackendJSON
		b.cfg.Storage.RecordsFile = filepath.Join(b.baseDir, "data", "media_data.json")
	}
}

// WithInterval overrides the sampler interval.
func WithInterval(seconds int) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Tracking.IntervalSeconds = seconds
	}
}

// WithTitleCommand sets the title acquisition override command.
func WithTitleCommand(argv ...string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Tracking.TitleCommand = argv
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.DataDir)
}
