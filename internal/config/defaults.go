package config

const (
	defaultConfigPath         = "~/.config/watchtrack/config.toml"
	defaultDataDir            = "~/.local/share/watchtrack"
	defaultLogDir             = "~/.local/share/watchtrack/logs"
	defaultSettingsFileName   = "settings.toml"
	defaultSQLiteFileName     = "records.db"
	defaultJSONFileName       = "media_data.json"
	defaultBackend            = BackendSQLite
	defaultIntervalSeconds    = 10
	defaultLogFormat          = "console"
	defaultLogLevel           = "info"
	defaultLogRetentionDays   = 30
	defaultLogMaxSizeMB       = 20
	defaultLogMaxBackups      = 3
	minTrackingIntervalSecond = 1
)

// Storage backend identifiers.
const (
	BackendSQLite = "sqlite"
	BackendJSON   = "json"
)

// Default returns a Config populated with repository defaults. Derived file
// locations stay empty until normalize fills them from the data directory.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir: defaultDataDir,
			LogDir:  defaultLogDir,
		},
		Storage: Storage{
			Backend: defaultBackend,
		},
		Tracking: Tracking{
			IntervalSeconds: defaultIntervalSeconds,
		},
		Logging: Logging{
			Format:        defaultLogFormat,
			Level:         defaultLogLevel,
			RetentionDays: defaultLogRetentionDays,
			MaxSizeMB:     defaultLogMaxSizeMB,
			MaxBackups:    defaultLogMaxBackups,
		},
	}
}
