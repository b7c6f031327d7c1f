package config

const (
	defaultConfigPath          = "~/.config/epubnav/config.toml"
	defaultDatabasePath        = "~/.local/share/epubnav/bookmarks.db"
	defaultLocationGranularity = 1600
	defaultLogFormat           = "text"
	defaultLogLevel            = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Reader: Reader{
			LocationGranularity: defaultLocationGranularity,
		},
		Storage: Storage{
			DatabasePath: defaultDatabasePath,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
