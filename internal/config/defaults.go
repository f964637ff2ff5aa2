package config

const (
	defaultConfigPath      = "~/.config/gstplayer/config.toml"
	defaultStateDir        = "~/.local/share/gstplayer"
	defaultLogDir          = "~/.local/share/gstplayer/logs"
	defaultDebugTag        = "gstplayer"
	defaultPipelineState   = "ready"
	defaultFadeSpeedMS     = 225
	defaultFadeOpacity     = 1.0
	defaultWatchDebounceMS = 250
	defaultJournalRetain   = 1000
	defaultLogFormat       = "console"
	defaultLogLevel        = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			StateDir: defaultStateDir,
			LogDir:   defaultLogDir,
		},
		Player: Player{
			DebugTag:      defaultDebugTag,
			PipelineState: defaultPipelineState,
			FadeSpeedMS:   defaultFadeSpeedMS,
			FadeOpacity:   defaultFadeOpacity,
		},
		Watch: Watch{
			Enabled:    true,
			DebounceMS: defaultWatchDebounceMS,
		},
		Journal: Journal{
			Enabled:   true,
			Retention: defaultJournalRetain,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
