package config

// Quality values accepted by convert.quality and the --quality flag.
const (
	QualityStandard = "standard"
	QualityHigh     = "high"
)

const (
	defaultOutputDir   = "output"
	defaultStagingDir  = "~/.local/share/autovideo/staging"
	defaultLogDir      = "~/.local/share/autovideo/logs"
	defaultHistoryPath = "~/.local/share/autovideo/history.db"
	defaultFrameSize   = 512
	defaultFrameRate   = 10
	defaultQuality     = QualityStandard
	defaultLogFormat   = "console"
	defaultLogLevel    = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			OutputDir:  defaultOutputDir,
			StagingDir: defaultStagingDir,
			LogDir:     defaultLogDir,
		},
		Convert: Convert{
			FrameSize: defaultFrameSize,
			FrameRate: defaultFrameRate,
			Quality:   defaultQuality,
		},
		History: History{
			Enabled: true,
			Path:    defaultHistoryPath,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
