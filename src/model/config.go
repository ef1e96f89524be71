package model

// ----------------------------------------------------
// ================ Config ================
// LogConfig controls the global zerolog logger
type LogConfig struct {
	Level      string `envconfig:"LOG_LEVEL" default:"info"`
	Format     string `envconfig:"LOG_FORMAT" default:"json"`
	Output     string `envconfig:"LOG_OUTPUT" default:"file"`
	FilePath   string `envconfig:"LOG_FILE_PATH" default:"logs/app.log"`
	TimeFormat string `envconfig:"LOG_TIME_FORMAT" default:"rfc3339"`
}

// AppConfig holds process-level settings
type AppConfig struct {
	UIConfigPath string `envconfig:"UI_CONFIG_PATH" default:"config.yaml"`
	AltScreen    bool   `envconfig:"UI_ALT_SCREEN" default:"true"`
	TraceEnabled bool   `envconfig:"TRACE_ENABLED" default:"false"`
}
