package logger

// Config holds configuration for the logger.
type Config struct {
	// Level is the minimum level (debug, info, warn, error).
	Level string `mapstructure:"level" default:"info"`
	// Format is the encoding (json, console).
	Format string `mapstructure:"format" default:"json"`
	// File is an optional log file written in addition to stderr.
	File string `mapstructure:"file" default:""`
}
