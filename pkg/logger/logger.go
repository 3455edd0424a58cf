package logger

import (
	"go.uber.org/zap"
)

// LoggerConfig controls logger construction.
type LoggerConfig struct {
	// Debug enables human-readable development output at debug level.
	Debug bool
}

// NewLogger creates a zap logger: JSON production output by default,
// console development output when Debug is set.
func NewLogger(cfg *LoggerConfig) (*zap.Logger, error) {
	if cfg == nil {
		cfg = &LoggerConfig{}
	}

	if cfg.Debug {
		return zap.NewDevelopment()
	}

	config := zap.NewProductionConfig()
	config.DisableStacktrace = true
	return config.Build()
}
