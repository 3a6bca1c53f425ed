package logging

import (
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds logging configuration
type Config struct {
	// Level is the log level (debug, info, warn, error)
	Level string
	// Format is the log format (json or console)
	Format string
	// Development enables caller info and stack traces
	Development bool
}

// DefaultConfig returns the production configuration
func DefaultConfig() Config {
	return Config{Level: "info", Format: "json"}
}

// New builds a zap logger writing to stdout.
func New(cfg Config) (*zap.Logger, error) {
	var encoderConfig zapcore.EncoderConfig
	if cfg.Development {
		encoderConfig = zap.NewDevelopmentEncoderConfig()
	} else {
		encoderConfig = zap.NewProductionEncoderConfig()
	}
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderConfig.EncodeDuration = zapcore.StringDurationEncoder

	format := strings.ToLower(cfg.Format)
	if format != "console" {
		format = "json"
	}

	zapConfig := zap.Config{
		Level:             zap.NewAtomicLevelAt(ParseLevel(cfg.Level)),
		Development:       cfg.Development,
		DisableCaller:     !cfg.Development,
		DisableStacktrace: !cfg.Development,
		Encoding:          format,
		EncoderConfig:     encoderConfig,
		OutputPaths:       []string{"stdout"},
		ErrorOutputPaths:  []string{"stderr"},
	}
	return zapConfig.Build()
}

// NewNop returns a logger that discards everything (tests).
func NewNop() *zap.Logger {
	return zap.NewNop()
}

// ParseLevel converts a string to a zapcore.Level; unknown values map to info.
func ParseLevel(level string) zapcore.Level {
	switch strings.ToLower(level) {
	case "debug":
		return zapcore.DebugLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}
