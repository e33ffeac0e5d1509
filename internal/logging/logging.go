// Package logging builds the zap loggers used across datemate.
package logging

import (
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config selects encoder style, minimum level and sinks.
type Config struct {
	Mode   string // "prod" or "dev"
	Level  string // debug, info, warn, error
	Output string // file path; empty means stderr
}

// ConfigFromEnv reads DATEMATE_LOG_MODE, DATEMATE_LOG_LEVEL and
// DATEMATE_LOG_FILE.
func ConfigFromEnv() Config {
	return Config{
		Mode:   os.Getenv("DATEMATE_LOG_MODE"),
		Level:  os.Getenv("DATEMATE_LOG_LEVEL"),
		Output: os.Getenv("DATEMATE_LOG_FILE"),
	}
}

// New builds a logger for cfg. Production mode emits JSON; anything else
// gets the console encoder.
func New(cfg Config) (*zap.Logger, error) {
	var zc zap.Config
	switch strings.ToLower(cfg.Mode) {
	case "prod", "production":
		zc = zap.NewProductionConfig()
	default:
		zc = zap.NewDevelopmentConfig()
		zc.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}
	zc.Level = zap.NewAtomicLevelAt(level)

	if cfg.Output != "" {
		zc.OutputPaths = []string{cfg.Output}
		zc.ErrorOutputPaths = []string{cfg.Output}
	}
	return zc.Build()
}

// ParseLevel maps a level name to a zapcore level. Empty means warn, which
// keeps the interactive chat quiet.
func ParseLevel(s string) (zapcore.Level, error) {
	if strings.TrimSpace(s) == "" {
		return zapcore.WarnLevel, nil
	}
	var l zapcore.Level
	if err := l.UnmarshalText([]byte(strings.ToLower(strings.TrimSpace(s)))); err != nil {
		return l, fmt.Errorf("invalid log level %q: %w", s, err)
	}
	return l, nil
}

// Verbose lowers the threshold of an existing config to debug.
func (c Config) Verbose() Config {
	c.Level = "debug"
	return c
}
