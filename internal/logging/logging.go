// Package logging configures the process-wide zerolog logger.
package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	EnvLogLevel  = "ALPHABETIZE_LOG_LEVEL"
	EnvLogFormat = "ALPHABETIZE_LOG_FORMAT"
)

type Config struct {
	// Level is one of trace|debug|info|warn|error|disabled.
	Level string
	// Format is console (default) or json.
	Format string
	Output io.Writer
}

// New builds a logger from cfg. Environment variables override cfg.
func New(cfg Config) zerolog.Logger {
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		cfg.Level = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogFormat)); v != "" {
		cfg.Format = v
	}
	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}
	level, ok := ParseLevel(cfg.Level)
	if !ok {
		level = zerolog.WarnLevel
	}

	var w io.Writer = out
	if !strings.EqualFold(strings.TrimSpace(cfg.Format), "json") {
		w = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}
	return zerolog.New(w).Level(level).With().Timestamp().Str("app", "alphabetize").Logger()
}

// Configure builds a logger and installs it as the global zerolog logger.
func Configure(cfg Config) zerolog.Logger {
	logger := New(cfg)
	log.Logger = logger
	return logger
}

func ParseLevel(raw string) (zerolog.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "":
		return zerolog.WarnLevel, false
	case "trace":
		return zerolog.TraceLevel, true
	case "debug":
		return zerolog.DebugLevel, true
	case "info":
		return zerolog.InfoLevel, true
	case "warn", "warning":
		return zerolog.WarnLevel, true
	case "error":
		return zerolog.ErrorLevel, true
	case "disabled", "off", "none":
		return zerolog.Disabled, true
	default:
		return zerolog.WarnLevel, false
	}
}
