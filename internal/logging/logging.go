// Package logging builds the structured logger shared by every pipeline
// stage. Stages log row counts and summary figures at Info, and data
// problems (records dropped at reprojection, values outside a domain) at
// Warn (spec.md §4.8, §7).
package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds a console-encoded zap logger. verbosity follows the CLI's
// counted -v flag: 0 is Info, 1 is Debug; -q (quiet) is handled by the
// caller passing a negative verbosity, which raises the level to Warn.
func New(verbosity int) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "console"
	cfg.EncoderConfig = zap.NewDevelopmentEncoderConfig()
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder

	switch {
	case verbosity < 0:
		cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	case verbosity == 0:
		cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	default:
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}

	return cfg.Build()
}

// Nop returns a logger that discards everything, for tests and library
// callers that don't want pipeline stages writing to stderr.
func Nop() *zap.Logger {
	return zap.NewNop()
}
