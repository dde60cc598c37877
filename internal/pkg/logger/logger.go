// Package logger builds the process slog.Logger on top of zap.
package logger

import (
	"fmt"
	"log/slog"

	"go.uber.org/zap"
	"go.uber.org/zap/exp/zapslog"
	"go.uber.org/zap/zapcore"
)

const (
	ModeDebug      = "debug"
	ModeProduction = "production"
)

// New returns a logger for mode and the function flushing its buffers.
// Debug mode writes coloured console lines, any other mode JSON with ISO8601
// timestamps.
func New(mode string) (*slog.Logger, func() error, error) {
	var config zap.Config

	if mode == ModeDebug {
		config = zap.NewDevelopmentConfig()
		config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		config = zap.NewProductionConfig()
		config.EncoderConfig.TimeKey = "timestamp"
		config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	}

	zl, err := config.Build()
	if err != nil {
		return nil, nil, fmt.Errorf("build zap logger: %w", err)
	}

	return FromCore(zl.Core()), zl.Sync, nil
}

// FromCore wraps an existing zap core.
func FromCore(core zapcore.Core) *slog.Logger {
	return slog.New(zapslog.NewHandler(core))
}
