// Package telemetry wraps go.uber.org/zap the way
// other_examples/noah-isme-sma-adp-api__schedule_generator_service.go wires
// a *zap.Logger through its scheduling service: one process-wide logger,
// passed explicitly rather than reached for as a global.
package telemetry

import (
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds the process logger. verbose selects debug-level output;
// otherwise info-level, matching the teacher's log.SetFlags(log.Ltime)
// terseness but with structured fields instead of formatted strings.
func New(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	cfg.Encoding = "console"
	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = func(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
		enc.AppendString(t.Format("15:04:05"))
	}
	logger, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	return logger, nil
}

// NewNop returns a no-op logger, for tests that don't care about log output.
func NewNop() *zap.Logger { return zap.NewNop() }
