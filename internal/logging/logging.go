// Package logging builds the zap logger used by the server, the publisher
// and the CLI.
package logging

import (
	"sync/atomic"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/vango-dev/vtree/internal/config"
	vterrors "github.com/vango-dev/vtree/internal/errors"
)

var global atomic.Pointer[zap.Logger]

func init() {
	global.Store(zap.NewNop())
}

// L returns the package-level logger. It is a no-op logger until Set is
// called.
func L() *zap.Logger {
	return global.Load()
}

// Set replaces the package-level logger. A nil logger restores the no-op
// logger.
func Set(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	global.Store(l)
}

// New builds a logger from cfg: JSON output in production, colored console
// output in development.
func New(cfg config.LogConfig) (*zap.Logger, error) {
	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}

	var zc zap.Config
	if cfg.Development {
		zc = zap.NewDevelopmentConfig()
		zc.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		zc = zap.NewProductionConfig()
		zc.EncoderConfig.TimeKey = "time"
		zc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	}
	zc.Level = zap.NewAtomicLevelAt(level)
	zc.OutputPaths = []string{"stderr"}
	zc.ErrorOutputPaths = []string{"stderr"}

	return zc.Build()
}

// ParseLevel parses a configured level name. Empty means info.
func ParseLevel(name string) (zapcore.Level, error) {
	if name == "" {
		return zapcore.InfoLevel, nil
	}
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(name)); err != nil {
		return 0, vterrors.New(vterrors.CodeConfigInvalid).WithDetailf("unknown log level %q", name)
	}
	return level, nil
}

// Named returns a child of the package-level logger.
func Named(name string) *zap.Logger {
	return L().Named(name)
}
