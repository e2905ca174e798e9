// Package logging builds the zap loggers used across the service.
package logging

import (
	"fmt"

	"go.uber.org/zap"
)

// New builds a logger. Pretty enables the human-readable development encoder
// with stack traces on errors; otherwise production JSON output is used.
// Level accepts the usual zap level names (debug, info, warn, error); an
// empty string means info.
func New(pretty bool, level string) (*zap.Logger, error) {
	var cfg zap.Config
	var opts []zap.Option
	if pretty {
		cfg = zap.NewDevelopmentConfig()
		opts = append(opts, zap.AddStacktrace(zap.ErrorLevel))
	} else {
		cfg = zap.NewProductionConfig()
	}

	if level == "" {
		level = "info"
	}
	lvl := zap.NewAtomicLevel()
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("could not parse log level %q", level)
	}
	cfg.Level = lvl

	return cfg.Build(opts...)
}

// MustNew is New for callers without an error path, such as CLI setup where
// a bad level name should stop the process.
func MustNew(pretty bool, level string) *zap.Logger {
	logger, err := New(pretty, level)
	if err != nil {
		panic(err)
	}
	return logger
}
