// Package logging carries a zap logger through contexts.
package logging

import (
	"context"
	"os"

	"go.uber.org/zap"
)

// EnvDebug switches NewLogger to the development config when set to "true".
const EnvDebug = "SEGAL_DEBUG"

// NewLogger returns a new zap.SugaredLogger writing to stderr, so that
// window output on stdout stays clean.
func NewLogger() *zap.SugaredLogger {
	var config zap.Config
	if debugMode, ok := os.LookupEnv(EnvDebug); ok && debugMode == "true" {
		config = zap.NewDevelopmentConfig()
	} else {
		config = zap.NewProductionConfig()
	}
	config.OutputPaths = []string{"stderr"}
	logger, err := config.Build()
	if err != nil {
		panic(err)
	}
	return logger.Named("segal").Sugar()
}

type loggerKey struct{}

// WithLogger returns a copy of parent context in which the
// value associated with logger key is the supplied logger.
func WithLogger(ctx context.Context, logger *zap.SugaredLogger) context.Context {
	return context.WithValue(ctx, loggerKey{}, logger)
}

// FromContext returns the logger in the context, or a no-op logger when
// none was set.
func FromContext(ctx context.Context) *zap.SugaredLogger {
	if logger, ok := ctx.Value(loggerKey{}).(*zap.SugaredLogger); ok {
		return logger
	}
	return zap.NewNop().Sugar()
}
