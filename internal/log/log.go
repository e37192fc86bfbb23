// Package log builds the zap loggers climdex commands hand to their
// components. Loggers are passed explicitly through constructors; there
// is no package-level logger state.
package log

import (
	"fmt"

	"go.uber.org/zap"
)

// New returns a sugared logger: human-oriented development output when
// debug is set, JSON production output otherwise.
func New(debug bool) (*zap.SugaredLogger, error) {
	var zapLogger *zap.Logger
	var err error

	if debug {
		zapLogger, err = zap.NewDevelopment()
	} else {
		zapLogger, err = zap.NewProduction()
	}
	if err != nil {
		return nil, fmt.Errorf("can't initialize zap logger: %v", err)
	}
	return zapLogger.Sugar(), nil
}

// Sync flushes buffered entries; call it before the process exits.
func Sync(logger *zap.SugaredLogger) {
	if logger != nil {
		_ = logger.Sync()
	}
}
