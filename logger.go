package main

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewLogger builds the process logger. GO_ENV selects the JSON production
// encoder; otherwise a console encoder is used.
func NewLogger(logLevel string) (*zap.Logger, error) {
	config := zap.NewDevelopmentConfig()
	if os.Getenv("GO_ENV") != "" {
		config = zap.NewProductionConfig()
	}
	level, err := zapcore.ParseLevel(logLevel)
	if err != nil {
		level = zapcore.InfoLevel
	}
	config.Level.SetLevel(level)
	config.DisableStacktrace = true
	return config.Build()
}
