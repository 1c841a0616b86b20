// Package log is the shared zap logger for the icedex CLIs and I/O
// collaborators. The conversion core stays log-free and reports through
// errors.
package log

import (
	"go.uber.org/zap"
)

var logger = zap.Must(zap.NewProduction())

// SetLogger replaces the package logger (tests use zap.NewNop()).
func SetLogger(l *zap.Logger) {
	logger = l
}

func Info(msg string, fields ...zap.Field) {
	logger.Info(msg, fields...)
}

func Warn(msg string, fields ...zap.Field) {
	logger.Warn(msg, fields...)
}

func Error(msg string, fields ...zap.Field) {
	logger.Error(msg, fields...)
}

// Sync flushes buffered log entries; call on process exit.
func Sync() {
	_ = logger.Sync()
}
