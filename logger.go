package reso

import (
	"log/slog"
	"os"
	"reflect"
	"sync/atomic"
)

var errorLogger atomic.Pointer[slog.Logger]

func init() {
	errorLogger.Store(slog.New(slog.NewTextHandler(os.Stderr, nil)))
}

// SetErrorLogger replaces the logger used to report fatal resolutions.
func SetErrorLogger(l *slog.Logger) {
	if l != nil {
		errorLogger.Store(l)
	}
}

func logger() *slog.Logger {
	return errorLogger.Load()
}

// fatalResolution reports the offending type and name, then terminates
// the resolution path. A missing required dependency is a programming
// error to be caught in development, not a runtime-recoverable state.
func fatalResolution(err error, key reflect.Type, name string) {
	logger().Error(
		"unable to resolve service",
		"type", key.String(), "name", name, "error", err,
	)
	panic(err)
}
