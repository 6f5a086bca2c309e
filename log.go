package srvenv

import (
	"log/slog"
	"sync/atomic"
)

// logger is the package-level logger, stored as an atomic pointer to allow
// safe concurrent reads and writes. Named "logger" instead of "log" to avoid
// shadowing the stdlib "log" package.
//
// A nil value means no custom logger has been set; Logger falls back to a
// cached default derived from slog.Default().
var logger atomic.Pointer[slog.Logger]

// defaultLogger caches the default-derived logger (slog.Default() with the
// srvenv component attribute) so it is not re-created on every Logger call.
// If slog.SetDefault is called after the first Logger call, the cached
// logger will not reflect the change; calling SetLogger(nil) clears the
// cache so the next Logger call picks up the new default.
var defaultLogger atomic.Pointer[slog.Logger]

// Logger returns the current package-level logger. If no custom logger has
// been set via SetLogger, it returns a cached logger derived from
// slog.Default() with the srvenv component attribute. Safe to call from
// multiple goroutines.
func Logger() *slog.Logger {
	if l := logger.Load(); l != nil {
		return l
	}
	if l := defaultLogger.Load(); l != nil {
		return l
	}
	l := newDefaultLogger()
	// CompareAndSwap so a concurrently cached value is not overwritten.
	if defaultLogger.CompareAndSwap(nil, l) {
		return l
	}
	// Re-load the winner's value; fall back to the locally created logger
	// if a concurrent SetLogger cleared the cache in between.
	if l2 := defaultLogger.Load(); l2 != nil {
		return l2
	}
	return l
}

// newDefaultLogger creates the default logger with the srvenv component attribute.
func newDefaultLogger() *slog.Logger {
	return slog.Default().With("component", "srvenv")
}

// SetLogger replaces the package-level logger used by srvenv. This allows
// applications to integrate srvenv logging with their own infrastructure.
// If l is nil, the logger resets to the default: slog.Default() with the
// component attribute, re-derived on the next Logger call and then cached.
//
// SetLogger is safe to call concurrently with other srvenv operations. For a
// strict happens-before guarantee, call it before launching servers (e.g.,
// in TestMain before m.Run).
func SetLogger(l *slog.Logger) {
	logger.Store(l)
	// Clear the cached default so the next Logger call re-derives it from
	// slog.Default().
	defaultLogger.Store(nil)
}
