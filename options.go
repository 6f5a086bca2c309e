package srvenv

import (
	"fmt"
	"log/slog"
	"time"
)

// requirePositive panics if v <= 0 with a descriptive message.
func requirePositive[T int | time.Duration](name string, v T) {
	if v <= 0 {
		panic(fmt.Sprintf("srvenv: %s must be greater than 0, got %v", name, v))
	}
}

// requireNonEmpty panics if s is empty with a descriptive message.
func requireNonEmpty(name, s string) {
	if s == "" {
		panic(fmt.Sprintf("srvenv: %s must not be empty", name))
	}
}

// Option configures a launch beyond what LaunchSpec carries. Each With*
// function returns an Option that sets a specific field.
//
// Several With* functions panic on invalid input (empty paths, non-positive
// durations). These panics are intentional: option values are typically
// compile-time constants, so an invalid value is a programmer error rather
// than a runtime condition, and failing fast during initialization beats
// returning errors that would be universally fatal anyway.
type Option func(*launchConfig)

// WithHost sets the loopback host used to build the endpoint from the
// announced port. The harness never parses a host from the announcement;
// the server is expected to bind loopback.
//
// Default: 127.0.0.1.
//
// Panics if host is empty.
func WithHost(host string) Option {
	requireNonEmpty("host", host)
	return func(c *launchConfig) {
		c.host = host
	}
}

// WithStopTimeout sets the maximum time for the child's SIGTERM/SIGKILL
// shutdown sequence during Stop, Close, and failure-path cleanup.
//
// Default: 10 seconds.
//
// Panics if d <= 0.
func WithStopTimeout(d time.Duration) Option {
	requirePositive("stop timeout", d)
	return func(c *launchConfig) {
		c.stopTimeout = d
	}
}

// WithBaseDataDir sets the base directory under which each launch gets its
// own data directory for captured stdout/stderr. Useful in CI environments
// where multiple projects need isolated directories.
//
// Default: filepath.Join(os.TempDir(), DefaultBaseDataDirName).
//
// Panics if dir is empty.
func WithBaseDataDir(dir string) Option {
	requireNonEmpty("base data directory", dir)
	return func(c *launchConfig) {
		c.baseDataDir = dir
	}
}

// WithDataDir sets an explicit data directory for this launch instead of an
// allocated one under the base directory. The directory is created if
// missing and is never removed by the harness.
//
// Panics if dir is empty.
func WithDataDir(dir string) Option {
	requireNonEmpty("data directory", dir)
	return func(c *launchConfig) {
		c.dataDir = dir
	}
}

// WithLogger sets the logger for this launch. The provided logger should
// already carry any desired attributes.
//
// Default: the package logger (see SetLogger) with a "server" attribute.
func WithLogger(l *slog.Logger) Option {
	return func(c *launchConfig) {
		c.logger = l
	}
}

// WithConnectCheck makes Launch verify, after the readiness announcement,
// that the announced port actually accepts TCP connections before returning
// a Ready handle. This catches servers that announce before binding.
func WithConnectCheck() Option {
	return func(c *launchConfig) {
		c.connectCheck = true
	}
}

// WithName sets the process name used in log messages and capture file
// names (e.g., "my-server" -> "my-server-stdout.log").
//
// Default: filepath.Base of the spec's Binary.
//
// Panics if name is empty.
func WithName(name string) Option {
	requireNonEmpty("process name", name)
	return func(c *launchConfig) {
		c.name = name
	}
}
