package srvenv

import (
	"github.com/giantswarm/srvenv/internal/readiness"
	"github.com/giantswarm/srvenv/internal/sentinel"
)

// Sentinel errors for error inspection with errors.Is. All four are terminal
// for a launch attempt; the harness never retries. On every failure the child
// process, if one was spawned, is terminated before Launch returns.
const (
	// ErrSpawnFailed is returned when the server process could not be
	// created at all: the binary was not found or the operating system
	// refused the spawn.
	ErrSpawnFailed = sentinel.Error("server process could not be spawned")

	// ErrReadyTimeout is returned when no readiness announcement appeared
	// within the configured timeout. The child is terminated before Launch
	// returns, so callers never observe a timed-out-but-still-running server.
	ErrReadyTimeout = sentinel.Error("server did not announce readiness within the timeout")

	// ErrExitedEarly is returned when the server's stderr closed before a
	// valid announcement appeared, meaning the server crashed or failed
	// its own startup.
	ErrExitedEarly = readiness.ErrExitedEarly

	// ErrProtocolViolation is returned when an announcement line was
	// present but its payload did not parse as a port in [0, 65535]. This
	// surfaces a server-side contract bug rather than coercing the value.
	ErrProtocolViolation = readiness.ErrProtocolViolation
)
