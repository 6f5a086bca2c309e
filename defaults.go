package srvenv

import "time"

// Default configuration values for Launch. These constants are exported so
// callers can reference the defaults when building custom configurations
// relative to them (e.g., 2 * DefaultReadyTimeout).
const (
	// DefaultReadyTimeout bounds the wait for the readiness announcement
	// when LaunchSpec.ReadyTimeout is zero.
	DefaultReadyTimeout = 5 * time.Second

	// DefaultStopTimeout is the maximum time allowed for the child's
	// SIGTERM/SIGKILL shutdown sequence during Stop or Close. SIGKILL is
	// escalated to after a 5 second grace period (capped at this timeout),
	// so a server that ignores SIGTERM is still gone well within it.
	DefaultStopTimeout = 10 * time.Second

	// DefaultHost is the loopback address used to build the endpoint from
	// the announced port.
	DefaultHost = "127.0.0.1"

	// DefaultBaseDataDirName is the directory name under the system temp
	// directory where per-launch data (captured stdout/stderr) is stored.
	// The full path is filepath.Join(os.TempDir(), DefaultBaseDataDirName).
	DefaultBaseDataDirName = "srvenv"

	// DefaultPurgeMaxAge is the age past which Purge considers a launch
	// directory stale when the owning process is gone.
	DefaultPurgeMaxAge = time.Hour
)
