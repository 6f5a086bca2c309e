package srvenv

import "fmt"

// State describes where a Server is in its lifecycle.
//
// A server transitions Starting -> Ready exactly once when the readiness
// announcement is parsed, or Starting -> Failed on any launch error. A Ready
// server transitions to Terminated exactly once when the handle is released.
// Failed handles hold no live process and need no termination step.
type State int

const (
	// StateStarting means the child has been spawned but has not yet
	// announced readiness.
	StateStarting State = iota

	// StateReady means the readiness announcement was parsed and the
	// negotiated port is available.
	StateReady

	// StateFailed means the launch attempt ended in one of the four
	// terminal errors. The child, if any, is already terminated.
	StateFailed

	// StateTerminated means the handle was released and the child process
	// has been stopped and reaped.
	StateTerminated
)

// IsValid reports whether s is a recognized State value.
func (s State) IsValid() bool {
	switch s {
	case StateStarting, StateReady, StateFailed, StateTerminated:
		return true
	default:
		return false
	}
}

// String returns the name of the state.
func (s State) String() string {
	switch s {
	case StateStarting:
		return "Starting"
	case StateReady:
		return "Ready"
	case StateFailed:
		return "Failed"
	case StateTerminated:
		return "Terminated"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}
