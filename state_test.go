package srvenv_test

import (
	"testing"

	"github.com/giantswarm/srvenv"
)

func TestStateString(t *testing.T) {
	t.Parallel()

	tests := map[srvenv.State]string{
		srvenv.StateStarting:   "Starting",
		srvenv.StateReady:      "Ready",
		srvenv.StateFailed:     "Failed",
		srvenv.StateTerminated: "Terminated",
		srvenv.State(99):       "State(99)",
	}

	for state, want := range tests {
		if got := state.String(); got != want {
			t.Errorf("State(%d).String() = %q, want %q", int(state), got, want)
		}
	}
}

func TestStateIsValid(t *testing.T) {
	t.Parallel()

	for _, state := range []srvenv.State{
		srvenv.StateStarting, srvenv.StateReady, srvenv.StateFailed, srvenv.StateTerminated,
	} {
		if !state.IsValid() {
			t.Errorf("State %v reported invalid", state)
		}
	}
	if srvenv.State(-1).IsValid() {
		t.Error("State(-1) reported valid")
	}
	if srvenv.State(42).IsValid() {
		t.Error("State(42) reported valid")
	}
}
