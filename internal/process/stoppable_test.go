package process

import (
	"errors"
	"testing"
	"time"
)

func TestStopCloseAndNil(t *testing.T) {
	t.Parallel()

	t.Run("nil pointer returns nil", func(t *testing.T) {
		t.Parallel()

		if err := StopCloseAndNil[*fakeStoppable](nil, time.Second); err != nil {
			t.Fatalf("expected nil, got %v", err)
		}
	})

	t.Run("nil value returns nil", func(t *testing.T) {
		t.Parallel()

		var p *fakeStoppable
		if err := StopCloseAndNil(&p, time.Second); err != nil {
			t.Fatalf("expected nil, got %v", err)
		}
	})

	t.Run("calls stop and close then nils", func(t *testing.T) {
		t.Parallel()

		f := &fakeStoppable{}
		p := f
		if err := StopCloseAndNil(&p, 5*time.Second); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if p != nil {
			t.Error("pointer should be nil after StopCloseAndNil")
		}
		if !f.stopped {
			t.Error("Stop should have been called")
		}
		if !f.closed {
			t.Error("Close should have been called")
		}
		if f.stopTimeout != 5*time.Second {
			t.Errorf("Stop timeout = %v, want %v", f.stopTimeout, 5*time.Second)
		}
	})

	t.Run("close and nil on stop error", func(t *testing.T) {
		t.Parallel()

		f := &fakeStoppable{stopErr: errors.New("stop failed")}
		p := f
		err := StopCloseAndNil(&p, time.Second)
		if err == nil {
			t.Fatal("expected error, got nil")
		}
		if p != nil {
			t.Error("pointer should be nil even when Stop fails")
		}
		if !f.closed {
			t.Error("Close should be called even when Stop fails")
		}
	})
}

// fakeStoppable is a test double for the Stoppable interface.
type fakeStoppable struct {
	stopped     bool
	closed      bool
	stopErr     error
	stopTimeout time.Duration
}

func (f *fakeStoppable) Stop(timeout time.Duration) error {
	f.stopped = true
	f.stopTimeout = timeout
	return f.stopErr
}

func (f *fakeStoppable) Close() {
	f.closed = true
}
