package process

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestWaitFor_InvalidConfig(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		cfg     WaitConfig
		wantMsg string
	}{
		"zero interval": {
			cfg:     WaitConfig{Interval: 0, Timeout: 5 * time.Second, Name: "test-proc"},
			wantMsg: "interval must be positive",
		},
		"negative interval": {
			cfg:     WaitConfig{Interval: -time.Second, Timeout: 5 * time.Second, Name: "test-proc"},
			wantMsg: "interval must be positive",
		},
		"zero timeout": {
			cfg:     WaitConfig{Interval: 100 * time.Millisecond, Timeout: 0, Name: "test-proc"},
			wantMsg: "timeout must be positive",
		},
		"empty name": {
			cfg:     WaitConfig{Interval: 100 * time.Millisecond, Timeout: 5 * time.Second},
			wantMsg: "name must not be empty",
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			err := WaitFor(context.Background(), tc.cfg, func(_ context.Context, _ int) (bool, error) {
				t.Fatal("check should not be called with invalid config")
				return false, nil
			})
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tc.wantMsg) {
				t.Fatalf("error %v does not contain %q", err, tc.wantMsg)
			}
		})
	}
}

func TestWaitFor_SucceedsOnFirstAttempt(t *testing.T) {
	t.Parallel()

	err := WaitFor(context.Background(), WaitConfig{
		Interval: 10 * time.Millisecond,
		Timeout:  5 * time.Second,
		Name:     "test-proc",
		Port:     12345,
	}, func(_ context.Context, _ int) (bool, error) {
		return true, nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestWaitFor_SucceedsAfterRetries(t *testing.T) {
	t.Parallel()

	err := WaitFor(context.Background(), WaitConfig{
		Interval: time.Millisecond,
		Timeout:  5 * time.Second,
		Name:     "test-proc",
	}, func(_ context.Context, attempt int) (bool, error) {
		return attempt >= 3, nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestWaitFor_AbortsWhenProcessExited(t *testing.T) {
	t.Parallel()

	// Pre-close the channel to simulate a process that already exited.
	exited := make(chan struct{})
	close(exited)

	start := time.Now()
	err := WaitFor(context.Background(), WaitConfig{
		Interval:      100 * time.Millisecond,
		Timeout:       10 * time.Second,
		Name:          "test-proc",
		ProcessExited: exited,
	}, func(_ context.Context, _ int) (bool, error) {
		t.Fatal("check should not be called once the process exited")
		return false, nil
	})
	elapsed := time.Since(start)

	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !strings.Contains(err.Error(), "exited while waiting") {
		t.Fatalf("unexpected error message: %v", err)
	}
	// The abort must be prompt, well under the 10s timeout.
	if elapsed > time.Second {
		t.Fatalf("expected fast abort, took %v", elapsed)
	}
}

func TestWaitFor_FatalCheckError(t *testing.T) {
	t.Parallel()

	fatal := errors.New("permanent failure")
	calls := 0
	err := WaitFor(context.Background(), WaitConfig{
		Interval: time.Millisecond,
		Timeout:  5 * time.Second,
		Name:     "test-proc",
	}, func(_ context.Context, _ int) (bool, error) {
		calls++
		return false, fatal
	})
	if !errors.Is(err, fatal) {
		t.Fatalf("err = %v, want %v", err, fatal)
	}
	if calls != 1 {
		t.Errorf("check called %d times, want 1 (fatal errors abort polling)", calls)
	}
}
