package process

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"k8s.io/apimachinery/pkg/util/wait"
)

// Sentinel errors returned by WaitFor for invalid configuration and process
// lifecycle conditions. Callers can match these with errors.Is through
// wrapped error chains.
var (
	// ErrIntervalNotPositive indicates a non-positive poll interval.
	ErrIntervalNotPositive = errors.New("interval must be positive")

	// ErrTimeoutNotPositive indicates a non-positive timeout.
	ErrTimeoutNotPositive = errors.New("timeout must be positive")

	// ErrProcessExited indicates the process exited while being waited on.
	ErrProcessExited = errors.New("process exited while waiting")
)

// Check is a condition polled by WaitFor. The context is canceled when the
// polling loop times out or the caller cancels, allowing checks (e.g., TCP
// dials) to exit promptly. The attempt parameter is 1-based. It returns true
// when the condition holds, false to continue polling. The error return is
// for fatal errors that abort polling.
type Check func(ctx context.Context, attempt int) (ok bool, err error)

// WaitConfig configures the polling behavior of WaitFor.
type WaitConfig struct {
	Interval      time.Duration   // Poll interval
	Timeout       time.Duration   // Overall timeout
	Name          string          // For logging (e.g., "my-server")
	Port          int             // For logging context
	Logger        *slog.Logger    // Optional logger (defaults to slog.Default())
	ProcessExited <-chan struct{} // If non-nil, abort immediately when closed
}

// WaitFor polls the check until it returns true, returns a fatal error, or
// the timeout elapses. If ProcessExited closes, polling aborts immediately
// with ErrProcessExited rather than burning the remaining timeout on a
// process that can never satisfy the condition.
func WaitFor(ctx context.Context, cfg WaitConfig, check Check) error {
	if cfg.Name == "" {
		return errors.New("wait for: name must not be empty")
	}
	if cfg.Interval <= 0 {
		return fmt.Errorf("wait for %s: %w", cfg.Name, ErrIntervalNotPositive)
	}
	if cfg.Timeout <= 0 {
		return fmt.Errorf("wait for %s: %w", cfg.Name, ErrTimeoutNotPositive)
	}

	log := cfg.Logger
	if log == nil {
		log = slog.Default()
	}

	// attempt is incremented without synchronization because
	// PollUntilContextTimeout invokes the condition sequentially; the
	// closure is never called concurrently with itself.
	attempt := 0
	if err := wait.PollUntilContextTimeout(ctx, cfg.Interval, cfg.Timeout, true,
		func(pollCtx context.Context) (bool, error) {
			if cfg.ProcessExited != nil {
				select {
				case <-cfg.ProcessExited:
					return false, fmt.Errorf("process %s: %w", cfg.Name, ErrProcessExited)
				default:
				}
			}

			attempt++
			ok, err := check(pollCtx, attempt)
			if err != nil {
				// Fatal error - abort polling
				return false, err
			}
			if ok {
				log.Debug("wait succeeded", "name", cfg.Name, "port", cfg.Port, "attempt", attempt)
			}
			return ok, nil
		}); err != nil {
		return fmt.Errorf("wait for %s on port %d: %w", cfg.Name, cfg.Port, err)
	}
	return nil
}
