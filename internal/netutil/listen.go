package netutil

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"strconv"
	"time"

	"github.com/giantswarm/srvenv/internal/process"
)

// pollInterval is the interval between consecutive TCP connection attempts
// when verifying a server's announced port. The announcement contract says
// the server is already bound when it prints the sentinel, so the first
// attempt almost always succeeds; the loop only papers over accept-queue
// races on loaded machines.
const pollInterval = 10 * time.Millisecond

// dialTimeout is the per-attempt timeout for the verification dial. Generous
// for a loopback connection; attempts that fail because nothing listens
// return immediately with a connection-refused error, so this only guards
// against pathological cases.
const dialTimeout = time.Second

// WaitListeningConfig configures a WaitListening call.
type WaitListeningConfig struct {
	Host          string          // Loopback host the server bound
	Port          int             // Port from the readiness announcement
	Name          string          // Process name for logging
	Timeout       time.Duration   // Overall verification timeout
	Logger        *slog.Logger    // Optional logger
	ProcessExited <-chan struct{} // Abort immediately when closed
}

// WaitListening dials (host, port) until a TCP connection succeeds or the
// timeout elapses. It aborts early if the process exits.
func WaitListening(ctx context.Context, cfg WaitListeningConfig) error {
	addr := net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port))

	dialer := &net.Dialer{Timeout: dialTimeout}
	if err := process.WaitFor(ctx, process.WaitConfig{
		Interval:      pollInterval,
		Timeout:       cfg.Timeout,
		Name:          cfg.Name,
		Port:          cfg.Port,
		Logger:        cfg.Logger,
		ProcessExited: cfg.ProcessExited,
	}, func(checkCtx context.Context, attempt int) (bool, error) {
		conn, err := dialer.DialContext(checkCtx, "tcp", addr)
		if err != nil {
			if cfg.Logger != nil {
				cfg.Logger.Debug("connect check attempt", "addr", addr, "attempt", attempt, "error", err)
			}
			return false, nil // Not accepting yet
		}
		_ = conn.Close() // best-effort close of verification connection
		return true, nil
	}); err != nil {
		return fmt.Errorf("endpoint %s not accepting connections: %w", addr, err)
	}
	return nil
}
