package srvenv

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"sync"
	"sync/atomic"
	"time"

	"github.com/giantswarm/srvenv/internal/fileutil"
	"github.com/giantswarm/srvenv/internal/netutil"
	"github.com/giantswarm/srvenv/internal/process"
	"github.com/giantswarm/srvenv/internal/readiness"
	"github.com/giantswarm/srvenv/internal/workspace"
)

// Compile-time check: a Server can be released through the same Stoppable
// contract the internal process package uses.
var _ process.Stoppable = (*Server)(nil)

// Server is the handle for one launched server instance. It exclusively owns
// the child process and the negotiated endpoint; nothing outside the handle
// may terminate or read from the child.
//
// A Server returned by Launch is always Ready. Releasing it, via Stop or a
// deferred Close, guarantees the child is no longer running and
// has been reaped before the call returns, on success, failure, and panic
// paths alike.
//
// Methods are safe for concurrent use.
type Server struct {
	endpoint Endpoint
	name     string

	dataDir   string
	stdoutLog string
	stderrLog string

	stopTimeout time.Duration
	log         *slog.Logger

	state atomic.Int32

	// mu serializes release against concurrent Stop/Close calls.
	// child is nil once the handle has been released.
	mu    sync.Mutex
	child *process.Child
}

// Launch starts the server described by spec, waits for its readiness
// announcement, and returns a Ready handle exposing the negotiated endpoint.
//
// The launch is a single attempt with exactly one outcome. On failure the
// child process, if one was spawned, is terminated and reaped before Launch
// returns, and the error matches exactly one of ErrSpawnFailed,
// ErrReadyTimeout, ErrExitedEarly, or ErrProtocolViolation via errors.Is.
// Retry policy, if any, belongs to the caller.
//
// ctx bounds the startup wait in addition to the ready timeout; a launched
// server is not tied to ctx and lives until the handle is released.
func Launch(ctx context.Context, spec LaunchSpec, opts ...Option) (*Server, error) {
	if err := spec.validate(); err != nil {
		return nil, fmt.Errorf("invalid launch spec: %w", err)
	}
	cfg := newLaunchConfig(spec, opts)

	log := cfg.logger
	if log == nil {
		log = Logger().With("server", cfg.name)
	}

	dataDir := cfg.dataDir
	if dataDir == "" {
		var err error
		dataDir, err = workspace.NewLaunchDir(cfg.baseDataDir)
		if err != nil {
			return nil, fmt.Errorf("launch %s: %w", cfg.name, err)
		}
	} else if err := fileutil.EnsureDir(dataDir); err != nil {
		return nil, fmt.Errorf("launch %s: %w", cfg.name, err)
	}

	cmd := exec.Command(spec.Binary, spec.Args...)
	if len(spec.Env) > 0 {
		cmd.Env = append(os.Environ(), spec.Env...)
	}

	child := process.NewChild(cfg.name, log, cfg.stopTimeout)
	stderr, err := child.Spawn(cmd, dataDir)
	if err != nil {
		child.Close()
		return nil, fmt.Errorf("launch %s: %w: %w", cfg.name, ErrSpawnFailed, err)
	}
	log.Debug("server spawned", "pid", child.Pid(), "data_dir", dataDir)

	// The watcher tees everything it reads into the stderr capture file and
	// keeps draining after the handshake, so the child never blocks on a
	// full pipe and its output survives for debugging.
	results := readiness.Watch(stderr, child.StderrSink())

	port, err := awaitReadiness(ctx, &child, results, cfg, log)
	if err != nil {
		return nil, fmt.Errorf("launch %s: %w", cfg.name, err)
	}

	srv := &Server{
		endpoint:    Endpoint{Host: cfg.host, Port: port},
		name:        cfg.name,
		dataDir:     dataDir,
		stdoutLog:   child.StdoutLogPath(),
		stderrLog:   child.StderrLogPath(),
		stopTimeout: cfg.stopTimeout,
		log:         log,
		child:       &child,
	}
	srv.state.Store(int32(StateReady))
	log.Debug("server ready", "port", port)
	return srv, nil
}

// awaitReadiness races the single readiness result against the configured
// timeout and the caller's context. Exactly one outcome is produced per
// launch: the result channel is buffered so the watcher can never deliver a
// second, and the timer is stopped on the result path so no timer-driven
// action fires afterwards. On every failure path the child is terminated
// and reaped before returning.
func awaitReadiness(
	ctx context.Context,
	child *process.Child,
	results <-chan readiness.Result,
	cfg launchConfig,
	log *slog.Logger,
) (int, error) {
	timer := time.NewTimer(cfg.readyTimeout)
	defer timer.Stop()

	select {
	case res := <-results:
		if res.Err != nil {
			// On ErrExitedEarly the process is already dead; the release
			// drains the wait goroutine and closes the capture files. On
			// ErrProtocolViolation the child is still running and is
			// killed here.
			releaseChild(&child, cfg.stopTimeout, log)
			return 0, res.Err
		}
		if cfg.connectCheck {
			if err := verifyListening(ctx, child, res.Port, cfg, log); err != nil {
				releaseChild(&child, cfg.stopTimeout, log)
				return 0, err
			}
		}
		return res.Port, nil

	case <-timer.C:
		log.Debug("readiness wait timed out", "timeout", cfg.readyTimeout)
		releaseChild(&child, cfg.stopTimeout, log)
		return 0, fmt.Errorf("%w (%s)", ErrReadyTimeout, cfg.readyTimeout)

	case <-ctx.Done():
		releaseChild(&child, cfg.stopTimeout, log)
		return 0, fmt.Errorf("wait for readiness: %w", ctx.Err())
	}
}

// verifyListening confirms the announced port actually accepts TCP
// connections. A server that announces a port it has not bound violates the
// readiness contract, so the failure is reported as ErrProtocolViolation.
func verifyListening(ctx context.Context, child *process.Child, port int, cfg launchConfig, log *slog.Logger) error {
	err := netutil.WaitListening(ctx, netutil.WaitListeningConfig{
		Host:          cfg.host,
		Port:          port,
		Name:          cfg.name,
		Timeout:       cfg.readyTimeout,
		Logger:        log,
		ProcessExited: child.Exited(),
	})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrProtocolViolation, err)
	}
	return nil
}

// releaseChild stops, closes, and nils the child, logging a stop failure
// instead of propagating it: the caller is already returning a launch error
// and the stop sequence has done all it can.
func releaseChild(child **process.Child, stopTimeout time.Duration, log *slog.Logger) {
	if err := process.StopCloseAndNil(child, stopTimeout); err != nil {
		log.Warn("terminate child after failed launch", "error", err)
	}
}

// State returns the handle's lifecycle state: StateReady until the handle is
// released, StateTerminated afterwards.
func (s *Server) State() State {
	return State(s.state.Load())
}

// Port returns the port the server actually bound, parsed from its
// readiness announcement.
func (s *Server) Port() int {
	return s.endpoint.Port
}

// Host returns the configured loopback host of the endpoint.
func (s *Server) Host() string {
	return s.endpoint.Host
}

// Endpoint returns the negotiated endpoint for building protocol clients.
func (s *Server) Endpoint() Endpoint {
	return s.endpoint
}

// Addr returns the endpoint in host:port form.
func (s *Server) Addr() string {
	return s.endpoint.Addr()
}

// Name returns the process name used in logs and capture file names.
func (s *Server) Name() string {
	return s.name
}

// Pid returns the child's process id, or 0 once the handle is released.
func (s *Server) Pid() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.child == nil {
		return 0
	}
	return s.child.Pid()
}

// DataDir returns the launch's data directory holding the capture files.
func (s *Server) DataDir() string {
	return s.dataDir
}

// StdoutLogPath returns the path of the file capturing the server's stdout.
// The file remains readable after release.
func (s *Server) StdoutLogPath() string {
	return s.stdoutLog
}

// StderrLogPath returns the path of the file capturing the server's stderr,
// including everything up to and after the readiness announcement.
func (s *Server) StderrLogPath() string {
	return s.stderrLog
}

// Stop terminates the server with the given timeout: SIGTERM, a bounded
// grace period, then SIGKILL, followed by reaping the process. When Stop
// returns, the child is no longer running and its resources are reclaimed.
// Safe to call more than once; subsequent calls return nil.
func (s *Server) Stop(timeout time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.child == nil {
		return nil
	}
	err := process.StopCloseAndNil(&s.child, timeout)
	s.state.Store(int32(StateTerminated))
	if err != nil {
		return fmt.Errorf("stop %s: %w", s.name, err)
	}
	return nil
}

// Close releases the handle using the configured stop timeout, ignoring the
// stop error (it is logged). Close is what a deferred release should call:
// it runs on early returns, failed assertions, and panics alike, and after
// it returns no child process remains.
func (s *Server) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.child == nil {
		return
	}
	if err := process.StopCloseAndNil(&s.child, s.stopTimeout); err != nil {
		s.log.Warn("stop during Close failed", "server", s.name, "error", err)
	}
	s.state.Store(int32(StateTerminated))
}
