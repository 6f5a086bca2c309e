package process

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"time"

	"github.com/giantswarm/srvenv/internal/sentinel"
)

// ErrAlreadyStarted is returned when Spawn is called on a Child that is
// already running. Callers must Stop the child before spawning again.
const ErrAlreadyStarted = sentinel.Error("child already started")

// ErrNilCmd is returned when Spawn is called with a nil *exec.Cmd.
const ErrNilCmd = sentinel.Error("cmd must not be nil")

// ErrEmptyCmdPath is returned when Spawn is called with an empty cmd.Path.
const ErrEmptyCmdPath = sentinel.Error("cmd.Path must not be empty")

// ErrEmptyDataDir is returned when Spawn is called with an empty data directory.
const ErrEmptyDataDir = sentinel.Error("data directory must not be empty")

// Child owns exactly one spawned server process. It holds the process handle,
// the single cmd.Wait goroutine, and the stdout/stderr capture files.
//
// Child is not safe for concurrent use. Callers must serialize access to all
// methods. In practice the srvenv.Server that embeds Child serializes calls
// with its own mutex.
type Child struct {
	cmd      *exec.Cmd
	waitDone <-chan error    // receives the cmd.Wait result; consumed once by Stop
	exited   <-chan struct{} // closed when the process exits; readable by any goroutine
	logFiles LogFiles

	name        string
	log         *slog.Logger
	stopTimeout time.Duration // safety-net timeout for auto-stop in Close
}

// NewChild creates a Child with the given name, logger, and stop timeout.
// The stopTimeout is used by Close as a safety net when auto-stopping a child
// that was not explicitly stopped; zero falls back to DefaultStopTimeout.
// If logger is nil, slog.Default() is used. Panics if name is empty, since an
// empty name produces useless error messages throughout the lifecycle.
func NewChild(name string, logger *slog.Logger, stopTimeout time.Duration) Child {
	if name == "" {
		panic("srvenv: child process name must not be empty")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return Child{name: name, log: logger, stopTimeout: stopTimeout}
}

// Spawn starts the command with its stdout attached to a capture file and its
// stderr redirected into a pipe whose read end is returned to the caller. The
// cmd must already have Path and Args set; Spawn sets Dir, Stdout, Stderr and
// calls Start.
//
// The pipe is created explicitly rather than via cmd.StderrPipe because
// cmd.Wait closes StderrPipe's read end as soon as the process exits, racing
// any reader still draining buffered output. Here the wait goroutine starts
// immediately after Start, so the reader must own the read end outright.
// The caller is responsible for closing the returned reader.
//
// A single goroutine calling cmd.Wait is started here so that exactly one
// Wait call is made per process. Its result channel is consumed by Stop.
//
// Returns ErrAlreadyStarted if the child is already running.
func (c *Child) Spawn(cmd *exec.Cmd, dataDir string) (io.ReadCloser, error) {
	if cmd == nil {
		return nil, ErrNilCmd
	}
	if cmd.Path == "" {
		return nil, ErrEmptyCmdPath
	}
	if dataDir == "" {
		return nil, ErrEmptyDataDir
	}
	if c.cmd != nil {
		return nil, ErrAlreadyStarted
	}

	cmd.Dir = dataDir
	configureSysProcAttr(cmd)

	logFiles, err := NewLogFiles(dataDir, c.name)
	if err != nil {
		return nil, fmt.Errorf("create %s logs: %w", c.name, err)
	}
	cmd.Stdout = logFiles.stdoutFile

	pr, pw, err := os.Pipe()
	if err != nil {
		logFiles.Close()
		return nil, fmt.Errorf("create stderr pipe: %w", err)
	}
	cmd.Stderr = pw

	if err := cmd.Start(); err != nil {
		logFiles.Close()
		_ = pr.Close()
		_ = pw.Close()
		return nil, fmt.Errorf("start %s process: %w", c.name, err)
	}
	// The child holds its own copy of the write end; closing the parent's
	// copy ensures the reader sees EOF when the child exits.
	_ = pw.Close()

	c.cmd = cmd
	c.logFiles = logFiles

	// Two channels are created:
	//   - done (buffered 1): receives the Wait error, consumed once by Stop.
	//   - exited (closed on exit): broadcast signal readable by any number
	//     of goroutines to detect that the process died.
	done := make(chan error, 1)
	exited := make(chan struct{})
	go func() {
		done <- cmd.Wait()
		close(exited)
	}()
	c.waitDone = done
	c.exited = exited

	return pr, nil
}

// Stop terminates the child with the given timeout using the SIGTERM-then-
// SIGKILL sequence. After Stop returns, IsStarted reports false regardless of
// whether the stop succeeded, because the process is no longer in a
// known-running state. Safe to call when the child was never spawned or was
// already stopped; returns nil immediately in those cases.
func (c *Child) Stop(timeout time.Duration) error {
	if c.cmd == nil || c.cmd.Process == nil {
		c.cmd = nil
		c.waitDone = nil
		c.exited = nil
		return nil
	}
	pid := c.cmd.Process.Pid
	err := stopWithDone(c.cmd, c.waitDone, timeout, c.name)
	if err != nil {
		c.log.Warn("process stop failed; process may be orphaned",
			"process", c.name, "pid", pid, "error", err)
	}
	c.cmd = nil
	c.waitDone = nil
	c.exited = nil
	return err
}

// Close closes the capture file handles. If the child is still running (Stop
// was not called first), Close stops it automatically using the configured
// stop timeout so a forgotten Stop never leaks a process. Callers should
// still call Stop first; the auto-stop is a safety net, not the intended
// code path.
func (c *Child) Close() {
	if c.cmd != nil {
		c.log.Warn("child.Close called without Stop; stopping automatically",
			"process", c.name)
		timeout := c.stopTimeout
		if timeout <= 0 {
			timeout = DefaultStopTimeout
		}
		if err := c.Stop(timeout); err != nil {
			c.log.Warn("auto-stop during Close failed",
				"process", c.name, "error", err)
		}
	}
	c.logFiles.Close()
}

// Logger returns the logger used by this child.
func (c *Child) Logger() *slog.Logger {
	return c.log
}

// Exited returns a channel that is closed when the process exits. Safe to
// select on from any number of goroutines. Returns nil if the child has not
// been spawned or has already been stopped.
func (c *Child) Exited() <-chan struct{} {
	return c.exited
}

// IsStarted reports whether the child has been spawned and not yet stopped.
func (c *Child) IsStarted() bool {
	return c.cmd != nil
}

// Pid returns the operating-system process id of the running child, or 0 if
// the child is not running.
func (c *Child) Pid() int {
	if c.cmd == nil || c.cmd.Process == nil {
		return 0
	}
	return c.cmd.Process.Pid
}

// StderrSink returns the writer the readiness watcher tees the child's
// stderr into. Returns io.Discard if the capture file was never created.
func (c *Child) StderrSink() io.Writer {
	if c.logFiles.stderrFile == nil {
		return io.Discard
	}
	return c.logFiles.stderrFile
}

// StdoutLogPath returns the path of the stdout capture file.
func (c *Child) StdoutLogPath() string {
	return c.logFiles.StdoutPath()
}

// StderrLogPath returns the path of the stderr capture file.
func (c *Child) StderrLogPath() string {
	return c.logFiles.StderrPath()
}
