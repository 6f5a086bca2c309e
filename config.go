package srvenv

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"
)

// LaunchSpec is the caller-supplied description of one server launch. It is
// read once by Launch and never shared or mutated afterwards.
type LaunchSpec struct {
	// Binary is the path or name (resolved via PATH) of the server
	// executable.
	Binary string

	// Args are passed to the binary verbatim. They must include whatever
	// argument the server uses to request an ephemeral bind, typically a
	// port value of 0 (e.g., "--port=0").
	Args []string

	// Env is additional environment for the child, appended to the
	// parent's environment. Empty means the child inherits the parent's
	// environment unchanged.
	Env []string

	// ReadyTimeout bounds the wait for the SERVER_READY announcement.
	// Zero means DefaultReadyTimeout.
	ReadyTimeout time.Duration
}

// validate checks the spec and returns an error describing every violation
// found, joined so callers can fix all problems in one pass.
func (s LaunchSpec) validate() error {
	var errs []error

	if s.Binary == "" {
		errs = append(errs, errors.New("binary must not be empty"))
	}
	if s.ReadyTimeout < 0 {
		errs = append(errs, fmt.Errorf("ready timeout must not be negative, got %s", s.ReadyTimeout))
	}

	return errors.Join(errs...)
}

// launchConfig holds the full effective configuration for one launch:
// defaults, overlaid with options, combined with the caller's LaunchSpec.
type launchConfig struct {
	name         string // process name for logs and capture files
	host         string
	readyTimeout time.Duration
	stopTimeout  time.Duration
	baseDataDir  string
	dataDir      string // explicit data dir; empty means allocate under baseDataDir
	logger       *slog.Logger
	connectCheck bool
}

// newLaunchConfig builds the effective configuration from defaults, the
// spec, and the options, in that order.
func newLaunchConfig(spec LaunchSpec, opts []Option) launchConfig {
	cfg := launchConfig{
		host:         DefaultHost,
		readyTimeout: DefaultReadyTimeout,
		stopTimeout:  DefaultStopTimeout,
		baseDataDir:  filepath.Join(os.TempDir(), DefaultBaseDataDirName),
	}
	if spec.ReadyTimeout > 0 {
		cfg.readyTimeout = spec.ReadyTimeout
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.name == "" {
		cfg.name = filepath.Base(spec.Binary)
	}
	return cfg
}
