package srvenv

import (
	"log/slog"
	"time"
)

// ConfigSnapshot mirrors the effective launch configuration so tests can
// assert option behavior without exporting launchConfig itself.
type ConfigSnapshot struct {
	Name         string
	Host         string
	ReadyTimeout time.Duration
	StopTimeout  time.Duration
	BaseDataDir  string
	DataDir      string
	Logger       *slog.Logger
	ConnectCheck bool
}

// ApplyOptionsForTesting builds the effective configuration for spec and
// opts exactly as Launch does and returns a snapshot of it.
func ApplyOptionsForTesting(spec LaunchSpec, opts ...Option) ConfigSnapshot {
	cfg := newLaunchConfig(spec, opts)
	return ConfigSnapshot{
		Name:         cfg.name,
		Host:         cfg.host,
		ReadyTimeout: cfg.readyTimeout,
		StopTimeout:  cfg.stopTimeout,
		BaseDataDir:  cfg.baseDataDir,
		DataDir:      cfg.dataDir,
		Logger:       cfg.logger,
		ConnectCheck: cfg.connectCheck,
	}
}

// ValidateSpecForTesting exposes LaunchSpec validation.
func ValidateSpecForTesting(spec LaunchSpec) error {
	return spec.validate()
}
