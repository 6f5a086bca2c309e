// Package workspace manages per-launch data directories: each launched
// server gets its own directory for captured stdout/stderr, and stale
// directories left behind by crashed test binaries can be purged safely
// across concurrent processes.
package workspace
