// Package fileutil provides small filesystem helpers shared by the launch
// data directory and workspace purge code.
package fileutil
