package srvenv

import (
	"context"
	"time"

	"github.com/giantswarm/srvenv/internal/workspace"
)

// Purge removes stale launch directories under baseDir: directories whose
// owning process is gone and whose last modification is older than maxAge.
// Directories belonging to live processes are always kept, so concurrent
// test runs sharing a base directory are safe. A zero maxAge means
// DefaultPurgeMaxAge.
//
// Purge takes a file lock under baseDir so that concurrent purgers do not
// race each other; a second purger returns immediately with a zero count.
// A missing baseDir is not an error.
//
// Returns the number of directories removed.
func Purge(ctx context.Context, baseDir string, maxAge time.Duration) (int, error) {
	if maxAge <= 0 {
		maxAge = DefaultPurgeMaxAge
	}
	return workspace.Purge(ctx, baseDir, maxAge, Logger())
}
