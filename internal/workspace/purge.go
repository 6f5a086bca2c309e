package workspace

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/gofrs/flock"
	"golang.org/x/sync/errgroup"
)

// purgeLockName is the flock file at the base directory root that serializes
// purges across test binaries sharing the same base directory. The lock file
// is intentionally left on disk; removing it could invalidate a lock
// concurrently acquired by another process.
const purgeLockName = ".purge.lock"

// lockRetryInterval is the interval between attempts to acquire the purge
// lock. 50ms balances responsiveness against busy-polling overhead.
const lockRetryInterval = 50 * time.Millisecond

// maxParallelRemovals bounds the number of concurrent directory removals so
// a purge of many stale launches does not saturate the filesystem.
const maxParallelRemovals = 4

// Purge removes launch directories under base that are older than maxAge and
// whose owning process is no longer running. It returns the number of
// directories removed.
//
// The whole purge runs under an exclusive file lock, so concurrent test
// binaries sharing a base directory never race on removal. A missing base
// directory is not an error; there is simply nothing to purge.
func Purge(ctx context.Context, base string, maxAge time.Duration, log *slog.Logger) (int, error) {
	if log == nil {
		log = slog.Default()
	}

	entries, err := os.ReadDir(base)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, fmt.Errorf("read base data dir %s: %w", base, err)
	}

	fl := flock.New(filepath.Join(base, purgeLockName))
	locked, err := fl.TryLockContext(ctx, lockRetryInterval)
	if err != nil {
		return 0, fmt.Errorf("acquire purge lock: %w", err)
	}
	if !locked {
		return 0, fmt.Errorf("acquire purge lock: lock not acquired")
	}
	defer func() {
		// Close releases the lock and the descriptor in one step.
		if err := fl.Close(); err != nil {
			log.Debug("release purge lock", "path", fl.Path(), "error", err)
		}
	}()

	cutoff := time.Now().Add(-maxAge)

	var removed atomic.Int64
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallelRemovals)

	for _, entry := range entries {
		if !entry.IsDir() || !strings.HasPrefix(entry.Name(), launchDirPrefix) {
			continue
		}
		if pid, ok := ownerPid(entry.Name()); ok && pidAlive(pid) {
			continue // owner still running, not stale
		}
		info, err := entry.Info()
		if err != nil || info.ModTime().After(cutoff) {
			continue
		}

		path := filepath.Join(base, entry.Name())
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			if err := os.RemoveAll(path); err != nil {
				return fmt.Errorf("remove stale launch dir %s: %w", path, err)
			}
			removed.Add(1)
			log.Debug("purged stale launch dir", "path", path)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return int(removed.Load()), fmt.Errorf("purge %s: %w", base, err)
	}
	return int(removed.Load()), nil
}

// ownerPid extracts the process id embedded in a launch directory name of
// the form launch-<pid>-<random>.
func ownerPid(name string) (int, bool) {
	rest := strings.TrimPrefix(name, launchDirPrefix)
	pidStr, _, ok := strings.Cut(rest, "-")
	if !ok {
		return 0, false
	}
	pid, err := strconv.Atoi(pidStr)
	if err != nil || pid <= 0 {
		return 0, false
	}
	return pid, true
}

// pidAlive reports whether a process with the given pid exists. Signal 0
// performs the existence check without delivering anything.
func pidAlive(pid int) bool {
	return syscall.Kill(pid, 0) == nil
}
