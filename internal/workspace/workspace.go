package workspace

import (
	"fmt"
	"os"

	"github.com/giantswarm/srvenv/internal/fileutil"
)

// launchDirPrefix is the name prefix of per-launch data directories. The
// owning process id is embedded so Purge can skip directories whose owner
// is still running.
const launchDirPrefix = "launch-"

// NewLaunchDir creates a fresh, uniquely named data directory under base for
// one launch. The directory name embeds the current process id
// (launch-<pid>-<random>). The caller owns the directory; it is never
// removed automatically except by Purge once it is stale.
func NewLaunchDir(base string) (string, error) {
	if base == "" {
		return "", fmt.Errorf("base data directory must not be empty")
	}
	if err := fileutil.EnsureDir(base); err != nil {
		return "", fmt.Errorf("ensure base data dir: %w", err)
	}
	dir, err := os.MkdirTemp(base, fmt.Sprintf("%s%d-", launchDirPrefix, os.Getpid()))
	if err != nil {
		return "", fmt.Errorf("create launch dir: %w", err)
	}
	return dir, nil
}
