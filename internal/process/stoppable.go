package process

import (
	"time"
)

// Stoppable represents a process that can be stopped and have its resources closed.
type Stoppable interface {
	Stop(timeout time.Duration) error
	Close()
}

// StopCloseAndNil stops, closes, and nils a Stoppable pointer in a single
// cleanup step. It is safe to call with a nil p or when *p is nil; in both
// cases it returns nil immediately.
//
// The two type parameters enforce a pointer-type constraint at compile time:
// P is constrained to both *E and Stoppable, so only pointer types that
// implement Stoppable can be passed, and *E is directly comparable to nil
// without reflection. Callers never specify E; the compiler infers it.
//
// Close and nil-out always run even when Stop returns an error: a failed
// Stop leaves the process in an unknown state, but file handles must still
// be closed and the stale reference cleared. The Stop error is returned.
//
// Usage:
//
//	var child *process.Child
//	// ... spawn ...
//	err := process.StopCloseAndNil(&child, 10*time.Second)
func StopCloseAndNil[P interface {
	*E
	Stoppable
}, E any](p *P, timeout time.Duration) error {
	if p == nil || *p == nil {
		return nil
	}
	defer func() {
		(*p).Close()
		*p = nil
	}()
	return (*p).Stop(timeout)
}
