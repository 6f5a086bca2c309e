// Package process manages the lifecycle of one spawned server child process:
// starting it with stdout captured to a log file and stderr handed to the
// caller as a pipe, and stopping it with a SIGTERM-then-SIGKILL sequence that
// guarantees the child is reaped.
package process
