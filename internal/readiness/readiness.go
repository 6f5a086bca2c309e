package readiness

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/giantswarm/srvenv/internal/sentinel"
)

// Prefix is the sentinel prefix a server prints to its stderr, followed by
// the decimal value of the port it bound, once it is ready to accept
// connections: SERVER_READY:<port>
const Prefix = "SERVER_READY:"

// ErrExitedEarly is produced when the stderr stream closes before a valid
// sentinel line appeared, meaning the server crashed or failed its own
// startup.
const ErrExitedEarly = sentinel.Error("process exited before announcing readiness")

// ErrProtocolViolation is produced when a line carries the sentinel prefix
// but its payload does not parse as a port in [0, 65535]. This surfaces a
// server-side contract bug instead of hanging the caller or coercing the
// value to a default port.
const ErrProtocolViolation = sentinel.Error("malformed readiness announcement")

// maxLineBytes caps the scanner's token size. Servers that emit pathological
// single-line output (e.g., a dumped buffer with no newline) would otherwise
// abort the scan with bufio.ErrTooLong before the sentinel appears.
const maxLineBytes = 1 << 20

// Result is the single outcome of a Watch: either the announced port or a
// terminal error. Exactly one Result is produced per watcher.
type Result struct {
	Port int
	Err  error
}

// ParsePort inspects one line of server output. Lines without the sentinel
// prefix return found=false with no error; the server may emit arbitrary
// diagnostics before announcing readiness. A line with the prefix either
// yields the announced port or ErrProtocolViolation.
//
// The payload must be an unsigned decimal in [0, 65535]: no sign, no
// surrounding whitespace, no trailing text. A trailing carriage return is
// stripped first so CRLF-terminated output parses the same as LF output.
func ParsePort(line string) (port int, found bool, err error) {
	payload, found := strings.CutPrefix(line, Prefix)
	if !found {
		return 0, false, nil
	}
	payload = strings.TrimSuffix(payload, "\r")

	// ParseUint with bitSize 16 rejects signs, empty payloads, non-digits,
	// and values above 65535 in one step.
	n, parseErr := strconv.ParseUint(payload, 10, 16)
	if parseErr != nil {
		return 0, true, fmt.Errorf("%w: %q", ErrProtocolViolation, line)
	}
	return int(n), true, nil
}

// Watch consumes r line by line in a background goroutine until it finds a
// sentinel line, encounters a malformed sentinel, or hits end of stream.
// Exactly one Result is sent on the returned channel; the channel is
// buffered so the watcher never blocks (or leaks) when the consumer has
// already given up on a timeout.
//
// Everything read is teed into sink, so the full stderr stream survives for
// debugging, and after the result is delivered the watcher keeps draining
// until EOF so the child can never block on a full stderr pipe. r is closed
// when the stream is exhausted.
func Watch(r io.ReadCloser, sink io.Writer) <-chan Result {
	results := make(chan Result, 1)

	go func() {
		defer func() { _ = r.Close() }()

		tee := io.TeeReader(r, sink)
		results <- scan(tee)

		// Drain the remainder of the stream through the tee. This runs
		// after the result is delivered so a ready server's ongoing
		// diagnostics keep flowing into the sink without ever filling
		// the pipe.
		_, _ = io.Copy(io.Discard, tee)
	}()

	return results
}

// scan reads lines from tee until a terminal outcome is reached.
func scan(tee io.Reader) Result {
	sc := bufio.NewScanner(tee)
	sc.Buffer(make([]byte, 0, 4096), maxLineBytes)

	for sc.Scan() {
		port, found, err := ParsePort(sc.Text())
		if err != nil {
			return Result{Err: err}
		}
		if found {
			return Result{Port: port}
		}
	}

	if err := sc.Err(); err != nil {
		return Result{Err: fmt.Errorf("%w: read stderr: %v", ErrExitedEarly, err)}
	}
	return Result{Err: ErrExitedEarly}
}
