// Package srvenv launches an external server binary as a child process for
// integration tests, waits for the server to announce the ephemeral port it
// bound, and guarantees the child is terminated when the handle is released.
//
// The server under test must accept an argument requesting an ephemeral bind
// (textually, a port value of 0) and print a single line of the form
//
//	SERVER_READY:<port>
//
// to its standard error once it is bound and ready to accept connections.
// Readiness is detected from that announcement, never from a fixed delay, so
// tests start as soon as the server is actually reachable.
//
// # Basic Usage
//
//	ctx := context.Background()
//
//	srv, err := srvenv.Launch(ctx, srvenv.LaunchSpec{
//	    Binary: "./bin/my-server",
//	    Args:   []string{"--port=0"},
//	})
//	if err != nil {
//	    t.Fatal(err)
//	}
//	defer srv.Close()
//
//	conn, err := srv.Endpoint().DialContext(ctx)
//	// ... issue requests against srv.Addr() ...
//
// Close stops the server with a SIGTERM-then-SIGKILL sequence and reaps it,
// so a deferred Close leaves no process behind even when the test fails or
// panics. Launch failures are reported as one of four distinct errors
// (ErrSpawnFailed, ErrReadyTimeout, ErrExitedEarly, ErrProtocolViolation)
// matchable with errors.Is, so a failing test can report which phase of
// startup went wrong.
//
// # Parallel Testing
//
// Each launch owns its child exclusively and every server binds an
// OS-assigned ephemeral port, so any number of servers may run concurrently
// without port coordination:
//
//	for i := 0; i < 10; i++ {
//	    t.Run(fmt.Sprintf("case-%d", i), func(t *testing.T) {
//	        t.Parallel()
//	        srv, err := srvenv.Launch(ctx, spec)
//	        if err != nil {
//	            t.Fatal(err)
//	        }
//	        defer srv.Close()
//	        // ...
//	    })
//	}
package srvenv
