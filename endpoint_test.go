package srvenv_test

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/giantswarm/srvenv"
)

func TestEndpointAddr(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		endpoint srvenv.Endpoint
		want     string
	}{
		"ipv4 loopback": {
			endpoint: srvenv.Endpoint{Host: "127.0.0.1", Port: 54321},
			want:     "127.0.0.1:54321",
		},
		"ipv6 loopback gets bracketed": {
			endpoint: srvenv.Endpoint{Host: "::1", Port: 8080},
			want:     "[::1]:8080",
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			if got := tc.endpoint.Addr(); got != tc.want {
				t.Errorf("Addr() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestEndpointURL(t *testing.T) {
	t.Parallel()

	e := srvenv.Endpoint{Host: "127.0.0.1", Port: 9000}
	if got, want := e.URL("http"), "http://127.0.0.1:9000"; got != want {
		t.Errorf("URL(http) = %q, want %q", got, want)
	}
	if got, want := e.URL("grpc"), "grpc://127.0.0.1:9000"; got != want {
		t.Errorf("URL(grpc) = %q, want %q", got, want)
	}
}

func TestEndpointDialContext(t *testing.T) {
	t.Parallel()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	defer ln.Close()

	e := srvenv.Endpoint{
		Host: "127.0.0.1",
		Port: ln.Addr().(*net.TCPAddr).Port,
	}
	conn, err := e.DialContext(context.Background())
	if err != nil {
		t.Fatalf("DialContext failed: %v", err)
	}
	_ = conn.Close()
}

func TestEndpointDialContextRefused(t *testing.T) {
	t.Parallel()

	// Grab a port, then close the listener so the dial is refused.
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	port := ln.Addr().(*net.TCPAddr).Port
	_ = ln.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	e := srvenv.Endpoint{Host: "127.0.0.1", Port: port}
	if _, err := e.DialContext(ctx); err == nil {
		t.Error("DialContext succeeded against a closed port")
	}
}
