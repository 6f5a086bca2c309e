package srvenv

import (
	"context"
	"fmt"
	"net"
	"strconv"
)

// Endpoint is the negotiated address of a launched server: the configured
// loopback host and the port parsed from the readiness announcement.
//
// Endpoint is a plain value with no shared or cached state, so endpoints of
// concurrently running servers never interfere. Callers build their own
// protocol client from it; the harness only hands out the address.
type Endpoint struct {
	Host string
	Port int
}

// Addr returns the endpoint in host:port form, suitable for net.Dial.
func (e Endpoint) Addr() string {
	return net.JoinHostPort(e.Host, strconv.Itoa(e.Port))
}

// URL returns the endpoint as a URL with the given scheme, e.g.
// URL("http") == "http://127.0.0.1:54321".
func (e Endpoint) URL(scheme string) string {
	return fmt.Sprintf("%s://%s", scheme, e.Addr())
}

// DialContext opens a TCP connection to the endpoint. It is a convenience
// for protocol clients that take an established connection; clients that
// take an address should use Addr or URL instead.
func (e Endpoint) DialContext(ctx context.Context) (net.Conn, error) {
	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", e.Addr())
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", e.Addr(), err)
	}
	return conn, nil
}
