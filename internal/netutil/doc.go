// Package netutil verifies that an announced endpoint actually accepts TCP
// connections.
package netutil
