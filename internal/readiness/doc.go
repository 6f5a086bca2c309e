// Package readiness implements the one-shot readiness handshake: a
// background reader that scans a child's stderr line by line for the
// SERVER_READY:<port> sentinel and reports exactly one outcome.
package readiness
