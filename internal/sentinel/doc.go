// Package sentinel provides a const-declarable error type used for the
// library's fixed error taxonomy (spawn failure, ready timeout, early exit,
// protocol violation).
package sentinel
