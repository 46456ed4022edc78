// Package transport provides the byte-channel collaborator the session and
// frame-reader code is built against, plus a TCP implementation.
package transport

import "time"

// Channel is the byte-stream contract every other package in this module is
// built against (spec.md §6): connect/disconnect, send a byte slice, and
// receive either an exact byte count or up to a delimiter.
type Channel interface {
	Connect() error
	Disconnect() error
	// Send writes data in full or returns a CommunicationError.
	Send(data []byte) error
	// Recv reads exactly n bytes, blocking until they arrive or the
	// timeout elapses.
	Recv(n int) ([]byte, error)
	// RecvUntil reads bytes one at a time until end is seen as the final
	// byte of the accumulated buffer, mirroring
	// original_source/iflag/transport.py's simple_read: bytes before the
	// first occurrence of start are discarded.
	RecvUntil(start, end byte, timeout time.Duration) ([]byte, error)
}
