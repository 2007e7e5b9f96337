package device

import (
	"context"
	"io"
)

// Transport is the injected capability to acquire an exclusive duplex byte
// channel to a peripheral at a given baud rate. The reader never assumes a
// particular transport; serial-over-USB is the common case but anything that
// can hand back a Conn works, including in-memory pipes in tests.
type Transport interface {
	Open(ctx context.Context, baudRate int) (Conn, error)
}

// Conn is an open byte channel to a peripheral.
//
// Read must return within a bounded time even when no data arrives (a read
// timeout yielding n == 0 and a nil error is fine); the read loop relies on
// that to observe cooperative cancellation instead of blocking forever.
type Conn interface {
	io.ReadWriteCloser
}
