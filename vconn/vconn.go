// Package vconn defines the transport contract the connection supervisor
// is built against. spec.md §1 treats this as an external collaborator
// "named only by their contract"; this package is that contract, plus one
// concrete realization (package vconn/tcp-adjacent code in this package,
// see tcp.go) for processes that actually want to dial TCP.
package vconn

import (
	"errors"
	"net"

	"github.com/switchcore/rconn/ofp"
)

// ErrWouldBlock is returned by Connect, Send, and Recv when the operation
// cannot complete without blocking. It is never surfaced to rconn callers;
// the state machine treats it as "retryable-busy" and tries again on the
// next readiness signal or tick.
var ErrWouldBlock = errors.New("vconn: would block")

// ErrClosed is returned by Connect and Send on a Vconn that has been
// closed.
var ErrClosed = errors.New("vconn: closed")

// ErrPeerClosed is returned by Recv when the remote end closed the
// transport cleanly (EOF), as distinct from a transport-fatal error.
// rconn's disconnect logging (spec.md §7) treats the two differently:
// a clean close is informational, a fatal error is a warning.
var ErrPeerClosed = errors.New("vconn: peer closed connection")

// Vconn is a single logical transport connection: the "handle" spec.md's
// open() returns. Implementations must be safe to drive from a single
// goroutine at a time; rconn never calls two methods on the same Vconn
// concurrently, matching spec.md §5.
type Vconn interface {
	// Connect drives the (possibly multi-step) connection handshake.
	// It must return ErrWouldBlock until the transport is ready, and
	// either nil (success) or a fatal error thereafter. Calling Connect
	// again after a fatal error is undefined; the caller is expected to
	// Close and Open a new Vconn instead.
	Connect() error

	// Send attempts to write msg without blocking. It returns
	// ErrWouldBlock if the transport's write buffer is full.
	Send(msg ofp.Message) error

	// Recv attempts to read one message without blocking. It returns
	// ErrWouldBlock if no complete message is currently available.
	Recv() (ofp.Message, error)

	// Close releases the transport. It is idempotent.
	Close() error

	// WaitSend returns a channel that becomes readable when the
	// transport is likely able to accept a Send call without blocking.
	// It is a registration, not a guarantee: spurious wakeups are
	// permitted, matching typical readiness-based I/O multiplexers.
	WaitSend() <-chan struct{}

	// WaitRecv is WaitSend's receive-side counterpart.
	WaitRecv() <-chan struct{}

	// LocalIP, RemoteIP, and RemotePort describe the transport endpoint.
	// They return the zero value before Connect succeeds, and continue
	// to return their last known value after Close, so that callers can
	// still log or report on the endpoint of a connection that has since
	// gone away (spec.md §3: "preserved after vconn closes").
	LocalIP() net.IP
	RemoteIP() net.IP
	RemotePort() uint16
}

// Opener constructs a new, unconnected Vconn for the given name (e.g. a
// "tcp:host:port" style address). It corresponds to spec.md's open(name).
type Opener func(name string) (Vconn, error)
