package vconn

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net"
	"time"
)

// dialTimeout bounds a single dial attempt. Adapted from the teacher's
// internal/net dialTimeout constant.
const dialTimeout = 5 * time.Second

// TCPDialErr wraps a dial failure with the address that was attempted,
// mirroring the teacher's TcpDialErr.
type TCPDialErr struct {
	Addr net.Addr
	Err  error
}

func (e *TCPDialErr) Error() string {
	return fmt.Sprintf("vconn: error dialing %s: %v", e.Addr.String(), e.Err)
}

func (e *TCPDialErr) Unwrap() error {
	return e.Err
}

type contextDialer interface {
	DialContext(ctx context.Context, network, address string) (net.Conn, error)
}

// dial performs one blocking dial attempt, meant to be called from the
// background goroutine a TCPVconn spins up per connection attempt so that
// the Vconn's own Connect method can stay non-blocking.
func dial(ctx context.Context, addr net.Addr, tlsConfig *tls.Config) (net.Conn, error) {
	dialCtx, cancel := context.WithTimeout(ctx, dialTimeout)
	defer cancel()

	netDialer := &net.Dialer{Timeout: dialTimeout}

	var d contextDialer = netDialer
	if tlsConfig != nil {
		d = &tls.Dialer{NetDialer: netDialer, Config: tlsConfig}
	}

	conn, err := d.DialContext(dialCtx, addr.Network(), addr.String())
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return nil, &TCPDialErr{Addr: addr, Err: ne}
	}
	if err != nil {
		return nil, &TCPDialErr{Addr: addr, Err: err}
	}
	return conn, nil
}
