package rconn

import (
	"go.uber.org/zap"

	"github.com/switchcore/rconn/internal/clock"
	"github.com/switchcore/rconn/vconn"
)

// Option configures a Connection at Create time, following the teacher's
// functional-options pattern (cmd/example/client.go's ClientOption,
// internal/net's ConnPoolOptions).
type Option func(*Connection)

// WithLogger sets the *zap.Logger a Connection logs transitions and
// disconnects to. Defaults to zap.NewNop().
func WithLogger(logger *zap.Logger) Option {
	return func(c *Connection) { c.logger = logger }
}

// WithSink sets the coverage/statistics Sink events are reported to.
// Defaults to a no-op sink.
func WithSink(sink Sink) Option {
	return func(c *Connection) { c.sink = sink }
}

// WithOpener overrides the vconn.Opener used by BACKOFF to open a fresh
// transport on connect(name). Defaults to vconn.Open (real TCP/TLS).
// Tests substitute a stub opener here instead of dialing real sockets.
func WithOpener(opener vconn.Opener) Option {
	return func(c *Connection) { c.opener = opener }
}

// WithClock overrides the monotonic time source. Defaults to
// clock.NewSystem(). Tests substitute a clock.Fake.
func WithClock(clk clock.Clock) Option {
	return func(c *Connection) { c.clock = clk }
}
