package rconn

import (
	"net"

	"github.com/switchcore/rconn/internal/clock"
)

// IsAlive reports whether the Connection is doing anything at all: not
// idle in VOID.
func (c *Connection) IsAlive() bool {
	return c.state != StateVoid
}

// IsConnected reports whether the Connection currently has a live,
// usable transport (ACTIVE or IDLE).
func (c *Connection) IsConnected() bool {
	return isConnected(c.state)
}

// IsConnectivityQuestionable reports, and clears, the sticky
// questionable-connectivity signal (spec.md §4.1: "cleared by the
// read-side query").
func (c *Connection) IsConnectivityQuestionable() bool {
	q := c.questionableConnectivity
	c.questionableConnectivity = false
	return q
}

// State returns the Connection's current state.
func (c *Connection) State() State { return c.state }

// Name returns the target address last passed to Connect or
// AttachUnreliable, or "void" if neither has been called.
func (c *Connection) Name() string { return c.name }

// IsReliable reports whether this Connection reconnects after failure.
func (c *Connection) IsReliable() bool { return c.reliable }

// Backoff returns the current backoff delay in seconds.
func (c *Connection) Backoff() uint64 { return c.backoff }

// MaxBackoff returns the current backoff cap in seconds.
func (c *Connection) MaxBackoff() uint64 { return c.maxBackoff }

// SetMaxBackoff updates the backoff cap, clamped to >= 1 (spec.md §8).
// If the new cap is lower than the current backoff, the in-flight
// BACKOFF wait is shortened to match.
func (c *Connection) SetMaxBackoff(v uint64) {
	if v < 1 {
		v = 1
	}
	c.maxBackoff = v
	if c.backoff > v {
		c.backoff = v
	}
}

// ProbeInterval returns the inactivity-probe interval in seconds, or 0 if
// probing is disabled.
func (c *Connection) ProbeInterval() uint64 { return c.probeInterval }

// Seqno returns the counter that toggles every time ACTIVE is entered or
// left.
func (c *Connection) Seqno() uint64 { return c.seqno }

// PacketsSent returns the lifetime count of messages the transport has
// accepted.
func (c *Connection) PacketsSent() uint64 { return c.packetsSent }

// PacketsReceived returns the lifetime count of messages received.
func (c *Connection) PacketsReceived() uint64 { return c.packetsReceived }

// NAttemptedConnections returns the lifetime count of transport-open
// attempts.
func (c *Connection) NAttemptedConnections() uint64 { return c.nAttemptedConnections }

// NSuccessfulConnections returns the lifetime count of attempts that
// reached ACTIVE.
func (c *Connection) NSuccessfulConnections() uint64 { return c.nSuccessfulConnections }

// TotalTimeConnected returns the accumulated seconds spent in ACTIVE or
// IDLE across the Connection's lifetime, including the current state if
// it is one of those two (computed as of now, not just as of the last
// transition).
func (c *Connection) TotalTimeConnected() uint64 {
	total := c.totalTimeConnected
	if isConnected(c.state) {
		total = clock.SatAdd(total, clock.SatSub(c.clock.Now(), c.stateEntered))
	}
	return total
}

// CreationTime returns the monotonic second at which this Connection was
// created.
func (c *Connection) CreationTime() uint64 { return c.creationTime }

// LastConnected returns the monotonic second at which the most recent
// connection attempt reached ACTIVE from CONNECTING, or at which
// AttachUnreliable was last called. An IDLE->ACTIVE return does not
// update it.
func (c *Connection) LastConnected() uint64 { return c.lastConnected }

// LocalIP, RemoteIP, and RemotePort return the cached transport endpoint,
// preserved after the underlying vconn closes on a reliable disconnect.
// Disconnect and the failure of an unreliable connection clear it.
func (c *Connection) LocalIP() net.IP     { return c.localIP }
func (c *Connection) RemoteIP() net.IP    { return c.remoteIP }
func (c *Connection) RemotePort() uint16  { return c.remotePort }

// MonitorCount returns the number of monitors currently attached.
func (c *Connection) MonitorCount() int { return c.monitors.Len() }
