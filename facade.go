package rconn

import "github.com/switchcore/rconn/vconn"

// Connect implements spec.md §6's connect(name): resets whatever this
// Connection was doing and opens a reliable connection under name. It
// enters BACKOFF with backoff=0, which fires on the very next Run tick —
// mirroring the source's reliance on a zero-duration initial backoff
// rather than jumping straight to CONNECTING (see DESIGN.md).
func (c *Connection) Connect(name string) {
	c.resetForNewAttempt(name, true)
	c.backoff = 0
	c.backoffDeadline = 0
	c.transition(StateBackoff)
}

// AttachUnreliable implements spec.md §6's attach_unreliable(name,
// vconn): marks the connection unreliable and jumps directly to ACTIVE
// using the already-open handle v, defaulting probe_interval to 60s and
// max_backoff to 0 (an unreliable connection never backs off; it goes to
// VOID on failure instead).
func (c *Connection) AttachUnreliable(name string, v vconn.Vconn) {
	c.resetForNewAttempt(name, false)
	c.v = v
	c.probeInterval = unreliableProbeInterval
	c.maxBackoff = 0
	c.lastConnected = c.clock.Now()
	c.transition(StateActive)
	c.cacheEndpoint()
}

// Reconnect implements spec.md §6's reconnect(): if currently ACTIVE or
// IDLE, forces a drop. A reliable connection re-enters via BACKOFF as the
// normal disconnect primitive dictates; an unreliable one has nowhere to
// back off to and lands in VOID, same as any other unreliable failure.
func (c *Connection) Reconnect() {
	if isConnected(c.state) {
		c.disconnectInternal(errReconnectRequested)
	}
}

// Disconnect implements spec.md §6's disconnect(): unconditionally tears
// down to VOID and marks the connection unreliable, regardless of its
// state or reliable flag beforehand. Idempotent: calling it again while
// already VOID is a no-op, per spec.md §8.
func (c *Connection) Disconnect() {
	if c.state == StateVoid {
		return
	}
	if c.v != nil {
		_ = c.v.Close()
		c.v = nil
	}
	c.flushQueue()
	c.localIP, c.remoteIP, c.remotePort = nil, nil, 0
	c.backoff = 0
	c.backoffDeadline = 0
	c.reliable = false
	c.transition(StateVoid)
}

// Destroy implements spec.md §6's destroy(): closes the transport and
// every monitor, flushes the queue, and leaves the Connection unusable.
// Calling Destroy after Disconnect closes no additional resources (§8):
// the transport is already nil and the queue already empty.
func (c *Connection) Destroy() {
	if c.v != nil {
		_ = c.v.Close()
		c.v = nil
	}
	c.flushQueue()
	_ = c.monitors.CloseAll()
}

// AddMonitor implements spec.md §6's add_monitor: ownership of v
// transfers to the Connection. If the monitor set is already at capacity,
// v is closed immediately and monitor.ErrFull is returned.
func (c *Connection) AddMonitor(v vconn.Vconn) error {
	return c.monitors.Add(v)
}
