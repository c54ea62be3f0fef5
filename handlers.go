package rconn

import (
	"errors"

	"github.com/switchcore/rconn/internal/clock"
	"github.com/switchcore/rconn/vconn"
)

// voidRun is the VOID state's handler: terminal idle, no timer, no
// activity. Left empty rather than omitted from stateTable so Run's
// dispatch loop has a uniform entry for every state.
func voidRun(c *Connection) {}

// backoffRun waits out the backoff timer, then attempts to open a fresh
// transport and moves to CONNECTING. spec.md §4.1 BACKOFF.
func backoffRun(c *Connection) {
	if c.clock.Now() < deadlineFor(c) {
		return
	}
	c.nAttemptedConnections++
	v, err := c.opener(c.name)
	if err != nil {
		c.disconnectInternal(err)
		return
	}
	c.v = v
	c.transition(StateConnecting)
}

// connectingRun polls the transport's non-blocking connect every tick.
// spec.md §4.1 CONNECTING.
func connectingRun(c *Connection) {
	err := c.v.Connect()
	switch {
	case err == nil:
		c.nSuccessfulConnections++
		c.transition(StateActive)
		c.lastConnected = c.stateEntered
		c.cacheEndpoint()
	case errors.Is(err, vconn.ErrWouldBlock):
		if c.clock.Now() >= deadlineFor(c) {
			// The following disconnect must not reset backoff to 1;
			// spec.md §9 calls this sentinel out explicitly.
			c.backoffDeadline = clock.Infinity
			c.disconnectInternal(ErrConnectTimeout)
		}
	default:
		c.disconnectInternal(err)
	}
}

// activeRun performs per-tick send-queue work, then checks the inactivity
// probe timeout. spec.md §4.1 ACTIVE: "transition to IDLE first, then
// enqueue an ECHO_REQUEST" — so that a send-induced disconnect discovered
// while building the probe can never leave the connection parked in IDLE
// with no live transport.
func activeRun(c *Connection) {
	c.doTxWork()
	if c.state != StateActive {
		// doTxWork's failures route through disconnectInternal, which
		// already moved us off ACTIVE; nothing left to probe.
		return
	}
	if c.probeInterval == 0 || c.clock.Now() < deadlineFor(c) {
		return
	}
	c.transition(StateIdle)
	msg, err := c.buildEchoRequest()
	if err != nil {
		return
	}
	_ = c.Send(msg, nil)
}

// idleRun performs the same per-tick send work as ACTIVE (queued messages
// don't stop flowing just because a probe is outstanding), then checks
// the probe-reply timeout.
func idleRun(c *Connection) {
	c.doTxWork()
	if c.state != StateIdle {
		return
	}
	if c.clock.Now() < deadlineFor(c) {
		return
	}
	c.markQuestionable()
	c.disconnectInternal(ErrProbeTimeout)
}
