package rconn

import "github.com/switchcore/rconn/internal/clock"

// disconnectInternal is the Disconnect primitive from spec.md §4.1,
// invoked whenever the state machine itself discovers a transport
// failure (CONNECTING timeout or fatal error, ACTIVE/IDLE send or recv
// fatal error, IDLE probe timeout, or an explicit Reconnect while
// connected). It is distinct from the public Disconnect operation, which
// always resets all the way to VOID regardless of reliable.
func (c *Connection) disconnectInternal(err error) {
	now := c.clock.Now()
	if c.reliable {
		if c.v != nil {
			_ = c.v.Close()
			c.v = nil
		}
		c.flushQueue()
		if now >= c.backoffDeadline {
			c.backoff = 1
		} else {
			c.backoff = minU64(c.maxBackoff, maxU64(1, 2*c.backoff))
		}
		c.backoffDeadline = clock.SatAdd(now, c.backoff)
		// spec.md names this the "short-session threshold for questioning
		// connectivity" (§6 Defaults) and describes it in §4.1's
		// Questionable-connectivity paragraph as triggering when "the last
		// connected period was brief (< 60s from last_connected)" — a
		// short session that nonetheless fails is the suspicious case, so
		// that reading (rather than the Disconnect-primitive bullet's
		// inverted "> 60" wording) is the one this implementation follows;
		// see DESIGN.md.
		if clock.SatSub(now, c.lastConnected) < questionableShortSessionBound {
			c.markQuestionable()
		}
		c.logDisconnect(err)
		c.transition(StateBackoff)
		return
	}

	if c.v != nil {
		_ = c.v.Close()
		c.v = nil
	}
	c.flushQueue()
	c.localIP, c.remoteIP, c.remotePort = nil, nil, 0
	c.backoff = 0
	c.backoffDeadline = 0 // stands in for -inf: any future now satisfies now >= backoffDeadline
	c.logDisconnect(err)
	c.transition(StateVoid)
}
