package rconn

// Run implements spec.md §4.1's run-tick algorithm: dispatch the current
// state's handler, and if the handler changed the state, dispatch the new
// state's handler too, repeating until a dispatch leaves the state
// unchanged. This lets one external tick drain a cascade such as
// BACKOFF->CONNECTING->ACTIVE->IDLE when the clock has jumped or several
// conditions are satisfied back to back.
func (c *Connection) Run() {
	for {
		before := c.state
		if handler, ok := stateTable[c.state]; ok {
			handler(c)
		}
		if c.state == before {
			return
		}
	}
}

// Wait describes what the caller's event loop should wait on next: a
// clock deadline (WakeAt, a clock.Infinity value meaning "no timer"), an
// optional WakeNow requesting an immediate re-dispatch regardless of
// time (e.g. the send queue just emptied or was flushed), and an
// optional SendReady channel to select on alongside RecvWait's channel.
// It is the Go-idiomatic rendering of spec.md §4.1's run_wait: rather
// than registering callbacks with a scheduler this package doesn't own,
// it hands the caller everything needed to drive its own select loop.
type Wait struct {
	WakeAt    uint64
	WakeNow   bool
	SendReady <-chan struct{}
}

// RunWait computes the next Wait for the caller's event loop, per
// spec.md §4.1: a deadline at the current state's timeout, plus
// send-readiness registration when state is ACTIVE or IDLE and the send
// queue is non-empty.
func (c *Connection) RunWait() Wait {
	w := Wait{WakeAt: deadlineFor(c), WakeNow: c.wantWakeNow}
	c.wantWakeNow = false
	if isConnected(c.state) && c.v != nil && !c.txq.Empty() {
		w.SendReady = c.v.WaitSend()
	}
	return w
}

// RecvWait returns the channel the caller should select on to learn when
// Recv is likely to return a message without blocking, or nil if there is
// no live transport to wait on.
func (c *Connection) RecvWait() <-chan struct{} {
	if c.v == nil {
		return nil
	}
	return c.v.WaitRecv()
}
