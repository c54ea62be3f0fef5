package rconn

import (
	"errors"

	"github.com/switchcore/rconn/ofp"
	"github.com/switchcore/rconn/vconn"
)

// Recv implements spec.md §4.3's recv(): absent (ok == false) if not
// connected, on transport busy, or on a fatal transport error (which also
// triggers a disconnect); otherwise the message, with monitors fanned
// out, the admission heuristic updated, and IDLE->ACTIVE recovery applied
// before it's handed back.
func (c *Connection) Recv() (msg ofp.Message, ok bool) {
	if !isConnected(c.state) {
		return ofp.Message{}, false
	}

	msg, err := c.v.Recv()
	switch {
	case err == nil:
		c.monitors.Fanout(msg, c.monitorClone)
		c.updateAdmission(msg)
		c.lastReceived = c.clock.Now()
		c.packetsReceived++
		c.sink.Inc("received")
		if c.state == StateIdle {
			c.transition(StateActive)
		}
		return msg, true
	case errors.Is(err, vconn.ErrWouldBlock):
		return ofp.Message{}, false
	default:
		c.disconnectInternal(err)
		return ofp.Message{}, false
	}
}
