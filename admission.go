package rconn

import (
	"github.com/switchcore/rconn/internal/clock"
	"github.com/switchcore/rconn/ofp"
)

// updateAdmission implements spec.md §4.1's admission heuristic: on
// receipt of an inbound message, probably_admitted and last_admitted are
// set if any of three conditions hold. Once true it stays true until the
// next fresh entry into a connected state (transition resets it).
func (c *Connection) updateAdmission(msg ofp.Message) {
	now := c.clock.Now()
	if c.probablyAdmitted {
		c.markAdmitted(now)
		return
	}

	if _, evidencing, known := ofp.Classify(msg); known && evidencing {
		c.markAdmitted(now)
		return
	}
	if clock.SatSub(now, c.lastConnected) >= admissionProbationWindow {
		c.markAdmitted(now)
	}
}

func (c *Connection) markAdmitted(now uint64) {
	c.probablyAdmitted = true
	c.lastAdmitted = now
}

// IsAdmitted reports whether the peer is believed to have admitted this
// connection for normal service.
func (c *Connection) IsAdmitted() bool {
	return c.probablyAdmitted
}

// FailureDuration reports how long this connection has gone without
// admission evidence, used alongside IsAdmitted to decide fail-open.
// Returns 0 while admitted.
func (c *Connection) FailureDuration() uint64 {
	if c.probablyAdmitted {
		return 0
	}
	return clock.SatSub(c.clock.Now(), c.lastConnected)
}
