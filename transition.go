package rconn

import (
	"go.uber.org/zap"

	"github.com/switchcore/rconn/internal/clock"
)

// transition is the shared state_transition primitive, spec.md §4.1:
//  1. seqno increments on every ACTIVE <-> non-ACTIVE boundary crossing.
//  2. probably_admitted resets to false on every fresh entry to a
//     connected state.
//  3. total_time_connected accumulates the time just spent in a
//     connected state.
//  4. state and state_entered are updated last.
func (c *Connection) transition(next State) {
	old := c.state
	now := c.clock.Now()

	if (old == StateActive) != (next == StateActive) {
		c.seqno++
	}
	if isConnected(next) && !isConnected(old) {
		c.probablyAdmitted = false
	}
	if isConnected(old) {
		c.totalTimeConnected = clock.SatAdd(c.totalTimeConnected, clock.SatSub(now, c.stateEntered))
	}

	c.state = next
	c.stateEntered = now

	fields := append(append([]zap.Field{}, c.logFields...),
		zap.String("from", string(old)), zap.String("to", string(next)))
	c.logger.Debug("state transition", fields...)
}
