package rconn

import "github.com/switchcore/rconn/internal/clock"

// State is one of the five states a Connection can occupy. spec.md §4.1.
type State string

const (
	StateVoid       State = "VOID"
	StateBackoff    State = "BACKOFF"
	StateConnecting State = "CONNECTING"
	StateActive     State = "ACTIVE"
	StateIdle       State = "IDLE"
)

func (s State) String() string { return string(s) }

// isConnected reports whether s counts as "connected" for the purposes of
// total_time_connected, send/recv eligibility, and seqno parity.
func isConnected(s State) bool {
	return s == StateActive || s == StateIdle
}

// stateTable is the table-driven dispatch spec.md §9 asks for: one run
// handler per state (each state's timeout is computed by deadlineFor
// below), adapted from the teacher's declarative
// per-message-type dispatch tables (e.g. codec/memcache's opTable) into a
// per-state equivalent.
var stateTable = map[State]func(*Connection){
	StateVoid:       voidRun,
	StateBackoff:    backoffRun,
	StateConnecting: connectingRun,
	StateActive:     activeRun,
	StateIdle:       idleRun,
}

// deadlineFor returns the absolute clock second at which c's current
// state's timeout fires, or clock.Infinity if the state has no timer.
func deadlineFor(c *Connection) uint64 {
	switch c.state {
	case StateVoid:
		return clock.Infinity
	case StateBackoff:
		return clock.SatAdd(c.stateEntered, c.backoff)
	case StateConnecting:
		return clock.SatAdd(c.stateEntered, maxU64(1, c.backoff))
	case StateActive:
		if c.probeInterval == 0 {
			return clock.Infinity
		}
		base := maxU64(c.lastReceived, c.stateEntered)
		return clock.SatAdd(base, c.probeInterval)
	case StateIdle:
		if c.probeInterval == 0 {
			return clock.Infinity
		}
		return clock.SatAdd(c.stateEntered, c.probeInterval)
	default:
		return clock.Infinity
	}
}

func maxU64(a, b uint64) uint64 {
	if a > b {
		return a
	}
	return b
}

func minU64(a, b uint64) uint64 {
	if a < b {
		return a
	}
	return b
}
