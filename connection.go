package rconn

import (
	"bytes"
	"errors"
	"net"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/switchcore/rconn/internal/clock"
	"github.com/switchcore/rconn/internal/monitor"
	"github.com/switchcore/rconn/internal/queue"
	"github.com/switchcore/rconn/internal/safepool"
	"github.com/switchcore/rconn/vconn"
)

const (
	defaultMaxBackoff             = 8
	minProbeInterval              = 5
	unreliableProbeInterval       = 60
	admissionProbationWindow      = 30
	questionableRateLimitWindow   = 60
	questionableShortSessionBound = 60
)

// Connection is the single entity spec.md §3 describes: a long-lived
// logical session over a vconn transport, reconnecting with backoff,
// probing for inactivity, draining a send queue, fanning traffic to
// monitors, and tracking lifetime statistics. It is single-threaded
// cooperative (package doc, spec.md §5): exactly one goroutine should
// call its methods at a time.
type Connection struct {
	state        State
	stateEntered uint64

	v        vconn.Vconn
	name     string
	reliable bool

	txq *queue.Queue

	backoff         uint64
	maxBackoff      uint64
	backoffDeadline uint64
	probeInterval   uint64

	lastReceived  uint64
	lastConnected uint64

	probablyAdmitted bool
	lastAdmitted     uint64

	packetsSent            uint64
	packetsReceived        uint64
	nAttemptedConnections  uint64
	nSuccessfulConnections uint64

	creationTime      uint64
	totalTimeConnected uint64

	questionableConnectivity bool
	lastQuestioned           uint64

	seqno uint64

	localIP    net.IP
	remoteIP   net.IP
	remotePort uint16

	monitors *monitor.Set

	wantWakeNow bool
	xidCounter  uint32

	clock   clock.Clock
	logger  *zap.Logger
	sink    Sink
	opener  vconn.Opener
	bufPool *safepool.BufferPool

	logFields []zap.Field
}

// Create returns a new Connection in VOID, per spec.md §6's create.
// probeInterval of 0 disables inactivity probing; a nonzero value below
// minProbeInterval is raised to it. maxBackoff of 0 resolves to
// defaultMaxBackoff.
func Create(probeInterval, maxBackoff uint64, opts ...Option) *Connection {
	if maxBackoff == 0 {
		maxBackoff = defaultMaxBackoff
	}
	if probeInterval != 0 && probeInterval < minProbeInterval {
		probeInterval = minProbeInterval
	}

	c := &Connection{
		state:         StateVoid,
		name:          "void",
		maxBackoff:    maxBackoff,
		probeInterval: probeInterval,
		txq:           queue.New(),
		monitors:      monitor.New(),
		clock:         clock.NewSystem(),
		logger:        zap.NewNop(),
		sink:          noopSink{},
		opener:        vconn.Open,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.bufPool = safepool.NewBufferPool(func() *bytes.Buffer { return new(bytes.Buffer) })

	now := c.clock.Now()
	c.creationTime = now
	c.stateEntered = now
	c.logFields = []zap.Field{zap.String("conn_id", uuid.NewString())}
	return c
}

// resetForNewAttempt tears down whatever transport and queue state a
// Connection currently holds before Connect or AttachUnreliable starts a
// fresh attempt under a new name.
func (c *Connection) resetForNewAttempt(name string, reliable bool) {
	if c.v != nil {
		_ = c.v.Close()
		c.v = nil
	}
	c.flushQueue()
	c.name = name
	c.reliable = reliable
}

func (c *Connection) cacheEndpoint() {
	if c.v == nil {
		return
	}
	c.localIP = c.v.LocalIP()
	c.remoteIP = c.v.RemoteIP()
	c.remotePort = c.v.RemotePort()
}

func (c *Connection) nextXid() uint32 {
	c.xidCounter++
	return c.xidCounter
}

// markQuestionable sets questionable_connectivity, rate-limited to at
// most once per questionableRateLimitWindow seconds. spec.md §4.1. A
// lastQuestioned of 0 means "never questioned", so the first mark is
// never rate-limited.
func (c *Connection) markQuestionable() {
	now := c.clock.Now()
	if c.lastQuestioned != 0 && clock.SatSub(now, c.lastQuestioned) < questionableRateLimitWindow {
		return
	}
	c.questionableConnectivity = true
	c.lastQuestioned = now
}

// logDisconnect implements spec.md §7's four log-level combinations: a
// clean peer close (io.EOF, surfaced as vconn.ErrPeerClosed) is logged
// informationally for a reliable connection and at debug for an
// unreliable one, while a transport-fatal error is always a warning
// regardless of reliability.
func (c *Connection) logDisconnect(err error) {
	fields := append(append([]zap.Field{}, c.logFields...), zap.Error(err), zap.String("name", c.name))
	peerClosed := errors.Is(err, vconn.ErrPeerClosed)
	switch {
	case peerClosed && c.reliable:
		c.logger.Info("peer closed connection, backing off", fields...)
	case peerClosed && !c.reliable:
		c.logger.Debug("peer closed connection", fields...)
	case c.reliable:
		c.logger.Warn("connection lost, backing off", fields...)
	default:
		c.logger.Warn("unreliable connection lost", fields...)
	}
}
