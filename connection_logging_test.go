package rconn

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/switchcore/rconn/internal/clock"
	"github.com/switchcore/rconn/vconn"
)

func newObservedConnection(t *testing.T, reliable bool) (*Connection, *observer.ObservedLogs, *fakeVconn) {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)
	logger := zap.New(core)

	clk := clock.NewFake(0)
	fv := newFakeVconn()
	fv.connectQueue = []error{nil}

	c := Create(0, 8, WithClock(clk), WithLogger(logger), WithOpener(fakeOpener(fv)))
	if reliable {
		c.Connect("tcp:10.0.0.1:6633")
		c.Run()
	} else {
		c.AttachUnreliable("tcp:10.0.0.1:6633", fv)
	}
	assert.Equal(t, StateActive, c.State())
	return c, logs, fv
}

// spec.md §7: a clean peer close (io.EOF, surfaced as vconn.ErrPeerClosed)
// is logged informationally for a reliable connection.
func TestLogDisconnect_ReliablePeerClosed_LogsInfo(t *testing.T) {
	c, logs, fv := newObservedConnection(t, true)
	fv.recvQueue = []fakeRecvResult{{err: vconn.ErrPeerClosed}}

	c.Recv()

	entries := logs.FilterMessage("peer closed connection, backing off").All()
	assert.Len(t, entries, 1)
	assert.Equal(t, zapcore.InfoLevel, entries[0].Level)
}

// ...and at debug for an unreliable one.
func TestLogDisconnect_UnreliablePeerClosed_LogsDebug(t *testing.T) {
	c, logs, fv := newObservedConnection(t, false)
	fv.recvQueue = []fakeRecvResult{{err: vconn.ErrPeerClosed}}

	c.Recv()

	entries := logs.FilterMessage("peer closed connection").All()
	assert.Len(t, entries, 1)
	assert.Equal(t, zapcore.DebugLevel, entries[0].Level)
}

// A transport-fatal error is always a warning, regardless of reliability.
func TestLogDisconnect_FatalError_AlwaysLogsWarn(t *testing.T) {
	boom := errors.New("boom")

	c, logs, fv := newObservedConnection(t, true)
	fv.recvQueue = []fakeRecvResult{{err: boom}}
	c.Recv()
	entries := logs.FilterMessage("connection lost, backing off").All()
	assert.Len(t, entries, 1)
	assert.Equal(t, zapcore.WarnLevel, entries[0].Level)

	c2, logs2, fv2 := newObservedConnection(t, false)
	fv2.recvQueue = []fakeRecvResult{{err: boom}}
	c2.Recv()
	entries2 := logs2.FilterMessage("unreliable connection lost").All()
	assert.Len(t, entries2, 1)
	assert.Equal(t, zapcore.WarnLevel, entries2[0].Level)
}
