package rconn

import (
	"errors"

	"github.com/switchcore/rconn/internal/counter"
	"github.com/switchcore/rconn/ofp"
	"github.com/switchcore/rconn/vconn"
)

// Send implements spec.md §4.2's send(msg, counter?). If not connected it
// fails with ErrNotConnected and the caller retains ownership of msg;
// otherwise ownership of msg passes to the Connection whether or not the
// in-line send attempt below succeeds.
func (c *Connection) Send(msg ofp.Message, ctr *counter.PacketCounter) error {
	if !isConnected(c.state) {
		return ErrNotConnected
	}

	c.monitors.Fanout(msg, c.monitorClone)

	env := c.txq.Acquire()
	env.Msg = msg
	env.Counter = ctr
	if ctr != nil {
		ctr.Inc()
	}

	wasEmpty := c.txq.Empty()
	c.txq.PushBack(env)
	if wasEmpty {
		// Best-effort immediate attempt; a failure here may trigger
		// disconnectInternal and a BACKOFF transition, which the caller
		// need not observe (spec.md §4.2).
		c.trySendHead()
	}
	return nil
}

// SendWithLimit implements spec.md §4.2's send_with_limit: if the
// counter has already reached limit in-flight messages, msg is discarded
// and ErrRetryLater returned; otherwise it delegates to Send. msg is
// consumed exactly once either way.
func (c *Connection) SendWithLimit(msg ofp.Message, ctr *counter.PacketCounter, limit uint64) error {
	if ctr != nil && ctr.N() >= limit {
		return ErrRetryLater
	}
	return c.Send(msg, ctr)
}

// trySendHead attempts to hand the queue's head envelope to the
// transport. It returns true if the send succeeded and the caller should
// keep draining, false if the queue is empty, the transport is busy, or
// the attempt triggered a disconnect.
func (c *Connection) trySendHead() bool {
	env := c.txq.Front()
	if env == nil {
		return false
	}
	err := c.v.Send(env.Msg)
	switch {
	case err == nil:
		c.packetsSent++
		c.sink.Inc("sent")
		if env.Counter != nil {
			env.Counter.Dec()
		}
		c.txq.PopFront()
		c.txq.Release(env)
		return true
	case errors.Is(err, vconn.ErrWouldBlock):
		return false
	default:
		c.disconnectInternal(err)
		return false
	}
}

// doTxWork is the per-tick send-queue drain, spec.md §4.2's do_tx_work:
// greedily drain until empty or the transport reports busy; if the queue
// empties, request an immediate re-wake so the caller can refill it.
func (c *Connection) doTxWork() {
	if c.v == nil {
		return
	}
	for !c.txq.Empty() {
		if !c.trySendHead() {
			return
		}
		if c.v == nil {
			// trySendHead's failure path may have disconnected us.
			return
		}
	}
	c.wantWakeNow = true
}

// flushQueue drops every queued message, decrementing any attached
// counter, per spec.md §4.2 and the invariant that txq is empty whenever
// state is VOID or BACKOFF.
func (c *Connection) flushQueue() {
	for {
		env := c.txq.PopFront()
		if env == nil {
			break
		}
		if env.Counter != nil {
			env.Counter.Dec()
		}
		c.sink.Inc("flushed")
		c.txq.Release(env)
	}
	c.wantWakeNow = true
}

// monitorClone is the Set.Fanout clone function: it stages the copy
// through a bytes.Buffer drawn from the Connection's safepool.BufferPool,
// in the style of the teacher's memcache encode path via safepool. Each
// call still allocates a fresh slice of the message's length for the
// returned clone.
func (c *Connection) monitorClone(msg ofp.Message) ofp.Message {
	buf := c.bufPool.Get()
	buf.Write(msg.Data)
	cp := make([]byte, buf.Len())
	copy(cp, buf.Bytes())
	c.bufPool.Put(buf)
	return ofp.Message{Data: cp}
}
