// Package queue implements the outbound FIFO a Connection drains in send
// order, carrying each message's optional packet-counter back-reference.
package queue

import (
	"container/list"

	"github.com/switchcore/rconn/internal/counter"
	"github.com/switchcore/rconn/internal/pools"
	"github.com/switchcore/rconn/ofp"
)

// Envelope pairs a queued message with the counter (if any) a caller
// attached to it at send time. spec.md §9 calls the original's
// back-pointer field "purely an implementation detail of intrusive
// linkage"; here it is just a struct field on the FIFO element.
type Envelope struct {
	Msg     ofp.Message
	Counter *counter.PacketCounter
}

// Reset clears an envelope so it can be returned to a pool and reused.
// Implements internal.Resettable.
func (e *Envelope) Reset() {
	e.Msg = ofp.Message{}
	e.Counter = nil
}

// Queue is a FIFO of Envelopes. It is not safe for concurrent use; every
// Connection that owns one drives it from a single goroutine, per
// spec.md §5.
//
// Envelopes are drawn from a pools.ResettablePool (adapted from the
// teacher's internal/pools) rather than allocated fresh on every enqueue,
// since a probe-heavy or high-throughput connection pushes and pops its
// queue continuously over its lifetime.
type Queue struct {
	l    *list.List
	pool *pools.ResettablePool[*Envelope]
}

// New returns an empty Queue.
func New() *Queue {
	return &Queue{
		l: list.New(),
		pool: pools.NewResettablePool(func() *Envelope {
			return &Envelope{}
		}),
	}
}

// Acquire returns a zeroed Envelope drawn from the pool, for the caller
// to fill in and PushBack.
func (q *Queue) Acquire() *Envelope {
	return q.pool.Get()
}

// Release returns env to the pool once the caller is done with it (after
// the referenced counter, if any, has been decremented). Callers must not
// use env after calling Release.
func (q *Queue) Release(env *Envelope) {
	q.pool.Put(env)
}

// Len returns the number of queued envelopes.
func (q *Queue) Len() int {
	return q.l.Len()
}

// Empty reports whether the queue has no queued envelopes.
func (q *Queue) Empty() bool {
	return q.l.Len() == 0
}

// PushBack appends env to the tail of the queue.
func (q *Queue) PushBack(env *Envelope) {
	q.l.PushBack(env)
}

// Front returns the head envelope without removing it, or nil if empty.
func (q *Queue) Front() *Envelope {
	e := q.l.Front()
	if e == nil {
		return nil
	}
	return e.Value.(*Envelope)
}

// PopFront removes and returns the head envelope, or nil if empty.
func (q *Queue) PopFront() *Envelope {
	e := q.l.Front()
	if e == nil {
		return nil
	}
	q.l.Remove(e)
	return e.Value.(*Envelope)
}
