// Package monitor implements the bounded set of passive vconns a
// Connection fans every inbound and outbound message out to.
package monitor

import (
	"errors"

	"go.uber.org/multierr"

	"github.com/switchcore/rconn/ofp"
	"github.com/switchcore/rconn/vconn"
)

// MaxMonitors is the compile-time bound on the monitor set's cardinality,
// spec.md §2's "bounded (<=8) list of passive vconn handles."
const MaxMonitors = 8

// ErrFull is returned by Add when the set is already at MaxMonitors.
var ErrFull = errors.New("monitor: set is full")

// Set is a bounded, order-insensitive collection of vconns. It is not
// safe for concurrent use; its owning Connection drives it from a single
// goroutine, per spec.md §5.
//
// Removal is swap-with-last, adapted from the teacher's
// tcpConnPool.Remove (slices.Index + slices.Delete over a map-backed
// pool): here the collection is a plain bounded slice instead of a map,
// and order among monitors is explicitly not a spec.md guarantee, so a
// cheaper swap-with-last replaces the teacher's order-preserving delete.
type Set struct {
	conns []vconn.Vconn
}

// New returns an empty monitor set.
func New() *Set {
	return &Set{}
}

// Len returns the number of monitors currently held.
func (s *Set) Len() int {
	return len(s.conns)
}

// Add takes ownership of v. If the set is already full, v is closed
// immediately and ErrFull is returned, matching spec.md §4.4's
// "Over-capacity add_monitor calls close the new handle immediately."
func (s *Set) Add(v vconn.Vconn) error {
	if len(s.conns) >= MaxMonitors {
		_ = v.Close()
		return ErrFull
	}
	s.conns = append(s.conns, v)
	return nil
}

// Fanout attempts to clone and send msg to every monitor in the set, in
// whatever order they currently occupy the slice. A monitor that reports
// vconn.ErrWouldBlock is retained as-is; any other error closes and
// removes it via swap-with-last. clone is the cloning function so callers
// can plug in a pooled-buffer clone instead of ofp.Message.Clone's plain
// allocation.
func (s *Set) Fanout(msg ofp.Message, clone func(ofp.Message) ofp.Message) {
	if clone == nil {
		clone = ofp.Message.Clone
	}
	i := 0
	for i < len(s.conns) {
		err := s.conns[i].Send(clone(msg))
		switch {
		case err == nil, errors.Is(err, vconn.ErrWouldBlock):
			i++
		default:
			_ = s.conns[i].Close()
			last := len(s.conns) - 1
			s.conns[i] = s.conns[last]
			s.conns[last] = nil
			s.conns = s.conns[:last]
			// do not advance i: the swapped-in monitor at i still needs
			// a Fanout attempt in this same pass.
		}
	}
}

// CloseAll closes every monitor in the set and empties it, combining any
// errors with go.uber.org/multierr rather than the teacher's errors.Join,
// per SPEC_FULL.md §5's decision to make multierr a direct dependency.
func (s *Set) CloseAll() error {
	var err error
	for _, c := range s.conns {
		err = multierr.Append(err, c.Close())
	}
	s.conns = nil
	return err
}
