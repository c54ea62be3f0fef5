// Package syncutil provides the concurrency helper the manager package
// uses to start and jointly cancel several Connections' driver goroutines.
package syncutil

import (
	"context"
	"sync"
)

// Group is similar to golang.org/x/sync/errgroup.Group, but it passes the
// shared context into every started function and cancels that context
// (with the first returned error as cause) the moment any function
// returns, success or failure — it favors "stop everyone the instant one
// thing ends" over errgroup's default of letting the rest run to
// completion. manager.Manager uses this for the per-Connection driver
// loops it starts, and golang.org/x/sync/errgroup (no cancel-on-success)
// for one-shot bulk operations where there's nothing to cancel early.
//
// The zero value is not usable; construct with NewGroup.
type Group struct {
	ctx         context.Context
	cancelCause context.CancelCauseFunc
	wg          sync.WaitGroup

	errOnce sync.Once
	err     error
}

// NewGroup derives a cancelable context from ctx and returns a Group
// plus the cancel function, so callers can also cancel from the outside.
func NewGroup(ctx context.Context) (*Group, context.CancelCauseFunc) {
	ctx, cancelCause := context.WithCancelCause(ctx)
	return &Group{ctx: ctx, cancelCause: cancelCause}, cancelCause
}

// Wait blocks until every function started with Go has returned, then
// returns the first non-nil error among them, if any.
func (g *Group) Wait() error {
	g.wg.Wait()
	return g.err
}

// Go starts f in its own goroutine, passing it the Group's shared
// context. As soon as f returns, the context is canceled (with f's error,
// possibly nil, recorded as the cancellation cause) so that every other
// still-running f observes ctx.Done() immediately.
func (g *Group) Go(f func(ctx context.Context) error) {
	g.wg.Add(1)
	go func() {
		defer g.wg.Done()
		err := f(g.ctx)
		g.cancelCause(err)
		if err != nil {
			g.errOnce.Do(func() {
				g.err = err
			})
		}
	}()
}
