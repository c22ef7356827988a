// ABOUTME: Per-room concurrency primitives for the turn scheduler
// ABOUTME: Pause gate, write-once stop flag and FIFO injection queue

package simulation

import (
	"context"
	"sync"
	"sync/atomic"
)

// pauseGate is a reopenable gate. The scheduler blocks on Wait while the gate
// is closed; Open releases all waiters. Stop forces the gate open so a paused
// loop can observe the stop flag.
type pauseGate struct {
	mu   sync.Mutex
	open chan struct{} // closed channel == gate open
}

func newPauseGate() *pauseGate {
	open := make(chan struct{})
	close(open)
	return &pauseGate{open: open}
}

// Wait blocks until the gate is open or ctx is done.
func (g *pauseGate) Wait(ctx context.Context) error {
	g.mu.Lock()
	ch := g.open
	g.mu.Unlock()

	select {
	case <-ch:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close shuts the gate. Closing an already-closed gate is a no-op.
func (g *pauseGate) Close() {
	g.mu.Lock()
	defer g.mu.Unlock()

	select {
	case <-g.open:
		g.open = make(chan struct{})
	default:
		// already closed
	}
}

// Open opens the gate, releasing any waiter. Opening an open gate is a no-op.
func (g *pauseGate) Open() {
	g.mu.Lock()
	defer g.mu.Unlock()

	select {
	case <-g.open:
		// already open
	default:
		close(g.open)
	}
}

// IsClosed reports whether the gate is currently shut.
func (g *pauseGate) IsClosed() bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	select {
	case <-g.open:
		return false
	default:
		return true
	}
}

// injectQueue is an unbounded FIFO of externally injected message contents.
// Producers are control-operation callers; the sole consumer is the owning
// scheduler's loop, which drains it fully each iteration.
type injectQueue struct {
	mu    sync.Mutex
	items []string
}

func newInjectQueue() *injectQueue {
	return &injectQueue{}
}

// Push enqueues content. Never blocks.
func (q *injectQueue) Push(content string) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.items = append(q.items, content)
}

// Drain removes and returns all queued items in FIFO order.
func (q *injectQueue) Drain() []string {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.items) == 0 {
		return nil
	}
	items := q.items
	q.items = nil
	return items
}

// Len returns the number of queued items.
func (q *injectQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

// stopFlag is a write-once false-to-true transition checked cooperatively by
// the scheduler loop.
type stopFlag struct {
	v atomic.Bool
}

func (f *stopFlag) Set() { f.v.Store(true) }

func (f *stopFlag) IsSet() bool { return f.v.Load() }
