// Package hostkit holds the bookkeeping shared by backdrop hosts: a frame
// callback queue with request-animation-frame semantics and listener sets.
package hostkit

import (
	"sort"
	"sync"
	"time"

	"portfoliobg/backdrop"
)

// FrameQueue stores frame callbacks until the host's next refresh
type FrameQueue struct {
	mu      sync.Mutex
	next    backdrop.FrameHandle
	pending map[backdrop.FrameHandle]backdrop.FrameCallback
}

// Request queues cb and returns its handle. Handles are never reused.
func (q *FrameQueue) Request(cb backdrop.FrameCallback) backdrop.FrameHandle {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.pending == nil {
		q.pending = make(map[backdrop.FrameHandle]backdrop.FrameCallback)
	}
	q.next++
	q.pending[q.next] = cb
	return q.next
}

// Cancel drops a queued callback; unknown or already run handles are ignored
func (q *FrameQueue) Cancel(h backdrop.FrameHandle) {
	q.mu.Lock()
	defer q.mu.Unlock()
	delete(q.pending, h)
}

// Len returns the number of queued callbacks
func (q *FrameQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}

// Run invokes, in request order, every callback queued before the call and
// returns how many ran. Callbacks queued while running wait for the next Run;
// callbacks cancelled by an earlier one in the same batch are skipped.
func (q *FrameQueue) Run(ts time.Duration) int {
	q.mu.Lock()
	handles := make([]backdrop.FrameHandle, 0, len(q.pending))
	for h := range q.pending {
		handles = append(handles, h)
	}
	q.mu.Unlock()
	sort.Slice(handles, func(i, j int) bool { return handles[i] < handles[j] })

	ran := 0
	for _, h := range handles {
		q.mu.Lock()
		cb, ok := q.pending[h]
		delete(q.pending, h)
		q.mu.Unlock()
		if !ok {
			continue
		}
		cb(ts)
		ran++
	}
	return ran
}

// Listeners is a set of event callbacks
type Listeners[T any] struct {
	mu   sync.Mutex
	next int
	fns  map[int]func(T)
}

// Add registers fn; closing the returned subscription removes it
func (l *Listeners[T]) Add(fn func(T)) backdrop.Subscription {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.fns == nil {
		l.fns = make(map[int]func(T))
	}
	id := l.next
	l.next++
	l.fns[id] = fn
	return backdrop.NewFuncSubscription(func() {
		l.mu.Lock()
		defer l.mu.Unlock()
		delete(l.fns, id)
	})
}

// Emit calls every listener with v in registration order. The set is
// snapshotted first, so listeners may subscribe or unsubscribe while running.
func (l *Listeners[T]) Emit(v T) {
	l.mu.Lock()
	ids := make([]int, 0, len(l.fns))
	for id := range l.fns {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	fns := make([]func(T), 0, len(ids))
	for _, id := range ids {
		fns = append(fns, l.fns[id])
	}
	l.mu.Unlock()

	for _, fn := range fns {
		fn(v)
	}
}

// Len returns the number of registered listeners
func (l *Listeners[T]) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.fns)
}
