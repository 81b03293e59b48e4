package backdrop

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// fakeScheduler queues frame callbacks until run is called
type fakeScheduler struct {
	next      FrameHandle
	pending   map[FrameHandle]FrameCallback
	cancelled int
}

func newFakeScheduler() *fakeScheduler {
	return &fakeScheduler{pending: make(map[FrameHandle]FrameCallback)}
}

func (s *fakeScheduler) RequestFrame(cb FrameCallback) FrameHandle {
	s.next++
	s.pending[s.next] = cb
	return s.next
}

func (s *fakeScheduler) CancelFrame(h FrameHandle) {
	if _, ok := s.pending[h]; ok {
		s.cancelled++
	}
	delete(s.pending, h)
}

func (s *fakeScheduler) run(ts time.Duration) int {
	batch := s.pending
	s.pending = make(map[FrameHandle]FrameCallback)
	for _, cb := range batch {
		cb(ts)
	}
	return len(batch)
}

func TestLoopRunsEveryFrame(t *testing.T) {
	sched := newFakeScheduler()
	var stamps []time.Duration
	l := NewLoop(sched, func(ts time.Duration) { stamps = append(stamps, ts) })

	assert.False(t, l.Running())
	l.Start()
	l.Start()
	assert.Len(t, sched.pending, 1, "Start is idempotent")
	assert.True(t, l.Running())

	for i := 1; i <= 3; i++ {
		assert.Equal(t, 1, sched.run(time.Duration(i)*16*time.Millisecond))
	}
	assert.Equal(t, []time.Duration{16 * time.Millisecond, 32 * time.Millisecond, 48 * time.Millisecond}, stamps)
	assert.Equal(t, uint64(3), l.Frames())
	assert.Len(t, sched.pending, 1)
}

func TestLoopStopCancelsPendingFrame(t *testing.T) {
	sched := newFakeScheduler()
	calls := 0
	l := NewLoop(sched, func(time.Duration) { calls++ })

	l.Start()
	l.Stop()
	l.Stop()
	assert.Empty(t, sched.pending)
	assert.Equal(t, 1, sched.cancelled)
	assert.False(t, l.Running())

	sched.run(time.Second)
	assert.Zero(t, calls)

	l.Start()
	assert.Empty(t, sched.pending, "a stopped loop cannot be restarted")
}

func TestLoopStopInsideCallback(t *testing.T) {
	sched := newFakeScheduler()
	var l *Loop
	calls := 0
	l = NewLoop(sched, func(time.Duration) {
		calls++
		if calls == 2 {
			l.Stop()
		}
	})

	l.Start()
	sched.run(0)
	sched.run(time.Millisecond)
	assert.Empty(t, sched.pending, "no reschedule after Stop inside the callback")
	assert.Zero(t, sched.run(2*time.Millisecond))
	assert.Equal(t, 2, calls)
}
