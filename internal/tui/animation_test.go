package tui

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hay-kot/toastq/internal/core/queue"
)

func TestTickAnimator_completes_after_duration(t *testing.T) {
	a := NewTickAnimator(90*time.Millisecond, 30*time.Millisecond)
	m := &queue.Message{}

	a.AnimateIn(queue.Ticket{Seq: 1, Transition: queue.TransitionEnter, Message: m})
	require.True(t, a.Active())

	assert.Empty(t, a.Tick())
	assert.Empty(t, a.Tick())

	done := a.Tick()
	require.Len(t, done, 1)
	assert.Equal(t, uint64(1), done[0].Seq)
	assert.False(t, a.Active())

	assert.Empty(t, a.Tick(), "a ticket completes exactly once")
}

func TestTickAnimator_zero_duration_finishes_next_tick(t *testing.T) {
	a := NewTickAnimator(0, 10*time.Millisecond)
	a.AnimateOut(queue.Ticket{Seq: 4, Transition: queue.TransitionExit})

	assert.Len(t, a.Tick(), 1)
}

func TestTickAnimator_Cancel_never_completes(t *testing.T) {
	a := NewTickAnimator(20*time.Millisecond, 10*time.Millisecond)
	tk := queue.Ticket{Seq: 1, Transition: queue.TransitionEnter}

	a.AnimateIn(tk)
	a.Cancel(tk)

	assert.False(t, a.Active())
	assert.Empty(t, a.Tick())
	assert.Empty(t, a.Tick())
}

func TestTickAnimator_Tick_returns_request_order(t *testing.T) {
	a := NewTickAnimator(10*time.Millisecond, 10*time.Millisecond)
	for _, seq := range []uint64{7, 3, 5, 1} {
		a.AnimateIn(queue.Ticket{Seq: seq})
	}

	done := a.Tick()
	require.Len(t, done, 4)
	for i, want := range []uint64{1, 3, 5, 7} {
		assert.Equal(t, want, done[i].Seq)
	}
}

func TestTickAnimator_Progress(t *testing.T) {
	a := NewTickAnimator(40*time.Millisecond, 10*time.Millisecond)
	m := &queue.Message{}
	other := &queue.Message{}

	_, _, ok := a.Progress(m)
	assert.False(t, ok)

	a.AnimateIn(queue.Ticket{Seq: 1, Transition: queue.TransitionEnter, Message: m})
	a.Tick()

	tr, done, ok := a.Progress(m)
	require.True(t, ok)
	assert.Equal(t, queue.TransitionEnter, tr)
	assert.InDelta(t, 0.25, done, 0.001)

	// a newer exit supersedes the enter for rendering
	a.AnimateOut(queue.Ticket{Seq: 2, Transition: queue.TransitionExit, Message: m})
	tr, done, ok = a.Progress(m)
	require.True(t, ok)
	assert.Equal(t, queue.TransitionExit, tr)
	assert.InDelta(t, 0, done, 0.001)

	_, _, ok = a.Progress(other)
	assert.False(t, ok)
}

func TestTickAnimator_drives_queue(t *testing.T) {
	a := NewTickAnimator(20*time.Millisecond, 10*time.Millisecond)
	s := NewStack()
	q := queue.New(s, a)

	m := q.Publish("hello")
	m.Hide()

	for range 2 {
		for _, tk := range a.Tick() {
			q.Complete(tk)
		}
	}

	assert.Equal(t, queue.StateRemoved, m.State())
	assert.Equal(t, 0, q.Size())
	assert.Equal(t, 0, s.Len())
}
