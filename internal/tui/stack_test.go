package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hay-kot/toastq/internal/core/queue"
)

func TestStack_mirrors_queue_positions(t *testing.T) {
	s := NewStack()
	q := queue.New(s, nil)

	a := q.Publish("A")
	q.Publish("B")
	q.SetFillFromTop(true)
	q.Publish("C")

	entries := s.Entries()
	assert.Len(t, entries, 3)
	assert.Equal(t, "C", entries[0].Content())
	assert.Equal(t, "A", entries[1].Content())
	assert.Equal(t, "B", entries[2].Content())

	a.Hide()
	assert.Equal(t, 2, s.Len())
}

func TestStack_selection_follows_message(t *testing.T) {
	s := NewStack()
	assert.Nil(t, s.Selected())

	a := &queue.Message{}
	b := &queue.Message{}
	c := &queue.Message{}

	s.Attach(0, a)
	assert.Same(t, a, s.Selected())

	s.Attach(1, b)
	s.Move(1)
	assert.Same(t, b, s.Selected())

	// inserting above keeps the same message highlighted
	s.Attach(0, c)
	assert.Same(t, b, s.Selected())

	s.Detach(c)
	assert.Same(t, b, s.Selected())

	s.Detach(b)
	assert.Same(t, a, s.Selected())

	s.Detach(a)
	assert.Nil(t, s.Selected())
}

func TestStack_Move_clamps(t *testing.T) {
	s := NewStack()
	a := &queue.Message{}
	b := &queue.Message{}
	s.Attach(0, a)
	s.Attach(1, b)

	s.Move(-5)
	assert.Same(t, a, s.Selected())

	s.Move(10)
	assert.Same(t, b, s.Selected())
}

func TestStack_Detach_unknown_is_noop(t *testing.T) {
	s := NewStack()
	a := &queue.Message{}
	s.Attach(0, a)

	s.Detach(&queue.Message{})
	assert.Equal(t, 1, s.Len())
}
