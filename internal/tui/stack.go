package tui

import (
	"slices"
	"sync"

	"github.com/hay-kot/toastq/internal/core/queue"
)

// Stack is the rendered toast list. It implements queue.Container: the
// queue attaches messages at the position they should be drawn and detaches
// them once their exit transition has completed.
type Stack struct {
	mu       sync.Mutex
	entries  []*queue.Message
	selected int
}

var _ queue.Container = (*Stack)(nil)

func NewStack() *Stack {
	return &Stack{}
}

func (s *Stack) Attach(index int, m *queue.Message) {
	s.mu.Lock()
	defer s.mu.Unlock()

	index = min(max(index, 0), len(s.entries))
	s.entries = slices.Insert(s.entries, index, m)
	if index <= s.selected && len(s.entries) > 1 {
		s.selected++
	}
	s.clampLocked()
}

func (s *Stack) Detach(m *queue.Message) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := slices.Index(s.entries, m)
	if i < 0 {
		return
	}
	s.entries = slices.Delete(s.entries, i, i+1)
	if i < s.selected {
		s.selected--
	}
	s.clampLocked()
}

// Entries returns a snapshot of the rendered messages, top to bottom.
func (s *Stack) Entries() []*queue.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.entries)
}

// Len returns the number of rendered messages.
func (s *Stack) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Selected returns the highlighted message, or nil when the stack is empty.
func (s *Stack) Selected() *queue.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.entries) == 0 {
		return nil
	}
	return s.entries[s.selected]
}

// Move shifts the selection by delta, clamped to the stack bounds.
func (s *Stack) Move(delta int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selected += delta
	s.clampLocked()
}

func (s *Stack) clampLocked() {
	s.selected = min(max(s.selected, 0), max(len(s.entries)-1, 0))
}
