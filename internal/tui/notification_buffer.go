package tui

import (
	"sync"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/hay-kot/toastq/internal/core/notify"
)

type drainNotificationsMsg struct{}

// NotificationBuffer collects notifications from feed goroutines and wakes
// the tea loop to publish them. Signals coalesce: many pushes between two
// drains produce a single wake-up.
type NotificationBuffer struct {
	mu      sync.Mutex
	pending []notify.Notification
	signal  chan struct{}
	now     func() time.Time
}

func NewNotificationBuffer() *NotificationBuffer {
	return &NotificationBuffer{
		signal: make(chan struct{}, 1),
		now:    time.Now,
	}
}

// Push queues n for the next drain. It never blocks and is usable as a
// feed.Sink.
func (b *NotificationBuffer) Push(n notify.Notification) {
	if n.CreatedAt.IsZero() {
		n.CreatedAt = b.now()
	}

	b.mu.Lock()
	b.pending = append(b.pending, n)
	b.mu.Unlock()

	select {
	case b.signal <- struct{}{}:
	default:
	}
}

// Drain hands over everything pushed since the previous drain, oldest first.
func (b *NotificationBuffer) Drain() []notify.Notification {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := b.pending
	b.pending = nil
	return out
}

// WaitForSignal returns a command that blocks until something was pushed.
func (b *NotificationBuffer) WaitForSignal() tea.Cmd {
	return func() tea.Msg {
		<-b.signal
		return drainNotificationsMsg{}
	}
}
