package tui

import (
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hay-kot/toastq/internal/core/notify"
	"github.com/hay-kot/toastq/internal/core/queue"
	"github.com/hay-kot/toastq/pkg/tuitest"
)

const testFrame = 10 * time.Millisecond

// newTestModel builds a model whose transitions finish after two ticks.
func newTestModel(opts ...queue.Option) (Model, *queue.Queue) {
	s := NewStack()
	a := NewTickAnimator(2*testFrame, testFrame)
	q := queue.New(s, a, opts...)

	m := New(Options{
		Queue:    q,
		Stack:    s,
		Animator: a,
		Buffer:   NewNotificationBuffer(),
		Width:    40,
	})
	return m, q
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	result, cmd := m.Update(msg)
	next, ok := result.(Model)
	require.True(t, ok)
	return next, cmd
}

// settle runs animation ticks until the chain stops.
func settle(t *testing.T, m Model) Model {
	t.Helper()
	for range 100 {
		var cmd tea.Cmd
		m, cmd = update(t, m, animationTickMsg(time.Now()))
		if cmd == nil {
			return m
		}
	}
	t.Fatal("animation tick chain did not stop")
	return m
}

func TestModel_publish_key_starts_tick_chain(t *testing.T) {
	m, q := newTestModel()

	m, cmd := update(t, m, tuitest.KeyPress('n'))
	require.NotNil(t, cmd, "publishing should schedule an animation tick")
	assert.True(t, m.ticking)
	assert.Equal(t, 1, q.Size())
	assert.Equal(t, queue.StateEntering, q.Items()[0].State())

	// a second publish while ticking does not schedule another chain
	m, cmd = update(t, m, tuitest.KeyPress('n'))
	assert.Nil(t, cmd)

	m = settle(t, m)
	assert.False(t, m.ticking)
	for _, msg := range q.Items() {
		assert.Equal(t, queue.StateVisible, msg.State())
	}
}

func TestModel_hide_selected_removes_after_exit(t *testing.T) {
	m, q := newTestModel()

	m, _ = update(t, m, tuitest.KeyPress('n'))
	m, _ = update(t, m, tuitest.KeyPress('n'))
	m = settle(t, m)

	first := q.Items()[0]
	m, cmd := update(t, m, tuitest.KeyPress('x'))
	require.NotNil(t, cmd)
	assert.Equal(t, queue.StateExiting, first.State())
	assert.Equal(t, 2, q.Size(), "hidden message stays until its exit completes")

	m = settle(t, m)
	assert.Equal(t, queue.StateRemoved, first.State())
	assert.Equal(t, 1, q.Size())
	assert.Equal(t, 1, m.stack.Len())
}

func TestModel_hide_ignores_unclosable(t *testing.T) {
	m, q := newTestModel()

	q.Publish("sticky", queue.WithCloseButton(false))
	m = settle(t, m)

	m, _ = update(t, m, tuitest.KeyPress('x'))
	assert.True(t, q.Items()[0].IsVisible())
	assert.Equal(t, "message has no close button", m.status)
}

func TestModel_auto_scroll_evicts_oldest(t *testing.T) {
	m, q := newTestModel(queue.WithAutoScroll(true), queue.WithVisibleCount(2))

	for range 3 {
		m, _ = update(t, m, tuitest.KeyPress('n'))
	}

	assert.Equal(t, 2, q.Size())
	assert.Equal(t, 3, m.stack.Len(), "evicted message is still animating out")

	m = settle(t, m)
	assert.Equal(t, 2, m.stack.Len())
}

func TestModel_clear_key(t *testing.T) {
	m, q := newTestModel()

	m, _ = update(t, m, tuitest.KeyPress('n'))
	m, _ = update(t, m, tuitest.KeyPress('n'))
	m, _ = update(t, m, tuitest.KeyPress('c'))

	assert.Equal(t, 0, q.Size())
	assert.Equal(t, 0, m.stack.Len())
	assert.False(t, m.anim.Active(), "clear cancels running transitions")
	assert.Equal(t, "cleared 2", m.status)
}

func TestModel_settings_keys(t *testing.T) {
	m, q := newTestModel()

	m, _ = update(t, m, tuitest.KeyPress('t'))
	assert.True(t, q.FillFromTop())

	m, _ = update(t, m, tuitest.KeyPress('a'))
	assert.True(t, q.AutoScroll())

	m, _ = update(t, m, tuitest.KeyPress('+'))
	assert.Equal(t, queue.DefaultVisibleCount+1, q.VisibleCount())

	for range 10 {
		m, _ = update(t, m, tuitest.KeyPress('-'))
	}
	assert.Equal(t, 1, q.VisibleCount())

	m, _ = update(t, m, tuitest.KeyPress('s'))
	assert.Equal(t, notify.StyleSuccess, m.style)
}

func TestModel_click_dispatches_to_listener(t *testing.T) {
	m, q := newTestModel()

	var clicked *queue.Message
	q.SetClickListener(func(msg *queue.Message) { clicked = msg })

	m, _ = update(t, m, tuitest.KeyPress('n'))
	m, _ = update(t, m, tuitest.KeyEnter())

	require.NotNil(t, clicked)
	assert.Same(t, q.Items()[0], clicked)
}

func TestModel_drain_publishes_feed_notifications(t *testing.T) {
	m, q := newTestModel()

	m.buffer.Push(notify.Notification{Body: "from nats", Topic: "ci.build", Style: notify.StyleWarning})
	m.buffer.Push(notify.Notification{Body: "from redis", Icon: "R"})

	m, cmd := update(t, m, drainNotificationsMsg{})
	require.NotNil(t, cmd)

	items := q.Items()
	require.Len(t, items, 2)
	assert.Equal(t, notify.StyleWarning, items[0].Style())
	assert.Equal(t, "ci.build", items[0].Data())
	assert.Equal(t, notify.DefaultStyle, items[1].Style())
	assert.Equal(t, "R", items[1].Icon())
	assert.True(t, m.ticking)
}

func TestModel_drain_keeps_producer_timestamp(t *testing.T) {
	m, q := newTestModel()

	sent := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	m.buffer.Push(notify.Notification{Body: "from nats", CreatedAt: sent})

	_, _ = update(t, m, drainNotificationsMsg{})

	items := q.Items()
	require.Len(t, items, 1)
	assert.Equal(t, sent, items[0].CreatedAt())
}

func TestModel_window_size_fits_toast_width(t *testing.T) {
	tests := []struct {
		name     string
		terminal int
		want     int
	}{
		{"wide terminal keeps configured width", 120, 40},
		{"narrow terminal shrinks toasts", 30, 28},
		{"tiny terminal stops at minimum", 10, minToastWidth},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, _ := newTestModel()
			m, _ = update(t, m, tuitest.WindowSize(tt.terminal, 24))
			assert.Equal(t, tt.want, m.view.width)
		})
	}
}

func TestModel_quit(t *testing.T) {
	m, _ := newTestModel()

	m, cmd := update(t, m, tuitest.KeyPress('q'))
	require.NotNil(t, cmd)
	assert.True(t, m.quitting)
}

func TestModel_View_renders_toasts_and_status(t *testing.T) {
	m, _ := newTestModel()
	m, _ = update(t, m, tuitest.WindowSize(100, 30))

	m, _ = update(t, m, tuitest.KeyPress('n'))
	m = settle(t, m)

	assert.True(t, m.View().AltScreen)

	out := tuitest.StripANSI(m.render())
	assert.Contains(t, out, "toastq")
	assert.Contains(t, out, "queued 1/5")
	assert.Contains(t, out, "Build")
}

func TestModel_selection_keys(t *testing.T) {
	m, q := newTestModel()

	for range 3 {
		m, _ = update(t, m, tuitest.KeyPress('n'))
	}
	items := q.Items()

	m, _ = update(t, m, tuitest.KeyDown())
	m, _ = update(t, m, tuitest.KeyDown())
	assert.Same(t, items[2], m.stack.Selected())

	m, _ = update(t, m, tuitest.KeyUp())
	assert.Same(t, items[1], m.stack.Selected())
}
