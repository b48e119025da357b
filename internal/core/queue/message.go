package queue

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/hay-kot/toastq/internal/core/notify"
)

// State is the lifecycle position of a Message.
type State int32

const (
	StateCreated  State = iota // constructed, not yet shown
	StateEntering              // enter transition requested
	StateVisible               // enter transition completed
	StateExiting               // exit transition requested, hide listener notified
	StateRemoved               // exit completed or cleared; terminal
)

func (s State) String() string {
	switch s {
	case StateCreated:
		return "created"
	case StateEntering:
		return "entering"
	case StateVisible:
		return "visible"
	case StateExiting:
		return "exiting"
	case StateRemoved:
		return "removed"
	default:
		return "unknown"
	}
}

// Message is one queued notification. Messages are created by
// Queue.Publish and only the owning queue changes their state.
type Message struct {
	queue     *Queue
	id        uuid.UUID
	content   any
	icon      string
	style     notify.Style
	closable  bool
	createdAt time.Time

	// written under queue.mu, read lock-free by renderers
	state atomic.Int32

	dataMu sync.Mutex
	data   any
}

// PublishOption configures a message at publish time.
type PublishOption func(*Message)

// WithIcon sets the icon rendered next to the content.
func WithIcon(icon string) PublishOption {
	return func(m *Message) { m.icon = icon }
}

// WithStyle sets the style tag. Empty styles fall back to notify.DefaultStyle.
func WithStyle(style notify.Style) PublishOption {
	return func(m *Message) { m.style = style.OrDefault() }
}

// WithCloseButton controls whether the host renders a close control.
// Defaults to true.
func WithCloseButton(show bool) PublishOption {
	return func(m *Message) { m.closable = show }
}

// WithData attaches an opaque caller value to the message.
func WithData(data any) PublishOption {
	return func(m *Message) { m.data = data }
}

// WithCreatedAt sets the publish timestamp, for example the time a
// producer created the notification. Zero values use the queue clock.
func WithCreatedAt(t time.Time) PublishOption {
	return func(m *Message) { m.createdAt = t }
}

// ID returns the message identity.
func (m *Message) ID() uuid.UUID { return m.id }

// Content returns the caller payload.
func (m *Message) Content() any { return m.content }

// Icon returns the icon hint, if any.
func (m *Message) Icon() string { return m.icon }

// Style returns the style tag.
func (m *Message) Style() notify.Style { return m.style }

// Closable reports whether a close control should be rendered.
func (m *Message) Closable() bool { return m.closable }

// CreatedAt returns the publish timestamp.
func (m *Message) CreatedAt() time.Time { return m.createdAt }

// Queue returns the queue that owns the message.
func (m *Message) Queue() *Queue { return m.queue }

// State returns the current lifecycle state.
func (m *Message) State() State { return State(m.state.Load()) }

// IsVisible reports whether the message is logically shown. It becomes true
// as soon as the enter transition is requested and false as soon as the exit
// transition is requested, independent of the animation's progress.
func (m *Message) IsVisible() bool {
	switch m.State() {
	case StateEntering, StateVisible:
		return true
	default:
		return false
	}
}

// Data returns the caller attachment.
func (m *Message) Data() any {
	m.dataMu.Lock()
	defer m.dataMu.Unlock()
	return m.data
}

// SetData replaces the caller attachment.
func (m *Message) SetData(data any) {
	m.dataMu.Lock()
	m.data = data
	m.dataMu.Unlock()
}

// Hide requests the exit transition and notifies the hide listener. Calling
// Hide on a message that is already exiting or removed does nothing.
func (m *Message) Hide() {
	if m == nil || m.queue == nil {
		return
	}
	m.queue.hide(m)
}

func (m *Message) setState(s State) {
	m.state.Store(int32(s))
}
