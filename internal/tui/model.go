package tui

import (
	"charm.land/bubbles/v2/help"
	tea "charm.land/bubbletea/v2"
	"github.com/rs/zerolog/log"

	"github.com/hay-kot/toastq/internal/core/notify"
	"github.com/hay-kot/toastq/internal/core/queue"
)

// Options configures the TUI.
type Options struct {
	Queue    *queue.Queue
	Stack    *Stack
	Animator *TickAnimator
	Buffer   *NotificationBuffer // optional; nil disables feeds
	Width    int                 // toast width in cells
	Markdown bool
	Version  string
}

// Model is the Bubble Tea model hosting the notification queue.
type Model struct {
	queue  *queue.Queue
	stack  *Stack
	anim   *TickAnimator
	buffer *NotificationBuffer
	view   *ToastView

	keys keyMap
	help help.Model

	version    string
	toastWidth int // configured toast width
	width      int
	height     int
	style      notify.Style // style used for sample messages
	samples    int
	status     string
	ticking    bool
	quitting   bool
}

// New creates the TUI model. The queue must render into opts.Stack and
// animate through opts.Animator.
func New(opts Options) Model {
	return Model{
		queue:      opts.Queue,
		stack:      opts.Stack,
		anim:       opts.Animator,
		buffer:     opts.Buffer,
		view:       NewToastView(opts.Stack, opts.Animator, opts.Width, opts.Markdown),
		keys:       defaultKeyMap(),
		help:       help.New(),
		version:    opts.Version,
		toastWidth: opts.Width,
		style:      notify.StyleInfo,
	}
}

func (m Model) Init() tea.Cmd {
	if m.buffer == nil {
		return nil
	}
	return m.buffer.WaitForSignal()
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.view.SetWidth(fitToastWidth(m.toastWidth, msg.Width))
		return m, nil
	case drainNotificationsMsg:
		return m.handleDrain()
	case animationTickMsg:
		return m.handleAnimationTick()
	case tea.KeyPressMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

// publish hands a notification to the queue.
func (m *Model) publish(n notify.Notification) *queue.Message {
	msg := m.queue.Publish(n,
		queue.WithStyle(n.Style.OrDefault()),
		queue.WithIcon(n.Icon),
		queue.WithCloseButton(n.ShowClose()),
		queue.WithData(n.Topic),
		queue.WithCreatedAt(n.CreatedAt),
	)

	log.Debug().
		Str("message_id", msg.ID().String()).
		Str("topic", n.Topic).
		Str("style", string(msg.Style())).
		Msg("notification published")

	return msg
}

// minToastWidth matches the smallest tui.width the config accepts.
const minToastWidth = 16

// fitToastWidth narrows the configured toast width to fit a terminal of
// the given width, leaving a one cell margin on each side.
func fitToastWidth(configured, terminal int) int {
	if terminal <= 0 {
		return configured
	}
	return max(min(configured, terminal-2), minToastWidth)
}

// ensureTicking starts the animation tick chain if a transition is running
// and no tick is pending.
func (m *Model) ensureTicking() tea.Cmd {
	if m.ticking || !m.anim.Active() {
		return nil
	}
	m.ticking = true
	return scheduleAnimationTick(m.anim.Interval())
}
