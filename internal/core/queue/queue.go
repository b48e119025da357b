// Package queue implements a bounded, ordered notification queue with a
// two-phase removal protocol: a message is hidden logically as soon as it is
// dismissed or evicted, and removed structurally only once its exit
// transition reports completion.
package queue

import (
	"cmp"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/hay-kot/toastq/internal/core/notify"
)

// DefaultVisibleCount is the window size used when none is configured.
const DefaultVisibleCount = 5

// Option configures a Queue.
type Option func(*Queue)

// WithAutoScroll enables the bounded visible window.
func WithAutoScroll(enabled bool) Option {
	return func(q *Queue) { q.autoScroll = enabled }
}

// WithVisibleCount sets the window size. Values below one are raised to one.
func WithVisibleCount(n int) Option {
	return func(q *Queue) { q.visibleCount = max(n, 1) }
}

// WithFillFromTop prepends new messages instead of appending them.
func WithFillFromTop(enabled bool) Option {
	return func(q *Queue) { q.fillFromTop = enabled }
}

// WithLogger sets the logger used for debug tracing.
func WithLogger(l zerolog.Logger) Option {
	return func(q *Queue) { q.logger = l }
}

// WithObserver registers lifecycle hooks.
func WithObserver(o Observer) Option {
	return func(q *Queue) {
		if o != nil {
			q.observer = o
		}
	}
}

// WithClock overrides the time source used for message timestamps.
func WithClock(now func() time.Time) Option {
	return func(q *Queue) { q.now = now }
}

// Queue owns an ordered collection of messages. All mutations of the
// collection and every Container call happen under a single mutex.
// Animator requests, listener calls and observer hooks are collected while
// the lock is held and run after it is released, so they may call back into
// the queue.
type Queue struct {
	container Container
	animator  Animator
	listeners ListenerRegistry
	observer  Observer
	logger    zerolog.Logger
	now       func() time.Time

	mu           sync.Mutex
	items        []*Message
	attached     []*Message
	inflight     map[uint64]Ticket
	seq          uint64
	visibleCount int
	fillFromTop  bool
	autoScroll   bool
}

// New creates a queue rendering into container and animating through
// animator. A nil container renders nothing; a nil animator completes every
// transition immediately.
func New(container Container, animator Animator, opts ...Option) *Queue {
	q := &Queue{
		container:    container,
		animator:     animator,
		observer:     NopObserver{},
		logger:       zerolog.Nop(),
		now:          time.Now,
		inflight:     make(map[uint64]Ticket),
		visibleCount: DefaultVisibleCount,
	}

	for _, opt := range opts {
		opt(q)
	}

	if q.container == nil {
		q.container = NopContainer{}
	}
	if q.animator == nil {
		q.animator = instantAnimator{q: q}
	}

	return q
}

// effects are side effects gathered under the lock and run after it.
type effects []func()

func (e *effects) add(fn func()) { *e = append(*e, fn) }

func (e effects) run() {
	for _, fn := range e {
		fn()
	}
}

// Publish creates a message for content, inserts it according to the fill
// direction and requests its enter transition. With auto-scroll enabled the
// oldest surviving messages are evicted until the window fits: they leave
// the logical collection immediately while their exit transition runs.
func (q *Queue) Publish(content any, opts ...PublishOption) *Message {
	m := &Message{
		queue:    q,
		id:       uuid.New(),
		content:  content,
		style:    notify.DefaultStyle,
		closable: true,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.createdAt.IsZero() {
		m.createdAt = q.now()
	}

	var fx effects

	q.mu.Lock()
	if q.fillFromTop {
		q.items = slices.Insert(q.items, 0, m)
		q.attachLocked(0, m)
	} else {
		q.items = append(q.items, m)
		q.attachLocked(len(q.attached), m)
	}

	fx.add(func() { q.observer.Published(m) })
	q.showLocked(m, &fx)

	for q.autoScroll && len(q.items) > q.visibleCount {
		var victim *Message
		if q.fillFromTop {
			victim = q.items[len(q.items)-1]
			q.items = slices.Delete(q.items, len(q.items)-1, len(q.items))
		} else {
			victim = q.items[0]
			q.items = slices.Delete(q.items, 0, 1)
		}

		q.logger.Debug().
			Str("message_id", victim.id.String()).
			Int("size", len(q.items)).
			Msg("evicting message")

		fx.add(func() { q.observer.Evicted(victim) })
		q.hideLocked(victim, &fx)
	}
	size := len(q.items)
	q.mu.Unlock()

	q.logger.Debug().
		Str("message_id", m.id.String()).
		Str("style", string(m.style)).
		Int("size", size).
		Msg("published message")

	fx.run()
	return m
}

// Hide dismisses m. It is equivalent to m.Hide and leaves m in the logical
// collection until its exit transition completes.
func (q *Queue) Hide(m *Message) {
	if m == nil || m.queue != q {
		return
	}
	q.hide(m)
}

func (q *Queue) hide(m *Message) {
	var fx effects

	q.mu.Lock()
	q.hideLocked(m, &fx)
	q.mu.Unlock()

	fx.run()
}

// Click reports a click on m to the click listener. Removed messages are
// ignored.
func (q *Queue) Click(m *Message) {
	if m == nil || m.queue != q || m.State() == StateRemoved {
		return
	}
	q.listeners.DispatchClick(m)
}

// Complete records the end of a transition. Tickets that are unknown,
// already completed or cancelled by Clear are ignored. A completed exit
// removes the message from the logical collection, if still present, and
// detaches it from the container.
func (q *Queue) Complete(t Ticket) {
	var fx effects

	q.mu.Lock()
	cur, ok := q.inflight[t.Seq]
	if !ok || cur.Message != t.Message {
		q.mu.Unlock()
		q.logger.Debug().
			Uint64("seq", t.Seq).
			Str("transition", t.Transition.String()).
			Msg("ignoring stale completion")
		return
	}
	delete(q.inflight, t.Seq)

	m := cur.Message
	switch cur.Transition {
	case TransitionEnter:
		// a hide may have raced the enter transition; exiting wins
		if m.State() == StateEntering {
			m.setState(StateVisible)
		}
	case TransitionExit:
		if q.removeLocked(m) {
			fx.add(func() { q.observer.Removed(m) })
		}
	}
	q.mu.Unlock()

	fx.run()
}

// Clear detaches every rendered message, empties the collection and cancels
// all in-flight transitions. Completions reported later for those
// transitions are ignored.
func (q *Queue) Clear() {
	q.mu.Lock()
	for _, m := range q.attached {
		q.container.Detach(m)
		m.setState(StateRemoved)
	}
	for _, m := range q.items {
		m.setState(StateRemoved)
	}
	n := len(q.items)
	q.items = nil
	q.attached = nil

	tickets := make([]Ticket, 0, len(q.inflight))
	for _, t := range q.inflight {
		tickets = append(tickets, t)
	}
	clear(q.inflight)
	q.mu.Unlock()

	slices.SortFunc(tickets, func(a, b Ticket) int {
		return cmp.Compare(a.Seq, b.Seq)
	})
	for _, t := range tickets {
		q.animator.Cancel(t)
	}

	q.logger.Debug().Int("cleared", n).Int("cancelled", len(tickets)).Msg("cleared queue")
	q.observer.Cleared(n)
}

// Size returns the number of messages in the logical collection.
func (q *Queue) Size() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

// Items returns a snapshot of the logical collection in display order.
func (q *Queue) Items() []*Message {
	q.mu.Lock()
	defer q.mu.Unlock()
	return slices.Clone(q.items)
}

// SetVisibleCount sets the window size used by auto-scroll. Values below one
// are raised to one. The new bound applies from the next Publish.
func (q *Queue) SetVisibleCount(n int) {
	q.mu.Lock()
	q.visibleCount = max(n, 1)
	q.mu.Unlock()
}

// VisibleCount returns the window size.
func (q *Queue) VisibleCount() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.visibleCount
}

// SetFillFromTop switches the fill direction for subsequent publishes.
func (q *Queue) SetFillFromTop(enabled bool) {
	q.mu.Lock()
	q.fillFromTop = enabled
	q.mu.Unlock()
}

// FillFromTop reports whether new messages are prepended.
func (q *Queue) FillFromTop() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.fillFromTop
}

// SetAutoScroll enables or disables the bounded window.
func (q *Queue) SetAutoScroll(enabled bool) {
	q.mu.Lock()
	q.autoScroll = enabled
	q.mu.Unlock()
}

// AutoScroll reports whether the bounded window is enabled.
func (q *Queue) AutoScroll() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.autoScroll
}

// SetClickListener replaces the click listener.
func (q *Queue) SetClickListener(fn ClickListener) {
	q.listeners.SetClick(fn)
}

// SetHideListener replaces the hide listener.
func (q *Queue) SetHideListener(fn HideListener) {
	q.listeners.SetHide(fn)
}

// ClickListener returns the current click listener, or nil.
func (q *Queue) ClickListener() ClickListener {
	return q.listeners.Click()
}

// HideListener returns the current hide listener, or nil.
func (q *Queue) HideListener() HideListener {
	return q.listeners.Hide()
}

func (q *Queue) attachLocked(index int, m *Message) {
	q.attached = slices.Insert(q.attached, index, m)
	q.container.Attach(index, m)
}

func (q *Queue) showLocked(m *Message, fx *effects) {
	m.setState(StateEntering)
	t := q.ticketLocked(TransitionEnter, m)
	fx.add(func() { q.animator.AnimateIn(t) })
}

// hideLocked starts the exit transition. It reports false when m is not
// currently shown.
func (q *Queue) hideLocked(m *Message, fx *effects) bool {
	if !m.IsVisible() {
		return false
	}

	m.setState(StateExiting)
	t := q.ticketLocked(TransitionExit, m)

	// listeners learn about the hide before the transition can complete
	if fn := q.listeners.Hide(); fn != nil {
		fx.add(func() { fn(m) })
	}
	fx.add(func() { q.observer.Hidden(m) })
	fx.add(func() { q.animator.AnimateOut(t) })
	return true
}

// removeLocked performs the structural removal of m. It reports whether m
// was still tracked.
func (q *Queue) removeLocked(m *Message) bool {
	found := false

	if i := slices.Index(q.items, m); i >= 0 {
		q.items = slices.Delete(q.items, i, i+1)
		found = true
	}
	if i := slices.Index(q.attached, m); i >= 0 {
		q.attached = slices.Delete(q.attached, i, i+1)
		q.container.Detach(m)
		found = true
	}

	if found {
		m.setState(StateRemoved)
	}
	return found
}

func (q *Queue) ticketLocked(tr Transition, m *Message) Ticket {
	q.seq++
	t := Ticket{Seq: q.seq, Transition: tr, Message: m}
	q.inflight[t.Seq] = t
	return t
}
