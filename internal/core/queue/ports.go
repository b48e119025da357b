package queue

// Transition identifies the kind of animation requested for a message.
type Transition int

const (
	TransitionEnter Transition = iota + 1
	TransitionExit
)

func (t Transition) String() string {
	switch t {
	case TransitionEnter:
		return "enter"
	case TransitionExit:
		return "exit"
	default:
		return "unknown"
	}
}

// Ticket identifies one requested transition. Animators hand the same ticket
// back to Queue.Complete when the transition finishes.
type Ticket struct {
	Seq        uint64
	Transition Transition
	Message    *Message
}

// Animator performs enter and exit transitions. All methods are
// fire-and-forget and must not block. Every ticket passed to AnimateIn or
// AnimateOut must eventually be reported to Queue.Complete exactly once,
// unless it is cancelled first.
type Animator interface {
	AnimateIn(t Ticket)
	AnimateOut(t Ticket)
	// Cancel force-terminates an in-flight transition. The queue has already
	// forgotten the ticket, so a completion reported afterwards is ignored.
	Cancel(t Ticket)
}

// Container holds the rendered messages. The queue calls it only while
// holding its lock; implementations must not call back into the queue.
type Container interface {
	// Attach inserts m at index; index equal to the current length appends.
	Attach(index int, m *Message)
	Detach(m *Message)
}

// NopContainer is a Container that renders nothing.
type NopContainer struct{}

func (NopContainer) Attach(int, *Message) {}
func (NopContainer) Detach(*Message)      {}

// instantAnimator completes every transition as soon as it is requested.
type instantAnimator struct {
	q *Queue
}

func (a instantAnimator) AnimateIn(t Ticket)  { a.q.Complete(t) }
func (a instantAnimator) AnimateOut(t Ticket) { a.q.Complete(t) }
func (a instantAnimator) Cancel(Ticket)       {}
