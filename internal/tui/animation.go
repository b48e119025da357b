package tui

import (
	"cmp"
	"slices"
	"sync"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/hay-kot/toastq/internal/core/queue"
)

type animationTickMsg time.Time

func scheduleAnimationTick(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return animationTickMsg(t)
	})
}

// transition is one running enter or exit animation.
type transition struct {
	ticket    queue.Ticket
	ticksLeft int
}

// TickAnimator implements queue.Animator on top of the tea tick loop. Each
// requested transition runs for a fixed number of ticks; Tick returns the
// tickets that finished so the caller can report them to the queue.
type TickAnimator struct {
	mu       sync.Mutex
	running  map[uint64]*transition
	ticksMax int
	interval time.Duration
}

var _ queue.Animator = (*TickAnimator)(nil)

// NewTickAnimator creates an animator whose transitions last duration when
// ticked every interval. A zero duration finishes on the next tick.
func NewTickAnimator(duration, interval time.Duration) *TickAnimator {
	if interval <= 0 {
		interval = 30 * time.Millisecond
	}
	return &TickAnimator{
		running:  make(map[uint64]*transition),
		ticksMax: max(int(duration/interval), 1),
		interval: interval,
	}
}

func (a *TickAnimator) AnimateIn(t queue.Ticket)  { a.start(t) }
func (a *TickAnimator) AnimateOut(t queue.Ticket) { a.start(t) }

// Cancel drops the transition. Its ticket is never returned by Tick.
func (a *TickAnimator) Cancel(t queue.Ticket) {
	a.mu.Lock()
	delete(a.running, t.Seq)
	a.mu.Unlock()
}

func (a *TickAnimator) start(t queue.Ticket) {
	a.mu.Lock()
	a.running[t.Seq] = &transition{ticket: t, ticksLeft: a.ticksMax}
	a.mu.Unlock()
}

// Tick advances every transition by one frame and returns the finished
// tickets in request order.
func (a *TickAnimator) Tick() []queue.Ticket {
	a.mu.Lock()
	defer a.mu.Unlock()

	var done []queue.Ticket
	for seq, tr := range a.running {
		tr.ticksLeft--
		if tr.ticksLeft <= 0 {
			done = append(done, tr.ticket)
			delete(a.running, seq)
		}
	}

	slices.SortFunc(done, func(x, y queue.Ticket) int {
		return cmp.Compare(x.Seq, y.Seq)
	})
	return done
}

// Progress reports how far the newest transition of m has run, from 0 to 1.
// ok is false when m is not animating.
func (a *TickAnimator) Progress(m *queue.Message) (queue.Transition, float64, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()

	var (
		found *transition
		seq   uint64
	)
	for s, tr := range a.running {
		if tr.ticket.Message == m && s > seq {
			found, seq = tr, s
		}
	}
	if found == nil {
		return 0, 0, false
	}

	done := float64(a.ticksMax-found.ticksLeft) / float64(a.ticksMax)
	return found.ticket.Transition, done, true
}

// Active reports whether any transition is still running.
func (a *TickAnimator) Active() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.running) > 0
}

// Interval returns the tick interval transitions are measured in.
func (a *TickAnimator) Interval() time.Duration {
	return a.interval
}
