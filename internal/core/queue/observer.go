package queue

// Observer receives queue lifecycle events. Hooks run after the queue lock
// is released, in the order the events happened.
type Observer interface {
	Published(m *Message)
	Evicted(m *Message)
	Hidden(m *Message)
	Removed(m *Message)
	Cleared(n int)
}

// NopObserver ignores every event. Embed it to implement a subset of hooks.
type NopObserver struct{}

func (NopObserver) Published(*Message) {}
func (NopObserver) Evicted(*Message)   {}
func (NopObserver) Hidden(*Message)    {}
func (NopObserver) Removed(*Message)   {}
func (NopObserver) Cleared(int)        {}
