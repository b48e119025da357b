package queue

import "sync"

// ClickListener is notified when the host reports a click on a message.
type ClickListener func(m *Message)

// HideListener is notified when a message is logically hidden, before its
// exit transition finishes.
type HideListener func(m *Message)

// ListenerRegistry holds at most one listener per event kind. Setting a
// listener replaces the previous one; setting nil removes it.
type ListenerRegistry struct {
	mu    sync.RWMutex
	click ClickListener
	hide  HideListener
}

// SetClick replaces the click listener.
func (r *ListenerRegistry) SetClick(fn ClickListener) {
	r.mu.Lock()
	r.click = fn
	r.mu.Unlock()
}

// SetHide replaces the hide listener.
func (r *ListenerRegistry) SetHide(fn HideListener) {
	r.mu.Lock()
	r.hide = fn
	r.mu.Unlock()
}

// Click returns the current click listener, or nil.
func (r *ListenerRegistry) Click() ClickListener {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.click
}

// Hide returns the current hide listener, or nil.
func (r *ListenerRegistry) Hide() HideListener {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.hide
}

// DispatchClick invokes the click listener, if any.
func (r *ListenerRegistry) DispatchClick(m *Message) {
	if fn := r.Click(); fn != nil {
		fn(m)
	}
}
