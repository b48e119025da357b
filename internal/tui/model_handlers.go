package tui

import (
	"fmt"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"

	"github.com/hay-kot/toastq/internal/core/notify"
)

var sampleBodies = []string{
	"Build **#%d** finished",
	"Deploy %d rolled out to staging",
	"Backup job %d completed",
	"New comment on review %d",
	"Certificate %d renews in 7 days",
}

// --- Feeds ---

func (m Model) handleDrain() (tea.Model, tea.Cmd) {
	for _, n := range m.buffer.Drain() {
		m.publish(n)
	}
	return m, tea.Batch(m.buffer.WaitForSignal(), m.ensureTicking())
}

// --- Animation ---

func (m Model) handleAnimationTick() (tea.Model, tea.Cmd) {
	for _, t := range m.anim.Tick() {
		m.queue.Complete(t)
	}

	if !m.anim.Active() {
		m.ticking = false
		return m, nil
	}
	return m, scheduleAnimationTick(m.anim.Interval())
}

// --- Keys ---

func (m Model) handleKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Publish):
		m.samples++
		body := fmt.Sprintf(sampleBodies[(m.samples-1)%len(sampleBodies)], m.samples)
		m.publish(notify.Notification{
			Style:    m.style,
			Title:    string(m.style),
			Body:     body,
			Markdown: true,
			Topic:    "sample",
		})
		m.status = fmt.Sprintf("published sample %d", m.samples)

	case key.Matches(msg, m.keys.CycleStyle):
		m.style = m.style.Next()
		m.status = "style " + string(m.style)

	case key.Matches(msg, m.keys.Clear):
		n := m.queue.Size()
		m.queue.Clear()
		m.status = fmt.Sprintf("cleared %d", n)

	case key.Matches(msg, m.keys.Hide):
		sel := m.stack.Selected()
		switch {
		case sel == nil:
		case !sel.Closable():
			m.status = "message has no close button"
		default:
			sel.Hide()
			m.status = "hid message"
		}

	case key.Matches(msg, m.keys.Click):
		if sel := m.stack.Selected(); sel != nil {
			m.queue.Click(sel)
		}

	case key.Matches(msg, m.keys.FillFlip):
		m.queue.SetFillFromTop(!m.queue.FillFromTop())

	case key.Matches(msg, m.keys.More):
		m.queue.SetVisibleCount(m.queue.VisibleCount() + 1)

	case key.Matches(msg, m.keys.Less):
		m.queue.SetVisibleCount(m.queue.VisibleCount() - 1)

	case key.Matches(msg, m.keys.AutoScroll):
		m.queue.SetAutoScroll(!m.queue.AutoScroll())

	case key.Matches(msg, m.keys.Up):
		m.stack.Move(-1)

	case key.Matches(msg, m.keys.Down):
		m.stack.Move(1)

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}

	return m, m.ensureTicking()
}
