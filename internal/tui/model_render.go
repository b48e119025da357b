package tui

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	lipgloss "charm.land/lipgloss/v2"

	"github.com/hay-kot/toastq/internal/core/styles"
)

// View renders the TUI.
func (m Model) View() tea.View {
	if m.quitting {
		return tea.NewView("")
	}

	v := tea.NewView(m.render())
	v.AltScreen = true
	return v
}

// render draws the background screen with the toast stack composited on top.
func (m Model) render() string {
	w, h := m.width, m.height
	if w == 0 {
		w = 80
	}
	if h == 0 {
		h = 24
	}

	return m.view.Overlay(m.renderBackground(w, h), w, h, m.queue.FillFromTop())
}

func (m Model) renderBackground(w, h int) string {
	title := styles.CommandHeaderStyle.Render("toastq")
	if m.version != "" {
		title += " " + styles.MutedTextStyle.Render(m.version)
	}

	top := lipgloss.JoinVertical(lipgloss.Left,
		" "+title,
		styles.StatusBarStyle.Render(m.statusLine()),
	)
	if m.status != "" {
		top = lipgloss.JoinVertical(lipgloss.Left, top, styles.StatusBarStyle.Render(m.status))
	}

	helpView := styles.HelpStyle.Render(m.help.View(m.keys))

	gap := max(h-lipgloss.Height(top)-lipgloss.Height(helpView), 0)
	body := top + strings.Repeat("\n", gap+1) + helpView

	return lipgloss.NewStyle().Width(w).Render(body)
}

func (m Model) statusLine() string {
	fill := "bottom"
	if m.queue.FillFromTop() {
		fill = "top"
	}
	scroll := "off"
	if m.queue.AutoScroll() {
		scroll = "on"
	}

	return fmt.Sprintf("style %s • queued %d/%d • fill %s • auto-scroll %s • rendered %d",
		m.style, m.queue.Size(), m.queue.VisibleCount(), fill, scroll, m.stack.Len())
}
