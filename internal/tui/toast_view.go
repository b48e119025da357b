package tui

import (
	"fmt"
	"math"
	"strings"

	lipgloss "charm.land/lipgloss/v2"
	"github.com/charmbracelet/glamour"
	"github.com/rs/zerolog/log"

	"github.com/hay-kot/toastq/internal/core/notify"
	"github.com/hay-kot/toastq/internal/core/queue"
	"github.com/hay-kot/toastq/internal/core/styles"
)

// toastChrome is the horizontal space taken by the border and padding.
const toastChrome = 4

// progressor reports transition progress for a rendered message.
type progressor interface {
	Progress(m *queue.Message) (queue.Transition, float64, bool)
}

// ToastView renders the stack and composites it over a background.
type ToastView struct {
	stack    *Stack
	anim     progressor
	width    int
	markdown bool

	md      *glamour.TermRenderer
	mdWidth int
}

// NewToastView creates a view for stack. anim may be nil, in which case no
// transition is drawn.
func NewToastView(stack *Stack, anim progressor, width int, markdown bool) *ToastView {
	return &ToastView{
		stack:    stack,
		anim:     anim,
		width:    width,
		markdown: markdown,
	}
}

// SetWidth changes the toast width; markdown is re-wrapped on next render.
func (v *ToastView) SetWidth(w int) {
	v.width = w
}

// View renders the stack top to bottom.
func (v *ToastView) View() string {
	entries := v.stack.Entries()
	if len(entries) == 0 {
		return ""
	}
	selected := v.stack.Selected()

	rendered := make([]string, 0, len(entries))
	for _, m := range entries {
		if s := v.renderToast(m, m == selected); s != "" {
			rendered = append(rendered, s)
		}
	}

	return strings.Join(rendered, "\n")
}

func (v *ToastView) renderToast(m *queue.Message, selected bool) string {
	title, body, markdown := messageText(m)

	icon := m.Icon()
	if icon == "" {
		icon = styles.IconFor(m.Style())
	}

	header := icon
	if title != "" {
		header += " " + styles.ToastTitleStyle.Render(title)
	}
	if selected {
		header = styles.ToastSelectedStyle.Render(styles.IconSelected) + " " + header
	}
	if m.Closable() {
		inner := v.width - toastChrome
		gap := max(inner-lipgloss.Width(header)-lipgloss.Width(styles.IconClose), 1)
		header += strings.Repeat(" ", gap) + styles.ToastCloseStyle.Render(styles.IconClose)
	}

	if markdown && v.markdown {
		body = v.renderMarkdown(body)
	}

	content := header
	if body != "" {
		content += "\n" + body
	}

	style := styles.ToastStyle(m.Style())
	if selected {
		style = style.BorderForeground(styles.ColorPrimary)
	}
	if m.State() == queue.StateExiting {
		style = style.Inherit(styles.ToastExitingStyle)
	}

	return v.clip(m, style.Width(v.width).Render(content))
}

// clip shows the part of a toast that has entered, or not yet left.
func (v *ToastView) clip(m *queue.Message, box string) string {
	if v.anim == nil {
		return box
	}
	tr, done, ok := v.anim.Progress(m)
	if !ok {
		return box
	}

	shown := done
	if tr == queue.TransitionExit {
		shown = 1 - done
	}

	lines := strings.Split(box, "\n")
	n := int(math.Ceil(float64(len(lines)) * shown))
	if n <= 0 {
		return ""
	}
	return strings.Join(lines[:min(n, len(lines))], "\n")
}

func (v *ToastView) renderMarkdown(body string) string {
	wrap := max(v.width-toastChrome, 10)
	if v.md == nil || v.mdWidth != wrap {
		r, err := glamour.NewTermRenderer(
			glamour.WithStyles(styles.GlamourStyle()),
			glamour.WithWordWrap(wrap),
		)
		if err != nil {
			log.Debug().Err(err).Msg("failed to create markdown renderer, showing raw content")
			return body
		}
		v.md, v.mdWidth = r, wrap
	}

	out, err := v.md.Render(body)
	if err != nil {
		log.Debug().Err(err).Msg("failed to render markdown, showing raw content")
		return body
	}
	return strings.Trim(out, "\n")
}

// messageText extracts the displayable parts of a message payload.
func messageText(m *queue.Message) (title, body string, markdown bool) {
	switch c := m.Content().(type) {
	case notify.Notification:
		return c.Title, c.Body, c.Markdown
	case *notify.Notification:
		return c.Title, c.Body, c.Markdown
	case string:
		return "", c, false
	case fmt.Stringer:
		return "", c.String(), false
	default:
		return "", fmt.Sprint(c), false
	}
}

// Overlay composites the toast stack over background: in the upper-right
// corner when new toasts enter at the top, the lower-right corner otherwise.
func (v *ToastView) Overlay(background string, width, height int, top bool) string {
	toastContent := v.View()
	if toastContent == "" {
		return background
	}

	bgLayer := lipgloss.NewLayer(background)
	toastLayer := lipgloss.NewLayer(toastContent)

	toastW := lipgloss.Width(toastContent)
	toastH := lipgloss.Height(toastContent)

	x := max(width-toastW-1, 0)
	y := 1
	if !top {
		y = max(height-toastH-1, 0)
	}

	toastLayer.X(x).Y(y).Z(2)

	compositor := lipgloss.NewCompositor(bgLayer, toastLayer)
	return compositor.Render()
}
