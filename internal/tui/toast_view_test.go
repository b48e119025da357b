package tui

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hay-kot/toastq/internal/core/notify"
	"github.com/hay-kot/toastq/internal/core/queue"
	"github.com/hay-kot/toastq/internal/core/styles"
	"github.com/hay-kot/toastq/pkg/tuitest"
)

func newTestView(opts ...queue.Option) (*ToastView, *queue.Queue, *Stack) {
	s := NewStack()
	q := queue.New(s, nil, opts...)
	return NewToastView(s, nil, 40, false), q, s
}

func TestToastView_View_empty(t *testing.T) {
	v, _, _ := newTestView()
	assert.Empty(t, v.View())
}

func TestToastView_View_renders_each_style(t *testing.T) {
	tests := []struct {
		style notify.Style
		icon  string
	}{
		{notify.StyleError, styles.IconNotifyError},
		{notify.StyleWarning, styles.IconNotifyWarning},
		{notify.StyleInfo, styles.IconNotifyInfo},
		{notify.StyleSuccess, styles.IconNotifySuccess},
		{notify.StyleMessage, styles.IconNotifyMessage},
		{"vaadin-orange", styles.IconNotifyMessage},
	}

	for _, tt := range tests {
		t.Run(string(tt.style), func(t *testing.T) {
			v, q, _ := newTestView()

			q.Publish(notify.Notification{Body: "test msg"}, queue.WithStyle(tt.style))

			out := tuitest.StripANSI(v.View())
			require.NotEmpty(t, out)
			assert.Contains(t, out, tt.icon)
			assert.Contains(t, out, "test msg")
		})
	}
}

func TestToastView_View_custom_icon_and_title(t *testing.T) {
	v, q, _ := newTestView()

	q.Publish(notify.Notification{Title: "Deploy", Body: "prod is live"}, queue.WithIcon("🚀"))

	out := tuitest.StripANSI(v.View())
	assert.Contains(t, out, "🚀")
	assert.Contains(t, out, "Deploy")
	assert.Contains(t, out, "prod is live")
}

func TestToastView_View_close_marker(t *testing.T) {
	v, q, _ := newTestView()

	q.Publish("closable")
	out := tuitest.StripANSI(v.View())
	assert.Contains(t, out, styles.IconClose)

	q.Clear()
	q.Publish("sticky", queue.WithCloseButton(false))
	out = tuitest.StripANSI(v.View())
	assert.NotContains(t, out, styles.IconClose)
}

func TestToastView_View_marks_selection(t *testing.T) {
	v, q, s := newTestView()

	q.Publish("first")
	q.Publish("second")
	s.Move(1)

	lines := strings.Split(tuitest.StripANSI(v.View()), "\n")
	var marked []string
	for _, l := range lines {
		if strings.Contains(l, styles.IconSelected) {
			marked = append(marked, l)
		}
	}
	require.Len(t, marked, 1)

	out := tuitest.StripANSI(v.View())
	assert.Less(t, strings.Index(out, "first"), strings.Index(out, styles.IconSelected))
}

func TestToastView_View_follows_fill_direction(t *testing.T) {
	for _, fillFromTop := range []bool{false, true} {
		v, q, _ := newTestView(queue.WithFillFromTop(fillFromTop))

		q.Publish("older")
		q.Publish("newer")

		out := v.View()
		older := strings.Index(out, "older")
		newer := strings.Index(out, "newer")
		require.NotEqual(t, -1, older)
		require.NotEqual(t, -1, newer)

		if fillFromTop {
			assert.Less(t, newer, older)
		} else {
			assert.Less(t, older, newer)
		}
	}
}

func TestToastView_View_clips_running_transitions(t *testing.T) {
	s := NewStack()
	a := NewTickAnimator(40*time.Millisecond, 10*time.Millisecond)
	q := queue.New(s, a)
	v := NewToastView(s, a, 40, false)

	q.Publish(notify.Notification{Title: "Title", Body: "body"})
	assert.Empty(t, v.View(), "nothing has entered yet")

	for range 4 {
		for _, tk := range a.Tick() {
			q.Complete(tk)
		}
	}
	full := v.View()
	require.NotEmpty(t, full)
	assert.Contains(t, full, "body")

	q.Items()[0].Hide()
	assert.Equal(t, strings.Count(full, "\n"), strings.Count(v.View(), "\n"), "exit starts fully drawn")

	a.Tick()
	a.Tick()
	assert.Less(t, strings.Count(v.View(), "\n"), strings.Count(full, "\n"))
}

func TestToastView_View_markdown(t *testing.T) {
	s := NewStack()
	q := queue.New(s, nil)
	v := NewToastView(s, nil, 40, true)

	q.Publish(notify.Notification{Body: "**bold** move", Markdown: true})

	out := tuitest.StripANSI(v.View())
	assert.Contains(t, out, "bold move")
	assert.NotContains(t, out, "**")
}

func TestToastView_View_markdown_disabled(t *testing.T) {
	v, q, _ := newTestView()

	q.Publish(notify.Notification{Body: "**raw**", Markdown: true})

	assert.Contains(t, tuitest.StripANSI(v.View()), "**raw**")
}

func TestToastView_Overlay_empty_returns_background(t *testing.T) {
	v, _, _ := newTestView()

	bg := "background content"
	assert.Equal(t, bg, v.Overlay(bg, 80, 24, false))
}

func TestToastView_Overlay_positions(t *testing.T) {
	width, height := 120, 40

	row := strings.Repeat(" ", width)
	rows := make([]string, height)
	for i := range rows {
		rows[i] = row
	}
	bg := strings.Join(rows, "\n")

	for _, top := range []bool{false, true} {
		v, q, _ := newTestView()
		q.Publish("positioned")

		out := v.Overlay(bg, width, height, top)

		toastLine := -1
		for i, line := range strings.Split(out, "\n") {
			if strings.Contains(line, "positioned") {
				toastLine = i
				break
			}
		}
		require.NotEqual(t, -1, toastLine, "toast text not found in output lines")

		if top {
			assert.Less(t, toastLine, height/2, "toast should be in the upper half")
		} else {
			assert.Greater(t, toastLine, height/2, "toast should be in the lower half")
		}
	}
}

type stringer struct{}

func (stringer) String() string { return "from stringer" }

func TestMessageText(t *testing.T) {
	q := queue.New(nil, nil)

	tests := []struct {
		content  any
		title    string
		body     string
		markdown bool
	}{
		{content: notify.Notification{Title: "t", Body: "b", Markdown: true}, title: "t", body: "b", markdown: true},
		{content: &notify.Notification{Body: "ptr"}, body: "ptr"},
		{content: "plain", body: "plain"},
		{content: stringer{}, body: "from stringer"},
		{content: 42, body: "42"},
	}

	for _, tt := range tests {
		title, body, md := messageText(q.Publish(tt.content))
		assert.Equal(t, tt.title, title)
		assert.Equal(t, tt.body, body)
		assert.Equal(t, tt.markdown, md)
	}
}
