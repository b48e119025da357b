package feed

import (
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/hay-kot/toastq/internal/core/notify"
)

// Rule maps a topic glob to a style.
type Rule struct {
	Match string
	Style notify.Style
}

// Router assigns styles to notifications that do not carry one. Topics and
// patterns are dot separated ("ci.build.failed"); `*` matches one segment
// and `**` any number of segments. The first matching rule wins.
type Router struct {
	rules []Rule
}

// NewRouter creates a router evaluating rules in order.
func NewRouter(rules []Rule) *Router {
	normalized := make([]Rule, 0, len(rules))
	for _, r := range rules {
		normalized = append(normalized, Rule{Match: segments(r.Match), Style: r.Style})
	}
	return &Router{rules: normalized}
}

// Style returns the style for topic and whether a rule matched.
func (r *Router) Style(topic string) (notify.Style, bool) {
	if topic == "" {
		return "", false
	}

	path := segments(topic)
	for _, rule := range r.rules {
		ok, err := doublestar.Match(rule.Match, path)
		if err == nil && ok {
			return rule.Style, true
		}
	}
	return "", false
}

// Apply fills in the style of n from the rules. Explicit styles are kept.
func (r *Router) Apply(n notify.Notification) notify.Notification {
	if n.Style != "" {
		return n
	}
	if s, ok := r.Style(n.Topic); ok {
		n.Style = s
	}
	return n
}

// Wrap returns a sink that routes notifications before passing them on.
func (r *Router) Wrap(next Sink) Sink {
	return func(n notify.Notification) {
		next(r.Apply(n))
	}
}

// segments converts a dotted topic into a doublestar path.
func segments(s string) string {
	return strings.ReplaceAll(s, ".", "/")
}
