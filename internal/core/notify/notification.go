// Package notify defines the notification vocabulary shared by the queue,
// the feeds and the terminal surface.
package notify

import (
	"encoding/json"
	"fmt"
	"time"
)

// Notification is the payload producers send to a toastq surface. It is the
// JSON document carried by every feed.
type Notification struct {
	Style     Style     `json:"style,omitempty"`
	Icon      string    `json:"icon,omitempty"`
	Title     string    `json:"title,omitempty"`
	Body      string    `json:"body"`
	Markdown  bool      `json:"markdown,omitempty"`
	Closable  *bool     `json:"closable,omitempty"`
	Topic     string    `json:"topic,omitempty"`
	CreatedAt time.Time `json:"created_at,omitzero"`
}

// ShowClose reports whether a close control should be rendered. Missing
// values default to true.
func (n Notification) ShowClose() bool {
	return n.Closable == nil || *n.Closable
}

// Decode parses a JSON notification. Empty bodies are rejected.
func Decode(data []byte) (Notification, error) {
	var n Notification
	if err := json.Unmarshal(data, &n); err != nil {
		return Notification{}, fmt.Errorf("decode notification: %w", err)
	}
	if n.Body == "" && n.Title == "" {
		return Notification{}, fmt.Errorf("decode notification: body is empty")
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now()
	}
	return n, nil
}

// Encode marshals a notification for publishing to a feed.
func Encode(n Notification) ([]byte, error) {
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now()
	}
	data, err := json.Marshal(n)
	if err != nil {
		return nil, fmt.Errorf("encode notification: %w", err)
	}
	return data, nil
}
