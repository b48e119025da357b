package feed

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hay-kot/toastq/internal/core/notify"
)

type collector struct {
	mu  sync.Mutex
	got []notify.Notification
}

func (c *collector) sink(n notify.Notification) {
	c.mu.Lock()
	c.got = append(c.got, n)
	c.mu.Unlock()
}

func (c *collector) all() []notify.Notification {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]notify.Notification(nil), c.got...)
}

func TestLineSource_Run(t *testing.T) {
	input := strings.Join([]string{
		`{"body":"build finished","style":"success","topic":"ci.build"}`,
		``,
		`plain text line`,
		`{"body":`,
		`{"title":"","body":""}`,
		`  {"title":"deploy","body":"prod"}  `,
	}, "\n")

	c := &collector{}
	src := NewLineSource(strings.NewReader(input), "stdin", zerolog.Nop())

	err := src.Run(context.Background(), c.sink)
	require.NoError(t, err)

	got := c.all()
	require.Len(t, got, 3)

	assert.Equal(t, "build finished", got[0].Body)
	assert.Equal(t, notify.StyleSuccess, got[0].Style)
	assert.Equal(t, "ci.build", got[0].Topic)

	assert.Equal(t, "plain text line", got[1].Body)
	assert.Equal(t, "stdin", got[1].Topic)
	assert.Empty(t, got[1].Style)

	assert.Equal(t, "deploy", got[2].Title)
	assert.Equal(t, "stdin", got[2].Topic)
}

func TestLineSource_Run_cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := &collector{}
	src := NewLineSource(strings.NewReader("one\ntwo\n"), "", zerolog.Nop())

	err := src.Run(ctx, c.sink)
	require.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, c.all())
}

func TestLineSource_Run_cancel_interrupts_idle_reader(t *testing.T) {
	r, w := io.Pipe()
	t.Cleanup(func() { _ = w.Close() })

	ctx, cancel := context.WithCancel(context.Background())
	c := &collector{}
	src := NewLineSource(r, "stdin", zerolog.Nop())

	errCh := make(chan error, 1)
	go func() { errCh <- Run(ctx, zerolog.Nop(), c.sink, src) }()

	cancel()

	select {
	case err := <-errCh:
		require.NoError(t, err, "cancellation is a clean stop")
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel while the reader was idle")
	}
	assert.Empty(t, c.all())
}

func TestLineSource_Run_delivers_from_open_stream(t *testing.T) {
	r, w := io.Pipe()
	t.Cleanup(func() { _ = w.Close() })

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	got := make(chan notify.Notification, 1)
	src := NewLineSource(r, "stdin", zerolog.Nop())
	go func() { _ = src.Run(ctx, func(n notify.Notification) { got <- n }) }()

	_, err := w.Write([]byte("disk almost full\n"))
	require.NoError(t, err)

	select {
	case n := <-got:
		assert.Equal(t, "disk almost full", n.Body)
	case <-time.After(2 * time.Second):
		t.Fatal("line was not delivered")
	}
}

type fakeSource struct {
	name string
	run  func(ctx context.Context, sink Sink) error
}

func (f fakeSource) Name() string { return f.name }
func (f fakeSource) Run(ctx context.Context, sink Sink) error { return f.run(ctx, sink) }

func TestRun_stops_all_sources_on_failure(t *testing.T) {
	boom := errors.New("boom")

	blocking := fakeSource{name: "blocking", run: func(ctx context.Context, sink Sink) error {
		sink(notify.Notification{Body: "hello"})
		<-ctx.Done()
		return ctx.Err()
	}}
	failing := fakeSource{name: "failing", run: func(ctx context.Context, sink Sink) error {
		return boom
	}}

	c := &collector{}
	err := Run(context.Background(), zerolog.Nop(), c.sink, blocking, failing)

	require.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "feed failing")
}

func TestRun_cancel_is_clean(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	started := make(chan struct{})
	src := fakeSource{name: "waiter", run: func(ctx context.Context, sink Sink) error {
		close(started)
		<-ctx.Done()
		return ctx.Err()
	}}

	done := make(chan error, 1)
	go func() { done <- Run(ctx, zerolog.Nop(), func(notify.Notification) {}, src) }()

	<-started
	cancel()
	assert.NoError(t, <-done)
}

func TestIsRedisPattern(t *testing.T) {
	assert.False(t, isRedisPattern("toastq"))
	assert.True(t, isRedisPattern("toastq.*"))
	assert.True(t, isRedisPattern("alert?"))
	assert.True(t, isRedisPattern("ch[12]"))
}
