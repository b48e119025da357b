package feed

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"github.com/hay-kot/toastq/internal/core/notify"
)

// maxLineSize bounds a single JSON line.
const maxLineSize = 1 << 20

// LineSource reads newline separated notifications from a reader. Lines that
// start with '{' are decoded as JSON; any other non-blank line becomes the
// body of a plain message.
type LineSource struct {
	r      io.Reader
	topic  string
	logger zerolog.Logger
}

// NewLineSource creates a source reading from r. Notifications without a
// topic are tagged with topic.
func NewLineSource(r io.Reader, topic string, logger zerolog.Logger) *LineSource {
	return &LineSource{r: r, topic: topic, logger: logger}
}

func (s *LineSource) Name() string { return "lines" }

// Run reads until EOF or until ctx is cancelled. The reader is scanned in a
// separate goroutine so a blocked read (an idle pipe or terminal) does not
// delay cancellation; that goroutine exits on the reader's next line or EOF.
func (s *LineSource) Run(ctx context.Context, sink Sink) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	lines := make(chan []byte)
	done := make(chan error, 1)

	go func() {
		scanner := bufio.NewScanner(s.r)
		scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

		for scanner.Scan() {
			line := bytes.Clone(bytes.TrimSpace(scanner.Bytes()))
			select {
			case lines <- line:
			case <-ctx.Done():
				return
			}
		}
		done <- scanner.Err()
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case line := <-lines:
			s.handle(sink, line)
		case err := <-done:
			if err != nil {
				return fmt.Errorf("read lines: %w", err)
			}
			return nil
		}
	}
}

func (s *LineSource) handle(sink Sink, line []byte) {
	if len(line) == 0 {
		return
	}

	if line[0] == '{' {
		deliver(s.logger, sink, line, s.topic)
		return
	}

	sink(notify.Notification{Body: string(line), Topic: s.topic})
}
