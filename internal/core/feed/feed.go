// Package feed connects notification producers to a toastq surface. A Source
// runs in its own goroutine and hands decoded notifications to a Sink; the
// Router assigns styles from configured topic rules before delivery.
package feed

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/hay-kot/toastq/internal/core/notify"
)

// Sink receives notifications from a Source. Implementations must not block
// for long; the terminal surface buffers and signals its update loop.
type Sink func(notify.Notification)

// Source produces notifications until its context is cancelled.
type Source interface {
	Name() string
	Run(ctx context.Context, sink Sink) error
}

// Publisher sends a single notification to a remote feed.
type Publisher interface {
	Publish(ctx context.Context, n notify.Notification) error
	Close() error
}

// Run starts every source and blocks until ctx is cancelled or a source
// fails. Sources returning context.Canceled are treated as a clean stop.
func Run(ctx context.Context, logger zerolog.Logger, sink Sink, sources ...Source) error {
	g, ctx := errgroup.WithContext(ctx)

	for _, src := range sources {
		g.Go(func() error {
			log := logger.With().Str("feed", src.Name()).Logger()
			log.Info().Msg("feed started")

			err := src.Run(ctx, sink)
			if err != nil && !errors.Is(err, context.Canceled) {
				log.Error().Err(err).Msg("feed stopped")
				return fmt.Errorf("feed %s: %w", src.Name(), err)
			}

			log.Info().Msg("feed stopped")
			return nil
		})
	}

	return g.Wait()
}

// deliver decodes a raw payload and forwards it to sink. Invalid payloads
// are logged and dropped. An empty topic is filled with fallback.
func deliver(logger zerolog.Logger, sink Sink, data []byte, fallback string) {
	n, err := notify.Decode(data)
	if err != nil {
		logger.Warn().Err(err).Str("topic", fallback).Msg("dropping invalid notification")
		return
	}
	if n.Topic == "" {
		n.Topic = fallback
	}
	sink(n)
}
