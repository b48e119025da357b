package feed

import (
	"context"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"

	"github.com/hay-kot/toastq/internal/core/notify"
)

// NATSSource subscribes to a subject (wildcards allowed) and delivers each
// message payload as a notification. The message subject is used as topic
// when the payload carries none.
type NATSSource struct {
	url     string
	subject string
	logger  zerolog.Logger
}

// NewNATSSource creates a NATS feed.
func NewNATSSource(url, subject string, logger zerolog.Logger) *NATSSource {
	return &NATSSource{url: url, subject: subject, logger: logger}
}

func (s *NATSSource) Name() string { return "nats" }

func (s *NATSSource) Run(ctx context.Context, sink Sink) error {
	nc, err := nats.Connect(s.url,
		nats.Name("toastq"),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				s.logger.Warn().Err(err).Msg("nats disconnected")
			}
		}),
		nats.ReconnectHandler(func(c *nats.Conn) {
			s.logger.Info().Str("url", c.ConnectedUrl()).Msg("nats reconnected")
		}),
	)
	if err != nil {
		return fmt.Errorf("connect nats: %w", err)
	}
	defer nc.Close()

	sub, err := nc.Subscribe(s.subject, func(msg *nats.Msg) {
		deliver(s.logger, sink, msg.Data, msg.Subject)
	})
	if err != nil {
		return fmt.Errorf("subscribe %s: %w", s.subject, err)
	}

	s.logger.Debug().Str("subject", s.subject).Msg("subscribed")

	<-ctx.Done()

	if err := sub.Unsubscribe(); err != nil {
		s.logger.Debug().Err(err).Msg("unsubscribe")
	}
	return ctx.Err()
}

// NATSPublisher publishes notifications to a NATS subject.
type NATSPublisher struct {
	nc      *nats.Conn
	subject string
}

// NewNATSPublisher connects to url. Subject must be a concrete subject, not
// a wildcard.
func NewNATSPublisher(url, subject string) (*NATSPublisher, error) {
	nc, err := nats.Connect(url, nats.Name("toastq-send"))
	if err != nil {
		return nil, fmt.Errorf("connect nats: %w", err)
	}
	return &NATSPublisher{nc: nc, subject: subject}, nil
}

func (p *NATSPublisher) Publish(ctx context.Context, n notify.Notification) error {
	if n.Topic == "" {
		n.Topic = p.subject
	}

	data, err := notify.Encode(n)
	if err != nil {
		return err
	}

	if err := p.nc.Publish(p.subject, data); err != nil {
		return fmt.Errorf("publish %s: %w", p.subject, err)
	}
	if err := p.nc.FlushWithContext(ctx); err != nil {
		return fmt.Errorf("flush nats: %w", err)
	}
	return nil
}

func (p *NATSPublisher) Close() error {
	p.nc.Close()
	return nil
}
