package feed

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/hay-kot/toastq/internal/core/notify"
)

// RedisSource subscribes to a Redis pub/sub channel. Channel patterns are
// supported through PSUBSCRIBE when the channel contains a glob character.
type RedisSource struct {
	addr    string
	channel string
	logger  zerolog.Logger
}

// NewRedisSource creates a Redis pub/sub feed.
func NewRedisSource(addr, channel string, logger zerolog.Logger) *RedisSource {
	return &RedisSource{addr: addr, channel: channel, logger: logger}
}

func (s *RedisSource) Name() string { return "redis" }

func (s *RedisSource) Run(ctx context.Context, sink Sink) error {
	client := redis.NewClient(&redis.Options{Addr: s.addr})
	defer func() { _ = client.Close() }()

	if err := client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("ping redis: %w", err)
	}

	var pubsub *redis.PubSub
	if isRedisPattern(s.channel) {
		pubsub = client.PSubscribe(ctx, s.channel)
	} else {
		pubsub = client.Subscribe(ctx, s.channel)
	}
	defer func() { _ = pubsub.Close() }()

	// wait for the subscription confirmation so failures surface here
	if _, err := pubsub.Receive(ctx); err != nil {
		return fmt.Errorf("subscribe %s: %w", s.channel, err)
	}

	s.logger.Debug().Str("channel", s.channel).Msg("subscribed")

	ch := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			deliver(s.logger, sink, []byte(msg.Payload), msg.Channel)
		}
	}
}

func isRedisPattern(channel string) bool {
	for _, r := range channel {
		switch r {
		case '*', '?', '[':
			return true
		}
	}
	return false
}

// RedisPublisher publishes notifications to a Redis channel.
type RedisPublisher struct {
	client  *redis.Client
	channel string
}

// NewRedisPublisher creates a publisher for channel on the server at addr.
func NewRedisPublisher(addr, channel string) *RedisPublisher {
	return &RedisPublisher{
		client:  redis.NewClient(&redis.Options{Addr: addr}),
		channel: channel,
	}
}

func (p *RedisPublisher) Publish(ctx context.Context, n notify.Notification) error {
	if n.Topic == "" {
		n.Topic = p.channel
	}

	data, err := notify.Encode(n)
	if err != nil {
		return err
	}

	if err := p.client.Publish(ctx, p.channel, data).Err(); err != nil {
		return fmt.Errorf("publish %s: %w", p.channel, err)
	}
	return nil
}

func (p *RedisPublisher) Close() error {
	return p.client.Close()
}
