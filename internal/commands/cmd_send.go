package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/hay-kot/criterio"
	"github.com/rs/zerolog"
	"github.com/urfave/cli/v3"

	"github.com/hay-kot/toastq/internal/core/feed"
	"github.com/hay-kot/toastq/internal/core/notify"
	"github.com/hay-kot/toastq/internal/core/validate"
	"github.com/hay-kot/toastq/internal/printer"
	"github.com/hay-kot/toastq/pkg/iojson"
	"github.com/hay-kot/toastq/pkg/logutils"
)

const defaultSendSubject = "toastq.send"

type SendCmd struct {
	flags *Flags

	// Command-specific flags
	natsURL  string
	subject  string
	redis    string
	channel  string
	style    string
	icon     string
	title    string
	topic    string
	markdown bool
	noClose  bool
	timeout  time.Duration
	verbose  bool

	file iojson.FileReader[notify.Notification]
}

// NewSendCmd creates a new send command
func NewSendCmd(flags *Flags) *SendCmd {
	return &SendCmd{flags: flags}
}

// Register adds the send command to the application
func (cmd *SendCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "send",
		Usage:     "Publish a notification to a feed",
		UsageText: "toastq send [options] <message>",
		Description: `Publishes a notification to NATS or Redis for running toastq surfaces.

The feed defaults to the one in the config file. NATS is used when both are
configured unless --redis is given.

Examples:
  toastq send "deploy finished"
  toastq send --style error --title CI "build **failed**" --markdown
  toastq send --redis localhost:6379 --channel toastq "disk almost full"
  echo '{"style":"success","body":"deployed"}' | toastq send -f -

With --file the notification document is read as JSON; the other style
flags override its fields when given.`,
		Flags: []cli.Flag{
			cmd.file.Flag(),
			&cli.StringFlag{
				Name:        "nats",
				Usage:       "NATS server URL (defaults to feeds.nats.url)",
				Sources:     cli.EnvVars("TOASTQ_NATS_URL"),
				Destination: &cmd.natsURL,
			},
			&cli.StringFlag{
				Name:        "subject",
				Usage:       "NATS subject to publish to",
				Value:       defaultSendSubject,
				Destination: &cmd.subject,
			},
			&cli.StringFlag{
				Name:        "redis",
				Usage:       "Redis address (defaults to feeds.redis.addr)",
				Sources:     cli.EnvVars("TOASTQ_REDIS_ADDR"),
				Destination: &cmd.redis,
			},
			&cli.StringFlag{
				Name:        "channel",
				Usage:       "Redis channel to publish to (defaults to feeds.redis.channel)",
				Destination: &cmd.channel,
			},
			&cli.StringFlag{
				Name:        "style",
				Aliases:     []string{"s"},
				Usage:       "toast style (info, success, warning, error, message or custom)",
				Destination: &cmd.style,
			},
			&cli.StringFlag{
				Name:        "icon",
				Usage:       "icon shown before the title",
				Destination: &cmd.icon,
			},
			&cli.StringFlag{
				Name:        "title",
				Aliases:     []string{"t"},
				Usage:       "toast title",
				Destination: &cmd.title,
			},
			&cli.StringFlag{
				Name:        "topic",
				Usage:       "topic used by style rules (defaults to the subject or channel)",
				Destination: &cmd.topic,
			},
			&cli.BoolFlag{
				Name:        "markdown",
				Aliases:     []string{"m"},
				Usage:       "render the message as markdown",
				Destination: &cmd.markdown,
			},
			&cli.BoolFlag{
				Name:        "no-close",
				Usage:       "hide the close button",
				Destination: &cmd.noClose,
			},
			&cli.DurationFlag{
				Name:        "timeout",
				Usage:       "publish timeout",
				Value:       5 * time.Second,
				Destination: &cmd.timeout,
			},
			&cli.BoolFlag{
				Name:        "verbose",
				Aliases:     []string{"v"},
				Usage:       "log publish details to stderr",
				Destination: &cmd.verbose,
			},
		},
		Action: cmd.run,
	})

	return app
}

// target is the resolved feed a notification is sent to.
type target struct {
	kind string // nats or redis
	addr string
	name string // subject or channel
}

func (t target) field() string {
	if t.kind == "redis" {
		return "channel"
	}
	return "subject"
}

func (t target) String() string {
	return fmt.Sprintf("%s %s (%s)", t.kind, t.name, t.addr)
}

func (cmd *SendCmd) run(ctx context.Context, c *cli.Command) error {
	var base notify.Notification
	if cmd.file.IsSet() {
		n, err := cmd.file.Read()
		if err != nil {
			return err
		}
		base = n
	}
	if c.Args().Present() {
		base.Body = strings.Join(c.Args().Slice(), " ")
	}

	tgt, err := cmd.resolveTarget()
	if err != nil {
		return err
	}

	n := cmd.notification(base)

	if err := criterio.ValidateStruct(
		validate.MessageBodyField("message", n.Body),
		validate.SubjectField(tgt.field(), tgt.name),
	); err != nil {
		return err
	}

	logLevel := "warn"
	if cmd.verbose {
		logLevel = "debug"
	}
	logger, err := logutils.NewConsole(logLevel, os.Stderr)
	if err != nil {
		return err
	}

	pub, err := cmd.publisher(tgt)
	if err != nil {
		return err
	}
	defer func() {
		if err := pub.Close(); err != nil {
			logger.Warn().Err(err).Msg("close publisher")
		}
	}()

	ctx, cancel := context.WithTimeout(ctx, cmd.timeout)
	defer cancel()

	logger.Debug().
		Str("feed", tgt.kind).
		Str("addr", tgt.addr).
		Str("subject", tgt.name).
		Str("style", string(n.Style)).
		Msg("publishing notification")

	if err := pub.Publish(ctx, n); err != nil {
		return err
	}

	printer.Ctx(ctx).Successf("sent to %s", tgt)
	return nil
}

// resolveTarget picks the feed from flags, falling back to the config file.
// An explicit --redis wins over a configured NATS URL.
func (cmd *SendCmd) resolveTarget() (target, error) {
	feeds := cmd.flags.Config.Feeds

	switch {
	case cmd.redis != "":
		return target{kind: "redis", addr: cmd.redis, name: cmd.redisChannel()}, nil
	case cmd.natsURL != "":
		return target{kind: "nats", addr: cmd.natsURL, name: cmd.subject}, nil
	case feeds.NATS.URL != "":
		return target{kind: "nats", addr: feeds.NATS.URL, name: cmd.subject}, nil
	case feeds.Redis.Addr != "":
		return target{kind: "redis", addr: feeds.Redis.Addr, name: cmd.redisChannel()}, nil
	}

	return target{}, errors.New("no feed configured: pass --nats or --redis, or set feeds in the config file")
}

func (cmd *SendCmd) redisChannel() string {
	if cmd.channel != "" {
		return cmd.channel
	}
	return cmd.flags.Config.Feeds.Redis.Channel
}

func (cmd *SendCmd) publisher(tgt target) (feed.Publisher, error) {
	if tgt.kind == "redis" {
		return feed.NewRedisPublisher(tgt.addr, tgt.name), nil
	}

	pub, err := feed.NewNATSPublisher(tgt.addr, tgt.name)
	if err != nil {
		return nil, err
	}
	return pub, nil
}

// notification applies the style flags over n. Empty flags keep the
// document's values.
func (cmd *SendCmd) notification(n notify.Notification) notify.Notification {
	if cmd.style != "" {
		n.Style = notify.Style(cmd.style)
	}
	if cmd.icon != "" {
		n.Icon = cmd.icon
	}
	if cmd.title != "" {
		n.Title = cmd.title
	}
	if cmd.topic != "" {
		n.Topic = cmd.topic
	}
	if cmd.markdown {
		n.Markdown = true
	}
	if cmd.noClose {
		closable := false
		n.Closable = &closable
	}
	return n
}
