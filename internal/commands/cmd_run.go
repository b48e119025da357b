package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/hay-kot/toastq/internal/core/config"
	"github.com/hay-kot/toastq/internal/core/feed"
	"github.com/hay-kot/toastq/internal/core/logging"
	"github.com/hay-kot/toastq/internal/core/notify"
	"github.com/hay-kot/toastq/internal/core/queue"
	"github.com/hay-kot/toastq/internal/debugserver"
	"github.com/hay-kot/toastq/internal/metrics"
	"github.com/hay-kot/toastq/internal/tui"
)

// feedErrorTopic tags toasts reporting a failed feed.
const feedErrorTopic = "toastq.feed"

type RunCmd struct {
	flags   *Flags
	version string

	// Command-specific flags
	visibleCount int
	fillFromTop  bool
	autoScroll   bool
	stdin        bool
	metricsAddr  string
}

// NewRunCmd creates a new run command
func NewRunCmd(flags *Flags, version string) *RunCmd {
	return &RunCmd{flags: flags, version: version}
}

// Flags returns the run flags for registration on the root command
func (cmd *RunCmd) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.IntFlag{
			Name:        "visible-count",
			Aliases:     []string{"n"},
			Usage:       "number of toasts kept on screen when auto-scroll is enabled",
			Sources:     cli.EnvVars("TOASTQ_VISIBLE_COUNT"),
			Destination: &cmd.visibleCount,
		},
		&cli.BoolFlag{
			Name:        "fill-from-top",
			Usage:       "insert new toasts at the top of the stack",
			Sources:     cli.EnvVars("TOASTQ_FILL_FROM_TOP"),
			Destination: &cmd.fillFromTop,
		},
		&cli.BoolFlag{
			Name:        "auto-scroll",
			Usage:       "evict the oldest toast once the visible count is exceeded",
			Sources:     cli.EnvVars("TOASTQ_AUTO_SCROLL"),
			Destination: &cmd.autoScroll,
		},
		&cli.BoolFlag{
			Name:        "stdin",
			Usage:       "read notifications from stdin (JSON or plain lines)",
			Destination: &cmd.stdin,
		},
		&cli.StringFlag{
			Name:        "metrics-addr",
			Usage:       "serve prometheus metrics and pprof on host:port",
			Sources:     cli.EnvVars("TOASTQ_METRICS_ADDR"),
			Destination: &cmd.metricsAddr,
		},
	}
}

// Register adds the run command to the application
func (cmd *RunCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "run",
		Usage:     "Open the notification surface",
		UsageText: "toastq run [options]",
		Description: `Opens the terminal notification surface and subscribes to the configured feeds.

Notifications arrive from NATS, Redis pub/sub or stdin and are shown as a
stack of toasts in the corner of the screen. Press 'n' to publish a sample
toast and '?' for all key bindings.

Examples:
  toastq run --auto-scroll --visible-count 3
  tail -f build.log | toastq run --stdin`,
		Flags:  cmd.Flags(),
		Action: cmd.run,
	})

	return app
}

// Run executes the surface. Exported for use as default command.
func (cmd *RunCmd) Run(ctx context.Context, c *cli.Command) error {
	return cmd.run(ctx, c)
}

func (cmd *RunCmd) run(ctx context.Context, c *cli.Command) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return errors.New("toastq run needs an interactive terminal; use 'toastq send' from scripts")
	}

	cfg := *cmd.flags.Config
	cmd.applyOverrides(c, &cfg)

	logger := logging.Component("queue")

	var (
		observer  queue.Observer = queue.NopObserver{}
		collector *metrics.Collector
	)
	if cfg.Metrics.Addr != "" {
		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector())
		collector = metrics.NewCollector(reg)
		observer = collector

		srv := debugserver.New(cfg.Metrics.Addr, reg)
		if err := srv.Start(ctx); err != nil {
			return fmt.Errorf("start metrics server: %w", err)
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				log.Error().Err(err).Msg("failed to shutdown metrics server")
			}
		}()
		log.Info().
			Str("url", fmt.Sprintf("http://%s/metrics", srv.Addr())).
			Msg("metrics endpoint available")
	}

	stack := tui.NewStack()
	anim := tui.NewTickAnimator(cfg.Animation.Duration, cfg.Animation.FrameInterval)
	q := queue.New(stack, anim, queueOptions(cfg, logger, observer)...)
	if collector != nil {
		collector.WatchSize(q.Size)
	}

	q.SetHideListener(func(m *queue.Message) {
		log.Debug().Str("message_id", m.ID().String()).Msg("toast dismissed")
	})
	q.SetClickListener(func(m *queue.Message) {
		log.Debug().Str("message_id", m.ID().String()).Msg("toast clicked")
		if m.Closable() {
			m.Hide()
		}
	})

	buffer := tui.NewNotificationBuffer()

	var (
		programOpts []tea.ProgramOption
		stdin       io.Reader
	)
	if cmd.stdin {
		// Keyboard input comes from the controlling terminal while stdin
		// carries the feed.
		tty, err := os.Open("/dev/tty")
		if err != nil {
			return fmt.Errorf("open tty: %w", err)
		}
		defer func() { _ = tty.Close() }()
		programOpts = append(programOpts, tea.WithInput(tty))
		stdin = os.Stdin
	}

	sources := feedSources(cfg, stdin, logging.Component("feed"))

	feedCtx, cancelFeeds := context.WithCancel(ctx)
	defer cancelFeeds()

	feedErr := make(chan error, 1)
	if len(sources) > 0 {
		go func() {
			feedErr <- runFeeds(feedCtx, logging.Component("feed"), buffer.Push, cfg.Rules, sources)
		}()
	} else {
		close(feedErr)
	}

	m := tui.New(tui.Options{
		Queue:    q,
		Stack:    stack,
		Animator: anim,
		Buffer:   buffer,
		Width:    cfg.TUI.Width,
		Markdown: cfg.TUI.Markdown,
		Version:  cmd.version,
	})

	p := tea.NewProgram(m, programOpts...)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}

	cancelFeeds()
	if err := <-feedErr; err != nil {
		log.Error().Err(err).Msg("feed stopped")
	}
	return nil
}

// applyOverrides copies explicitly set flags over the loaded config.
func (cmd *RunCmd) applyOverrides(c *cli.Command, cfg *config.Config) {
	if c.IsSet("visible-count") {
		cfg.Queue.VisibleCount = cmd.visibleCount
	}
	if c.IsSet("fill-from-top") {
		cfg.Queue.FillFromTop = cmd.fillFromTop
	}
	if c.IsSet("auto-scroll") {
		cfg.Queue.AutoScroll = cmd.autoScroll
	}
	if c.IsSet("metrics-addr") {
		cfg.Metrics.Addr = cmd.metricsAddr
	}
}

// runFeeds runs sources until ctx is cancelled, routing their notifications
// through the style rules into sink. A feed failing while the surface is
// still open is shown on the surface as an error toast.
func runFeeds(ctx context.Context, logger zerolog.Logger, sink feed.Sink, rules []config.Rule, sources []feed.Source) error {
	router := feed.NewRouter(feedRules(rules))

	err := feed.Run(ctx, logger, router.Wrap(sink), sources...)
	if err != nil && ctx.Err() == nil {
		sink(notify.Notification{
			Style: notify.StyleError,
			Title: "Feed stopped",
			Body:  err.Error(),
			Topic: feedErrorTopic,
		})
	}
	return err
}

func queueOptions(cfg config.Config, logger zerolog.Logger, observer queue.Observer) []queue.Option {
	return []queue.Option{
		queue.WithVisibleCount(cfg.Queue.VisibleCount),
		queue.WithFillFromTop(cfg.Queue.FillFromTop),
		queue.WithAutoScroll(cfg.Queue.AutoScroll),
		queue.WithLogger(logger),
		queue.WithObserver(observer),
	}
}

// feedSources builds a source for every configured feed. stdin may be nil.
func feedSources(cfg config.Config, stdin io.Reader, logger zerolog.Logger) []feed.Source {
	var sources []feed.Source
	if cfg.Feeds.NATS.URL != "" {
		sources = append(sources, feed.NewNATSSource(cfg.Feeds.NATS.URL, cfg.Feeds.NATS.Subject, logger))
	}
	if cfg.Feeds.Redis.Addr != "" {
		sources = append(sources, feed.NewRedisSource(cfg.Feeds.Redis.Addr, cfg.Feeds.Redis.Channel, logger))
	}
	if stdin != nil {
		sources = append(sources, feed.NewLineSource(stdin, "stdin", logger))
	}
	return sources
}

func feedRules(rules []config.Rule) []feed.Rule {
	out := make([]feed.Rule, len(rules))
	for i, r := range rules {
		out[i] = feed.Rule{Match: r.Match, Style: r.Style}
	}
	return out
}
