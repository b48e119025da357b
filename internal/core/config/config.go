// Package config handles configuration loading and validation for toastq.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/hay-kot/toastq/internal/core/notify"
)

// Config holds the application configuration.
type Config struct {
	Queue     QueueConfig     `yaml:"queue"`
	Animation AnimationConfig `yaml:"animation"`
	TUI       TUIConfig       `yaml:"tui"`
	Feeds     FeedsConfig     `yaml:"feeds"`
	Rules     []Rule          `yaml:"rules"`
	Metrics   MetricsConfig   `yaml:"metrics"`
	DataDir   string          `yaml:"-"` // set by caller, not from config file
}

// QueueConfig configures the visible window of the notification queue.
type QueueConfig struct {
	VisibleCount int  `yaml:"visible_count"`
	FillFromTop  bool `yaml:"fill_from_top"`
	AutoScroll   bool `yaml:"auto_scroll"`
}

// AnimationConfig controls enter/exit transitions in the terminal UI.
type AnimationConfig struct {
	Duration      time.Duration `yaml:"duration"`       // length of one enter or exit transition
	FrameInterval time.Duration `yaml:"frame_interval"` // tick interval driving transitions
}

// TUIConfig holds terminal UI display settings.
type TUIConfig struct {
	Theme    string `yaml:"theme"`
	Width    int    `yaml:"width"`    // toast width in cells
	Markdown bool   `yaml:"markdown"` // render bodies as markdown unless a message opts out
}

// FeedsConfig lists the remote notification sources. Empty addresses disable
// the corresponding feed.
type FeedsConfig struct {
	NATS  NATSFeed  `yaml:"nats"`
	Redis RedisFeed `yaml:"redis"`
}

// NATSFeed subscribes to a NATS subject.
type NATSFeed struct {
	URL     string `yaml:"url"`
	Subject string `yaml:"subject"`
}

// RedisFeed subscribes to a Redis pub/sub channel.
type RedisFeed struct {
	Addr    string `yaml:"addr"`
	Channel string `yaml:"channel"`
}

// Rule assigns a style to notifications whose topic matches a glob.
type Rule struct {
	// Match is a doublestar glob evaluated against the notification topic.
	Match string       `yaml:"match"`
	Style notify.Style `yaml:"style"`
}

// MetricsConfig configures the debug HTTP server.
type MetricsConfig struct {
	Addr string `yaml:"addr"` // empty disables the server
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Queue: QueueConfig{
			VisibleCount: 5,
			AutoScroll:   true,
		},
		Animation: AnimationConfig{
			Duration:      300 * time.Millisecond,
			FrameInterval: 30 * time.Millisecond,
		},
		TUI: TUIConfig{
			Theme:    "tokyo-night",
			Width:    44,
			Markdown: true,
		},
		Feeds: FeedsConfig{
			NATS:  NATSFeed{Subject: "toastq.>"},
			Redis: RedisFeed{Channel: "toastq"},
		},
	}
}

// Load reads configuration from the given path and sets the data directory.
// If configPath is empty or doesn't exist, returns defaults with the provided dataDir.
func Load(configPath, dataDir string) (*Config, error) {
	cfg := DefaultConfig()
	cfg.DataDir = dataDir

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			data, err := os.ReadFile(configPath)
			if err != nil {
				return nil, fmt.Errorf("read config file: %w", err)
			}

			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config file: %w", err)
			}

			cfg.DataDir = dataDir
		}
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// applyDefaults sets default values for any unset configuration options.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()
	if c.Queue.VisibleCount == 0 {
		c.Queue.VisibleCount = defaults.Queue.VisibleCount
	}
	if c.Animation.Duration == 0 {
		c.Animation.Duration = defaults.Animation.Duration
	}
	if c.Animation.FrameInterval == 0 {
		c.Animation.FrameInterval = defaults.Animation.FrameInterval
	}
	if c.TUI.Theme == "" {
		c.TUI.Theme = defaults.TUI.Theme
	}
	if c.TUI.Width == 0 {
		c.TUI.Width = defaults.TUI.Width
	}
	if c.Feeds.NATS.Subject == "" {
		c.Feeds.NATS.Subject = defaults.Feeds.NATS.Subject
	}
	if c.Feeds.Redis.Channel == "" {
		c.Feeds.Redis.Channel = defaults.Feeds.Redis.Channel
	}
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	if c.DataDir == "" {
		return fmt.Errorf("data directory cannot be empty")
	}

	if c.Queue.VisibleCount < 1 {
		return fmt.Errorf("queue.visible_count must be at least 1")
	}

	if c.Animation.Duration < 0 {
		return fmt.Errorf("animation.duration cannot be negative")
	}

	if c.Animation.FrameInterval <= 0 {
		return fmt.Errorf("animation.frame_interval must be positive")
	}

	if c.TUI.Width < 16 {
		return fmt.Errorf("tui.width must be at least 16")
	}

	for i, rule := range c.Rules {
		if rule.Match == "" {
			return fmt.Errorf("rule %d: match is required", i)
		}
		if rule.Style == "" {
			return fmt.Errorf("rule %d: style is required", i)
		}
	}

	return nil
}

// LogFile returns the default log file path inside the data directory.
func (c *Config) LogFile() string {
	return filepath.Join(c.DataDir, "toastq.log")
}
