package config

import (
	"fmt"
	"net"
	"net/url"
	"os"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/hay-kot/criterio"

	"github.com/hay-kot/toastq/internal/core/notify"
	"github.com/hay-kot/toastq/internal/core/styles"
)

// ValidationWarning represents a non-fatal configuration issue.
type ValidationWarning struct {
	Category string `json:"category"`
	Item     string `json:"item,omitempty"`
	Message  string `json:"message"`
}

// ValidateDeep performs comprehensive validation of the configuration including
// glob patterns, theme names, feed addresses and file accessibility. The
// configPath argument specifies the config file location to validate (empty
// string skips config file check). This calls Validate() first for basic
// structural validation.
func (c *Config) ValidateDeep(configPath string) error {
	if err := c.Validate(); err != nil {
		return err
	}

	return criterio.ValidateStruct(
		c.validateFileAccess(configPath),
		criterio.Run("tui.theme", c.TUI.Theme, themeExists),
		c.validateFeeds(),
		c.validateRules(),
		criterio.Run("metrics.addr", c.Metrics.Addr, hostPort),
	)
}

// Warnings returns non-fatal configuration issues.
func (c *Config) Warnings() []ValidationWarning {
	var warnings []ValidationWarning

	for i, rule := range c.Rules {
		if !rule.Style.IsBuiltin() {
			warnings = append(warnings, ValidationWarning{
				Category: "Rules",
				Item:     fmt.Sprintf("rule %d", i),
				Message:  fmt.Sprintf("style %q is not built in and renders with the base style", rule.Style),
			})
		}
	}

	if c.Feeds.NATS.URL == "" && c.Feeds.Redis.Addr == "" {
		warnings = append(warnings, ValidationWarning{
			Category: "Feeds",
			Message:  "no remote feed configured",
		})
	}

	return warnings
}

// validateFileAccess checks config file and data directory.
func (c *Config) validateFileAccess(configPath string) error {
	return criterio.ValidateStruct(
		validateConfigFile(configPath),
		criterio.Run("data_dir", c.DataDir, isDirectoryOrNotExist),
	)
}

func validateConfigFile(configPath string) error {
	if configPath == "" {
		return nil
	}

	info, err := os.Stat(configPath)
	if os.IsNotExist(err) {
		return nil // not found is fine, using defaults
	}
	if err != nil {
		return criterio.NewFieldErrors("config_file", fmt.Errorf("cannot access: %w", err))
	}
	if info.IsDir() {
		return criterio.NewFieldErrors("config_file", fmt.Errorf("%s is a directory, not a file", configPath))
	}
	return nil
}

// isDirectoryOrNotExist validates that a path is a directory or doesn't exist.
func isDirectoryOrNotExist(path string) error {
	if path == "" {
		return nil
	}
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil // will be created
	}
	if err != nil {
		return fmt.Errorf("cannot access: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("exists but is not a directory")
	}
	return nil
}

func themeExists(name string) error {
	if _, ok := styles.GetPalette(name); !ok {
		return fmt.Errorf("unknown theme %q (available: %v)", name, styles.ThemeNames())
	}
	return nil
}

func (c *Config) validateFeeds() error {
	var errs criterio.FieldErrorsBuilder

	if u := c.Feeds.NATS.URL; u != "" {
		parsed, err := url.Parse(u)
		switch {
		case err != nil:
			errs = errs.Append("feeds.nats.url", fmt.Errorf("invalid url: %w", err))
		case parsed.Scheme != "nats" && parsed.Scheme != "tls" && parsed.Scheme != "ws" && parsed.Scheme != "wss":
			errs = errs.Append("feeds.nats.url", fmt.Errorf("unsupported scheme %q", parsed.Scheme))
		}
	}

	if err := hostPort(c.Feeds.Redis.Addr); err != nil {
		errs = errs.Append("feeds.redis.addr", err)
	}

	return errs.ToError()
}

// validateRules checks rule globs compile and styles are non-empty.
func (c *Config) validateRules() error {
	var errs criterio.FieldErrorsBuilder
	for i, rule := range c.Rules {
		if !doublestar.ValidatePattern(rule.Match) {
			errs = errs.Append(fmt.Sprintf("rules[%d].match", i), fmt.Errorf("invalid glob %q", rule.Match))
		}
		if rule.Style == notify.Style("") {
			errs = errs.Append(fmt.Sprintf("rules[%d].style", i), fmt.Errorf("style is required"))
		}
	}
	return errs.ToError()
}

func hostPort(addr string) error {
	if addr == "" {
		return nil
	}
	if _, _, err := net.SplitHostPort(addr); err != nil {
		return fmt.Errorf("invalid address %q: %w", addr, err)
	}
	return nil
}
