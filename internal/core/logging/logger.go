// Package logging scopes the global zerolog logger for toastq components.
package logging

import (
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Component creates a new logger with a component identifier taken from the
// global logger configured in main.
func Component(name string) zerolog.Logger {
	return log.With().Str("component", name).Logger()
}
