// Package logger holds the process-wide zerolog instance. Packages without an
// injected logger write through the helpers here.
package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var base zerolog.Logger

// Config selects the minimum level and the output format.
type Config struct {
	Level zerolog.Level
	// Pretty writes console lines instead of JSON.
	Pretty bool
	Output io.Writer
}

// ParseLevel reads a configured level name. Unknown or empty names mean info.
func ParseLevel(s string) zerolog.Level {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(s)))
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return lvl
}

// Configure replaces the process logger and returns it.
func Configure(cfg Config) zerolog.Logger {
	out := cfg.Output
	if out == nil {
		out = os.Stdout
	}
	if cfg.Pretty {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}

	zerolog.TimeFieldFormat = time.RFC3339
	zerolog.SetGlobalLevel(cfg.Level)

	base = zerolog.New(out).With().Timestamp().Logger()
	log.Logger = base
	return base
}

// Component returns a child logger tagged with name.
func Component(name string) zerolog.Logger {
	return base.With().Str("component", name).Logger()
}

func Debug() *zerolog.Event { return base.Debug() }
func Info() *zerolog.Event  { return base.Info() }
func Warn() *zerolog.Event  { return base.Warn() }
func Error() *zerolog.Event { return base.Error() }

func init() {
	Configure(Config{Level: zerolog.InfoLevel, Pretty: true})
}
