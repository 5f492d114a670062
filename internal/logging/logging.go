// Package logging builds the structured logger used across rpmlb.
//
// The logger is created once from a [Config] and passed explicitly to the
// components that log; the global slog default is only set by the entry
// point. Levels follow the command-line flags: debug enables debug records,
// quiet keeps warnings and errors only. Verbose output adds timestamps and
// source locations even on a terminal.
package logging

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/mattn/go-isatty"
)

// Output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
)

var ErrUnknownFormat = errors.New("unknown log format")

// Logging configuration merged from build-time defaults and flags.
type Config struct {
	Debug   bool      // Log debug records.
	Quiet   bool      // Log warnings and errors only. Ignored when Debug is set.
	Verbose bool      // Add timestamps and source locations.
	Format  string    // FormatText or FormatJSON. Empty selects FormatText.
	Stream  io.Writer // Destination. Nil selects os.Stderr.
}

// Returns the minimum level enabled by the configuration.
func (c Config) Level() slog.Level {
	switch {
	case c.Debug:
		return slog.LevelDebug
	case c.Quiet:
		return slog.LevelWarn
	}
	return slog.LevelInfo
}

// Creates a logger from the configuration.
func New(c Config) (*slog.Logger, error) {
	stream := c.Stream
	if stream == nil {
		stream = os.Stderr
	}

	opts := &slog.HandlerOptions{
		Level:     c.Level(),
		AddSource: c.Verbose,
	}

	switch c.Format {
	case "", FormatText:
		if terminal(stream) && !c.Verbose {
			opts.ReplaceAttr = dropTime
		}
		return slog.New(slog.NewTextHandler(stream, opts)), nil
	case FormatJSON:
		return slog.New(slog.NewJSONHandler(stream, opts)), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, c.Format)
}

// Removes the top-level time attribute.
func dropTime(groups []string, a slog.Attr) slog.Attr {
	if len(groups) == 0 && a.Key == slog.TimeKey {
		return slog.Attr{}
	}
	return a
}

// Whether w is an interactive terminal.
func terminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
