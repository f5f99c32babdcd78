// Package logging configures ppp's charmbracelet/log loggers.
//
// All log output goes to stderr; stdout carries the rendered form when no
// output path is given, so nothing else may write there.
//
//	logging.Setup(logging.Options{Verbose: true})
//	logger := logging.New("convert")
//	logger.Info("rendering", "file", "household.xlsx")
//
// Setup must run before New: charmbracelet/log copies the default logger's
// state into a child at creation time.
package logging

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
)

// Level aliases for charmbracelet/log levels.
const (
	LevelDebug = log.DebugLevel
	LevelInfo  = log.InfoLevel
	LevelWarn  = log.WarnLevel
	LevelError = log.ErrorLevel
)

// Options controls the global logger.
type Options struct {
	// Verbose lowers the level to Debug.
	Verbose bool
	// Quiet raises the level to Error. Quiet wins over Verbose.
	Quiet bool
	// JSON switches to the NDJSON formatter.
	JSON bool
}

// Level returns the log level selected by o.
func (o Options) Level() log.Level {
	switch {
	case o.Quiet:
		return log.ErrorLevel
	case o.Verbose:
		return log.DebugLevel
	default:
		return log.InfoLevel
	}
}

// Setup configures the default logger. Call once during CLI initialization.
func Setup(o Options) {
	log.SetLevel(o.Level())
	log.SetOutput(os.Stderr)
	if o.JSON {
		log.SetFormatter(log.JSONFormatter)
	} else {
		log.SetFormatter(log.TextFormatter)
	}
}

// New creates a logger with the given component prefix. An empty component
// produces a logger without a prefix.
func New(component string) *log.Logger {
	return log.WithPrefix(component)
}

// SetOutput overrides the output writer of the default logger. Tests use it
// to capture output; restore os.Stderr with t.Cleanup.
func SetOutput(w io.Writer) {
	log.SetOutput(w)
}
