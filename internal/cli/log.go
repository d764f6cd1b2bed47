// Package cli implements the elementmerge command-line interface.
//
// This package provides commands for inspecting architecture models, finding
// duplicate elements, merging them, rendering diagrams and managing the model
// store. The CLI is built using cobra and supports verbose logging via the
// charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - inspect: List the elements of a model
//   - candidates: Find groups of elements sharing a type and name
//   - merge: Merge selected elements into a target
//   - render: Render a diagram as DOT, SVG, PDF or PNG
//   - store: Put, get, list and remove stored models
//   - serve: Serve stored models over HTTP
//
// Model arguments are file paths, or "store:<name>" for a model held in the
// configured store.
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging and --quiet (-q)
// to keep only warnings. Loggers are passed through context.Context. Progress
// of slow steps (store access, writing, rendering) is shown on stderr.
//
// # Example
//
//	import "github.com/matzehuels/elementmerge/internal/cli"
//
//	func main() {
//	    c := cli.New(os.Stderr, cli.LogInfo)
//	    if err := c.RootCommand().Execute(); err != nil {
//	        os.Exit(1)
//	    }
//	}
package cli

import (
	"context"
	"io"

	"github.com/charmbracelet/log"
)

// newLogger creates the CLI logger, writing to w with a short timestamp.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// verbosity maps the --verbose and --quiet flags to a log level. Quiet wins,
// and keeps warnings such as a merged model failing validation.
func verbosity(verbose, quiet bool) log.Level {
	switch {
	case quiet:
		return log.WarnLevel
	case verbose:
		return log.DebugLevel
	}
	return log.InfoLevel
}

type ctxKey int

const loggerKey ctxKey = 0

// withLogger attaches l to ctx for the commands and the merge hooks below them.
func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext returns the logger attached by withLogger, or
// log.Default() when there is none.
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
