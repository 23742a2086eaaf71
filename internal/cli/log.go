// Package cli implements the noticegen command-line interface.
//
// The generate command reads a restored .NET project, resolves the license
// of every package it ships and writes the third-party notices file. The CLI
// is built using cobra and logs via the charmbracelet/log library.
//
// # Commands
//
//   - generate: Write (or with --check, verify) the notices file
//   - version: Print build information
//   - completion: Generate shell completion scripts
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context to allow structured progress tracking.
//
// # Example
//
//	import "github.com/matzehuels/noticegen/internal/cli"
//
//	func main() {
//	    c := cli.New(os.Stderr, cli.LogInfo)
//	    if err := c.RootCommand().ExecuteContext(ctx); err != nil {
//	        os.Exit(1)
//	    }
//	}
package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/noticegen/pkg/notices"
)

// newLogger creates a new logger with timestamp formatting.
// The logger writes to w and filters messages below level.
// Timestamps are formatted as "HH:MM:SS.ms" (e.g., "14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress measures a generate run and logs its completion line.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs the outcome of a run with the elapsed time, rounded to the
// millisecond: "Resolved 12 licenses for 40/42 libraries (1.234s)".
// Libraries left out of the notices are repeated as a warning.
func (p *progress) done(s notices.Summary) {
	p.logger.Infof("Resolved %d licenses for %d/%d libraries (%s)",
		s.Groups, s.Resolved, s.Libraries, time.Since(p.start).Round(time.Millisecond))
	if n := s.Unresolved(); n > 0 {
		p.logger.Warn("libraries without a license", "count", n)
	}
}

type ctxKey int

// loggerKey is the context key for storing a logger.
const loggerKey ctxKey = 0

// withLogger returns a new context with the given logger attached.
// The logger can be retrieved later with loggerFromContext.
func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext retrieves the logger from ctx, or log.Default() when
// none is attached.
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
