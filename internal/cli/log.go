// Package cli implements the texforge command-line interface.
//
// This package provides commands for turning TOML document descriptions into
// LaTeX source and PDFs, serving the same over HTTP, and managing the
// artifact cache. The CLI is built using cobra and logs via the
// charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - render: Print or write the LaTeX source of a description
//   - build: Write the .tex file and optionally compile it to PDF
//   - serve: Run the HTTP render/compile service
//   - cache: Manage the compiled-PDF cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context so commands and hooks share one logger.
package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger creates the CLI logger. Timestamps are short ("14:32:01.45")
// because runs rarely span more than a few minutes.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress measures one step of a command and logs it with its duration.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg at info level with the elapsed time appended as a field,
// e.g. `Compiled report.pdf elapsed=1.234s engine=pdflatex`.
func (p *progress) done(msg string, keyvals ...any) {
	elapsed := time.Since(p.start).Round(time.Millisecond)
	p.logger.Info(msg, append([]any{"elapsed", elapsed}, keyvals...)...)
}

type ctxKey int

const loggerKey ctxKey = 0

// withLogger attaches l to ctx for loggerFromContext.
func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext returns the logger attached by withLogger, or
// log.Default() so that commands run outside RootCommand still log.
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
