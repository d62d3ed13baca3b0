// Package log builds the process-wide zerolog.Logger pegof's
// components receive explicitly rather than read from a package-level
// global, per SPEC_FULL.md's ambient-stack section: a pretty
// console writer when stderr is a terminal, structured JSON otherwise,
// so piping pegof's stderr into a log aggregator never has to parse
// human-formatted text.
package log

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
)

// New builds a Logger writing to w. debug raises the minimum level to
// trace so pass-by-pass optimizer events are visible; otherwise only
// info and above are emitted.
func New(w io.Writer, debug bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.TraceLevel
	}

	var out io.Writer = w
	if f, ok := w.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
		out = zerolog.ConsoleWriter{Out: f, TimeFormat: "15:04:05"}
	}

	return zerolog.New(out).Level(level).With().Timestamp().Logger()
}

// Discard returns a Logger that drops every event, used by tests and
// library callers that don't want pegof's diagnostics on their own
// stderr.
func Discard() zerolog.Logger {
	return zerolog.Nop()
}
