package logging

import (
	"fmt"
	"io"
	"time"
)

// Logger writes scan diagnostics. Everything except Infof is gated on
// Verbose; a nil Writer discards everything.
type Logger struct {
	Writer  io.Writer
	Verbose bool
}

func New(writer io.Writer, verbose bool) Logger {
	return Logger{Writer: writer, Verbose: verbose}
}

func (l Logger) Infof(format string, args ...any) {
	if l.Writer == nil {
		return
	}
	fmt.Fprintf(l.Writer, format+"\n", args...)
}

func (l Logger) Verbosef(format string, args ...any) {
	if !l.Verbose {
		return
	}
	l.Infof("dirmeta: "+format, args...)
}

// Entryf logs a line about a single directory entry, keyed by its name.
func (l Logger) Entryf(name, format string, args ...any) {
	if !l.Verbose {
		return
	}
	l.Infof("dirmeta: %-24s "+format, append([]any{name}, args...)...)
}

// Measure returns a stop function that logs the elapsed time when called.
func (l Logger) Measure(label string) func() {
	if !l.Verbose {
		return func() {}
	}
	start := time.Now()
	return func() {
		l.Verbosef("%s done in %s", label, time.Since(start).Round(time.Millisecond))
	}
}
