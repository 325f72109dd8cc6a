// Package diag is dj's logging facade: a charmbracelet/log wrapper that
// turns the CLI's -v/-t/-p/--pace flags into leveled, structured output on
// stderr, the way open-platform-model-cli's internal/output package wraps
// the same library for its own CLI.
package diag

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
)

// Logger is dj's process-wide diagnostic sink. The zero value is not
// usable; construct one with New.
type Logger struct {
	base     *log.Logger
	trace    bool
	progress bool
	pace     bool
}

// New builds a Logger per the CLI's -v (verbose), -t (trace_ops), -p
// (progress) and --pace flags.
func New(verbose, trace, progress, pace bool) *Logger {
	level := log.WarnLevel
	if progress || pace {
		level = log.InfoLevel
	}
	if verbose || trace {
		level = log.DebugLevel
	}
	base := log.NewWithOptions(os.Stderr, log.Options{
		Level:           level,
		ReportTimestamp: verbose,
		TimeFormat:      "15:04:05",
	})
	return &Logger{base: base, trace: trace, progress: progress, pace: pace}
}

// Debugf logs a verbose-mode (-v) diagnostic message.
func (l *Logger) Debugf(format string, args ...any) {
	if l == nil {
		return
	}
	l.base.Debug(fmt.Sprintf(format, args...))
}

// TraceOp logs one operation's before/after EntryList when -t is set.
// Grounded on dj_ops.py's trace_ops prints around process_entries calls.
func (l *Logger) TraceOp(label string, before, after []string) {
	if l == nil || !l.trace {
		return
	}
	l.base.Debug("op", "op", label, "in", before, "out", after)
}

// TraceStore logs a set-store operation's effect when -t is set. Grounded
// on dj_ops.py's StoreInSet/StoreFilteredInSet/StoreNotApplicableInSet
// trace prints.
func (l *Logger) TraceStore(setName string, stored []string) {
	if l == nil || !l.trace {
		return
	}
	l.base.Debug("storing", "set", setName, "entries", stored)
}

// Ignoring logs an entry elided because it is in the ignored set, or the
// empty string, when -t is set.
func (l *Logger) Ignoring(entry string) {
	if l == nil || !l.trace {
		return
	}
	l.base.Debug("ignoring", "entry", entry)
}

// Progress logs the entry about to be processed when -p is set.
func (l *Logger) Progress(entry string) {
	if l == nil || !l.progress {
		return
	}
	l.base.Info("processing", "entry", entry)
}

// Pace logs rolling throughput when --pace is set.
func (l *Logger) Pace(count int, entriesPerSecond float64) {
	if l == nil || !l.pace {
		return
	}
	l.base.Info("pace", "processed", count, "entries_per_second", int(entriesPerSecond))
}

// Errorf logs a runtime or I/O failure (spec §7.3, §7.4). Unlike the trace
// methods, this always prints: it is how a failure that doesn't abort the
// run is still surfaced to the operator.
func (l *Logger) Errorf(format string, args ...any) {
	if l == nil {
		fmt.Fprintf(os.Stderr, "[error] "+format+"\n", args...)
		return
	}
	l.base.Error(fmt.Sprintf(format, args...))
}
