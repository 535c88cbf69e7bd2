// Package logging provides the optional log sink used across nodeview. The
// Logger interface matches *github.com/charmbracelet/log.Logger so callers can
// pass one straight through; a nil Logger is always replaced by a no-op.
package logging

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// Logger is the structured logging surface consumed by the render pipeline.
type Logger interface {
	Debug(msg any, keyvals ...any)
	Info(msg any, keyvals ...any)
	Warn(msg any, keyvals ...any)
	Error(msg any, keyvals ...any)
}

var _ Logger = (*log.Logger)(nil)

// New creates a charmbracelet logger writing to w at the given level.
// Timestamps are formatted as "HH:MM:SS.ms".
func New(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
		Prefix:          "nodeview",
	})
}

// ParseLevel maps a textual level to a log.Level, defaulting to info.
func ParseLevel(raw string) log.Level {
	level, err := log.ParseLevel(raw)
	if err != nil {
		return log.InfoLevel
	}
	return level
}

type nop struct{}

func (nop) Debug(any, ...any) {}
func (nop) Info(any, ...any)  {}
func (nop) Warn(any, ...any)  {}
func (nop) Error(any, ...any) {}

// Nop returns a Logger that discards everything.
func Nop() Logger {
	return nop{}
}

// Or returns l, or a no-op logger when l is nil.
func Or(l Logger) Logger {
	if l == nil {
		return nop{}
	}
	if typed, ok := l.(*log.Logger); ok && typed == nil {
		return nop{}
	}
	return l
}

// Timer tracks the start of an operation and logs completion with the elapsed
// duration.
type Timer struct {
	logger Logger
	start  time.Time
}

// Start captures the current time.
func Start(l Logger) Timer {
	return Timer{logger: Or(l), start: time.Now()}
}

// Elapsed returns the time since Start.
func (t Timer) Elapsed() time.Duration {
	return time.Since(t.start)
}

// Done logs msg at debug level with an "elapsed" key appended.
func (t Timer) Done(msg string, keyvals ...any) {
	keyvals = append(keyvals, "elapsed", t.Elapsed().Round(time.Microsecond))
	t.logger.Debug(msg, keyvals...)
}

type ctxKey int

const loggerKey ctxKey = 0

// WithLogger returns a context carrying l.
func WithLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// FromContext returns the logger stored in ctx, or log.Default().
func FromContext(ctx context.Context) *log.Logger {
	if ctx != nil {
		if l, ok := ctx.Value(loggerKey).(*log.Logger); ok && l != nil {
			return l
		}
	}
	return log.Default()
}
