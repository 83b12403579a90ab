// Package log holds the logger shared by the temporal packages. It
// discards everything until a program installs a logger with [Set].
package log

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync/atomic"

	"github.com/theory/temporal/errs"
)

//nolint:gochecknoglobals
var logger atomic.Pointer[slog.Logger]

//nolint:gochecknoinits
func init() {
	logger.Store(Discard())
}

// Logger returns the current logger.
func Logger() *slog.Logger {
	return logger.Load()
}

// Set installs l as the logger. A nil l restores the discarding logger.
func Set(l *slog.Logger) {
	if l == nil {
		l = Discard()
	}
	logger.Store(l)
}

// Discard returns a logger that writes nothing.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// New returns a text logger writing records at level and above to w.
func New(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// ParseLevel parses a level name: debug, info, warn, or error. The empty
// string means warn.
func ParseLevel(s string) (slog.Level, error) {
	var level slog.Level
	switch name := strings.ToLower(strings.TrimSpace(s)); name {
	case "":
		return slog.LevelWarn, nil
	case "debug", "info", "warn", "error":
		if err := level.UnmarshalText([]byte(name)); err != nil {
			return 0, err
		}
		return level, nil
	default:
		return 0, fmt.Errorf("%w: invalid log level %q", errs.ErrRange, s)
	}
}
