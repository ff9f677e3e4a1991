// Package logging builds the console logger shared by every halfsnap command.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/lmittmann/tint"
	"golang.org/x/term"
)

// TimeFormat is the timestamp layout of console records.
const TimeFormat = "2006-01-02 15:04:05.000Z07:00"

// errorColor is the ANSI colour tint uses for error-valued attributes.
const errorColor = 9

// ParseLevel maps a config level name to a slog level. The empty string is
// info.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q (want debug, info, warn or error)", s)
	}
}

// New returns a tint-backed logger writing to w at level. Colour is enabled
// only when w is a terminal and NO_COLOR is unset.
func New(w io.Writer, level slog.Level) *slog.Logger {
	return NewLeveler(w, level)
}

// NewLeveler is like New but reads the level from lv on every record, so the
// level can change after the logger is built.
func NewLeveler(w io.Writer, lv slog.Leveler) *slog.Logger {
	handler := tint.NewHandler(w, &tint.Options{
		Level:       lv,
		TimeFormat:  TimeFormat,
		NoColor:     !colorable(w),
		ReplaceAttr: highlightErrors,
	})
	return slog.New(handler)
}

func highlightErrors(_ []string, a slog.Attr) slog.Attr {
	if a.Value.Kind() == slog.KindAny {
		if _, ok := a.Value.Any().(error); ok {
			return tint.Attr(errorColor, a)
		}
	}
	return a
}

func colorable(w io.Writer) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}
