// Package diag prints user-facing diagnostics and builds the structured
// logger shared by the commands.
package diag

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/term"
)

var (
	errorPrefix = color.New(color.FgRed, color.Bold)
	warnPrefix  = color.New(color.FgYellow)
)

// IsTerminal reports whether w is an interactive terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(interface{ Fd() uintptr })
	return ok && term.IsTerminal(int(f.Fd()))
}

func prefix(w io.Writer, c *color.Color, s string) string {
	if !IsTerminal(w) || os.Getenv("NO_COLOR") != "" {
		return s
	}
	c.EnableColor()
	return c.Sprint(s)
}

// Errorf prints "error: <msg>" to w.
func Errorf(w io.Writer, format string, a ...any) {
	_, _ = fmt.Fprintf(w, "%s %s\n", prefix(w, errorPrefix, "error:"), fmt.Sprintf(format, a...))
}

// Warnf prints "warning: <msg>" to w unless quiet.
func Warnf(w io.Writer, quiet bool, format string, a ...any) {
	if quiet {
		return
	}
	_, _ = fmt.Fprintf(w, "%s %s\n", prefix(w, warnPrefix, "warning:"), fmt.Sprintf(format, a...))
}

// ParseLevel maps debug, info, warn and error to slog levels.
func ParseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return slog.LevelWarn, fmt.Errorf("invalid log level %q", s)
	}
	return l, nil
}

// NewLogger returns a text logger on w at level.
func NewLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
