// Package appshell is the shared main() of every command.
package appshell

import (
	"context"
	"errors"
	"io"
	"os"
	"os/signal"
	"syscall"

	"genrich/internal/table"
)

// Exit codes shared by every command.
const (
	ExitOK          = 0
	ExitUsage       = 2 // bad flags or an input that fails its header contract
	ExitIO          = 3
	ExitInterrupted = 130
)

// Main runs run with a context cancelled on SIGINT/SIGTERM and exits with its
// code. Unlike the flag-driven tools, an empty argv is passed through: every
// stage has usable default paths.
func Main(run func(context.Context, []string, io.Writer, io.Writer) int) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	// Normalize cancellation exit code.
	if ctx.Err() != nil && (code == ExitOK || code == ExitIO) {
		code = ExitInterrupted
	}

	stop()
	os.Exit(code)
}

// ExitCode classifies a stage error.
func ExitCode(err error) int {
	var he *table.HeaderError
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, context.Canceled):
		return ExitInterrupted
	case errors.As(err, &he):
		return ExitUsage
	default:
		return ExitIO
	}
}
