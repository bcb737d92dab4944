// Package stageapp is the application behind every single-stage binary.
package stageapp

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	"genrich/internal/appshell"
	"genrich/internal/config"
	"genrich/internal/diag"
	"genrich/internal/engine"
	"genrich/internal/progress"
	"genrich/internal/services"
	"genrich/internal/stagecli"
	"genrich/internal/stages"
	"genrich/internal/writers"
)

// Main returns the run function of the stage binary for stage.
func Main(stage string) func(context.Context, []string, io.Writer, io.Writer) int {
	return func(ctx context.Context, argv []string, stdout, stderr io.Writer) int {
		return RunContext(ctx, stage, argv, stdout, stderr)
	}
}

// RunContext runs stage with the default configuration.
func RunContext(parent context.Context, stage string, argv []string, stdout, stderr io.Writer) int {
	return RunConfig(parent, stage, config.Default(), argv, stdout, stderr)
}

// RunConfig runs stage with cfg providing default paths and service settings.
func RunConfig(parent context.Context, stage string, cfg config.Config, argv []string, stdout, stderr io.Writer) int {
	outw := bufio.NewWriterSize(stdout, 16<<10)
	flush := func(code int) int {
		if err := outw.Flush(); err != nil && !writers.IsBrokenPipe(err) {
			diag.Errorf(stderr, "%v", err)
			return appshell.ExitIO
		}
		return code
	}

	if !stages.Known(stage) {
		diag.Errorf(stderr, "unknown stage %q", stage)
		return appshell.ExitUsage
	}

	fs := stagecli.NewFlagSet(stage)
	fs.SetOutput(io.Discard) // silence default flag pkg

	opts, err := stagecli.ParseArgs(fs, argv, cfg.Paths(stage))
	if err != nil {
		fs.SetOutput(outw)
		if errors.Is(err, flag.ErrHelp) {
			fs.Usage()
			return flush(appshell.ExitOK)
		}
		diag.Errorf(stderr, "%v", err)
		fs.Usage()
		return flush(appshell.ExitUsage)
	}

	level, err := diag.ParseLevel(cfg.LogLevel)
	if err != nil {
		diag.Errorf(stderr, "%v", err)
		return appshell.ExitUsage
	}
	log := diag.NewLogger(stderr, level).With("stage", stage)

	svc := services.New(cfg, log)
	st, err := stages.New(stage, svc.Deps(cfg))
	if err != nil {
		diag.Errorf(stderr, "%v", err)
		return appshell.ExitUsage
	}

	res, err := engine.Run(parent, st, opts.Input, opts.Output, engine.Options{
		NewBar: func(desc string, total int) progress.Reporter { return progress.New(stderr, desc, total) },
	})
	if err != nil {
		if errors.Is(err, context.Canceled) {
			diag.Errorf(stderr, "%s: interrupted, %s left unchanged", stagecli.Command(stage), opts.Output)
		} else {
			diag.Errorf(stderr, "%v", err)
		}
		return appshell.ExitCode(err)
	}
	if n := svc.Degraded(); n > 0 {
		diag.Warnf(stderr, false, "%d of %d lookups returned no data", n, res.In)
	}
	log.Info("stage finished", "in", res.In, "out", res.Out, "output", opts.Output, "requests_failed", svc.Failures())
	_, _ = fmt.Fprintln(outw, res.String())
	return flush(appshell.ExitOK)
}
