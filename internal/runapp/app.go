// Package runapp runs a configured chain of stages, handing tables from one
// stage to the next by path.
package runapp

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"genrich/internal/appshell"
	"genrich/internal/config"
	"genrich/internal/diag"
	"genrich/internal/engine"
	"genrich/internal/jsonutil"
	"genrich/internal/progress"
	"genrich/internal/runcli"
	"genrich/internal/services"
	"genrich/internal/stages"
	"genrich/internal/version"
	"genrich/internal/writers"
)

const name = "genrich"

// StageReport is the outcome of one stage in a run report.
type StageReport struct {
	Stage    string `json:"stage"`
	Input    string `json:"input"`
	Output   string `json:"output"`
	In       int    `json:"rows_in"`
	Out      int    `json:"rows_out"`
	Degraded int64  `json:"lookups_degraded"`
	Failures int64  `json:"requests_failed"`
}

// Report is written by --report after a run, successful or not.
type Report struct {
	Version string        `json:"version"`
	Stages  []StageReport `json:"stages"`
	Failed  string        `json:"failed,omitempty"`
	Error   string        `json:"error,omitempty"`
}

// Step is one planned stage with its resolved tables.
type Step struct {
	Stage string
	config.Paths
}

// Plan resolves the tables of every stage in names.
func Plan(cfg config.Config, names []string) ([]Step, error) {
	steps := make([]Step, 0, len(names))
	for _, n := range names {
		if !stages.Known(n) {
			return nil, fmt.Errorf("unknown stage %q", n)
		}
		steps = append(steps, Step{Stage: n, Paths: cfg.Paths(n)})
	}
	return steps, nil
}

// Check verifies that every step's input either exists or is written by an
// earlier step.
func Check(steps []Step) error {
	produced := map[string]bool{}
	for _, s := range steps {
		if !produced[s.Input] {
			if _, err := os.Stat(s.Input); err != nil {
				return fmt.Errorf("%s: input %s: %w", s.Stage, s.Input, err)
			}
		}
		produced[s.Output] = true
	}
	return nil
}

func Run(argv []string, stdout, stderr io.Writer) int {
	return RunContext(context.Background(), argv, stdout, stderr)
}

func RunContext(parent context.Context, argv []string, stdout, stderr io.Writer) int {
	outw := bufio.NewWriterSize(stdout, 16<<10)
	flush := func(code int) int {
		if err := outw.Flush(); err != nil && !writers.IsBrokenPipe(err) {
			diag.Errorf(stderr, "%v", err)
			return appshell.ExitIO
		}
		return code
	}

	fs := runcli.NewFlagSet(name)
	fs.SetOutput(io.Discard) // silence default flag pkg

	opts, err := runcli.ParseArgs(fs, argv)
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

	cfg := config.Default()
	if opts.Config != "" {
		if cfg, err = config.Load(opts.Config); err != nil {
			diag.Errorf(stderr, "%v", err)
			if errors.Is(err, os.ErrNotExist) {
				return appshell.ExitIO
			}
			return appshell.ExitUsage
		}
	}
	names := cfg.Workflow
	if len(opts.Stages) > 0 {
		names = opts.Stages
	}
	steps, err := Plan(cfg, names)
	if err != nil {
		diag.Errorf(stderr, "%v", err)
		return appshell.ExitUsage
	}

	if opts.List || opts.DryRun {
		for _, s := range steps {
			_, _ = fmt.Fprintf(outw, "%-8s %s -> %s\n", s.Stage, s.Input, s.Output)
		}
		if opts.DryRun {
			if err := Check(steps); err != nil {
				_ = outw.Flush()
				diag.Errorf(stderr, "%v", err)
				return appshell.ExitIO
			}
		}
		return flush(appshell.ExitOK)
	}

	level, _ := diag.ParseLevel(cfg.LogLevel)
	if opts.Quiet {
		level = slog.LevelError
	}
	log := diag.NewLogger(stderr, level)
	svc := services.New(cfg, log)
	deps := svc.Deps(cfg)

	newBar := func(desc string, total int) progress.Reporter { return progress.New(stderr, desc, total) }
	if opts.Quiet {
		newBar = nil
	}

	rep := Report{Version: version.Version, Stages: []StageReport{}}
	code := appshell.ExitOK
	for _, s := range steps {
		st, err := stages.New(s.Stage, deps)
		if err != nil {
			diag.Errorf(stderr, "%v", err)
			return flush(appshell.ExitUsage)
		}
		before, failedBefore := svc.Degraded(), svc.Failures()
		res, err := engine.Run(parent, st, s.Input, s.Output, engine.Options{NewBar: newBar})
		if err != nil {
			diag.Errorf(stderr, "%v", err)
			rep.Failed, rep.Error = s.Stage, err.Error()
			code = appshell.ExitCode(err)
			break
		}
		n := svc.Degraded() - before
		rep.Stages = append(rep.Stages, StageReport{
			Stage: s.Stage, Input: s.Input, Output: s.Output, In: res.In, Out: res.Out,
			Degraded: n, Failures: svc.Failures() - failedBefore,
		})
		_, _ = fmt.Fprintln(outw, res.String())
		_ = outw.Flush()
		if n > 0 {
			diag.Warnf(stderr, opts.Quiet, "%s: %d of %d lookups returned no data", s.Stage, n, res.In)
		}
		log.Info("stage finished", "stage", s.Stage, "in", res.In, "out", res.Out)
	}
	if opts.Report != "" {
		if err := jsonutil.WriteFile(opts.Report, rep); err != nil {
			diag.Errorf(stderr, "report: %v", err)
			if code == appshell.ExitOK {
				code = appshell.ExitIO
			}
		}
	}
	return flush(code)
}
