// Package runcli parses the command line of the workflow runner.
package runcli

import (
	"flag"
	"fmt"
	"io"
	"strings"

	"genrich/internal/cli"
	"genrich/internal/clibase"
	"genrich/internal/cliutil"
)

type Options struct {
	Config string
	Stages []string
	List   bool
	DryRun bool
	Quiet  bool
	Report string
}

func NewFlagSet(name string) *flag.FlagSet {
	fs := cli.NewFlagSet(name)
	clibase.UsageCommon(fs, name, "Run the enrichment workflow: each stage reads the table the previous one wrote.", func(out io.Writer, def func(string) string) {
		_, _ = fmt.Fprintln(out, "Usage:")
		_, _ = fmt.Fprintf(out, "  %s [--config genrich.yaml] [--stages idmap,kegg,...]\n", name)

		_, _ = fmt.Fprintln(out, "\nWorkflow:")
		_, _ = fmt.Fprintln(out, "  -c, --config file           YAML, TOML or JSON workflow configuration")
		_, _ = fmt.Fprintln(out, "  -s, --stages list           Comma-separated stages to run, in order [workflow from config]")
		_, _ = fmt.Fprintf(out, "  -l, --list                  Print the stages with their tables and exit [%s]\n", def("list"))
		_, _ = fmt.Fprintf(out, "  -n, --dry-run               Check inputs and print the plan without running [%s]\n", def("dry-run"))
		_, _ = fmt.Fprintln(out, "      --report file           Write a JSON summary of the run")
		_, _ = fmt.Fprintf(out, "  -q, --quiet                 Suppress progress and warnings [%s]\n", def("quiet"))

		_, _ = fmt.Fprintln(out, "\nStages:")
		_, _ = fmt.Fprintln(out, "  idmap  kegg  uniprot  sort  gc  cluster")
	})
	return fs
}

// ParseArgs returns flag.ErrHelp for -h/--help.
func ParseArgs(fs *flag.FlagSet, argv []string) (Options, error) {
	var o Options
	var help bool

	fs.StringVar(&o.Config, "config", "", "workflow configuration file")
	fs.StringVar(&o.Config, "c", "", "alias of --config")
	fs.Var(cli.StringList{Dst: &o.Stages}, "stages", "stages to run")
	fs.Var(cli.StringList{Dst: &o.Stages}, "s", "alias of --stages")
	fs.BoolVar(&o.List, "list", false, "list stages and exit")
	fs.BoolVar(&o.List, "l", false, "alias of --list")
	fs.BoolVar(&o.DryRun, "dry-run", false, "print the plan only")
	fs.BoolVar(&o.DryRun, "n", false, "alias of --dry-run")
	fs.BoolVar(&o.Quiet, "quiet", false, "suppress progress and warnings")
	fs.BoolVar(&o.Quiet, "q", false, "alias of --quiet")
	fs.StringVar(&o.Report, "report", "", "JSON run summary")
	fs.BoolVar(&help, "h", false, "show this help")
	fs.BoolVar(&help, "help", false, "show this help")

	flagArgs, posArgs := cliutil.SplitFlagsAndPositionals(fs, argv)
	if err := fs.Parse(flagArgs); err != nil {
		return o, err
	}
	if help {
		return o, flag.ErrHelp
	}
	if len(posArgs) > 0 {
		return o, fmt.Errorf("unexpected argument(s): %s", strings.Join(posArgs, " "))
	}
	return o, nil
}
