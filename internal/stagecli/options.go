// Package stagecli parses the command line of a single-stage binary.
package stagecli

import (
	"flag"
	"fmt"
	"io"
	"strings"

	"genrich/internal/cli"
	"genrich/internal/clibase"
	"genrich/internal/cliutil"
	"genrich/internal/config"
	"genrich/internal/stages"
)

// Options are the two paths a stage binary accepts.
type Options struct {
	Input  string
	Output string
}

var summaries = map[string]string{
	stages.IDMapName:   "Rename the ID column to KEGG_ID and append the UniProt and NCBI protein identifiers\nof every gene (KEGG DBLINKS).",
	stages.KEGGName:    "Append the nucleotide sequence and the KEGG pathways of every gene.",
	stages.UniProtName: "Append the UniProt function annotation and the citing PubMed identifiers of every gene.",
	stages.SortName:    "Sort genes by their number of PubMed identifiers, most cited first.",
	stages.ClusterName: "Group genes by PubMed identifier: one row per article, listing its genes.",
	stages.GCName:      "Append the GC percentage of every nucleotide sequence and its 10-base windowed profile.",
}

// Command is the binary name of stage.
func Command(stage string) string { return "genrich-" + stage }

func NewFlagSet(stage string) *flag.FlagSet {
	name := Command(stage)
	fs := cli.NewFlagSet(name)
	clibase.UsageCommon(fs, name, summaries[stage], func(out io.Writer, def func(string) string) {
		_, _ = fmt.Fprintln(out, "Usage:")
		_, _ = fmt.Fprintf(out, "  %s [--input file] [--output file]\n", name)

		_, _ = fmt.Fprintln(out, "\nTables:")
		_, _ = fmt.Fprintf(out, "      --input file            Tab-delimited input table (.gz accepted) [%s]\n", def("input"))
		_, _ = fmt.Fprintf(out, "      --output file           Output table, replaced atomically; .gz compresses [%s]\n", def("output"))
	})
	return fs
}

// ParseArgs parses argv with def as the default paths. It returns
// flag.ErrHelp for -h/--help.
func ParseArgs(fs *flag.FlagSet, argv []string, def config.Paths) (Options, error) {
	var o Options
	var help bool

	fs.StringVar(&o.Input, "input", def.Input, "input table")
	fs.StringVar(&o.Output, "output", def.Output, "output table")
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
	if o.Input == "" || o.Output == "" {
		return o, fmt.Errorf("--input and --output must not be empty")
	}
	if o.Input == o.Output {
		return o, fmt.Errorf("--input and --output name the same file %q", o.Input)
	}
	return o, nil
}
