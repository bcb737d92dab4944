package cliutil

import (
	"flag"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSplitFlagsAndPositionals(t *testing.T) {
	fs := flag.NewFlagSet("x", flag.ContinueOnError)
	var b bool
	var s string
	fs.BoolVar(&b, "list", false, "")
	fs.StringVar(&s, "input", "", "")
	flagArgs, posArgs := SplitFlagsAndPositionals(fs, []string{"--list", "stray", "--input", "in.tsv", "--output=o.tsv", "--", "-x"})
	if d := cmp.Diff([]string{"--list", "--input", "in.tsv", "--output=o.tsv"}, flagArgs); d != "" {
		t.Fatalf("flags (-want +got):\n%s", d)
	}
	if d := cmp.Diff([]string{"stray", "-x"}, posArgs); d != "" {
		t.Fatalf("positionals (-want +got):\n%s", d)
	}
}
