package cli

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestStringList(t *testing.T) {
	var got []string
	fs := NewFlagSet("x")
	fs.Var(StringList{&got}, "stages", "")
	if err := fs.Parse([]string{"--stages", "idmap, kegg", "--stages=gc,,"}); err != nil {
		t.Fatal(err)
	}
	if d := cmp.Diff([]string{"idmap", "kegg", "gc"}, got); d != "" {
		t.Fatalf("(-want +got):\n%s", d)
	}
	if s := (StringList{&got}).String(); s != "idmap,kegg,gc" {
		t.Fatalf("String() = %q", s)
	}
}
