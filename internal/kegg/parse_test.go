package kegg

import (
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func mustParse(t *testing.T, name string) *Entry {
	t.Helper()
	f, err := os.Open("testdata/" + name)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	e, err := Parse(f)
	if err != nil {
		t.Fatalf("parse %s: %v", name, err)
	}
	return e
}

func TestParseFlatFile(t *testing.T) {
	e := mustParse(t, "lp_0001.txt")
	if e.ID != "lp_0001" {
		t.Fatalf("ID %q", e.ID)
	}
	if got := e.DBLink("UniProt"); got != "F9UST2" {
		t.Fatalf("UniProt %q", got)
	}
	if got := e.DBLink("NCBI-ProteinID"); got != "CCC77735" {
		t.Fatalf("NCBI-ProteinID %q", got)
	}
	if got := e.DBLink("PDB"); got != "" {
		t.Fatalf("absent link should be empty, got %q", got)
	}
	want := []string{"lpl02020: Two-component system", "lpl04112: Cell cycle; Caulobacter"}
	if d := cmp.Diff(want, e.Pathways()); d != "" {
		t.Fatalf("pathways (-want +got):\n%s", d)
	}
	seq := e.NTSeq()
	if !strings.HasPrefix(seq, "atgacagaaaatg") || !strings.HasSuffix(seq, "caagcaacatacgaa") {
		t.Fatalf("sequence %q", seq)
	}
	if strings.ContainsAny(seq, " 0123456789") {
		t.Fatalf("length line or spaces leaked into sequence: %q", seq)
	}
}

func TestParseMissingFields(t *testing.T) {
	e, err := Parse(strings.NewReader("ENTRY       lp_9999           CDS       T00120\nNAME        x\n///\n"))
	if err != nil {
		t.Fatal(err)
	}
	if e.NTSeq() != "" || e.Pathways() != nil || e.DBLink("UniProt") != "" {
		t.Fatalf("missing fields must be empty: %q %v", e.NTSeq(), e.Pathways())
	}
}

func TestParseRejectsNonRecord(t *testing.T) {
	_, err := Parse(strings.NewReader("\n\n"))
	if !errors.Is(err, ErrNoEntry) {
		t.Fatalf("want ErrNoEntry, got %v", err)
	}
	_, err = Parse(strings.NewReader("            orphan continuation\n"))
	if err == nil {
		t.Fatal("continuation before a field must fail")
	}
}

func TestParseStopsAtTerminator(t *testing.T) {
	in := "ENTRY       a  CDS\n///\nENTRY       b  CDS\n///\n"
	e, err := Parse(strings.NewReader(in))
	if err != nil || e.ID != "a" {
		t.Fatalf("got %+v, %v", e, err)
	}
}
