package stageapp

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/julienschmidt/httprouter"

	"genrich/internal/config"
)

func writeFile(t *testing.T, dir, name, data string) string {
	t.Helper()
	fn := filepath.Join(dir, name)
	if err := os.WriteFile(fn, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	return fn
}

func run(t *testing.T, ctx context.Context, stage string, cfg config.Config, args ...string) (int, string, string) {
	t.Helper()
	var out, errBuf bytes.Buffer
	code := RunConfig(ctx, stage, cfg, args, &out, &errBuf)
	return code, out.String(), errBuf.String()
}

func TestGCStage(t *testing.T) {
	dir := t.TempDir()
	in := writeFile(t, dir, "sorted.csv", "KEGG_ID\tnt_seq\ng1\tccgggtaaaa\ng2\t\n")
	out := filepath.Join(dir, "results", "gc.csv")

	code, stdout, stderr := run(t, context.Background(), "gc", config.Default(), "--input", in, "--output", out)
	if code != 0 {
		t.Fatalf("exit %d: %s", code, stderr)
	}
	got, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	want := "KEGG_ID\tnt_seq\tgc_content\tgc_content_subsections\ng1\tccgggtaaaa\t50\t50\ng2\t\t\t\n"
	if d := cmp.Diff(want, string(got)); d != "" {
		t.Fatalf("output (-want +got):\n%s", d)
	}
	if !strings.Contains(stdout, "gc: 2 rows in, 2 rows out") {
		t.Fatalf("summary %q", stdout)
	}
	for _, pass := range []string{"Calculating GC: 100% 2/2 rows", "Writing to file: 100% 3/3 rows"} {
		if !strings.Contains(stderr, pass) {
			t.Errorf("stderr misses %q:\n%s", pass, stderr)
		}
	}
}

func TestHeaderFailureExit2(t *testing.T) {
	dir := t.TempDir()
	in := writeFile(t, dir, "in.csv", "gene\tnt_seq\ng1\tacgt\n")
	out := filepath.Join(dir, "out.csv")
	code, _, stderr := run(t, context.Background(), "gc", config.Default(), "--input", in, "--output", out)
	if code != 2 {
		t.Fatalf("want exit 2, got %d", code)
	}
	if !strings.Contains(stderr, "error:") || !strings.Contains(stderr, "valid header") {
		t.Fatalf("stderr %q", stderr)
	}
	if _, err := os.Stat(out); !os.IsNotExist(err) {
		t.Fatal("no output may be written after a header failure")
	}
}

func TestMissingColumnExit2(t *testing.T) {
	dir := t.TempDir()
	in := writeFile(t, dir, "in.csv", "KEGG_ID\tUniProt_ID\ng1\tP1\n")
	code, _, stderr := run(t, context.Background(), "sort", config.Default(), "--input", in, "--output", filepath.Join(dir, "o.csv"))
	if code != 2 || !strings.Contains(stderr, `"PubMed_ID"`) {
		t.Fatalf("exit %d stderr %q", code, stderr)
	}
}

func TestMissingInputExit3(t *testing.T) {
	dir := t.TempDir()
	code, _, _ := run(t, context.Background(), "cluster", config.Default(),
		"--input", filepath.Join(dir, "nope.csv"), "--output", filepath.Join(dir, "o.csv"))
	if code != 3 {
		t.Fatalf("want exit 3, got %d", code)
	}
}

func TestUsage(t *testing.T) {
	code, stdout, _ := run(t, context.Background(), "kegg", config.Default(), "--help")
	if code != 0 || !strings.Contains(stdout, "genrich-kegg") || !strings.Contains(stdout, "./results/kegg.csv") {
		t.Fatalf("exit %d usage %q", code, stdout)
	}
	code, stdout, stderr := run(t, context.Background(), "kegg", config.Default(), "--threads", "2")
	if code != 2 || !strings.Contains(stderr, "error:") || !strings.Contains(stdout, "Usage:") {
		t.Fatalf("exit %d stderr %q", code, stderr)
	}
}

func TestCancelledLeavesOutput(t *testing.T) {
	dir := t.TempDir()
	in := writeFile(t, dir, "in.csv", "KEGG_ID\tPubMed_ID\ng1\t1\n")
	out := writeFile(t, dir, "out.csv", "previous\n")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	code, _, stderr := run(t, ctx, "cluster", config.Default(), "--input", in, "--output", out)
	if code != 130 {
		t.Fatalf("want 130, got %d (%s)", code, stderr)
	}
	if b, _ := os.ReadFile(out); string(b) != "previous\n" {
		t.Fatalf("output changed: %q", b)
	}
}

func TestIDMapAgainstFakeKEGG(t *testing.T) {
	r := httprouter.New()
	r.GET("/get/:q", func(w http.ResponseWriter, _ *http.Request, ps httprouter.Params) {
		if ps.ByName("q") != "lpl:lp_0001" {
			http.NotFound(w, nil)
			return
		}
		_, _ = w.Write([]byte("ENTRY       lp_0001           CDS       T00120\n" +
			"DBLINKS     NCBI-ProteinID: CCC77735\n" +
			"            UniProt: F9UST2\n///\n"))
	})
	srv := httptest.NewServer(r)
	defer srv.Close()

	cfg := config.Default()
	cfg.KEGG.BaseURL = srv.URL
	cfg.HTTP.Retries = 0

	dir := t.TempDir()
	in := writeFile(t, dir, "counts.txt", "ID\tcount\nlp_0001\t12\nlp_9999\t3\n")
	out := filepath.Join(dir, "ids.csv")
	code, _, stderr := run(t, context.Background(), "idmap", cfg, "--input", in, "--output", out)
	if code != 0 {
		t.Fatalf("exit %d: %s", code, stderr)
	}
	got, _ := os.ReadFile(out)
	want := "KEGG_ID\tcount\tUniProt_ID\tNCBI_protein_ID\nlp_0001\t12\tF9UST2\tCCC77735\nlp_9999\t3\t\t\n"
	if d := cmp.Diff(want, string(got)); d != "" {
		t.Fatalf("output (-want +got):\n%s", d)
	}
	if !strings.Contains(stderr, "lookup degraded") || !strings.Contains(stderr, "1 of 2 lookups returned no data") {
		t.Fatalf("degradation not reported: %s", stderr)
	}
}

func TestUnknownStage(t *testing.T) {
	if code, _, _ := run(t, context.Background(), "blast", config.Default()); code != 2 {
		t.Fatalf("want 2, got %d", code)
	}
}
