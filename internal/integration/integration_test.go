// internal/integration/integration_test.go
package integration

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"genrich/internal/config"
	"genrich/internal/stageapp"
)

func write(t *testing.T, fn, data string) string {
	t.Helper()
	if err := os.WriteFile(fn, []byte(data), 0644); err != nil {
		t.Fatalf("write %s: %v", fn, err)
	}
	return fn
}

func stage(t *testing.T, name string, args ...string) {
	t.Helper()
	var out, errBuf bytes.Buffer
	if code := stageapp.RunConfig(context.Background(), name, config.Default(), args, &out, &errBuf); code != 0 {
		t.Fatalf("%s: exit %d, err=%s", name, code, errBuf.String())
	}
}

// Local stages chained by path, through gzip-compressed intermediates.
func TestOfflineChainGzip(t *testing.T) {
	dir := t.TempDir()
	in := write(t, filepath.Join(dir, "uniprot.csv"),
		"KEGG_ID\tnt_seq\tPubMed_ID\n"+
			"g1\taaaaaaaaaa\t1\n"+
			"g2\tccgggtaaaa\t1;2;3\n"+
			"g3\t\t\n"+
			"g4\tgggggggggg\t2;3\n")
	sorted := filepath.Join(dir, "sorted.csv.gz")
	gc := filepath.Join(dir, "gc.csv")
	clusters := filepath.Join(dir, "clusters.csv")

	stage(t, "sort", "--input", in, "--output", sorted)
	stage(t, "gc", "--input", sorted, "--output", gc)
	stage(t, "cluster", "--input", in, "--output", clusters)

	got, _ := os.ReadFile(gc)
	want := "KEGG_ID\tnt_seq\tPubMed_ID\tgc_content\tgc_content_subsections\n" +
		"g2\tccgggtaaaa\t1;2;3\t50\t50\n" +
		"g4\tgggggggggg\t2;3\t100\t100\n" +
		"g1\taaaaaaaaaa\t1\t0\t0\n" +
		"g3\t\t\t\t\n"
	if string(got) != want {
		t.Fatalf("gc output:\n%s\nwant:\n%s", got, want)
	}

	got, _ = os.ReadFile(clusters)
	wantClusters := "PubMed_ID\tKEGG_ID\n1\tg1;g2\n2\tg2;g4\n3\tg2;g4\nNo articles available\tg3\n"
	if string(got) != wantClusters {
		t.Fatalf("clusters:\n%s\nwant:\n%s", got, wantClusters)
	}
}

// Re-running a stage on unchanged input reproduces its output byte for byte.
func TestRerunIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	in := write(t, filepath.Join(dir, "in.csv"), "KEGG_ID\tPubMed_ID\na\t1\nb\t1;2\nc\t\n")
	out := filepath.Join(dir, "out.csv")
	stage(t, "sort", "--input", in, "--output", out)
	first, _ := os.ReadFile(out)
	stage(t, "sort", "--input", in, "--output", out)
	second, _ := os.ReadFile(out)
	if !bytes.Equal(first, second) || !strings.HasPrefix(string(first), "KEGG_ID\tPubMed_ID\nb\t1;2\n") {
		t.Fatalf("first %q second %q", first, second)
	}
}
