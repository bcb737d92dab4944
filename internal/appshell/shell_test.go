package appshell

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"

	"genrich/internal/table"
)

func TestExitCode(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{nil, ExitOK},
		{fmt.Errorf("gc: %w", &table.HeaderError{Want: "nt_seq", Column: true}), ExitUsage},
		{&table.HeaderError{Want: "KEGG_ID", Got: "ID"}, ExitUsage},
		{fmt.Errorf("kegg: %w", context.Canceled), ExitInterrupted},
		{&os.PathError{Op: "open", Path: "x", Err: os.ErrNotExist}, ExitIO},
		{&table.CellError{Row: 1}, ExitIO},
		{errors.New("disk full"), ExitIO},
	}
	for _, c := range cases {
		if got := ExitCode(c.err); got != c.want {
			t.Errorf("ExitCode(%v) = %d, want %d", c.err, got, c.want)
		}
	}
}
