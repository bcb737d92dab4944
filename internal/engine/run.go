package engine

import (
	"context"
	"fmt"

	"genrich/internal/progress"
	"genrich/internal/table"
)

// Options are the run-wide settings that are not part of a stage.
type Options struct {
	// NewBar builds a progress reporter for one pass; nil disables progress.
	NewBar func(desc string, total int) progress.Reporter
}

func (o Options) bar(desc string, total int) progress.Reporter {
	if o.NewBar == nil {
		return progress.Discard
	}
	return o.NewBar(desc, total)
}

// Result summarises a finished stage.
type Result struct {
	Stage   string
	In, Out int // data rows
	Output  string
}

func (r Result) String() string {
	return fmt.Sprintf("%s: %d %s in, %d %s out -> %s",
		r.Stage, r.In, progress.Noun("row", r.In), r.Out, progress.Noun("row", r.Out), r.Output)
}

// Run executes st from the table at in to the table at out. The output file
// is only touched after the whole table has been built, so a header failure,
// a cancelled context, or a read error leaves any existing output untouched.
func Run(ctx context.Context, st Stage, in, out string, o Options) (Result, error) {
	res := Result{Stage: st.Name(), Output: out}
	r, err := table.Open(in, st.Require())
	if err != nil {
		return res, err
	}
	defer func() { _ = r.Close() }()
	res.In = r.Total()

	t, err := st.Apply(ctx, r, o.bar(st.Describe(), r.Total()))
	if err != nil {
		return res, fmt.Errorf("%s: %w", st.Name(), err)
	}
	if err := r.Close(); err != nil {
		return res, err
	}
	res.Out = t.Len()

	if err := table.WriteFile(out, t, o.bar("Writing to file", t.Count())); err != nil {
		return res, err
	}
	return res, nil
}
