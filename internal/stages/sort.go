package stages

import (
	"cmp"
	"context"
	"slices"

	"genrich/internal/engine"
	"genrich/internal/progress"
	"genrich/internal/table"
)

// SortByPubMed orders genes by their number of PubMed citations, most cited
// first. Ties keep their input order. The output header equals the input
// header; the count is never written.
type SortByPubMed struct{}

func (SortByPubMed) Name() string     { return SortName }
func (SortByPubMed) Require() string  { return ColKEGG }
func (SortByPubMed) Describe() string { return descSort }

type counted struct {
	row table.Row
	n   int
}

func (SortByPubMed) Apply(ctx context.Context, r *table.Reader, bar progress.Reporter) (*table.Table, error) {
	col, err := r.Column(ColPubMed)
	if err != nil {
		return nil, err
	}
	if bar == nil {
		bar = progress.Discard
	}
	defer bar.Done()

	rows := make([]counted, 0, r.Total())
	for r.Next() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		row := r.Row()
		rows = append(rows, counted{row: row, n: len(engine.SplitList(row[col]))})
		bar.Add(1)
	}
	if err := r.Err(); err != nil {
		return nil, err
	}

	slices.SortStableFunc(rows, func(a, b counted) int { return cmp.Compare(b.n, a.n) })

	out := &table.Table{Header: r.Header().Clone(), Rows: make([]table.Row, len(rows))}
	for i, c := range rows {
		out.Rows[i] = c.row
	}
	return out, nil
}
