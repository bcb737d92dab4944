package engine

import (
	"context"
	"fmt"

	"genrich/internal/progress"
	"genrich/internal/table"
)

// Mapper describes a 1:1 stage: every input row yields exactly one output row
// made of the input cells followed by the appended cells.
type Mapper struct {
	// Header builds the output header from the input header. The number of
	// columns it adds is the number of cells Row must return.
	Header func(in table.Row) table.Row
	// Row returns the cells to append to row. Missing data is reported as
	// empty strings, never by omitting a cell.
	Row func(ctx context.Context, row table.Row) []string
}

// MapRows streams r through m in input order. It stops between rows when ctx
// is cancelled.
func MapRows(ctx context.Context, r *table.Reader, bar progress.Reporter, m Mapper) (*table.Table, error) {
	if bar == nil {
		bar = progress.Discard
	}
	defer bar.Done()

	in := r.Header()
	out := &table.Table{Header: m.Header(in.Clone()), Rows: make([]table.Row, 0, r.Total())}
	add := len(out.Header) - len(in)
	if add < 0 {
		return nil, fmt.Errorf("%s: stage header drops %d columns", r.Path(), -add)
	}

	for r.Next() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		row := r.Row()
		extra := m.Row(ctx, row)
		if len(extra) != add {
			// Width is part of the contract with the next stage.
			return nil, fmt.Errorf("%s: row %d: stage produced %d cells, want %d", r.Path(), out.Len()+1, len(extra), add)
		}
		out.Append(append(row[:len(row):len(row)], extra...))
		bar.Add(1)
	}
	if err := r.Err(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
