package stages

import (
	"context"
	"strconv"

	"genrich/internal/engine"
	"genrich/internal/gc"
	"genrich/internal/progress"
	"genrich/internal/table"
)

// GC appends the overall GC percentage of nt_seq and its windowed profile.
// Rows without a sequence get two empty cells.
type GC struct{ Window int }

func (GC) Name() string     { return GCName }
func (GC) Require() string  { return ColKEGG }
func (GC) Describe() string { return descGC }

func (s GC) Apply(ctx context.Context, r *table.Reader, bar progress.Reporter) (*table.Table, error) {
	col, err := r.Column(ColSeq)
	if err != nil {
		return nil, err
	}
	w := s.Window
	if w <= 0 {
		w = gc.DefaultWindow
	}
	return engine.MapRows(ctx, r, bar, engine.Mapper{
		Header: func(h table.Row) table.Row { return append(h, ColGC, ColGCSub) },
		Row: func(_ context.Context, row table.Row) []string {
			seq := row[col]
			if seq == "" {
				return []string{"", ""}
			}
			return []string{strconv.Itoa(gc.Content(seq)), gc.FormatProfile(gc.Profile(seq, w))}
		},
	})
}
