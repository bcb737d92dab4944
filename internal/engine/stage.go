package engine

import (
	"context"

	"genrich/internal/progress"
	"genrich/internal/table"
)

// Stage is one independently runnable step of the pipeline.
type Stage interface {
	// Name identifies the stage on the command line and in configs.
	Name() string
	// Require is the literal the input header must carry in column 0.
	Require() string
	// Describe labels the row pass in progress output.
	Describe() string
	// Apply consumes every row of r and returns the complete output table.
	Apply(ctx context.Context, r *table.Reader, bar progress.Reporter) (*table.Table, error)
}
