// Package table reads and writes the tab-delimited tables passed between stages.
//
// Dialect: one record per line, cells split on TAB, no quoting or escaping.
// Row 0 is the header. A stage declares the literal it expects in header[0];
// anything else is a fatal *HeaderError raised before any row is read.
package table

import (
	"fmt"
	"slices"
)

// Delim separates cells on a line.
const Delim = "\t"

// Row is one line of cells.
type Row []string

// Index returns the position of column name in a header row.
func (r Row) Index(name string) (int, bool) {
	i := slices.Index(r, name)
	return i, i >= 0
}

// Clone returns a copy that does not share storage with r.
func (r Row) Clone() Row { return slices.Clone(r) }

// Table is a fully materialised table: header plus data rows.
type Table struct {
	Header Row
	Rows   []Row
}

// Len is the number of data rows.
func (t *Table) Len() int { return len(t.Rows) }

// Count is the number of serialised rows, header included.
func (t *Table) Count() int { return len(t.Rows) + 1 }

// Append adds a data row.
func (t *Table) Append(r Row) { t.Rows = append(t.Rows, r) }

// HeaderError reports a table that does not satisfy a stage's header contract.
type HeaderError struct {
	Path string
	Want string
	Got  string
	// Column is set when a named column is absent rather than header[0] mismatching.
	Column bool
}

func (e *HeaderError) Error() string {
	if e.Column {
		return fmt.Sprintf("%s: the header has no %q column, quitting", e.Path, e.Want)
	}
	return fmt.Sprintf("%s: the file does not contain a valid header (first column %q, want %q), quitting", e.Path, e.Got, e.Want)
}

// WidthError reports a data row with more cells than its header.
type WidthError struct {
	Path      string
	Line      int
	Got, Want int
}

func (e *WidthError) Error() string {
	return fmt.Sprintf("%s:%d: row has %d cells, header has %d", e.Path, e.Line, e.Got, e.Want)
}

// CellError reports a cell that cannot be serialised without breaking the
// dialect. Blank is set for a row that would serialise to an empty line,
// which readers skip.
type CellError struct {
	Row, Col int
	Value    string
	Blank    bool
}

func (e *CellError) Error() string {
	if e.Blank {
		return fmt.Sprintf("row %d: every cell is empty and the row would be written as a blank line", e.Row)
	}
	v := e.Value
	if len(v) > 40 {
		v = v[:40] + "..."
	}
	return fmt.Sprintf("row %d column %d: cell contains a tab or line break: %q", e.Row, e.Col, v)
}
