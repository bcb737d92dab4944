package table

import (
	"bufio"
	"fmt"
	"strings"
)

// MaxLine bounds a single line; nucleotide sequences are stored as one cell.
const MaxLine = 64 << 20

// Reader yields the data rows of one table, once, in file order.
type Reader struct {
	path   string
	src    *source
	sc     *bufio.Scanner
	header Row
	total  int
	row    Row
	line   int
	err    error
}

// Open opens path, counts its data rows, rewinds, and checks that the first
// header cell equals want. It returns a *HeaderError when it does not.
func Open(path, want string) (*Reader, error) {
	src, err := openSource(path)
	if err != nil {
		return nil, err
	}
	r := &Reader{path: path, src: src}
	if err := r.init(want); err != nil {
		_ = src.Close()
		return nil, err
	}
	return r, nil
}

func (r *Reader) init(want string) error {
	n, err := countLines(r.src)
	if err != nil {
		return fmt.Errorf("%s: counting rows: %w", r.path, err)
	}
	if err := r.src.rewind(); err != nil {
		return fmt.Errorf("%s: rewind: %w", r.path, err)
	}
	r.sc = newScanner(r.src)

	first, ok := r.scan()
	if !ok {
		if r.err != nil {
			return r.err
		}
		return &HeaderError{Path: r.path, Want: want}
	}
	r.header = split(strings.TrimPrefix(first, "\ufeff"))
	if r.header[0] != want {
		return &HeaderError{Path: r.path, Want: want, Got: r.header[0]}
	}
	r.total = n - 1
	return nil
}

func newScanner(src *source) *bufio.Scanner {
	sc := bufio.NewScanner(src)
	sc.Buffer(make([]byte, 64*1024), MaxLine)
	return sc
}

// countLines counts the non-blank lines of src.
func countLines(src *source) (int, error) {
	sc := newScanner(src)
	n := 0
	for sc.Scan() {
		if strings.TrimRight(sc.Text(), "\r") != "" {
			n++
		}
	}
	return n, sc.Err()
}

// scan returns the next non-blank line.
func (r *Reader) scan() (string, bool) {
	for r.sc.Scan() {
		r.line++
		line := strings.TrimRight(r.sc.Text(), "\r")
		if line == "" {
			continue
		}
		return line, true
	}
	if err := r.sc.Err(); err != nil {
		r.err = fmt.Errorf("%s:%d: %w", r.path, r.line+1, err)
	}
	return "", false
}

func split(line string) Row { return strings.Split(line, Delim) }

// Path is the file the reader was opened on.
func (r *Reader) Path() string { return r.path }

// Header returns the header row as read from the file.
func (r *Reader) Header() Row { return r.header }

// Total is the number of data rows found by the counting pass.
func (r *Reader) Total() int { return r.total }

// Column returns the index of a column the stage requires.
func (r *Reader) Column(name string) (int, error) {
	i, ok := r.header.Index(name)
	if !ok {
		return -1, &HeaderError{Path: r.path, Want: name, Column: true}
	}
	return i, nil
}

// Next advances to the next data row. Rows shorter than the header are padded
// with empty cells; a row with more cells than the header stops the reader
// with a *WidthError.
func (r *Reader) Next() bool {
	if r.err != nil || r.sc == nil {
		return false
	}
	line, ok := r.scan()
	if !ok {
		r.row = nil
		return false
	}
	row := split(line)
	if len(row) > len(r.header) {
		r.err = &WidthError{Path: r.path, Line: r.line, Got: len(row), Want: len(r.header)}
		r.row = nil
		return false
	}
	for len(row) < len(r.header) {
		row = append(row, "")
	}
	r.row = row
	return true
}

// Row is the current row. The slice is owned by the caller.
func (r *Reader) Row() Row { return r.row }

// Err returns the first read error, if any.
func (r *Reader) Err() error { return r.err }

// Close releases the file. It is safe to call more than once.
func (r *Reader) Close() error {
	if r.src == nil {
		return nil
	}
	err := r.src.Close()
	r.src = nil
	r.sc = nil
	return err
}
