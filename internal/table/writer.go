package table

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/pgzip"

	"genrich/internal/progress"
)

// Write serialises t (header first) to w, one tab-joined line per row.
// bar receives one tick per serialised row.
func Write(w io.Writer, t *Table, bar progress.Reporter) error {
	if bar == nil {
		bar = progress.Discard
	}
	defer bar.Done()

	bw := bufio.NewWriter(w)
	if err := writeRow(bw, 0, t.Header); err != nil {
		return err
	}
	bar.Add(1)
	for i, r := range t.Rows {
		if err := writeRow(bw, i+1, r); err != nil {
			return err
		}
		bar.Add(1)
	}
	return bw.Flush()
}

func writeRow(w *bufio.Writer, n int, r Row) error {
	for j, c := range r {
		if strings.ContainsAny(c, "\t\r\n") {
			return &CellError{Row: n, Col: j, Value: c}
		}
	}
	line := strings.Join(r, Delim)
	if line == "" {
		return &CellError{Row: n, Blank: true}
	}
	if _, err := w.WriteString(line); err != nil {
		return err
	}
	return w.WriteByte('\n')
}

// WriteFile replaces path with the serialised table. The content goes to a
// temporary file in the same directory first and is renamed into place, so an
// interrupted or failed write never leaves a partial table behind. Paths
// ending in .gz are gzip-compressed.
func WriteFile(path string, t *Table, bar progress.Reporter) (err error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	var w io.Writer = tmp
	var zw *pgzip.Writer
	if strings.HasSuffix(path, ".gz") {
		zw = pgzip.NewWriter(tmp)
		w = zw
	}
	if err = Write(w, t, bar); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	if zw != nil {
		if err = zw.Close(); err != nil {
			return err
		}
	}
	if err = tmp.Chmod(0o644); err != nil {
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
