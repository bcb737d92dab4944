// Package kegg retrieves gene records from the KEGG REST service and parses
// the KEGG flat-file format.
package kegg

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// fieldWidth is the width of the field-name column in a flat file.
const fieldWidth = 12

// ErrNoEntry is returned by Parse when the input holds no ENTRY record.
var ErrNoEntry = errors.New("kegg: no entry in record")

// Entry is one parsed flat-file record. Field values keep one element per
// physical line with the name column removed.
type Entry struct {
	ID     string
	fields map[string][]string
}

// Parse reads the first record from r, up to the "///" terminator or EOF.
// Indented sub-field names (e.g. "  AUTHORS") are stored under their trimmed
// name.
func Parse(r io.Reader) (*Entry, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64<<10), 16<<20)

	e := &Entry{fields: make(map[string][]string)}
	key := ""
	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), "\r")
		if strings.HasPrefix(line, "///") {
			break
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		name, val := line, ""
		if len(line) > fieldWidth {
			name, val = line[:fieldWidth], line[fieldWidth:]
		}
		if n := strings.TrimSpace(name); n != "" {
			key = n
		}
		if key == "" {
			return nil, fmt.Errorf("kegg: continuation line before first field: %q", line)
		}
		e.fields[key] = append(e.fields[key], strings.TrimSpace(val))
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	ent, ok := e.fields["ENTRY"]
	if !ok || len(ent) == 0 {
		return nil, ErrNoEntry
	}
	if f := strings.Fields(ent[0]); len(f) > 0 {
		e.ID = f[0]
	}
	return e, nil
}

func (e *Entry) field(name string) []string { return e.fields[name] }

// DBLink returns the identifiers listed for db in DBLINKS, or "".
func (e *Entry) DBLink(db string) string {
	for _, l := range e.field("DBLINKS") {
		k, v, ok := strings.Cut(l, ":")
		if ok && strings.TrimSpace(k) == db {
			return strings.TrimSpace(v)
		}
	}
	return ""
}

// Pathways returns the PATHWAY field as "<id>: <name>" strings in record order.
func (e *Entry) Pathways() []string {
	var out []string
	for _, l := range e.field("PATHWAY") {
		id, name, _ := strings.Cut(l, " ")
		if id == "" {
			continue
		}
		out = append(out, id+": "+strings.TrimSpace(name))
	}
	return out
}

// NTSeq returns the nucleotide sequence with the leading length line dropped.
func (e *Entry) NTSeq() string {
	lines := e.field("NTSEQ")
	if len(lines) > 0 && isDigits(lines[0]) {
		lines = lines[1:]
	}
	var b strings.Builder
	for _, l := range lines {
		b.WriteString(strings.ReplaceAll(l, " ", ""))
	}
	return b.String()
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
