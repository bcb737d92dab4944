// Package uniprot retrieves protein records from the UniProtKB REST service
// and extracts the function annotation and literature citations.
package uniprot

import (
	"errors"
	"io"
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// ErrNoEntry is returned by Parse when the input is not a UniProt text record.
var ErrNoEntry = errors.New("uniprot: no entry in record")

var (
	// The block ends at the next comment topic, the copyright rule, or EOF.
	reFunction = regexp.MustCompile(`(?s)CC   -!- FUNCTION: (.*?)(?:CC   -!-|CC   ---|\z)`)
	rePubMed   = regexp.MustCompile(`RX   PubMed=(\d*);`)
	reAccess   = regexp.MustCompile(`(?m)^AC   ([^;\s]+)`)
)

// Entry holds the fields of a UniProt record used by the pipeline.
type Entry struct {
	Accession string
	Function  string
	PubMed    []string
}

// Parse extracts the primary accession, the FUNCTION comment and every
// PubMed citation (in record order) from a UniProt text record. A record
// without a FUNCTION comment has an empty Function.
func Parse(r io.Reader) (*Entry, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	text := string(b)
	if !strings.HasPrefix(text, "ID   ") {
		return nil, ErrNoEntry
	}

	e := &Entry{}
	if m := reAccess.FindStringSubmatch(text); m != nil {
		e.Accession = m[1]
	}
	if m := reFunction.FindStringSubmatch(text); m != nil {
		e.Function = cleanFunction(m[1])
	}
	for _, m := range rePubMed.FindAllStringSubmatch(text, -1) {
		if m[1] != "" {
			e.PubMed = append(e.PubMed, m[1])
		}
	}
	return e, nil
}

// cleanFunction joins the continuation lines of a comment block into one
// NFC-normalised line with single spaces.
func cleanFunction(s string) string {
	s = strings.ReplaceAll(s, "\nCC", "")
	s = strings.Join(strings.Fields(s), " ")
	s = strings.ReplaceAll(s, ";", ".")
	return norm.NFC.String(s)
}
