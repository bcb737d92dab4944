package engine

import "strings"

// ListSep joins multi-valued cells.
const ListSep = ";"

// JoinList serialises values into one cell. A separator inside a value is
// replaced with a period so the cell splits back into exactly len(values) parts.
func JoinList(values []string) string {
	if len(values) == 0 {
		return ""
	}
	clean := make([]string, len(values))
	for i, v := range values {
		clean[i] = Sanitize(v)
	}
	return strings.Join(clean, ListSep)
}

// Sanitize makes a single value safe to embed in a list cell.
func Sanitize(v string) string { return strings.ReplaceAll(v, ListSep, ".") }

// SplitList is the inverse of JoinList. An empty cell has no entries.
func SplitList(cell string) []string {
	if cell == "" {
		return nil
	}
	return strings.Split(cell, ListSep)
}
