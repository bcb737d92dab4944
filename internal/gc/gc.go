// Package gc computes GC content of nucleotide sequences.
//
// Percentages are rounded half to even, applied to gc/len*100 in that order,
// so results at the .5 boundary match the reference pipeline bit for bit.
package gc

import (
	"math"
	"strconv"
	"strings"
)

// DefaultWindow is the size of one windowed-profile subsection.
const DefaultWindow = 10

// Content returns the GC percentage of seq. 'c' and 'g' are counted in either
// case; every other character counts towards the length only. An empty
// sequence has no defined content and returns 0.
func Content(seq string) int {
	if len(seq) == 0 {
		return 0
	}
	n := 0
	for i := 0; i < len(seq); i++ {
		switch seq[i] {
		case 'c', 'g', 'C', 'G':
			n++
		}
	}
	return int(math.RoundToEven(float64(n) / float64(len(seq)) * 100))
}

// Profile returns Content of each consecutive, non-overlapping window of seq.
// A trailing partial window is discarded, so a sequence shorter than window
// has an empty profile.
func Profile(seq string, window int) []int {
	if window <= 0 {
		return nil
	}
	out := make([]int, 0, len(seq)/window)
	for i := 0; i+window <= len(seq); i += window {
		out = append(out, Content(seq[i:i+window]))
	}
	return out
}

// FormatProfile joins a profile with semicolons.
func FormatProfile(p []int) string {
	parts := make([]string, len(p))
	for i, v := range p {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, ";")
}
