// Package progress reports row-bounded progress for one pass over a table.
package progress

import (
	"fmt"
	"io"
	"time"

	"github.com/gedex/inflector"

	"genrich/internal/diag"
)

// Reporter receives progress ticks for a pass whose total is known up front.
type Reporter interface {
	Add(n int)
	Done()
}

// Discard ignores all progress.
var Discard Reporter = discard{}

type discard struct{}

func (discard) Add(int) {}
func (discard) Done()   {}

// Bar renders "desc: 42% 21/50 rows". On a terminal the line is redrawn in place;
// elsewhere only the final line is printed.
type Bar struct {
	w     io.Writer
	desc  string
	total int
	n     int
	pct   int
	tty   bool
	start time.Time
	done  bool
}

// New returns a Bar writing to w. total is the number of expected ticks.
func New(w io.Writer, desc string, total int) *Bar {
	return &Bar{w: w, desc: desc, total: total, pct: -1, tty: diag.IsTerminal(w), start: time.Now()}
}

func (b *Bar) Add(n int) {
	b.n += n
	if !b.tty {
		return
	}
	if p := b.percent(); p != b.pct {
		b.pct = p
		_, _ = fmt.Fprintf(b.w, "\r%s", b.line())
	}
}

// Done prints the final line. Calling it twice is a no-op.
func (b *Bar) Done() {
	if b.done {
		return
	}
	b.done = true
	elapsed := time.Since(b.start).Round(time.Millisecond)
	if b.tty {
		_, _ = fmt.Fprintf(b.w, "\r%s [%s]\n", b.line(), elapsed)
		return
	}
	_, _ = fmt.Fprintln(b.w, b.line())
}

func (b *Bar) percent() int {
	if b.total <= 0 {
		return 100
	}
	p := b.n * 100 / b.total
	if p > 100 {
		p = 100
	}
	return p
}

func (b *Bar) line() string {
	return fmt.Sprintf("%s: %3d%% %d/%d %s", b.desc, b.percent(), b.n, b.total, Noun("row", b.total))
}

// Noun pluralises word unless n is exactly one.
func Noun(word string, n int) string {
	if n == 1 {
		return word
	}
	return inflector.Pluralize(word)
}
