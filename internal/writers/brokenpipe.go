package writers

import (
	"errors"
	"io"
	"syscall"
)

// IsBrokenPipe reports whether flushing a stage summary failed only because
// the reader of stdout went away, as with `genrich --list | head -1`. The
// commands ignore such errors and keep their exit code.
func IsBrokenPipe(err error) bool {
	if err == nil {
		return false
	}
	return errors.Is(err, syscall.EPIPE) || errors.Is(err, io.ErrClosedPipe)
}
