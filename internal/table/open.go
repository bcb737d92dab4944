package table

import (
	"io"
	"os"
	"strings"

	"github.com/klauspost/pgzip"
)

// source is a rewindable, possibly gzip-compressed, input file.
type source struct {
	f  *os.File
	zr *pgzip.Reader
}

// openSource detects gzip by magic number (1F 8B) or by .gz suffix.
func openSource(path string) (*source, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	var sig [2]byte
	n, _ := io.ReadFull(fh, sig[:])
	if _, err := fh.Seek(0, io.SeekStart); err != nil {
		_ = fh.Close()
		return nil, err
	}
	if (n == 2 && sig[0] == 0x1f && sig[1] == 0x8b) || strings.HasSuffix(path, ".gz") {
		zr, err := pgzip.NewReader(fh)
		if err != nil {
			_ = fh.Close()
			return nil, err
		}
		return &source{f: fh, zr: zr}, nil
	}
	return &source{f: fh}, nil
}

func (s *source) Read(p []byte) (int, error) {
	if s.zr != nil {
		return s.zr.Read(p)
	}
	return s.f.Read(p)
}

// rewind moves back to the first byte of decoded content.
func (s *source) rewind() error {
	if _, err := s.f.Seek(0, io.SeekStart); err != nil {
		return err
	}
	if s.zr != nil {
		return s.zr.Reset(s.f)
	}
	return nil
}

func (s *source) Close() error {
	var err error
	if s.zr != nil {
		err = s.zr.Close()
	}
	if cerr := s.f.Close(); cerr != nil && err == nil {
		err = cerr
	}
	return err
}
