// internal/jsonutil/json.go
package jsonutil

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
)

// EncodePretty writes v as indented JSON to w.
func EncodePretty(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// WriteFile writes v as indented JSON to path, creating parent directories.
func WriteFile(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := EncodePretty(f, v); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
