package trussfile

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/alexiusacademia/gotruss/internal/truss"
)

// IsJSON reports whether a path is treated as a JSON document
func IsJSON(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".json")
}

// Load reads a truss from a .json document or, for any other extension, the
// tab delimited text format
func Load(path string) (*truss.Truss, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var t *truss.Truss
	if IsJSON(path) {
		t, err = ReadJSON(f)
	} else {
		t, err = ReadText(f)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// Save writes t to path in the format chosen by its extension. The document
// is written to a temporary file next to path and renamed over it, so a
// failed write leaves an existing file untouched.
func Save(path string, t *truss.Truss) error {
	if IsJSON(path) {
		return writeFile(path, func(w io.Writer) error { return WriteJSON(w, t) })
	}
	return writeFile(path, func(w io.Writer) error { return WriteText(w, t) })
}

func writeFile(path string, write func(io.Writer) error) (err error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	f, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			os.Remove(f.Name())
		}
	}()

	if err := write(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Chmod(0644); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(f.Name(), path)
}
