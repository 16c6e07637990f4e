// Package fs provides file-based storage for exported threads.
package fs

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/fwojciec/threadex"
)

// Ensure Store implements threadex.ThreadStore at compile time.
var _ threadex.ThreadStore = (*Store)(nil)

// Store writes Markdown files into a single output directory.
// Each file is written to a temporary file first and renamed into place, so
// a reader never sees a partially written thread.
type Store struct {
	dir string
}

// NewStore creates a new Store that writes to dir.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// Dir returns the output directory.
func (s *Store) Dir() string {
	return s.dir
}

// Path returns the full path a filename is saved to.
func (s *Store) Path(filename string) string {
	return filepath.Join(s.dir, filename)
}

// Save writes content to filename inside the output directory, replacing
// any existing file. The directory is created if needed.
func (s *Store) Save(ctx context.Context, filename, content string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := validateFilename(filename); err != nil {
		return err
	}

	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(s.dir, ".threadex-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.WriteString(content); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, s.Path(filename)); err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}

// validateFilename rejects names that would escape the output directory.
func validateFilename(filename string) error {
	switch {
	case filename == "", filename == ".", filename == "..":
		return threadex.Errorf(threadex.EINVALID, "invalid filename %q", filename)
	case strings.ContainsAny(filename, `/\`):
		return threadex.Errorf(threadex.EINVALID, "filename %q must not contain path separators", filename)
	}
	return nil
}
