// Package fsutil holds the small filesystem helpers the repository and the
// loose object backend share. All of them work on a billy.Filesystem so the
// same code runs against the OS or an in-memory tree.
package fsutil

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/go-git/go-billy/v5"
)

const (
	DirMode  os.FileMode = 0o755
	FileMode os.FileMode = 0o644
)

// Exists reports whether p exists.
func Exists(fs billy.Basic, p string) bool {
	_, err := fs.Stat(p)
	return err == nil
}

// IsDir reports whether p exists and is a directory.
func IsDir(fs billy.Basic, p string) bool {
	info, err := fs.Stat(p)
	return err == nil && info.IsDir()
}

// IsEmptyDir reports whether directory p has no entries. It fails if p is
// not a directory.
func IsEmptyDir(fs billy.Filesystem, p string) (bool, error) {
	info, err := fs.Stat(p)
	if err != nil {
		return false, fmt.Errorf("is empty %s: %w", p, err)
	}
	if !info.IsDir() {
		return false, fmt.Errorf("is empty %s: not a directory", p)
	}
	entries, err := fs.ReadDir(p)
	if err != nil {
		return false, fmt.Errorf("is empty %s: %w", p, err)
	}
	return len(entries) == 0, nil
}

// MkdirAll creates p and any missing parents.
func MkdirAll(fs billy.Dir, p string) error {
	if err := fs.MkdirAll(p, DirMode); err != nil {
		return fmt.Errorf("mkdir %s: %w", p, err)
	}
	return nil
}

// CreateFile creates p (and its parent directories) with the given
// permission bits, truncating any existing content, and writes data.
func CreateFile(fs billy.Filesystem, p string, data []byte, perm os.FileMode) error {
	if err := MkdirAll(fs, filepath.Dir(p)); err != nil {
		return err
	}
	f, err := fs.OpenFile(p, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, perm)
	if err != nil {
		return fmt.Errorf("create %s: %w", p, err)
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", p, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", p, err)
	}
	return nil
}

// WriteFileAtomic writes data to a temp file next to p and renames it into
// place, so readers never observe a partial file. Parent directories are
// created as needed.
func WriteFileAtomic(fs billy.Filesystem, p string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(p)
	if err := MkdirAll(fs, dir); err != nil {
		return err
	}
	tmp, err := fs.TempFile(dir, ".tmp-")
	if err != nil {
		return fmt.Errorf("tmpfile in %s: %w", dir, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		fs.Remove(tmpName)
		return fmt.Errorf("write %s: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		fs.Remove(tmpName)
		return fmt.Errorf("close %s: %w", tmpName, err)
	}
	if ch, ok := fs.(billy.Change); ok {
		if err := ch.Chmod(tmpName, perm); err != nil && !errors.Is(err, billy.ErrNotSupported) {
			fs.Remove(tmpName)
			return fmt.Errorf("chmod %s: %w", tmpName, err)
		}
	}
	if err := fs.Rename(tmpName, p); err != nil {
		fs.Remove(tmpName)
		return fmt.Errorf("rename %s: %w", p, err)
	}
	return nil
}

// ReadFile returns the contents of p. A missing file yields an error that
// matches os.ErrNotExist.
func ReadFile(fs billy.Basic, p string) ([]byte, error) {
	f, err := fs.Open(p)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}

// IsNotExist reports whether err means the path does not exist.
func IsNotExist(err error) bool {
	return errors.Is(err, os.ErrNotExist)
}

// Join joins path elements using the filesystem's separator rules.
func Join(fs billy.Basic, elem ...string) string {
	return fs.Join(elem...)
}
