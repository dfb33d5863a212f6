package fsutil

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/osfs"
)

func TestCreateFileAndRead(t *testing.T) {
	fs := memfs.New()
	if err := CreateFile(fs, "a/b/c.txt", []byte("one"), FileMode); err != nil {
		t.Fatalf("CreateFile: %v", err)
	}
	if !IsDir(fs, "a/b") {
		t.Fatal("parent directories not created")
	}
	// Truncates.
	if err := CreateFile(fs, "a/b/c.txt", []byte("2"), FileMode); err != nil {
		t.Fatalf("CreateFile: %v", err)
	}
	got, err := ReadFile(fs, "a/b/c.txt")
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(got) != "2" {
		t.Errorf("content = %q, want %q", got, "2")
	}
}

func TestReadFileMissing(t *testing.T) {
	_, err := ReadFile(memfs.New(), "nope")
	if !IsNotExist(err) {
		t.Fatalf("error = %v, want not-exist", err)
	}
}

func TestIsEmptyDir(t *testing.T) {
	fs := memfs.New()
	if err := MkdirAll(fs, "d"); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	empty, err := IsEmptyDir(fs, "d")
	if err != nil || !empty {
		t.Fatalf("IsEmptyDir(empty) = %v, %v", empty, err)
	}
	if err := CreateFile(fs, "d/f", nil, FileMode); err != nil {
		t.Fatalf("CreateFile: %v", err)
	}
	empty, err = IsEmptyDir(fs, "d")
	if err != nil || empty {
		t.Fatalf("IsEmptyDir(non-empty) = %v, %v", empty, err)
	}
	if _, err := IsEmptyDir(fs, "d/f"); err == nil {
		t.Error("IsEmptyDir on a file succeeded")
	}
	if _, err := IsEmptyDir(fs, "missing"); err == nil {
		t.Error("IsEmptyDir on a missing path succeeded")
	}
}

func TestWriteFileAtomic(t *testing.T) {
	dir := t.TempDir()
	fs := osfs.New(dir)
	if err := WriteFileAtomic(fs, Join(fs, "ab", "cdef"), []byte("payload"), 0o444); err != nil {
		t.Fatalf("WriteFileAtomic: %v", err)
	}
	data, err := os.ReadFile(filepath.Join(dir, "ab", "cdef"))
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(data) != "payload" {
		t.Errorf("content = %q", data)
	}
	entries, err := os.ReadDir(filepath.Join(dir, "ab"))
	if err != nil {
		t.Fatalf("readdir: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("temp files left behind: %v", entries)
	}
}

// modeFS is an in-memory filesystem whose Chmod fails with err.
type modeFS struct {
	billy.Filesystem
	err   error
	calls int
}

func (m *modeFS) Chmod(string, os.FileMode) error {
	m.calls++
	return m.err
}

func (m *modeFS) Lchown(string, int, int) error { return nil }
func (m *modeFS) Chown(string, int, int) error { return nil }
func (m *modeFS) Chtimes(string, time.Time, time.Time) error { return nil }

func TestWriteFileAtomicChmod(t *testing.T) {
	t.Run("failure", func(t *testing.T) {
		fs := &modeFS{Filesystem: memfs.New(), err: os.ErrPermission}
		err := WriteFileAtomic(fs, "ab/cdef", []byte("payload"), FileMode)
		if !errors.Is(err, os.ErrPermission) {
			t.Fatalf("error = %v, want ErrPermission", err)
		}
		if fs.calls != 1 {
			t.Errorf("Chmod called %d times, want 1", fs.calls)
		}
		if Exists(fs, "ab/cdef") {
			t.Error("target written despite chmod failure")
		}
		if empty, err := IsEmptyDir(fs, "ab"); err != nil || !empty {
			t.Errorf("temp file left behind (empty=%v, err=%v)", empty, err)
		}
	})
	t.Run("not supported", func(t *testing.T) {
		fs := &modeFS{Filesystem: memfs.New(), err: billy.ErrNotSupported}
		if err := WriteFileAtomic(fs, "ab/cdef", []byte("payload"), FileMode); err != nil {
			t.Fatalf("WriteFileAtomic: %v", err)
		}
		if !Exists(fs, "ab/cdef") {
			t.Error("target missing")
		}
	})
}

func TestExists(t *testing.T) {
	fs := memfs.New()
	if Exists(fs, "x") {
		t.Fatal("Exists on empty fs")
	}
	if err := CreateFile(fs, "x", []byte("1"), FileMode); err != nil {
		t.Fatalf("CreateFile: %v", err)
	}
	if !Exists(fs, "x") || IsDir(fs, "x") {
		t.Fatal("Exists/IsDir wrong for a regular file")
	}
}
