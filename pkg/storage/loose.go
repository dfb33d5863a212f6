package storage

import (
	"fmt"

	"github.com/go-git/go-billy/v5"
	"github.com/odvcencio/gitcore/pkg/fsutil"
)

// LooseFileMode is the mode Git gives loose object files.
const LooseFileMode = 0o444

// Loose is the default Git on-disk layout: one file per object under a
// 2-character fan-out directory, objects/ab/cdef0123...
type Loose struct {
	fs billy.Filesystem
}

// NewLoose returns a Loose backend rooted at the objects directory.
func NewLoose(fs billy.Filesystem) *Loose {
	return &Loose{fs: fs}
}

// Path returns the shard path for key relative to the objects directory.
func (l *Loose) Path(key string) string {
	return l.fs.Join(key[:2], key[2:])
}

func (l *Loose) Get(key string) ([]byte, error) {
	if err := validKey(key); err != nil {
		return nil, err
	}
	data, err := fsutil.ReadFile(l.fs, l.Path(key))
	if err != nil {
		if fsutil.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("loose read %s: %w", key, err)
	}
	return data, nil
}

// Put writes value atomically. An existing file is left untouched.
func (l *Loose) Put(key string, value []byte) error {
	if err := validKey(key); err != nil {
		return err
	}
	p := l.Path(key)
	if fsutil.Exists(l.fs, p) {
		return nil
	}
	if err := fsutil.WriteFileAtomic(l.fs, p, value, LooseFileMode); err != nil {
		return fmt.Errorf("loose write %s: %w", key, err)
	}
	return nil
}

func (l *Loose) Has(key string) (bool, error) {
	if err := validKey(key); err != nil {
		return false, err
	}
	return fsutil.Exists(l.fs, l.Path(key)), nil
}

// List calls fn for every loose object key. Temp files and directories
// that are not two hex characters (pack/, info/) are skipped.
func (l *Loose) List(fn func(key string) error) error {
	shards, err := l.fs.ReadDir(".")
	if err != nil {
		if fsutil.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("loose list: %w", err)
	}
	for _, shard := range shards {
		if !shard.IsDir() || len(shard.Name()) != 2 || validKey(shard.Name()+"0") != nil {
			continue
		}
		files, err := l.fs.ReadDir(shard.Name())
		if err != nil {
			return fmt.Errorf("loose list %s: %w", shard.Name(), err)
		}
		for _, f := range files {
			key := shard.Name() + f.Name()
			if f.IsDir() || validKey(key) != nil {
				continue
			}
			if err := fn(key); err != nil {
				return err
			}
		}
	}
	return nil
}

func (l *Loose) Close() error { return nil }
