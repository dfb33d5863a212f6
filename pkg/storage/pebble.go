package storage

import (
	"errors"
	"fmt"

	"github.com/cockroachdb/pebble"
	"github.com/cockroachdb/pebble/vfs"
)

// Pebble keeps compressed envelopes in a Pebble key-value store instead of
// one file per object. It trades Git interoperability for fewer inodes.
type Pebble struct {
	db *pebble.DB
}

// OpenPebble opens (creating if needed) a Pebble store in dir. A nil fs
// uses the OS filesystem.
func OpenPebble(dir string, fs vfs.FS) (*Pebble, error) {
	opts := &pebble.Options{}
	if fs != nil {
		opts.FS = fs
	}
	db, err := pebble.Open(dir, opts)
	if err != nil {
		return nil, fmt.Errorf("pebble open %s: %w", dir, err)
	}
	return &Pebble{db: db}, nil
}

func (p *Pebble) Get(key string) ([]byte, error) {
	if err := validKey(key); err != nil {
		return nil, err
	}
	value, closer, err := p.db.Get([]byte(key))
	if err != nil {
		if errors.Is(err, pebble.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("pebble get %s: %w", key, err)
	}
	defer closer.Close()
	out := make([]byte, len(value))
	copy(out, value)
	return out, nil
}

func (p *Pebble) Put(key string, value []byte) error {
	if err := validKey(key); err != nil {
		return err
	}
	if err := p.db.Set([]byte(key), value, pebble.Sync); err != nil {
		return fmt.Errorf("pebble set %s: %w", key, err)
	}
	return nil
}

func (p *Pebble) Has(key string) (bool, error) {
	if err := validKey(key); err != nil {
		return false, err
	}
	_, closer, err := p.db.Get([]byte(key))
	if err != nil {
		if errors.Is(err, pebble.ErrNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("pebble get %s: %w", key, err)
	}
	closer.Close()
	return true, nil
}

// List calls fn for every key in key order. Keys that are not valid object
// keys are skipped.
func (p *Pebble) List(fn func(key string) error) error {
	iter, err := p.db.NewIter(nil)
	if err != nil {
		return fmt.Errorf("pebble iter: %w", err)
	}
	for iter.First(); iter.Valid(); iter.Next() {
		key := string(iter.Key())
		if validKey(key) != nil {
			continue
		}
		if err := fn(key); err != nil {
			iter.Close()
			return err
		}
	}
	if err := iter.Error(); err != nil {
		iter.Close()
		return fmt.Errorf("pebble iter: %w", err)
	}
	return iter.Close()
}

func (p *Pebble) Close() error {
	return p.db.Close()
}
