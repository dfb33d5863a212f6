// Package storage persists compressed object envelopes by hash. It knows
// nothing about object formats: keys are hex hashes and values are opaque.
package storage

import "errors"

var (
	ErrNotFound   = errors.New("storage: key not found")
	ErrInvalidKey = errors.New("storage: invalid key")
)

// Backend stores immutable values by key. Put of an existing key is a
// no-op: the value is determined by the key.
type Backend interface {
	Get(key string) ([]byte, error)
	Put(key string, value []byte) error
	Has(key string) (bool, error)
	Close() error
}

// Lister is implemented by backends that can enumerate their keys.
type Lister interface {
	List(fn func(key string) error) error
}

func validKey(key string) error {
	if len(key) < 3 {
		return ErrInvalidKey
	}
	for i := 0; i < len(key); i++ {
		c := key[i]
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return ErrInvalidKey
		}
	}
	return nil
}
