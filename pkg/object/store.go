package object

import (
	"errors"
	"fmt"

	"github.com/odvcencio/gitcore/pkg/storage"
)

// Store is a content-addressed object store. It builds and hashes
// envelopes and compresses them; the backend decides where the bytes live.
type Store struct {
	backend storage.Backend
	level   int
}

// NewStore creates a Store over backend, compressing at the given zlib
// level (DefaultCompressionLevel for Git's default).
func NewStore(backend storage.Backend, level int) *Store {
	return &Store{backend: backend, level: level}
}

// Backend returns the underlying storage backend.
func (s *Store) Backend() storage.Backend { return s.backend }

// Has reports whether the store contains an object with the given hash.
func (s *Store) Has(h Hash) bool {
	ok, err := s.backend.Has(string(h))
	return err == nil && ok
}

// Write stores an object and returns its content hash. Writing an object
// that is already present does nothing.
func (s *Store) Write(objType ObjectType, data []byte) (Hash, error) {
	envelope := EncodeEnvelope(objType, data)
	h := HashEnvelope(envelope)

	if s.Has(h) {
		return h, nil
	}

	compressed, err := compress(envelope, s.level)
	if err != nil {
		return "", fmt.Errorf("object write %s: %w: compress: %w", h, ErrWriteFailed, err)
	}
	if err := s.backend.Put(string(h), compressed); err != nil {
		return "", fmt.Errorf("object write %s: %w: %w", h, ErrWriteFailed, err)
	}
	return h, nil
}

// Read retrieves an object by hash, returning its type tag and payload.
// A missing object yields an error matching ErrNotFound. The type tag is
// returned as stored; New rejects unknown tags.
func (s *Store) Read(h Hash) (ObjectType, []byte, error) {
	raw, err := s.readEnvelope(h)
	if err != nil {
		return "", nil, err
	}
	objType, payload, err := DecodeEnvelope(raw)
	if err != nil {
		return "", nil, fmt.Errorf("object read %s: %w", h, err)
	}
	return objType, payload, nil
}

func (s *Store) readEnvelope(h Hash) ([]byte, error) {
	if _, err := ParseHash(string(h)); err != nil {
		return nil, fmt.Errorf("object read: %w", err)
	}
	compressed, err := s.backend.Get(string(h))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("object read %s: %w", h, ErrNotFound)
		}
		return nil, fmt.Errorf("object read %s: %w", h, err)
	}
	raw, err := decompress(compressed)
	if err != nil {
		return nil, fmt.Errorf("object read %s: %w", h, err)
	}
	return raw, nil
}

// VerifySummary reports the outcome of Store.Verify.
type VerifySummary struct {
	Objects int
	ByType  map[ObjectType]int
}

// Verify reads every object the backend can list, checks that its envelope
// decodes, that its content hashes to its key, and that it parses as its
// declared type.
func (s *Store) Verify() (*VerifySummary, error) {
	lister, ok := s.backend.(storage.Lister)
	if !ok {
		return nil, fmt.Errorf("verify: backend %T cannot list objects", s.backend)
	}
	summary := &VerifySummary{ByType: make(map[ObjectType]int)}
	err := lister.List(func(key string) error {
		h := Hash(key)
		raw, err := s.readEnvelope(h)
		if err != nil {
			return fmt.Errorf("verify: %w", err)
		}
		if got := HashEnvelope(raw); got != h {
			return fmt.Errorf("verify %s: content hashes to %s", h, got)
		}
		objType, payload, err := DecodeEnvelope(raw)
		if err != nil {
			return fmt.Errorf("verify %s: %w", h, err)
		}
		if _, err := New(objType, payload); err != nil {
			return fmt.Errorf("verify %s: %w", h, err)
		}
		summary.Objects++
		summary.ByType[objType]++
		return nil
	})
	if err != nil {
		return nil, err
	}
	return summary, nil
}
