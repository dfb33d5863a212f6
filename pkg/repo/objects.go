package repo

import (
	"errors"
	"fmt"

	"github.com/odvcencio/gitcore/pkg/object"
)

// GetObject returns the object stored under h. A hash with no stored
// object yields (nil, nil); a stored object that cannot be decoded is an
// error.
func (r *Repository) GetObject(h object.Hash) (object.Object, error) {
	if obj, ok := r.objects[h]; ok {
		return obj, nil
	}
	obj, err := r.readObject(h)
	if err != nil || obj == nil {
		return nil, err
	}
	r.placeObject(h, obj)
	return obj, nil
}

// GetCommit returns the commit stored under h, (nil, nil) if absent, or an
// error matching object.ErrTypeMismatch if h names another type.
func (r *Repository) GetCommit(h object.Hash) (*object.Commit, error) {
	return getTyped(r, h, object.TypeCommit, r.commits)
}

// GetTree is GetCommit for trees.
func (r *Repository) GetTree(h object.Hash) (*object.Tree, error) {
	return getTyped(r, h, object.TypeTree, r.trees)
}

// GetTag is GetCommit for annotated tags.
func (r *Repository) GetTag(h object.Hash) (*object.Tag, error) {
	return getTyped(r, h, object.TypeTag, r.tags)
}

// GetBlob is GetCommit for blobs.
func (r *Repository) GetBlob(h object.Hash) (*object.Blob, error) {
	return getTyped(r, h, object.TypeBlob, r.blobs)
}

func getTyped[T object.Object](r *Repository, h object.Hash, want object.ObjectType, cache map[object.Hash]T) (T, error) {
	var zero T
	if obj, ok := cache[h]; ok {
		return obj, nil
	}
	obj, err := r.GetObject(h)
	if err != nil || obj == nil {
		return zero, err
	}
	typed, ok := obj.(T)
	if !ok {
		return zero, fmt.Errorf("object %s: %w: got %s, want %s", h, object.ErrTypeMismatch, obj.Type(), want)
	}
	return typed, nil
}

func (r *Repository) readObject(h object.Hash) (object.Object, error) {
	store, err := r.Store()
	if err != nil {
		return nil, err
	}
	objType, payload, err := store.Read(h)
	if err != nil {
		if errors.Is(err, object.ErrNotFound) {
			r.logger.Debug("object not found", "hash", h)
			return nil, nil
		}
		return nil, err
	}
	obj, err := object.New(objType, payload)
	if err != nil {
		return nil, fmt.Errorf("object %s: %w", h, err)
	}
	r.logger.Debug("object read", "hash", h, "type", objType, "size", len(payload))
	return obj, nil
}

// placeObject caches obj generically and, by its reported type, in the
// matching typed cache.
func (r *Repository) placeObject(h object.Hash, obj object.Object) {
	r.objects[h] = obj
	switch obj.Type() {
	case object.TypeCommit:
		if c, ok := obj.(*object.Commit); ok {
			r.commits[h] = c
		}
	case object.TypeTree:
		if t, ok := obj.(*object.Tree); ok {
			r.trees[h] = t
		}
	case object.TypeTag:
		if t, ok := obj.(*object.Tag); ok {
			r.tags[h] = t
		}
	case object.TypeBlob:
		if b, ok := obj.(*object.Blob); ok {
			r.blobs[h] = b
		}
	}
}

// WriteObject serializes obj, stores it, and returns its hash. With
// simulate set it only computes the hash and touches nothing. Trees are
// validated first in both modes; a bad entry yields ErrMalformedTree.
//
// The cache receives a fresh instance decoded from the written payload, so
// later edits to obj cannot change what the cache serves for the hash.
func (r *Repository) WriteObject(obj object.Object, simulate bool) (object.Hash, error) {
	if t, ok := obj.(*object.Tree); ok {
		if err := t.Validate(); err != nil {
			return "", fmt.Errorf("write tree: %w", err)
		}
	}
	return r.writePayload(obj.Type(), obj.Serialize(), simulate)
}

// WritePayload stores payload byte for byte as an object of type objType.
// The payload must decode as that type, but it is not re-serialized, so
// non-canonical input keeps the hash Git would give it.
func (r *Repository) WritePayload(objType object.ObjectType, payload []byte, simulate bool) (object.Hash, error) {
	obj, err := object.New(objType, payload)
	if err != nil {
		return "", err
	}
	if t, ok := obj.(*object.Tree); ok {
		if err := t.Validate(); err != nil {
			return "", fmt.Errorf("write tree: %w", err)
		}
	}
	return r.writePayload(objType, payload, simulate)
}

func (r *Repository) writePayload(objType object.ObjectType, payload []byte, simulate bool) (object.Hash, error) {
	if simulate {
		return object.HashObject(objType, payload), nil
	}

	store, err := r.Store()
	if err != nil {
		return "", fmt.Errorf("%w: %w", object.ErrWriteFailed, err)
	}
	h, err := store.Write(objType, payload)
	if err != nil {
		return "", err
	}
	r.logger.Debug("object written", "hash", h, "type", objType, "size", len(payload))

	if _, ok := r.objects[h]; !ok {
		cached, err := object.New(objType, payload)
		if err != nil {
			return "", fmt.Errorf("object %s: %w", h, err)
		}
		r.placeObject(h, cached)
	}
	return h, nil
}

// WriteTracked writes t's object if it is dirty and marks it clean. A clean
// object is not written; its hash is still returned.
func (r *Repository) WriteTracked(t *object.Tracked) (object.Hash, error) {
	if !t.Dirty() {
		return r.WriteObject(t.Object, true)
	}
	h, err := r.WriteObject(t.Object, false)
	if err != nil {
		return "", err
	}
	t.Clean()
	return h, nil
}

// Verify checks every object in the store. See object.Store.Verify.
func (r *Repository) Verify() (*object.VerifySummary, error) {
	store, err := r.Store()
	if err != nil {
		return nil, err
	}
	return store.Verify()
}
