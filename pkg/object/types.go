package object

import (
	"errors"
	"fmt"
)

// Hash is a 40-character lowercase hex-encoded SHA-1 digest of an object
// envelope.
type Hash string

// ZeroHash is the all-zero hash. It never names a stored object.
const ZeroHash Hash = "0000000000000000000000000000000000000000"

// HashSize is the length in bytes of a raw (binary) object hash.
const HashSize = 20

// ObjectType identifies the kind of object stored.
type ObjectType string

const (
	TypeBlob   ObjectType = "blob"
	TypeTree   ObjectType = "tree"
	TypeCommit ObjectType = "commit"
	TypeTag    ObjectType = "tag"
)

var (
	ErrMalformedEnvelope = errors.New("malformed object envelope")
	ErrLengthMismatch    = errors.New("object length mismatch")
	ErrUnknownObjectType = errors.New("unknown object type")
	ErrTypeMismatch      = errors.New("object type mismatch")
	ErrMalformedCommit   = errors.New("malformed commit")
	ErrMalformedTree     = errors.New("malformed tree")
	ErrWriteFailed       = errors.New("object write failed")
	ErrNotFound          = errors.New("object not found")
	ErrInvalidHash       = errors.New("invalid object hash")
)

// ParseType maps a type tag read from an envelope to an ObjectType.
func ParseType(s string) (ObjectType, error) {
	switch t := ObjectType(s); t {
	case TypeBlob, TypeTree, TypeCommit, TypeTag:
		return t, nil
	default:
		return "", fmt.Errorf("%w %q", ErrUnknownObjectType, s)
	}
}

// Object is implemented by Blob, Tree, Commit and Tag. The set is closed:
// New is the only way a type tag read from storage becomes an Object.
type Object interface {
	// Type reports the envelope type tag.
	Type() ObjectType
	// Serialize returns the payload bytes (the envelope body).
	Serialize() []byte
	// Deserialize replaces the object's contents with the parsed payload.
	Deserialize(data []byte) error

	object()
}

// Resolver looks up related objects. Commits take one per call instead of
// holding a reference to their repository.
type Resolver interface {
	GetCommit(h Hash) (*Commit, error)
	GetTree(h Hash) (*Tree, error)
}
