package object

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"strconv"

	"github.com/pjbgf/sha1cd"
)

// EncodeEnvelope builds the canonical "type len\0payload" bytes whose hash
// is the object's identity.
func EncodeEnvelope(objType ObjectType, payload []byte) []byte {
	header := strconv.AppendInt(append([]byte(objType), ' '), int64(len(payload)), 10)
	out := make([]byte, 0, len(header)+1+len(payload))
	out = append(out, header...)
	out = append(out, 0)
	return append(out, payload...)
}

// HashEnvelope computes the SHA-1 of an already encoded envelope. The
// collision-detecting implementation is the one Git itself ships.
func HashEnvelope(envelope []byte) Hash {
	h := sha1cd.New()
	h.Write(envelope)
	return Hash(hex.EncodeToString(h.Sum(nil)))
}

// HashObject computes the hash an object of the given type and payload
// would be stored under.
func HashObject(objType ObjectType, payload []byte) Hash {
	return HashEnvelope(EncodeEnvelope(objType, payload))
}

// DecodeEnvelope splits an envelope into its type tag and payload. The tag
// is returned as read; New rejects tags outside the known set.
func DecodeEnvelope(raw []byte) (ObjectType, []byte, error) {
	sp := bytes.IndexByte(raw, ' ')
	if sp < 0 {
		return "", nil, fmt.Errorf("%w: no type separator", ErrMalformedEnvelope)
	}
	if sp == 0 {
		return "", nil, fmt.Errorf("%w: empty type", ErrMalformedEnvelope)
	}
	if bytes.IndexByte(raw[:sp], 0) >= 0 {
		return "", nil, fmt.Errorf("%w: NUL in type", ErrMalformedEnvelope)
	}
	nul := bytes.IndexByte(raw[sp:], 0)
	if nul < 0 {
		return "", nil, fmt.Errorf("%w: no length separator", ErrMalformedEnvelope)
	}
	nul += sp

	size, err := parseSize(raw[sp+1 : nul])
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrMalformedEnvelope, err)
	}
	payload := raw[nul+1:]
	if len(payload) != size {
		return "", nil, fmt.Errorf("%w (header=%d, actual=%d)", ErrLengthMismatch, size, len(payload))
	}
	return ObjectType(raw[:sp]), payload, nil
}

// parseSize accepts only plain ASCII decimal digits; strconv alone would
// also take a sign.
func parseSize(b []byte) (int, error) {
	if len(b) == 0 {
		return 0, fmt.Errorf("empty length")
	}
	for _, c := range b {
		if c < '0' || c > '9' {
			return 0, fmt.Errorf("invalid length %q", b)
		}
	}
	n, err := strconv.Atoi(string(b))
	if err != nil {
		return 0, fmt.Errorf("invalid length %q: %w", b, err)
	}
	return n, nil
}

// ParseHash validates a 40-character lowercase hex hash.
func ParseHash(s string) (Hash, error) {
	if len(s) != 2*HashSize {
		return "", fmt.Errorf("%w %q: want %d hex characters", ErrInvalidHash, s, 2*HashSize)
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return "", fmt.Errorf("%w %q", ErrInvalidHash, s)
		}
	}
	return Hash(s), nil
}

// hashFromRaw hex-encodes a 20-byte binary hash as stored in tree entries.
func hashFromRaw(raw []byte) Hash {
	return Hash(hex.EncodeToString(raw))
}

// rawHash decodes h into its 20-byte binary form.
func rawHash(h Hash) ([]byte, error) {
	if _, err := ParseHash(string(h)); err != nil {
		return nil, err
	}
	return hex.DecodeString(string(h))
}
