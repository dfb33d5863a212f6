package object

import (
	"bytes"
	"fmt"
	"strings"
)

// KVLM is an ordered header map followed by a free-text message, the
// format shared by commits and annotated tags:
//
//	tree 9bdf...
//	parent 3c1a...
//	parent 77e0...
//	gpgsig -----BEGIN PGP SIGNATURE-----
//	 <continuation lines start with one space>
//
//	message
//
// Keys keep the order of their first occurrence. A key that appears more
// than once holds its values in file order. The message is addressed by
// the empty key.
type KVLM struct {
	keys    []string
	values  map[string][]string
	message string
}

// NewKVLM returns an empty header map.
func NewKVLM() *KVLM {
	return &KVLM{values: make(map[string][]string)}
}

// ParseKVLM parses raw commit or tag text.
func ParseKVLM(data []byte) (*KVLM, error) {
	kv := NewKVLM()
	pos := 0
	for {
		rest := data[pos:]
		sp := bytes.IndexByte(rest, ' ')
		nl := bytes.IndexByte(rest, '\n')

		if sp < 0 || nl < sp {
			if nl != 0 {
				return nil, fmt.Errorf("%w: expected blank line at offset %d", ErrMalformedCommit, pos)
			}
			kv.message = string(rest[1:])
			return kv, nil
		}
		if sp == 0 {
			return nil, fmt.Errorf("%w: empty key at offset %d", ErrMalformedCommit, pos)
		}

		key := string(rest[:sp])

		// Extend the value across continuation lines.
		end := nl
		for end+1 < len(rest) && rest[end+1] == ' ' {
			next := bytes.IndexByte(rest[end+1:], '\n')
			if next < 0 {
				return nil, fmt.Errorf("%w: unterminated value for %q", ErrMalformedCommit, key)
			}
			end += 1 + next
		}

		value := strings.ReplaceAll(string(rest[sp+1:end]), "\n ", "\n")
		kv.Add(key, value)
		pos += end + 1
	}
}

// Bytes renders the header map in its canonical text form. For input that
// was itself canonical, Bytes(ParseKVLM(b)) == b.
func (kv *KVLM) Bytes() []byte {
	var buf bytes.Buffer
	for _, key := range kv.keys {
		for _, v := range kv.values[key] {
			buf.WriteString(key)
			buf.WriteByte(' ')
			buf.WriteString(strings.ReplaceAll(v, "\n", "\n "))
			buf.WriteByte('\n')
		}
	}
	buf.WriteByte('\n')
	buf.WriteString(kv.message)
	return buf.Bytes()
}

// Get returns the first value stored under key. Get("") returns the message.
func (kv *KVLM) Get(key string) (string, bool) {
	if key == "" {
		return kv.message, true
	}
	vals := kv.values[key]
	if len(vals) == 0 {
		return "", false
	}
	return vals[0], true
}

// GetAll returns every value stored under key in file order. The result is
// never nil.
func (kv *KVLM) GetAll(key string) []string {
	if key == "" {
		return []string{kv.message}
	}
	out := make([]string, len(kv.values[key]))
	copy(out, kv.values[key])
	return out
}

// Keys returns the distinct header keys in insertion order, without the
// message key.
func (kv *KVLM) Keys() []string {
	out := make([]string, len(kv.keys))
	copy(out, kv.keys)
	return out
}

// Add appends value under key. An existing key keeps its position.
func (kv *KVLM) Add(key, value string) {
	if key == "" {
		kv.message = value
		return
	}
	if _, ok := kv.values[key]; !ok {
		kv.keys = append(kv.keys, key)
	}
	kv.values[key] = append(kv.values[key], value)
}

// Set replaces all values under key. A new key is appended after the
// existing ones; Set with no values removes the key.
func (kv *KVLM) Set(key string, values ...string) {
	if key == "" {
		kv.message = strings.Join(values, "")
		return
	}
	if len(values) == 0 {
		kv.Del(key)
		return
	}
	if _, ok := kv.values[key]; !ok {
		kv.keys = append(kv.keys, key)
	}
	kv.values[key] = append([]string(nil), values...)
}

// Del removes key and all its values.
func (kv *KVLM) Del(key string) {
	if _, ok := kv.values[key]; !ok {
		return
	}
	delete(kv.values, key)
	for i, k := range kv.keys {
		if k == key {
			kv.keys = append(kv.keys[:i:i], kv.keys[i+1:]...)
			break
		}
	}
}

// Message returns the free text after the header block.
func (kv *KVLM) Message() string { return kv.message }

// SetMessage replaces the free text after the header block.
func (kv *KVLM) SetMessage(msg string) { kv.message = msg }

// Clone returns a deep copy.
func (kv *KVLM) Clone() *KVLM {
	out := &KVLM{
		keys:    append([]string(nil), kv.keys...),
		values:  make(map[string][]string, len(kv.values)),
		message: kv.message,
	}
	for k, v := range kv.values {
		out.values[k] = append([]string(nil), v...)
	}
	return out
}
