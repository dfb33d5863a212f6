package object

import (
	"bytes"
	"errors"
	"testing"
)

func TestHashObjectKnownValues(t *testing.T) {
	tests := []struct {
		name    string
		objType ObjectType
		data    string
		want    Hash
	}{
		{"hello blob", TypeBlob, "hello\n", "ce013625030ba8dba906f756967f9e9ca394464a"},
		{"empty blob", TypeBlob, "", "e69de29bb2d1d6434b8b29ae775ad8c2e48c5391"},
		{"empty tree", TypeTree, "", "4b825dc642cb6eb9a060e54bf8d69288fbee4904"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HashObject(tt.objType, []byte(tt.data)); got != tt.want {
				t.Errorf("HashObject(%s, %q) = %s, want %s", tt.objType, tt.data, got, tt.want)
			}
		})
	}
}

func TestHashObjectDeterminism(t *testing.T) {
	data := []byte("hello world")
	h1 := HashObject(TypeBlob, data)
	h2 := HashObject(TypeBlob, data)
	if h1 != h2 {
		t.Errorf("HashObject not deterministic: %q != %q", h1, h2)
	}
	if len(h1) != 40 {
		t.Errorf("Hash length: got %d, want 40", len(h1))
	}
	if h3 := HashObject(TypeTree, data); h3 == h1 {
		t.Error("different types should produce different hashes")
	}
}

func TestEncodeEnvelope(t *testing.T) {
	got := EncodeEnvelope(TypeBlob, []byte("hello\n"))
	want := []byte("blob 6\x00hello\n")
	if !bytes.Equal(got, want) {
		t.Errorf("EncodeEnvelope = %q, want %q", got, want)
	}
	if HashEnvelope(got) != HashObject(TypeBlob, []byte("hello\n")) {
		t.Error("HashEnvelope disagrees with HashObject")
	}
}

func TestDecodeEnvelopeRoundTrip(t *testing.T) {
	payloads := [][]byte{
		nil,
		[]byte("hello\n"),
		[]byte("with\x00nul and spaces"),
		bytes.Repeat([]byte{0xff}, 1000),
	}
	for _, objType := range []ObjectType{TypeBlob, TypeTree, TypeCommit, TypeTag} {
		for _, p := range payloads {
			gotType, gotData, err := DecodeEnvelope(EncodeEnvelope(objType, p))
			if err != nil {
				t.Fatalf("DecodeEnvelope(%s, %d bytes): %v", objType, len(p), err)
			}
			if gotType != objType {
				t.Errorf("type = %q, want %q", gotType, objType)
			}
			if !bytes.Equal(gotData, p) {
				t.Errorf("payload = %q, want %q", gotData, p)
			}
		}
	}
}

func TestDecodeEnvelopeErrors(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want error
	}{
		{"empty", "", ErrMalformedEnvelope},
		{"no space", "blob", ErrMalformedEnvelope},
		{"no nul", "blob 5hello", ErrMalformedEnvelope},
		{"empty type", " 5\x00hello", ErrMalformedEnvelope},
		{"nul in type", "bl\x00ob 5\x00hello", ErrMalformedEnvelope},
		{"empty length", "blob \x00", ErrMalformedEnvelope},
		{"non-numeric length", "blob x\x00", ErrMalformedEnvelope},
		{"signed length", "blob +5\x00hello", ErrMalformedEnvelope},
		{"negative length", "blob -1\x00", ErrMalformedEnvelope},
		{"short payload", "blob 5\x00hell", ErrLengthMismatch},
		{"long payload", "blob 3\x00hello", ErrLengthMismatch},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := DecodeEnvelope([]byte(tt.raw))
			if !errors.Is(err, tt.want) {
				t.Fatalf("DecodeEnvelope(%q) error = %v, want %v", tt.raw, err, tt.want)
			}
		})
	}
}

func TestDecodeEnvelopeKeepsUnknownType(t *testing.T) {
	objType, data, err := DecodeEnvelope([]byte("entity 2\x00hi"))
	if err != nil {
		t.Fatalf("DecodeEnvelope: %v", err)
	}
	if objType != "entity" || string(data) != "hi" {
		t.Errorf("got (%q, %q)", objType, data)
	}
}

func TestParseHash(t *testing.T) {
	if _, err := ParseHash("ce013625030ba8dba906f756967f9e9ca394464a"); err != nil {
		t.Errorf("valid hash rejected: %v", err)
	}
	for _, bad := range []string{
		"",
		"ce01",
		"CE013625030BA8DBA906F756967F9E9CA394464A",
		"ce013625030ba8dba906f756967f9e9ca394464g",
		"ce013625030ba8dba906f756967f9e9ca394464a00",
	} {
		if _, err := ParseHash(bad); !errors.Is(err, ErrInvalidHash) {
			t.Errorf("ParseHash(%q) error = %v, want ErrInvalidHash", bad, err)
		}
	}
}
