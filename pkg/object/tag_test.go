package object

import (
	"bytes"
	"testing"
)

func TestNewTagMatchesGit(t *testing.T) {
	tagger := "Ada Lovelace <ada@example.com> 1700000200 +0000"
	tag := NewTag(rootCommit, TypeCommit, "v1.0", tagger, "release 1.0\n")
	const want = Hash("4592288ea8ca1e4ac7da04beaba6d13eb1846a4e")
	if got := HashObject(TypeTag, tag.Serialize()); got != want {
		t.Fatalf("tag hash = %s, want %s", got, want)
	}

	parsed := &Tag{}
	if err := parsed.Deserialize(tag.Serialize()); err != nil {
		t.Fatalf("Deserialize: %v", err)
	}
	if parsed.Target() != rootCommit {
		t.Errorf("Target() = %s", parsed.Target())
	}
	if parsed.TargetType() != TypeCommit {
		t.Errorf("TargetType() = %s", parsed.TargetType())
	}
	if parsed.Name() != "v1.0" {
		t.Errorf("Name() = %q", parsed.Name())
	}
	if parsed.Tagger() != tagger {
		t.Errorf("Tagger() = %q", parsed.Tagger())
	}
	if parsed.Message() != "release 1.0\n" {
		t.Errorf("Message() = %q", parsed.Message())
	}
	if !bytes.Equal(parsed.Serialize(), tag.Serialize()) {
		t.Error("tag did not round-trip")
	}
}
