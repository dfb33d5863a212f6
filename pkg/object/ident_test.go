package object

import (
	"testing"
	"time"
)

func TestIdentRoundTrip(t *testing.T) {
	tests := []string{
		"Ada Lovelace <ada@example.com> 1700000000 +0000",
		"Bob <bob@example.com> 1700000001 +0130",
		"Eve Example <eve@example.com> 1700000002 -0700",
	}
	for _, s := range tests {
		id, err := ParseIdent(s)
		if err != nil {
			t.Fatalf("ParseIdent(%q): %v", s, err)
		}
		if got := id.String(); got != s {
			t.Errorf("String() = %q, want %q", got, s)
		}
	}
}

func TestParseIdentFields(t *testing.T) {
	id, err := ParseIdent("Ada Lovelace <ada@example.com> 1700000000 -0130")
	if err != nil {
		t.Fatalf("ParseIdent: %v", err)
	}
	if id.Name != "Ada Lovelace" || id.Email != "ada@example.com" {
		t.Errorf("got name %q email %q", id.Name, id.Email)
	}
	if id.When.Unix() != 1700000000 {
		t.Errorf("unix = %d", id.When.Unix())
	}
	if _, off := id.When.Zone(); off != -(90 * 60) {
		t.Errorf("zone offset = %d", off)
	}
}

func TestParseIdentErrors(t *testing.T) {
	for _, s := range []string{
		"no email 1700000000 +0000",
		"Ada <ada@example.com>",
		"Ada <ada@example.com> soon +0000",
		"Ada <ada@example.com> 1700000000 0000",
		"Ada <ada@example.com> 1700000000 +00x0",
	} {
		if _, err := ParseIdent(s); err == nil {
			t.Errorf("ParseIdent(%q) succeeded", s)
		}
	}
}

func TestIdentStringUTC(t *testing.T) {
	id := Ident{Name: "A", Email: "a@b", When: time.Unix(42, 0).UTC()}
	if got := id.String(); got != "A <a@b> 42 +0000" {
		t.Errorf("String() = %q", got)
	}
}

func TestTracked(t *testing.T) {
	tr := Track(NewBlob([]byte("x")))
	if tr.Dirty() {
		t.Fatal("new Tracked is dirty")
	}
	tr.MarkDirty()
	if !tr.Dirty() {
		t.Fatal("MarkDirty did not mark")
	}
	tr.Clean()
	if tr.Dirty() {
		t.Fatal("Clean did not clear")
	}
}
