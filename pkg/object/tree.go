package object

import (
	"bytes"
	"fmt"
	"sort"
)

const (
	// Tree mode strings as Git writes them (no leading zero on directories).
	TreeModeDir        = "40000"
	TreeModeFile       = "100644"
	TreeModeExecutable = "100755"
	TreeModeSymlink    = "120000"
	TreeModeSubmodule  = "160000"
)

// TreeEntry is one entry in a tree object.
type TreeEntry struct {
	Mode string
	Name string
	Hash Hash
}

// IsDir reports whether the entry points at a subtree.
func (e TreeEntry) IsDir() bool { return e.Mode == TreeModeDir }

// IsSubmodule reports whether the entry is a gitlink. Its hash names a
// commit in another repository.
func (e TreeEntry) IsSubmodule() bool { return e.Mode == TreeModeSubmodule }

// Tree holds an ordered list of entries. Parsed trees keep their on-disk
// order so they re-serialize byte for byte.
type Tree struct {
	Entries []TreeEntry
}

// NewTree builds a tree with entries sorted the way Git sorts them:
// byte-wise by name, with directory names compared as if they ended in "/".
func NewTree(entries []TreeEntry) *Tree {
	sorted := make([]TreeEntry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		return treeSortKey(sorted[i]) < treeSortKey(sorted[j])
	})
	return &Tree{Entries: sorted}
}

func treeSortKey(e TreeEntry) string {
	if e.IsDir() {
		return e.Name + "/"
	}
	return e.Name
}

func (t *Tree) Type() ObjectType { return TypeTree }

// Serialize renders each entry as "<mode> <name>\0<20-byte hash>". Entries
// with an unparseable hash are written as the zero hash; Validate reports
// them.
func (t *Tree) Serialize() []byte {
	var buf bytes.Buffer
	for _, e := range t.Entries {
		buf.WriteString(e.Mode)
		buf.WriteByte(' ')
		buf.WriteString(e.Name)
		buf.WriteByte(0)
		raw, err := rawHash(e.Hash)
		if err != nil {
			raw = make([]byte, HashSize)
		}
		buf.Write(raw)
	}
	return buf.Bytes()
}

// Deserialize parses the binary tree format.
func (t *Tree) Deserialize(data []byte) error {
	var entries []TreeEntry
	pos := 0
	for pos < len(data) {
		sp := bytes.IndexByte(data[pos:], ' ')
		if sp <= 0 {
			return fmt.Errorf("%w: missing mode at offset %d", ErrMalformedTree, pos)
		}
		mode := string(data[pos : pos+sp])
		pos += sp + 1

		nul := bytes.IndexByte(data[pos:], 0)
		if nul <= 0 {
			return fmt.Errorf("%w: missing name at offset %d", ErrMalformedTree, pos)
		}
		name := string(data[pos : pos+nul])
		pos += nul + 1

		if len(data)-pos < HashSize {
			return fmt.Errorf("%w: truncated hash for %q", ErrMalformedTree, name)
		}
		entries = append(entries, TreeEntry{
			Mode: mode,
			Name: name,
			Hash: hashFromRaw(data[pos : pos+HashSize]),
		})
		pos += HashSize
	}
	t.Entries = entries
	return nil
}

// Validate checks that every entry has a mode, a name without "/" or NUL,
// and a well-formed hash.
func (t *Tree) Validate() error {
	for _, e := range t.Entries {
		if e.Mode == "" {
			return fmt.Errorf("%w: entry %q has no mode", ErrMalformedTree, e.Name)
		}
		if e.Name == "" || bytes.ContainsAny([]byte(e.Name), "/\x00") {
			return fmt.Errorf("%w: invalid entry name %q", ErrMalformedTree, e.Name)
		}
		if _, err := ParseHash(string(e.Hash)); err != nil {
			return fmt.Errorf("%w: entry %q: %w", ErrMalformedTree, e.Name, err)
		}
	}
	return nil
}

// Entry returns the entry with the given name.
func (t *Tree) Entry(name string) (TreeEntry, bool) {
	for _, e := range t.Entries {
		if e.Name == name {
			return e, true
		}
	}
	return TreeEntry{}, false
}

func (*Tree) object() {}
