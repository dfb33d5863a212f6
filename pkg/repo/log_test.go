package repo

import (
	"errors"
	"testing"

	"github.com/odvcencio/gitcore/pkg/object"
)

// history builds:
//
//	root(100) <- a(200) <- merge(400)
//	root(100) <- b(300) <-'
func history(t *testing.T, r *Repository) (root, a, b, merge object.Hash) {
	t.Helper()
	mustWrite(t, r, object.NewBlob([]byte("hello\n")))
	mustWrite(t, r, object.NewTree([]object.TreeEntry{{Mode: object.TreeModeFile, Name: "hello.txt", Hash: helloBlob}}))
	commit := func(when int, msg string, parents ...object.Hash) object.Hash {
		return mustWrite(t, r, object.NewCommit(helloTree, parents, ident(when), ident(when), msg))
	}
	root = commit(100, "root\n")
	a = commit(200, "a\n", root)
	b = commit(300, "b\n", root)
	merge = commit(400, "merge\n", a, b)
	return root, a, b, merge
}

func TestWalk_CommitterTimeOrder(t *testing.T) {
	r := newMemRepo(t)
	root, a, b, merge := history(t, r)

	entries, err := r.Log(merge, 0)
	if err != nil {
		t.Fatalf("Log: %v", err)
	}
	want := []object.Hash{merge, b, a, root}
	if len(entries) != len(want) {
		t.Fatalf("Log returned %d entries, want %d", len(entries), len(want))
	}
	for i, e := range entries {
		if e.Hash != want[i] {
			t.Errorf("entry %d = %s (%q), want %s", i, e.Hash, e.Commit.Message(), want[i])
		}
	}
}

func TestLog_Limit(t *testing.T) {
	r := newMemRepo(t)
	_, _, b, merge := history(t, r)

	entries, err := r.Log(merge, 2)
	if err != nil {
		t.Fatalf("Log: %v", err)
	}
	if len(entries) != 2 || entries[1].Hash != b {
		t.Fatalf("Log(limit 2) = %v", entries)
	}
}

func TestWalk_StopAndError(t *testing.T) {
	r := newMemRepo(t)
	_, _, _, merge := history(t, r)

	n := 0
	err := r.Walk(merge, func(LogEntry) error {
		n++
		return ErrStopWalk
	})
	if err != nil || n != 1 {
		t.Fatalf("Walk with ErrStopWalk = %v after %d visits", err, n)
	}

	boom := errors.New("boom")
	if err := r.Walk(merge, func(LogEntry) error { return boom }); !errors.Is(err, boom) {
		t.Fatalf("Walk error = %v, want boom", err)
	}
}

func TestWalk_MissingParentSkipped(t *testing.T) {
	r := newMemRepo(t)
	writeHelloCommit(t, r)
	orphan := mustWrite(t, r, object.NewCommit(helloTree,
		[]object.Hash{"1111111111111111111111111111111111111111", rootHash},
		ident(1700000500), ident(1700000500), "orphan parent\n"))

	entries, err := r.Log(orphan, 0)
	if err != nil {
		t.Fatalf("Log: %v", err)
	}
	if len(entries) != 2 || entries[1].Hash != rootHash {
		t.Fatalf("Log = %v", entries)
	}
}

func TestWalk_MissingStart(t *testing.T) {
	r := newMemRepo(t)
	if err := r.Walk(rootHash, func(LogEntry) error { return nil }); !errors.Is(err, object.ErrNotFound) {
		t.Fatalf("Walk error = %v, want ErrNotFound", err)
	}
}

func TestReachable(t *testing.T) {
	r := newMemRepo(t)
	root, a, b, merge := history(t, r)
	tag := mustWrite(t, r, object.NewTag(merge, object.TypeCommit, "v1", ident(500), "v1\n"))

	got, err := r.Reachable([]object.Hash{tag, " " + merge + " ", ""})
	if err != nil {
		t.Fatalf("Reachable: %v", err)
	}
	for _, h := range []object.Hash{tag, merge, a, b, root, helloTree, helloBlob} {
		if _, ok := got[h]; !ok {
			t.Errorf("%s missing from reachable set", h)
		}
	}
	if len(got) != 7 {
		t.Errorf("reachable set has %d objects, want 7", len(got))
	}

	fromA, err := r.Reachable([]object.Hash{a})
	if err != nil {
		t.Fatalf("Reachable: %v", err)
	}
	if _, ok := fromA[b]; ok {
		t.Error("b should not be reachable from a")
	}
}

func TestReachable_SkipsSubmodules(t *testing.T) {
	r := newMemRepo(t)
	tree := mustWrite(t, r, object.NewTree([]object.TreeEntry{
		{Mode: object.TreeModeSubmodule, Name: "vendor", Hash: "2222222222222222222222222222222222222222"},
	}))
	got, err := r.Reachable([]object.Hash{tree})
	if err != nil {
		t.Fatalf("Reachable: %v", err)
	}
	if len(got) != 1 {
		t.Errorf("reachable = %v, want only the tree", got)
	}
}
