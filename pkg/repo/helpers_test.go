package repo

import (
	"strconv"
	"testing"

	"github.com/go-git/go-billy/v5/memfs"
	"github.com/odvcencio/gitcore/pkg/object"
)

const (
	helloBlob = object.Hash("ce013625030ba8dba906f756967f9e9ca394464a")
	helloTree = object.Hash("aaa96ced2d9a1c8e72c56b253a0e2fe78393feb7")
	rootHash  = object.Hash("e93e50a9310dd77f622eff0ea0f195da14133aff")
)

func ident(unix int) string {
	return "Ada Lovelace <ada@example.com> " + strconv.Itoa(unix) + " +0000"
}

// newMemRepo initializes a repository on an in-memory filesystem.
func newMemRepo(t *testing.T, opts ...Option) *Repository {
	t.Helper()
	opts = append([]Option{WithFilesystem(memfs.New())}, opts...)
	r, err := Init("/", opts...)
	if err != nil {
		t.Fatalf("Init: %v", err)
	}
	t.Cleanup(func() { r.Close() })
	return r
}

func mustWrite(t *testing.T, r *Repository, obj object.Object) object.Hash {
	t.Helper()
	h, err := r.WriteObject(obj, false)
	if err != nil {
		t.Fatalf("WriteObject(%s): %v", obj.Type(), err)
	}
	return h
}

// writeHelloCommit stores the hello blob, its tree, and the root commit.
func writeHelloCommit(t *testing.T, r *Repository) object.Hash {
	t.Helper()
	mustWrite(t, r, object.NewBlob([]byte("hello\n")))
	mustWrite(t, r, object.NewTree([]object.TreeEntry{{Mode: object.TreeModeFile, Name: "hello.txt", Hash: helloBlob}}))
	h := mustWrite(t, r, object.NewCommit(helloTree, nil, ident(1700000000), ident(1700000000), "initial commit\n"))
	if h != rootHash {
		t.Fatalf("root commit = %s, want %s", h, rootHash)
	}
	return h
}
