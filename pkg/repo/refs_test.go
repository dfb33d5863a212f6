package repo

import (
	"errors"
	"testing"

	"github.com/odvcencio/gitcore/pkg/fsutil"
	"github.com/odvcencio/gitcore/pkg/object"
)

func writeRef(t *testing.T, r *Repository, name, content string) {
	t.Helper()
	p := r.Filesystem().Join(DefaultGitDir, name)
	if err := fsutil.CreateFile(r.Filesystem(), p, []byte(content), fsutil.FileMode); err != nil {
		t.Fatalf("write ref %s: %v", name, err)
	}
}

func TestHead(t *testing.T) {
	r := newMemRepo(t)
	head, err := r.Head()
	if err != nil {
		t.Fatalf("Head: %v", err)
	}
	if head != "refs/heads/master" {
		t.Errorf("Head() = %q", head)
	}
}

func TestResolveRef_UnbornBranch(t *testing.T) {
	r := newMemRepo(t)
	if _, err := r.ResolveRef("HEAD"); !errors.Is(err, ErrRefNotFound) {
		t.Fatalf("ResolveRef(HEAD) error = %v, want ErrRefNotFound", err)
	}
}

func TestResolveRef(t *testing.T) {
	r := newMemRepo(t)
	commit := writeHelloCommit(t, r)
	writeRef(t, r, "refs/heads/master", string(commit)+"\n")
	writeRef(t, r, "refs/tags/light", string(commit)+"\n")

	for _, name := range []string{"HEAD", "master", "refs/heads/master", "light", string(commit)} {
		h, err := r.ResolveRef(name)
		if err != nil {
			t.Fatalf("ResolveRef(%q): %v", name, err)
		}
		if h != commit {
			t.Errorf("ResolveRef(%q) = %s, want %s", name, h, commit)
		}
	}

	writeRef(t, r, "HEAD", string(commit)+"\n")
	if h, err := r.ResolveRef("HEAD"); err != nil || h != commit {
		t.Errorf("detached HEAD = %s, %v", h, err)
	}

	writeRef(t, r, "refs/heads/broken", "not a hash\n")
	if _, err := r.ResolveRef("broken"); !errors.Is(err, object.ErrInvalidHash) {
		t.Errorf("ResolveRef(broken) error = %v, want ErrInvalidHash", err)
	}
	if _, err := r.ResolveRef("nope"); !errors.Is(err, ErrRefNotFound) {
		t.Errorf("ResolveRef(nope) error = %v, want ErrRefNotFound", err)
	}
}

func TestResolveRef_SymrefLoop(t *testing.T) {
	r := newMemRepo(t)
	writeRef(t, r, "refs/heads/a", "ref: refs/heads/b\n")
	writeRef(t, r, "refs/heads/b", "ref: refs/heads/a\n")
	if _, err := r.ResolveRef("a"); err == nil {
		t.Fatal("ResolveRef followed a symbolic ref loop")
	}
}

func TestResolveCommit_PeelsTags(t *testing.T) {
	r := newMemRepo(t)
	commit := writeHelloCommit(t, r)
	tag := mustWrite(t, r, object.NewTag(commit, object.TypeCommit, "v1.0", ident(1700000200), "release\n"))
	writeRef(t, r, "refs/tags/v1.0", string(tag)+"\n")

	h, err := r.ResolveCommit("v1.0")
	if err != nil {
		t.Fatalf("ResolveCommit: %v", err)
	}
	if h != commit {
		t.Errorf("ResolveCommit(v1.0) = %s, want %s", h, commit)
	}

	if _, err := r.ResolveCommit(string(helloTree)); !errors.Is(err, object.ErrTypeMismatch) {
		t.Errorf("ResolveCommit(tree) error = %v, want ErrTypeMismatch", err)
	}
	if _, err := r.ResolveCommit("1111111111111111111111111111111111111111"); !errors.Is(err, object.ErrNotFound) {
		t.Errorf("ResolveCommit(missing) error = %v, want ErrNotFound", err)
	}
}

func TestListRefs(t *testing.T) {
	r := newMemRepo(t)
	commit := writeHelloCommit(t, r)
	writeRef(t, r, "refs/heads/master", string(commit)+"\n")
	writeRef(t, r, "refs/heads/feature/x", string(commit)+"\n")
	writeRef(t, r, "refs/tags/v1", string(commit)+"\n")
	writeRef(t, r, "refs/heads/sym", "ref: refs/heads/master\n")

	refs, err := r.ListRefs()
	if err != nil {
		t.Fatalf("ListRefs: %v", err)
	}
	for _, name := range []string{"heads/master", "heads/feature/x", "tags/v1"} {
		if refs[name] != commit {
			t.Errorf("refs[%q] = %s", name, refs[name])
		}
	}
	if len(refs) != 3 {
		t.Errorf("ListRefs() = %v, want 3 refs", refs)
	}
}
