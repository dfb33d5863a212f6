package repo

import (
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/odvcencio/gitcore/pkg/fsutil"
	"github.com/odvcencio/gitcore/pkg/object"
)

// ErrRefNotFound is returned when a name resolves to no ref file.
var ErrRefNotFound = errors.New("ref not found")

// maxSymrefDepth bounds "ref: " indirection chains.
const maxSymrefDepth = 5

// Head reads HEAD. If it is symbolic it returns the ref path (for example
// "refs/heads/master"); otherwise it returns the detached hash.
func (r *Repository) Head() (string, error) {
	data, err := fsutil.ReadFile(r.fs, r.fs.Join(r.gitDirName, "HEAD"))
	if err != nil {
		return "", fmt.Errorf("head: %w", err)
	}
	content := strings.TrimRight(string(data), "\n")
	if target, ok := strings.CutPrefix(content, "ref: "); ok {
		return target, nil
	}
	return content, nil
}

// ResolveRef turns a name into an object hash. Resolution order:
//
//  1. a full 40-character hash is returned as is;
//  2. "HEAD", following a symbolic HEAD;
//  3. names starting with "refs/" are read directly;
//  4. otherwise refs/heads/<name>, then refs/tags/<name>.
//
// Refs are only read here. A branch that was never committed to (HEAD on
// a fresh repository) yields ErrRefNotFound.
func (r *Repository) ResolveRef(name string) (object.Hash, error) {
	return r.resolveRef(strings.TrimSpace(name), 0)
}

func (r *Repository) resolveRef(name string, depth int) (object.Hash, error) {
	if depth > maxSymrefDepth {
		return "", fmt.Errorf("resolve ref %q: symbolic ref loop", name)
	}
	if h, err := object.ParseHash(name); err == nil {
		return h, nil
	}
	if name == "HEAD" {
		head, err := r.Head()
		if err != nil {
			return "", fmt.Errorf("resolve ref %q: %w", name, err)
		}
		if strings.HasPrefix(head, "refs/") {
			return r.resolveRef(head, depth+1)
		}
		return parseRefHash(name, head)
	}

	candidates := []string{name}
	if !strings.HasPrefix(name, "refs/") {
		candidates = []string{path.Join("refs", "heads", name), path.Join("refs", "tags", name)}
	}
	for _, ref := range candidates {
		data, err := fsutil.ReadFile(r.fs, r.fs.Join(r.gitDirName, ref))
		if err != nil {
			if fsutil.IsNotExist(err) {
				continue
			}
			return "", fmt.Errorf("resolve ref %q: %w", name, err)
		}
		content := strings.TrimSpace(string(data))
		if target, ok := strings.CutPrefix(content, "ref: "); ok {
			return r.resolveRef(target, depth+1)
		}
		return parseRefHash(name, content)
	}
	return "", fmt.Errorf("resolve ref %q: %w", name, ErrRefNotFound)
}

func parseRefHash(name, content string) (object.Hash, error) {
	h, err := object.ParseHash(content)
	if err != nil {
		return "", fmt.Errorf("resolve ref %q: %w", name, err)
	}
	return h, nil
}

// ResolveCommit resolves name with ResolveRef and peels annotated tags
// until it reaches a commit.
func (r *Repository) ResolveCommit(name string) (object.Hash, error) {
	h, err := r.ResolveRef(name)
	if err != nil {
		return "", err
	}
	for range maxSymrefDepth {
		obj, err := r.GetObject(h)
		if err != nil {
			return "", fmt.Errorf("resolve commit %q: %w", name, err)
		}
		switch o := obj.(type) {
		case nil:
			return "", fmt.Errorf("resolve commit %q: %s: %w", name, h, object.ErrNotFound)
		case *object.Commit:
			return h, nil
		case *object.Tag:
			h = o.Target()
		default:
			return "", fmt.Errorf("resolve commit %q: %w: %s is a %s", name, object.ErrTypeMismatch, h, obj.Type())
		}
	}
	return "", fmt.Errorf("resolve commit %q: tag chain too deep", name)
}

// ListRefs returns every ref under refs/, keyed by its path relative to
// refs/ ("heads/master", "tags/v1.0"). Symbolic refs are skipped.
func (r *Repository) ListRefs() (map[string]object.Hash, error) {
	refs := make(map[string]object.Hash)
	root := r.fs.Join(r.gitDirName, "refs")
	if !fsutil.IsDir(r.fs, root) {
		return refs, nil
	}
	if err := r.listRefs(root, "", refs); err != nil {
		return nil, fmt.Errorf("list refs: %w", err)
	}
	return refs, nil
}

func (r *Repository) listRefs(dir, prefix string, out map[string]object.Hash) error {
	entries, err := r.fs.ReadDir(dir)
	if err != nil {
		return err
	}
	for _, e := range entries {
		name := path.Join(prefix, e.Name())
		p := r.fs.Join(dir, e.Name())
		if e.IsDir() {
			if err := r.listRefs(p, name, out); err != nil {
				return err
			}
			continue
		}
		data, err := fsutil.ReadFile(r.fs, p)
		if err != nil {
			return err
		}
		h, err := object.ParseHash(strings.TrimSpace(string(data)))
		if err != nil {
			continue
		}
		out[name] = h
	}
	return nil
}
