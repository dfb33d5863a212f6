package repo

import (
	"fmt"
	"sort"
	"strings"

	"github.com/odvcencio/gitcore/pkg/object"
)

// Reachable returns all object hashes reachable from roots by following
// object references: commit to tree and parents, tree to entries, tag to
// target. Missing objects are left out. Submodule entries name commits in
// other repositories and are not followed.
func (r *Repository) Reachable(roots []object.Hash) (map[object.Hash]struct{}, error) {
	roots = uniqueNormalizedHashes(roots)
	out := make(map[object.Hash]struct{}, len(roots))
	if len(roots) == 0 {
		return out, nil
	}

	stack := make([]object.Hash, 0, len(roots))
	stack = append(stack, roots...)
	for len(stack) > 0 {
		h := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if h == "" {
			continue
		}
		if _, ok := out[h]; ok {
			continue
		}
		obj, err := r.GetObject(h)
		if err != nil {
			return nil, fmt.Errorf("reachable set read %s: %w", h, err)
		}
		if obj == nil {
			continue
		}
		out[h] = struct{}{}
		stack = append(stack, referencedHashes(obj)...)
	}

	return out, nil
}

func referencedHashes(obj object.Object) []object.Hash {
	switch o := obj.(type) {
	case *object.Blob:
		return nil
	case *object.Tag:
		return []object.Hash{o.Target()}
	case *object.Commit:
		parents := o.ParentHashes()
		refs := make([]object.Hash, 0, 1+len(parents))
		refs = append(refs, o.TreeHash())
		return append(refs, parents...)
	case *object.Tree:
		refs := make([]object.Hash, 0, len(o.Entries))
		for _, e := range o.Entries {
			if e.IsSubmodule() {
				continue
			}
			refs = append(refs, e.Hash)
		}
		return refs
	default:
		return nil
	}
}

func uniqueNormalizedHashes(in []object.Hash) []object.Hash {
	if len(in) == 0 {
		return nil
	}
	seen := make(map[object.Hash]struct{}, len(in))
	out := make([]object.Hash, 0, len(in))
	for _, h := range in {
		h = object.Hash(strings.TrimSpace(string(h)))
		if h == "" {
			continue
		}
		if _, ok := seen[h]; ok {
			continue
		}
		seen[h] = struct{}{}
		out = append(out, h)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
