package object

import "fmt"

// Commit is a KVLM header map (tree, parent, author, committer, any extra
// headers) plus the commit message.
//
// The resolved tree and parents are memoized on first use. A Commit read
// through a repository's cache is shared by every caller, so the memo is
// shared too.
type Commit struct {
	headers *KVLM

	tree    *Tree
	parents []*Commit
	loaded  bool
}

// NewCommit builds a commit in the header order Git writes.
func NewCommit(tree Hash, parents []Hash, author, committer, message string) *Commit {
	kv := NewKVLM()
	kv.Add("tree", string(tree))
	for _, p := range parents {
		kv.Add("parent", string(p))
	}
	kv.Add("author", author)
	kv.Add("committer", committer)
	kv.SetMessage(message)
	return &Commit{headers: kv}
}

func (c *Commit) Type() ObjectType { return TypeCommit }

// Serialize renders the commit text.
func (c *Commit) Serialize() []byte {
	if c.headers == nil {
		return NewKVLM().Bytes()
	}
	return c.headers.Bytes()
}

// Deserialize parses commit text and drops any memoized tree or parents.
func (c *Commit) Deserialize(data []byte) error {
	kv, err := ParseKVLM(data)
	if err != nil {
		return err
	}
	c.headers = kv
	c.tree = nil
	c.parents = nil
	c.loaded = false
	return nil
}

// Headers exposes the underlying header map. Mutating it changes what
// Serialize returns, and therefore the commit's hash.
func (c *Commit) Headers() *KVLM {
	if c.headers == nil {
		c.headers = NewKVLM()
	}
	return c.headers
}

// TreeHash returns the tree header. A commit carries exactly one; if a
// malformed commit repeats it, the first wins.
func (c *Commit) TreeHash() Hash {
	v, _ := c.Headers().Get("tree")
	return Hash(v)
}

// ParentHashes returns the parent headers in file order. A root commit
// yields an empty, non-nil slice.
func (c *Commit) ParentHashes() []Hash {
	vals := c.Headers().GetAll("parent")
	out := make([]Hash, len(vals))
	for i, v := range vals {
		out[i] = Hash(v)
	}
	return out
}

// Author returns the raw author line.
func (c *Commit) Author() string {
	v, _ := c.Headers().Get("author")
	return v
}

// Committer returns the raw committer line.
func (c *Commit) Committer() string {
	v, _ := c.Headers().Get("committer")
	return v
}

// Message returns the commit message.
func (c *Commit) Message() string { return c.Headers().Message() }

// TreeObject resolves the commit's tree through r and memoizes it.
func (c *Commit) TreeObject(r Resolver) (*Tree, error) {
	if c.tree != nil {
		return c.tree, nil
	}
	h := c.TreeHash()
	tree, err := r.GetTree(h)
	if err != nil {
		return nil, fmt.Errorf("commit tree %s: %w", h, err)
	}
	if tree == nil {
		return nil, fmt.Errorf("commit tree %s: %w", h, ErrNotFound)
	}
	c.tree = tree
	return tree, nil
}

// ParentObjects resolves each parent through r and memoizes the result.
// Parents that are not present are skipped; any other failure is returned.
// Duplicate parents appear once.
func (c *Commit) ParentObjects(r Resolver) ([]*Commit, error) {
	if c.loaded {
		return c.parents, nil
	}
	parents := make([]*Commit, 0, len(c.Headers().GetAll("parent")))
	seen := make(map[*Commit]struct{})
	for _, h := range c.ParentHashes() {
		p, err := r.GetCommit(h)
		if err != nil {
			return nil, fmt.Errorf("commit parent %s: %w", h, err)
		}
		if p == nil {
			continue
		}
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		parents = append(parents, p)
	}
	c.parents = parents
	c.loaded = true
	return parents, nil
}

func (*Commit) object() {}
