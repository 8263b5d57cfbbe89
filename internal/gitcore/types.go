// Package gitcore implements the content-addressed object store, reference
// state machine, index, and snapshot/checkout/merge algorithms of minigit.
package gitcore

import "fmt"

// Hash is a lowercase hex-encoded content fingerprint produced by Fingerprint.
// It addresses both blobs and commits in the object store.
type Hash string

// String returns the hash as a plain string.
func (h Hash) String() string { return string(h) }

// Short returns the first 10 characters of the hash, or the full hash if shorter.
// Used only for human-readable output; full hashes are always used internally.
func (h Hash) Short() string {
	if len(h) < 10 {
		return string(h)
	}
	return string(h)[:10]
}

// Signature identifies the author or committer of a commit.
type Signature struct {
	Name  string
	Email string
	// When is formatted as "YYYY-MM-DD HH:MM:SS" local time per spec §3.
	When string
}

func (s Signature) String() string {
	return fmt.Sprintf("%s <%s> %s", s.Name, s.Email, s.When)
}

// Tree is a flat path -> blob fingerprint mapping. No directory objects exist;
// every path is a complete relative working-tree path string.
type Tree map[string]Hash

// Clone returns an independent copy of the tree map.
func (t Tree) Clone() Tree {
	cp := make(Tree, len(t))
	for k, v := range t {
		cp[k] = v
	}
	return cp
}

// Commit is an immutable record: its own fingerprint, parents, message,
// timestamp, author/committer identity, and a tree-map snapshot.
type Commit struct {
	ID        Hash
	Parents   []Hash
	Tree      Tree
	Message   string
	Author    Signature
	Committer Signature
}

// IsMerge reports whether the commit has more than one parent.
func (c *Commit) IsMerge() bool { return len(c.Parents) > 1 }

// IsRoot reports whether the commit has no parents.
func (c *Commit) IsRoot() bool { return len(c.Parents) == 0 }
