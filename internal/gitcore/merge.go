package gitcore

import (
	"bytes"
	"fmt"
	"sort"
	"time"
)

// MergeResult reports the outcome of a Merge call.
type MergeResult struct {
	// Hash is the new merge commit's fingerprint, set only when the merge
	// produced a commit (no conflicts, not already up to date).
	Hash Hash
	// Conflicts lists the paths that could not be automatically reconciled,
	// in sorted order. Empty means the merge succeeded cleanly.
	Conflicts []string
	// AlreadyUpToDate is true when the target branch's tip is already HEAD's
	// commit — merging a branch into itself (or into an identical tip) is a
	// no-op (spec §8, merge identity law).
	AlreadyUpToDate bool
}

// Merge performs a three-way merge of branchName into the current HEAD
// commit, following the reconciliation table of spec §4.8 over the union of
// paths from the merge base, HEAD's tree, and the target branch's tree.
//
// On a clean merge it creates a new two-parent commit, materializes the
// merged tree into the working tree, and clears the index. On conflicts it
// creates no commit, leaves conflict-marked files (plus all non-conflicted
// merged files) materialized in the working tree, and leaves the index
// untouched.
func (r *Repository) Merge(branchName string, author Identity, now time.Time) (*MergeResult, error) {
	if !r.Refs.BranchExists(branchName) {
		return nil, newErr(ErrUnknownTarget, "unknown branch: %s", branchName)
	}

	state, err := r.Refs.HeadRead()
	if err != nil {
		return nil, err
	}
	ours := state.Commit
	if ours == "" {
		return nil, newErr(ErrNoCommits, "cannot merge: no commits on HEAD yet")
	}

	theirs, err := r.Refs.BranchRead(branchName)
	if err != nil {
		return nil, err
	}
	if theirs == ours {
		return &MergeResult{AlreadyUpToDate: true}, nil
	}

	base, err := LowestCommonAncestor(r.Store, ours, theirs)
	if err != nil {
		return nil, err
	}
	if base == "" {
		return nil, newErr(ErrNoCommonAncestor, "no common ancestor between HEAD and %s", branchName)
	}

	oursTree, err := r.treeOf(ours)
	if err != nil {
		return nil, err
	}
	theirsTree, err := r.treeOf(theirs)
	if err != nil {
		return nil, err
	}
	baseTree, err := r.treeOf(base)
	if err != nil {
		return nil, err
	}

	merged, conflicts, writes, err := reconcile(baseTree, oursTree, theirsTree, r.Store)
	if err != nil {
		return nil, err
	}

	if err := r.wt.Clean(); err != nil {
		return nil, wrapErr(ErrUnknown, "cleaning working tree", err)
	}
	for path, content := range writes {
		if err := r.wt.WriteFile(path, content); err != nil {
			return nil, wrapErr(ErrUnknown, "writing "+path, err)
		}
	}

	if len(conflicts) > 0 {
		r.Logger.Debug("merge produced conflicts", "branch", branchName, "conflicts", len(conflicts))
		return &MergeResult{Conflicts: conflicts}, nil
	}

	currentLabel := state.Branch
	if !state.Attached {
		currentLabel = string(ours)
	}
	sig := Signature{Name: author.Name, Email: author.Email, When: now.Format(timestampLayout)}
	commit := &Commit{
		Parents:   []Hash{ours, theirs},
		Tree:      merged,
		Message:   fmt.Sprintf("Merge branch '%s' into %s", branchName, currentLabel),
		Author:    sig,
		Committer: sig,
	}

	h, err := r.Store.PutCommit(commit)
	if err != nil {
		return nil, err
	}

	if state.Attached {
		if err := r.Refs.BranchWrite(state.Branch, h); err != nil {
			return nil, err
		}
	} else {
		if err := r.Refs.HeadWriteDetached(h); err != nil {
			return nil, err
		}
	}

	idx, err := r.ReadIndex()
	if err != nil {
		return nil, err
	}
	idx.Clear()
	if err := idx.Save(); err != nil {
		return nil, wrapErr(ErrUnknown, "clearing index", err)
	}

	r.Logger.Debug("created merge commit", "hash", h.Short(), "branch", branchName)
	return &MergeResult{Hash: h}, nil
}

func (r *Repository) treeOf(h Hash) (Tree, error) {
	if h == "" {
		return Tree{}, nil
	}
	c, err := r.Store.GetCommit(h)
	if err != nil {
		return nil, err
	}
	return c.Tree, nil
}

// reconcile classifies every path in the union of base, ours, and theirs per
// the table in spec §4.8, returning the merged tree (conflicted paths
// omitted), the sorted list of conflicted paths, and the full set of
// (path -> bytes) writes the caller should materialize — merged content for
// clean paths, marker text for conflicted ones.
func reconcile(base, ours, theirs Tree, store *Store) (Tree, []string, map[string][]byte, error) {
	paths := make(map[string]bool)
	for p := range base {
		paths[p] = true
	}
	for p := range ours {
		paths[p] = true
	}
	for p := range theirs {
		paths[p] = true
	}

	merged := make(Tree)
	writes := make(map[string][]byte)
	var conflicts []string

	for path := range paths {
		l, hasL := base[path]
		c, hasC := ours[path]
		t, hasT := theirs[path]

		switch {
		case !hasL && !hasC && hasT:
			merged[path] = t
		case !hasL && hasC && !hasT:
			merged[path] = c
		case !hasL && hasC && hasT:
			if c == t {
				merged[path] = c
			} else {
				conflicts = append(conflicts, path)
			}
		case hasL && hasC && hasT && c == t:
			merged[path] = c // covers l==c==t and l!=c==t identically
		case hasL && !hasC && !hasT:
			// both sides removed it relative to base: nothing to do.
		case hasL && hasC && !hasT:
			if c == l {
				// removed on theirs, unchanged on ours: delete.
			} else {
				conflicts = append(conflicts, path)
			}
		case hasL && !hasC && hasT:
			if t == l {
				// removed on ours, unchanged on theirs: delete.
			} else {
				conflicts = append(conflicts, path)
			}
		case hasL && hasC && hasT && c == l:
			// unchanged on ours, changed on theirs: take theirs.
			merged[path] = t
		case hasL && hasC && hasT && t == l:
			// changed on ours, unchanged on theirs: take ours.
			merged[path] = c
		case hasL && hasC && hasT:
			// all three differ pairwise: modify/modify conflict.
			conflicts = append(conflicts, path)
		}
	}

	sortedConflicts := append([]string(nil), conflicts...)
	sortStrings(sortedConflicts)

	for path, h := range merged {
		content, err := store.GetBlob(h)
		if err != nil {
			return nil, nil, nil, err
		}
		writes[path] = content
	}

	for _, path := range sortedConflicts {
		var oursContent, theirsContent []byte
		var err error
		if h, ok := ours[path]; ok {
			oursContent, err = store.GetBlob(h)
			if err != nil {
				return nil, nil, nil, err
			}
		}
		if h, ok := theirs[path]; ok {
			theirsContent, err = store.GetBlob(h)
			if err != nil {
				return nil, nil, nil, err
			}
		}
		writes[path] = conflictMarkers(oursContent, theirsContent)
	}

	return merged, sortedConflicts, writes, nil
}

// conflictMarkers renders the textual conflict markers of spec §4.8.
func conflictMarkers(ours, theirs []byte) []byte {
	var buf bytes.Buffer
	buf.WriteString("<<<<<<< OURS\n")
	buf.Write(ensureNewline(ours))
	buf.WriteString("=======\n")
	buf.Write(ensureNewline(theirs))
	buf.WriteString(">>>>>>> THEIRS\n")
	return buf.Bytes()
}

func ensureNewline(b []byte) []byte {
	if len(b) == 0 || b[len(b)-1] == '\n' {
		return b
	}
	return append(append([]byte(nil), b...), '\n')
}

func sortStrings(s []string) {
	sort.Strings(s)
}
