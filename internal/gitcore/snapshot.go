package gitcore

import "time"

// timestampLayout is the "YYYY-MM-DD HH:MM:SS" local-time format spec §3
// requires for commit timestamps.
const timestampLayout = "2006-01-02 15:04:05"

// Identity is the author/committer identity passed into Commit. A fixed
// placeholder is an acceptable value (spec §3).
type Identity struct {
	Name  string
	Email string
}

// Commit builds a new commit from the current index and HEAD, advances the
// branch HEAD is attached to (or fails, if HEAD is detached — spec §9 open
// question 1 resolves this as disallowed), clears the index on success, and
// returns the new commit's fingerprint.
//
// now is accepted explicitly, rather than read from time.Now() inside this
// function, so that two calls with the same inputs at the same instant are
// reproducible and so tests can supply a fixed instant.
func (r *Repository) Commit(message string, author Identity, now time.Time) (Hash, error) {
	state, err := r.Refs.HeadRead()
	if err != nil {
		return "", err
	}
	if !state.Attached {
		return "", newErr(ErrDetachedCommit, "cannot commit: HEAD is detached")
	}

	idx, err := r.ReadIndex()
	if err != nil {
		return "", err
	}
	if idx.Empty() {
		return "", newErr(ErrEmptyIndex, "nothing staged to commit")
	}

	var parents []Hash
	if state.Commit != "" {
		parents = []Hash{state.Commit}
	}

	sig := Signature{Name: author.Name, Email: author.Email, When: now.Format(timestampLayout)}
	commit := &Commit{
		Parents:   parents,
		Tree:      idx.Entries(),
		Message:   message,
		Author:    sig,
		Committer: sig,
	}

	h, err := r.Store.PutCommit(commit)
	if err != nil {
		return "", err
	}

	if err := r.Refs.BranchWrite(state.Branch, h); err != nil {
		return "", err
	}

	idx.Clear()
	if err := idx.Save(); err != nil {
		return "", wrapErr(ErrUnknown, "clearing index", err)
	}

	r.Logger.Debug("created commit", "hash", h.Short(), "branch", state.Branch, "parents", len(parents))
	return h, nil
}

// CommitLog walks from HEAD's commit following the first parent only,
// stopping at a parentless commit or an unreadable one (spec §4.9). Fails
// with ErrNoCommits if HEAD has not resolved to a commit yet (spec §7). If
// maxCount > 0, at most that many commits are returned.
func (r *Repository) CommitLog(maxCount int) ([]*Commit, error) {
	head, err := r.Refs.ResolveHeadCommit()
	if err != nil {
		return nil, err
	}
	if head == "" {
		return nil, newErr(ErrNoCommits, "no commits yet")
	}

	var result []*Commit
	cur := head
	for cur != "" {
		c, err := r.Store.GetCommit(cur)
		if err != nil {
			break
		}
		result = append(result, c)
		if maxCount > 0 && len(result) >= maxCount {
			break
		}
		if len(c.Parents) == 0 {
			break
		}
		cur = c.Parents[0]
	}
	return result, nil
}
