package gitcore

import "sort"

// Branch creates a new branch named name pointing at HEAD's current commit.
// Fails with ErrNoCommits if HEAD has not resolved to a commit yet, and with
// ErrBranchExists if the branch already has a commit recorded (spec §9 open
// question 3: strict semantics, not silent overwrite).
func (r *Repository) Branch(name string) error {
	head, err := r.Refs.ResolveHeadCommit()
	if err != nil {
		return err
	}
	if head == "" {
		return newErr(ErrNoCommits, "cannot create branch %q: no commits yet", name)
	}

	existing, err := r.Refs.BranchRead(name)
	if err != nil {
		return err
	}
	if existing != "" {
		return newErr(ErrBranchExists, "branch %q already exists", name)
	}

	if err := r.Refs.BranchWrite(name, head); err != nil {
		return err
	}
	r.Logger.Debug("created branch", "name", name, "at", head.Short())
	return nil
}

// ListBranches returns all branch names in sorted order along with the
// currently attached branch name (empty if HEAD is detached or unborn).
func (r *Repository) ListBranches() (names []string, current string, err error) {
	names, err = r.Refs.ListBranches()
	if err != nil {
		return nil, "", err
	}
	sort.Strings(names)

	state, err := r.Refs.HeadRead()
	if err != nil {
		return nil, "", err
	}
	if state.Attached {
		current = state.Branch
	}
	return names, current, nil
}
