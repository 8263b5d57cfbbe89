package gitcore

// Checkout resolves target as a branch name first, then a commit
// fingerprint, materializes that commit's tree into the working tree, and
// updates HEAD accordingly (spec §4.7). Fails with ErrUnknownTarget if
// target is neither.
//
// This implementation takes the "clean and restore" policy (spec §9 open
// question 2, the recommended stricter variant): every working-tree entry
// except the repository root is removed before materialization, so a
// checkout never leaves stale untracked files mixed in with the restored
// tree. The post-merge materialization step in Merge uses the same policy
// for the non-conflicted files it writes, keeping the two consistent.
func (r *Repository) Checkout(target string) error {
	var h Hash
	var attached bool
	var branch string

	if r.Refs.BranchExists(target) {
		resolved, err := r.Refs.BranchRead(target)
		if err != nil {
			return err
		}
		h, attached, branch = resolved, true, target
	} else if looksLikeFingerprint(target) && r.Store.HasObject(Hash(target)) {
		h, attached = Hash(target), false
	} else {
		return newErr(ErrUnknownTarget, "unknown branch or commit: %s", target)
	}

	var tree Tree
	if h != "" {
		commit, err := r.Store.GetCommit(h)
		if err != nil {
			return err
		}
		tree = commit.Tree
	}

	if err := r.materialize(tree); err != nil {
		return err
	}

	if attached {
		if err := r.Refs.HeadWriteAttached(branch); err != nil {
			return err
		}
	} else {
		if err := r.Refs.HeadWriteDetached(h); err != nil {
			return err
		}
	}

	r.Logger.Debug("checked out", "target", target, "attached", attached)
	return nil
}

// materialize writes every (path, fingerprint) in tree to the working tree,
// after first cleaning it (see Checkout's doc comment for the policy).
func (r *Repository) materialize(tree Tree) error {
	if err := r.wt.Clean(); err != nil {
		return wrapErr(ErrUnknown, "cleaning working tree", err)
	}
	return r.writeTree(tree)
}

// writeTree writes every (path, fingerprint) in tree to the working tree
// without first cleaning it. materialize calls it after the clean step.
func (r *Repository) writeTree(tree Tree) error {
	for path, h := range tree {
		content, err := r.Store.GetBlob(h)
		if err != nil {
			return err
		}
		if err := r.wt.WriteFile(path, content); err != nil {
			return wrapErr(ErrUnknown, "writing "+path, err)
		}
	}
	return nil
}
