package gitcore

import (
	"bytes"
	"fmt"
	"sort"
)

// FileStatus reports one path's relationship to HEAD, the index, and the
// working tree.
type FileStatus struct {
	// Path is the slash-separated path relative to the repository root.
	Path string

	// IndexStatus describes the change staged relative to HEAD:
	//   "added"    — staged path that HEAD's tree does not have
	//   "modified" — staged path whose content differs from HEAD's
	//   ""         — no staged change
	IndexStatus string

	// WorkStatus describes the change on disk relative to the tracked
	// content (the staged blob, or HEAD's blob when nothing is staged):
	//   "modified" — path exists on disk but differs from the tracked content
	//   "deleted"  — path is tracked but absent from disk
	//   ""         — working tree matches, or the path is untracked
	WorkStatus string

	// IsUntracked is true when the path exists on disk but is neither in
	// HEAD's tree nor in the index. IndexStatus and WorkStatus are empty in
	// that case.
	IsUntracked bool
}

// WorkingTreeStatus is the full working tree status, one FileStatus per path
// that has a staged change, differs on disk from its tracked content, or is
// untracked.
type WorkingTreeStatus struct {
	Files []FileStatus
}

// Status computes the working tree status by comparing the index against
// HEAD's tree, on-disk content against the tracked content, and the working
// tree's entries against the tracked set for untracked files. Every commit
// empties the index, so the tracked set is HEAD's tree with the staged
// entries laid over it. It never shells out and
// never consults ignore rules — every on-disk entry the WorkingTree
// collaborator reports is a candidate untracked file.
func (r *Repository) Status() (*WorkingTreeStatus, error) {
	headTree := make(Tree)
	head, err := r.Refs.ResolveHeadCommit()
	if err != nil {
		return nil, err
	}
	if head != "" {
		commit, err := r.Store.GetCommit(head)
		if err != nil {
			return nil, fmt.Errorf("status: reading HEAD commit: %w", err)
		}
		headTree = commit.Tree
	}

	idx, err := r.ReadIndex()
	if err != nil {
		return nil, fmt.Errorf("status: reading index: %w", err)
	}
	indexEntries := idx.Entries()

	results := make(map[string]*FileStatus)

	for path, h := range indexEntries {
		headHash, inHead := headTree[path]

		var idxStatus string
		switch {
		case !inHead:
			idxStatus = "added"
		case headHash != h:
			idxStatus = "modified"
		}
		if idxStatus != "" {
			results[path] = &FileStatus{Path: path, IndexStatus: idxStatus}
		}
	}

	tracked := headTree.Clone()
	for path, h := range indexEntries {
		tracked[path] = h
	}

	for path, h := range tracked {
		content, err := r.wt.ReadFile(path)
		if err != nil {
			fs, ok := results[path]
			if !ok {
				fs = &FileStatus{Path: path}
				results[path] = fs
			}
			fs.WorkStatus = "deleted"
			continue
		}

		blob, err := r.Store.GetBlob(h)
		if err != nil {
			return nil, fmt.Errorf("status: reading staged blob for %s: %w", path, err)
		}
		if !bytes.Equal(content, blob) {
			fs, ok := results[path]
			if !ok {
				fs = &FileStatus{Path: path}
				results[path] = fs
			}
			fs.WorkStatus = "modified"
		}
	}

	entries, err := r.wt.ListEntries()
	if err != nil {
		return nil, fmt.Errorf("status: listing working tree: %w", err)
	}
	for _, path := range entries {
		if _, ok := tracked[path]; ok {
			continue
		}
		results[path] = &FileStatus{Path: path, IsUntracked: true}
	}

	status := &WorkingTreeStatus{Files: make([]FileStatus, 0, len(results))}
	for _, fs := range results {
		status.Files = append(status.Files, *fs)
	}
	sort.Slice(status.Files, func(i, j int) bool { return status.Files[i].Path < status.Files[j].Path })

	return status, nil
}

// PorcelainCode renders a FileStatus as the teacher's two-letter XY code:
// X is the index status, Y is the work tree status, '?' marks untracked,
// and a space marks "no change in this dimension".
func (fs FileStatus) PorcelainCode() string {
	if fs.IsUntracked {
		return "??"
	}
	x := statusLetter(fs.IndexStatus)
	y := statusLetter(fs.WorkStatus)
	return string([]byte{x, y})
}

func statusLetter(status string) byte {
	switch status {
	case "added":
		return 'A'
	case "modified":
		return 'M'
	case "deleted":
		return 'D'
	default:
		return ' '
	}
}
