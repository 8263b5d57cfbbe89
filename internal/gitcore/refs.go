package gitcore

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	refsHeadsDir = "refs/heads"
	headFileName = "HEAD"
)

// HeadState is the three-way state of HEAD: Unborn, Attached to a branch
// name, or Detached onto a commit fingerprint (spec §4.3, §9 — a tagged
// variant rather than an overloaded string, even though the on-disk form
// stays the "ref: ..." convention).
type HeadState struct {
	Attached bool
	Branch   string // valid when Attached
	Commit   Hash   // the branch's commit when Attached (empty means Unborn), else the detached commit
}

// Unborn reports whether HEAD is attached to a branch that has no commits yet.
func (h HeadState) Unborn() bool {
	return h.Attached && h.Commit == ""
}

// RefStore manages HEAD and refs/heads/<name> files under a repository root.
type RefStore struct {
	root string // <repo>/.minigit
}

func newRefStore(root string) *RefStore { return &RefStore{root: root} }

func (rs *RefStore) headPath() string { return filepath.Join(rs.root, headFileName) }

func (rs *RefStore) branchPath(name string) string {
	return filepath.Join(rs.root, refsHeadsDir, name)
}

// InitDefaultBranch sets HEAD to attached-to-defaultBranch with an empty ref
// file, the state a freshly initialized repository starts in (spec §4.3).
func (rs *RefStore) InitDefaultBranch(name string) error {
	if err := os.MkdirAll(filepath.Join(rs.root, refsHeadsDir), 0o755); err != nil {
		return err
	}
	if err := writeFileAtomic(rs.branchPath(name), []byte("")); err != nil {
		return err
	}
	return rs.HeadWriteAttached(name)
}

// HeadRead returns the current HeadState, resolving the attached branch's
// commit if one exists.
func (rs *RefStore) HeadRead() (HeadState, error) {
	data, err := os.ReadFile(rs.headPath())
	if err != nil {
		return HeadState{}, wrapErr(ErrUnknown, "reading HEAD", err)
	}
	line := strings.TrimSpace(string(data))

	if branch, ok := strings.CutPrefix(line, "ref: refs/heads/"); ok {
		h, err := rs.BranchRead(branch)
		if err != nil {
			return HeadState{}, err
		}
		return HeadState{Attached: true, Branch: branch, Commit: h}, nil
	}

	return HeadState{Attached: false, Commit: Hash(line)}, nil
}

// HeadWriteAttached points HEAD at the named branch symbolically.
func (rs *RefStore) HeadWriteAttached(branch string) error {
	return writeFileAtomic(rs.headPath(), []byte(fmt.Sprintf("ref: refs/heads/%s\n", branch)))
}

// HeadWriteDetached points HEAD directly at a commit fingerprint.
func (rs *RefStore) HeadWriteDetached(h Hash) error {
	return writeFileAtomic(rs.headPath(), []byte(string(h)+"\n"))
}

// ResolveHeadCommit combines HeadRead with branch resolution and returns the
// commit HEAD currently points to, or "" only in the Unborn state.
func (rs *RefStore) ResolveHeadCommit() (Hash, error) {
	state, err := rs.HeadRead()
	if err != nil {
		return "", err
	}
	return state.Commit, nil
}

// BranchRead returns the commit fingerprint stored in refs/heads/<name>, or
// "" if the branch file is empty (the Unborn pre-commit state) or absent.
func (rs *RefStore) BranchRead(name string) (Hash, error) {
	data, err := os.ReadFile(rs.branchPath(name))
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", wrapErr(ErrUnknown, "reading branch ref", err)
	}
	return Hash(strings.TrimSpace(string(data))), nil
}

// BranchWrite sets refs/heads/<name> to commit h.
func (rs *RefStore) BranchWrite(name string, h Hash) error {
	if err := os.MkdirAll(filepath.Dir(rs.branchPath(name)), 0o755); err != nil {
		return err
	}
	return writeFileAtomic(rs.branchPath(name), []byte(string(h)+"\n"))
}

// BranchExists reports whether refs/heads/<name> exists on disk, regardless
// of whether it is empty.
func (rs *RefStore) BranchExists(name string) bool {
	_, err := os.Stat(rs.branchPath(name))
	return err == nil
}

// ListBranches returns all branch names under refs/heads, sorted by the
// caller if order matters.
func (rs *RefStore) ListBranches() ([]string, error) {
	dir := filepath.Join(rs.root, refsHeadsDir)
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, wrapErr(ErrUnknown, "listing branches", err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() {
			names = append(names, e.Name())
		}
	}
	return names, nil
}

// writeFileAtomic writes data to path via a temp file in the same directory
// followed by rename, so a crash mid-write never leaves a torn ref (spec §7).
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	return nil
}
