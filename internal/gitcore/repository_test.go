package gitcore

import (
	"os"
	"path/filepath"
	"testing"

	"minigit/internal/osfs"
)

func TestInitTwiceFails(t *testing.T) {
	dir := t.TempDir()
	wt := newMemTree()

	if _, err := Init(dir, wt, nil); err != nil {
		t.Fatalf("Init: %v", err)
	}

	_, err := Init(dir, wt, nil)
	ce, ok := err.(*CoreError)
	if !ok || ce.Kind != ErrAlreadyInitialized {
		t.Fatalf("Init (second): got %v, want ErrAlreadyInitialized", err)
	}
}

func TestOpenMissingRepositoryFails(t *testing.T) {
	shared := newMemTree()
	_, err := Open(t.TempDir(), func(string) WorkingTree { return shared }, nil)
	ce, ok := err.(*CoreError)
	if !ok || ce.Kind != ErrNotARepository {
		t.Fatalf("Open: got %v, want ErrNotARepository", err)
	}
}

func TestOpenFindsRepositoryFromSubdirectory(t *testing.T) {
	dir := t.TempDir()
	wt := newMemTree()
	if _, err := Init(dir, wt, nil); err != nil {
		t.Fatalf("Init: %v", err)
	}

	sub := dir + "/nested/deeper"
	var gotRoot string
	newWT := func(root string) WorkingTree {
		gotRoot = root
		return wt
	}
	repo, err := Open(sub, newWT, nil)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if repo.WorkDir() != dir {
		t.Errorf("WorkDir: got %s, want %s", repo.WorkDir(), dir)
	}
	if gotRoot != dir {
		t.Errorf("working tree factory called with %q, want %q (the directory Open found, not %q)", gotRoot, dir, sub)
	}
}

// TestOpenReRootsWorkingTreeOnOSFilesystem exercises the same scenario using
// osfs.Tree, the real WorkingTree implementation, so a divergence between the
// discovered repository root and the working tree's own root (which memTree's
// path-keyed map can't expose, since it ignores "root" entirely) is caught:
// staging and checking out a file from a nested subdirectory must read and
// write relative to the directory Open actually found.
func TestOpenReRootsWorkingTreeOnOSFilesystem(t *testing.T) {
	dir := t.TempDir()
	newWT := func(root string) WorkingTree { return osfs.New(root, RepoDirName) }

	repo, err := Init(dir, newWT(dir), nil)
	if err != nil {
		t.Fatalf("Init: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "a.txt"), []byte("hello\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if err := repo.Add("a.txt"); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if _, err := repo.Commit("first", testIdentity, testTime); err != nil {
		t.Fatalf("Commit: %v", err)
	}

	sub := filepath.Join(dir, "nested", "deeper")
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}

	reopened, err := Open(sub, newWT, nil)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if reopened.WorkDir() != dir {
		t.Fatalf("WorkDir: got %s, want %s", reopened.WorkDir(), dir)
	}

	if err := os.WriteFile(filepath.Join(dir, "a.txt"), []byte("hello2\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if err := reopened.Add("a.txt"); err != nil {
		t.Fatalf("Add: %v", err)
	}
	data, err := os.ReadFile(filepath.Join(dir, "a.txt"))
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(data) != "hello2\n" {
		t.Fatalf("a.txt content after Add from subdirectory-opened repo: got %q", data)
	}

	if _, err := reopened.Commit("second", testIdentity, testTime); err != nil {
		t.Fatalf("Commit: %v", err)
	}
	if err := reopened.Checkout(DefaultBranch); err != nil {
		t.Fatalf("Checkout: %v", err)
	}
	data, err = os.ReadFile(filepath.Join(dir, "a.txt"))
	if err != nil {
		t.Fatalf("ReadFile after checkout: %v", err)
	}
	if string(data) != "hello2\n" {
		t.Fatalf("a.txt content after checkout via subdirectory-opened repo: got %q, want %q (wrong root would leave stale/missing content)", data, "hello2\n")
	}
}

func TestLockPreventsSecondAcquisition(t *testing.T) {
	repo, _ := newTestRepo(t)

	unlock, err := repo.Lock()
	if err != nil {
		t.Fatalf("Lock: %v", err)
	}
	defer unlock()

	if _, err := repo.Lock(); err == nil {
		t.Error("Lock: expected second acquisition to fail while held")
	}
}

func TestLockReleaseAllowsReacquisition(t *testing.T) {
	repo, _ := newTestRepo(t)

	unlock, err := repo.Lock()
	if err != nil {
		t.Fatalf("Lock: %v", err)
	}
	unlock()

	unlock2, err := repo.Lock()
	if err != nil {
		t.Fatalf("Lock (after release): %v", err)
	}
	unlock2()
}

func TestBranchCreateDuplicateFails(t *testing.T) {
	repo, wt := newTestRepo(t)
	commitFile(t, repo, wt, "a.txt", "v1", "first")

	if err := repo.Branch("dev"); err != nil {
		t.Fatalf("Branch: %v", err)
	}

	err := repo.Branch("dev")
	ce, ok := err.(*CoreError)
	if !ok || ce.Kind != ErrBranchExists {
		t.Fatalf("Branch (duplicate): got %v, want ErrBranchExists", err)
	}
}

func TestBranchBeforeAnyCommitFails(t *testing.T) {
	repo, _ := newTestRepo(t)

	err := repo.Branch("dev")
	ce, ok := err.(*CoreError)
	if !ok || ce.Kind != ErrNoCommits {
		t.Fatalf("Branch: got %v, want ErrNoCommits", err)
	}
}

func TestListBranchesReportsCurrent(t *testing.T) {
	repo, wt := newTestRepo(t)
	commitFile(t, repo, wt, "a.txt", "v1", "first")
	if err := repo.Branch("dev"); err != nil {
		t.Fatalf("Branch: %v", err)
	}

	names, current, err := repo.ListBranches()
	if err != nil {
		t.Fatalf("ListBranches: %v", err)
	}
	if len(names) != 2 {
		t.Fatalf("ListBranches: got %v, want 2 entries", names)
	}
	if current != "main" {
		t.Errorf("current: got %q, want main", current)
	}
}
