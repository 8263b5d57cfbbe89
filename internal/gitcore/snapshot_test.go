package gitcore

import (
	"testing"
	"time"
)

func newTestRepo(t *testing.T) (*Repository, *memTree) {
	t.Helper()
	wt := newMemTree()
	repo, err := Init(t.TempDir(), wt, nil)
	if err != nil {
		t.Fatalf("Init: %v", err)
	}
	return repo, wt
}

var testIdentity = Identity{Name: "Test User", Email: "test@example.com"}
var testTime = time.Date(2026, 7, 31, 10, 0, 0, 0, time.UTC)

func TestCommitEmptyIndexFails(t *testing.T) {
	repo, _ := newTestRepo(t)

	_, err := repo.Commit("empty", testIdentity, testTime)
	ce, ok := err.(*CoreError)
	if !ok || ce.Kind != ErrEmptyIndex {
		t.Fatalf("Commit: got %v, want ErrEmptyIndex", err)
	}
}

func TestAddThenCommit(t *testing.T) {
	repo, wt := newTestRepo(t)
	if err := wt.WriteFile("a.txt", []byte("hello")); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	if err := repo.Add("a.txt"); err != nil {
		t.Fatalf("Add: %v", err)
	}

	h, err := repo.Commit("first commit", testIdentity, testTime)
	if err != nil {
		t.Fatalf("Commit: %v", err)
	}
	if h == "" {
		t.Fatal("Commit: returned empty hash")
	}

	idx, err := repo.ReadIndex()
	if err != nil {
		t.Fatalf("ReadIndex: %v", err)
	}
	if !idx.Empty() {
		t.Error("ReadIndex: index should be cleared after commit")
	}

	commit, err := repo.Store.GetCommit(h)
	if err != nil {
		t.Fatalf("GetCommit: %v", err)
	}
	if commit.Message != "first commit" {
		t.Errorf("Message: got %q", commit.Message)
	}
	if commit.IsRoot() != true {
		t.Error("IsRoot: expected true for the first commit")
	}
}

func TestAddMissingPathFails(t *testing.T) {
	repo, _ := newTestRepo(t)

	err := repo.Add("nope.txt")
	ce, ok := err.(*CoreError)
	if !ok || ce.Kind != ErrPathNotFound {
		t.Fatalf("Add: got %v, want ErrPathNotFound", err)
	}
}

func TestCommitDetachedHeadFails(t *testing.T) {
	repo, wt := newTestRepo(t)
	if err := wt.WriteFile("a.txt", []byte("1")); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if err := repo.Add("a.txt"); err != nil {
		t.Fatalf("Add: %v", err)
	}
	h, err := repo.Commit("one", testIdentity, testTime)
	if err != nil {
		t.Fatalf("Commit: %v", err)
	}

	if err := repo.Checkout(string(h)); err != nil {
		t.Fatalf("Checkout: %v", err)
	}

	if err := wt.WriteFile("b.txt", []byte("2")); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if err := repo.Add("b.txt"); err != nil {
		t.Fatalf("Add: %v", err)
	}

	_, err = repo.Commit("two", testIdentity, testTime)
	ce, ok := err.(*CoreError)
	if !ok || ce.Kind != ErrDetachedCommit {
		t.Fatalf("Commit: got %v, want ErrDetachedCommit", err)
	}
}

func TestCommitLogBeforeAnyCommitFails(t *testing.T) {
	repo, _ := newTestRepo(t)

	_, err := repo.CommitLog(0)
	ce, ok := err.(*CoreError)
	if !ok || ce.Kind != ErrNoCommits {
		t.Fatalf("CommitLog: got %v, want ErrNoCommits", err)
	}
}

func TestCommitLogNewestFirstWithLimit(t *testing.T) {
	repo, wt := newTestRepo(t)

	var hashes []Hash
	for i, name := range []string{"one", "two", "three"} {
		if err := wt.WriteFile("a.txt", []byte{byte('0' + i)}); err != nil {
			t.Fatalf("WriteFile: %v", err)
		}
		if err := repo.Add("a.txt"); err != nil {
			t.Fatalf("Add: %v", err)
		}
		h, err := repo.Commit(name, testIdentity, testTime)
		if err != nil {
			t.Fatalf("Commit(%s): %v", name, err)
		}
		hashes = append(hashes, h)
	}

	log, err := repo.CommitLog(0)
	if err != nil {
		t.Fatalf("CommitLog: %v", err)
	}
	if len(log) != 3 {
		t.Fatalf("CommitLog: got %d entries, want 3", len(log))
	}
	if log[0].ID != hashes[2] || log[2].ID != hashes[0] {
		t.Error("CommitLog: expected newest-first order")
	}

	limited, err := repo.CommitLog(2)
	if err != nil {
		t.Fatalf("CommitLog(2): %v", err)
	}
	if len(limited) != 2 {
		t.Errorf("CommitLog(2): got %d entries, want 2", len(limited))
	}
}
