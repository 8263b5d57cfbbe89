package gitcore

import "testing"

func TestReadIndexMissingIsEmpty(t *testing.T) {
	idx, err := ReadIndex(t.TempDir())
	if err != nil {
		t.Fatalf("ReadIndex: %v", err)
	}
	if !idx.Empty() {
		t.Error("Empty: expected true for a repo with no index file yet")
	}
}

func TestIndexSetSaveReadRoundTrip(t *testing.T) {
	root := t.TempDir()

	idx, err := ReadIndex(root)
	if err != nil {
		t.Fatalf("ReadIndex: %v", err)
	}
	idx.Set("a.txt", Hash("h1"))
	idx.Set("dir/b.txt", Hash("h2"))
	if err := idx.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}

	reloaded, err := ReadIndex(root)
	if err != nil {
		t.Fatalf("ReadIndex (reload): %v", err)
	}
	if h, ok := reloaded.Get("a.txt"); !ok || h != "h1" {
		t.Errorf("Get(a.txt): got %s, %v", h, ok)
	}
	if h, ok := reloaded.Get("dir/b.txt"); !ok || h != "h2" {
		t.Errorf("Get(dir/b.txt): got %s, %v", h, ok)
	}
}

func TestIndexClear(t *testing.T) {
	idx, err := ReadIndex(t.TempDir())
	if err != nil {
		t.Fatalf("ReadIndex: %v", err)
	}
	idx.Set("a.txt", Hash("h1"))
	idx.Clear()
	if !idx.Empty() {
		t.Error("Empty: expected true after Clear")
	}
}

func TestIndexEntriesIsASnapshot(t *testing.T) {
	idx, err := ReadIndex(t.TempDir())
	if err != nil {
		t.Fatalf("ReadIndex: %v", err)
	}
	idx.Set("a.txt", Hash("h1"))

	snap := idx.Entries()
	idx.Set("b.txt", Hash("h2"))

	if _, ok := snap["b.txt"]; ok {
		t.Error("Entries: snapshot was mutated by a later Set")
	}
}
