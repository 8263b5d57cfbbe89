package gitcore

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

const indexFileName = "index"

// Index is the staging area: a path -> blob fingerprint mapping persisted as
// a flat text file, one "path SP fingerprint" line per entry (spec §4.4).
type Index struct {
	root    string // <repo>/.minigit
	entries map[string]Hash
}

// ReadIndex loads the index file inside root. A missing index file is not an
// error — it is the "nothing staged yet" state (spec §9 open question 5: the
// index is created lazily on first add, not as a zero-byte file at init).
func ReadIndex(root string) (*Index, error) {
	idx := &Index{root: root, entries: make(map[string]Hash)}

	data, err := os.ReadFile(filepath.Join(root, indexFileName))
	if err != nil {
		if os.IsNotExist(err) {
			return idx, nil
		}
		return nil, wrapErr(ErrUnknown, "reading index", err)
	}

	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		parts := strings.SplitN(line, " ", 2)
		if len(parts) != 2 {
			return nil, wrapErr(ErrMalformedObject, fmt.Sprintf("malformed index line: %q", line), nil)
		}
		idx.entries[parts[0]] = Hash(parts[1])
	}
	if err := scanner.Err(); err != nil {
		return nil, wrapErr(ErrUnknown, "scanning index", err)
	}
	return idx, nil
}

// Set stages path at fingerprint h in memory. The caller must call Save to
// persist the change.
func (idx *Index) Set(path string, h Hash) {
	idx.entries[path] = h
}

// Get returns the fingerprint staged for path, if any.
func (idx *Index) Get(path string) (Hash, bool) {
	h, ok := idx.entries[path]
	return h, ok
}

// Entries returns a snapshot copy of the staged path -> fingerprint mapping.
func (idx *Index) Entries() Tree {
	cp := make(Tree, len(idx.entries))
	for k, v := range idx.entries {
		cp[k] = v
	}
	return cp
}

// Empty reports whether nothing is staged.
func (idx *Index) Empty() bool { return len(idx.entries) == 0 }

// Clear removes all staged entries in memory. The caller must call Save to
// persist the change.
func (idx *Index) Clear() { idx.entries = make(map[string]Hash) }

// Save writes the index back to disk atomically, sorted by path for
// deterministic file contents.
func (idx *Index) Save() error {
	paths := make([]string, 0, len(idx.entries))
	for p := range idx.entries {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	var buf bytes.Buffer
	for _, p := range paths {
		fmt.Fprintf(&buf, "%s %s\n", p, idx.entries[p])
	}

	return writeFileAtomic(filepath.Join(idx.root, indexFileName), buf.Bytes())
}
