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

// objectsDirName is the subdirectory of the repository root holding blobs
// and commits, sharded as objects/<F[0:2]>/<F[2:]> like the teacher's loose
// object layout (spec §6 permits either flat or sharded; sharded avoids a
// single directory with one entry per object ever stored).
const objectsDirName = "objects"

// Store persists and loads blobs and commits by content fingerprint.
type Store struct {
	root string // <repo>/.minigit
}

func newStore(root string) *Store { return &Store{root: root} }

func (s *Store) objectPath(h Hash) string {
	hs := string(h)
	if len(hs) < 3 {
		return filepath.Join(s.root, objectsDirName, hs)
	}
	return filepath.Join(s.root, objectsDirName, hs[:2], hs[2:])
}

// PutBlob computes the fingerprint of content, writes it under objects/ if
// not already present, and returns the fingerprint. Idempotent: storing the
// same content twice leaves exactly one object on disk.
func (s *Store) PutBlob(content []byte) (Hash, error) {
	h := Fingerprint(content)
	if err := s.writeIfAbsent(h, content); err != nil {
		return "", wrapErr(ErrUnknown, "writing blob object", err)
	}
	return h, nil
}

// GetBlob reads and returns the raw bytes stored under fingerprint h.
func (s *Store) GetBlob(h Hash) ([]byte, error) {
	data, err := os.ReadFile(s.objectPath(h))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, newErr(ErrMissingObject, "blob %s not found", h.Short())
		}
		return nil, wrapErr(ErrUnknown, "reading blob object", err)
	}
	return data, nil
}

// HasObject reports whether an object (blob or commit) with fingerprint h
// exists in the store.
func (s *Store) HasObject(h Hash) bool {
	_, err := os.Stat(s.objectPath(h))
	return err == nil
}

// PutCommit serializes c (see §6 format), computes its fingerprint over the
// serialized bytes, writes it write-if-absent, and returns the fingerprint.
// Re-storing an identical commit is a no-op; the caller must set c.ID to the
// returned Hash.
func (s *Store) PutCommit(c *Commit) (Hash, error) {
	body := serializeCommit(c)
	h := Fingerprint(body)
	if err := s.writeIfAbsent(h, body); err != nil {
		return "", wrapErr(ErrUnknown, "writing commit object", err)
	}
	return h, nil
}

// GetCommit reads and parses the commit stored under fingerprint h.
func (s *Store) GetCommit(h Hash) (*Commit, error) {
	data, err := os.ReadFile(s.objectPath(h))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, newErr(ErrMissingObject, "commit %s not found", h.Short())
		}
		return nil, wrapErr(ErrUnknown, "reading commit object", err)
	}
	c, err := parseCommit(data)
	if err != nil {
		return nil, wrapErr(ErrMalformedObject, fmt.Sprintf("parsing commit %s", h.Short()), err)
	}
	c.ID = h
	return c, nil
}

// writeIfAbsent writes data under fingerprint h unless an object already
// exists there. Uses write-to-temp-then-rename so a crash mid-write never
// leaves a torn or half-written object (spec §7).
func (s *Store) writeIfAbsent(h Hash, data []byte) error {
	path := s.objectPath(h)
	if _, err := os.Stat(path); err == nil {
		return nil // already stored; content-addressing guarantees it's identical
	}

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

// serializeCommit renders a Commit into the textual format of spec §6:
//
//	tree
//	blob <fingerprint> <path>
//	...
//	parent <fingerprint>
//	author <name> <email> <timestamp>
//	committer <name> <email> <timestamp>
//	<blank line>
//	<message>
//
// Tree entries are sorted by path so that two commits with the same logical
// tree always serialize to byte-identical bytes.
func serializeCommit(c *Commit) []byte {
	var buf bytes.Buffer

	buf.WriteString("tree\n")

	paths := make([]string, 0, len(c.Tree))
	for p := range c.Tree {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	for _, p := range paths {
		fmt.Fprintf(&buf, "blob %s %s\n", c.Tree[p], p)
	}

	for _, parent := range c.Parents {
		fmt.Fprintf(&buf, "parent %s\n", parent)
	}

	fmt.Fprintf(&buf, "author %s\n", c.Author.String())
	fmt.Fprintf(&buf, "committer %s\n", c.Committer.String())
	buf.WriteByte('\n')
	buf.WriteString(c.Message)

	return buf.Bytes()
}

// parseCommit parses the textual format produced by serializeCommit. The
// first blank line separates the header from the message body; everything
// after it, to EOF, is the message verbatim (so a message may itself contain
// blank lines).
func parseCommit(data []byte) (*Commit, error) {
	c := &Commit{Tree: make(Tree)}

	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	sawTree := false
	var messageLines []string
	inMessage := false

	for scanner.Scan() {
		line := scanner.Text()

		if inMessage {
			messageLines = append(messageLines, line)
			continue
		}

		if line == "" {
			inMessage = true
			continue
		}

		switch {
		case line == "tree":
			sawTree = true
		case strings.HasPrefix(line, "blob "):
			rest := strings.TrimPrefix(line, "blob ")
			parts := strings.SplitN(rest, " ", 2)
			if len(parts) != 2 {
				return nil, fmt.Errorf("malformed blob line: %q", line)
			}
			c.Tree[parts[1]] = Hash(parts[0])
		case strings.HasPrefix(line, "parent "):
			c.Parents = append(c.Parents, Hash(strings.TrimPrefix(line, "parent ")))
		case strings.HasPrefix(line, "author "):
			sig, err := parseSignature(strings.TrimPrefix(line, "author "))
			if err != nil {
				return nil, err
			}
			c.Author = sig
		case strings.HasPrefix(line, "committer "):
			sig, err := parseSignature(strings.TrimPrefix(line, "committer "))
			if err != nil {
				return nil, err
			}
			c.Committer = sig
		default:
			return nil, fmt.Errorf("unrecognized header line: %q", line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if !sawTree {
		return nil, fmt.Errorf("missing tree header")
	}

	c.Message = strings.Join(messageLines, "\n")
	return c, nil
}

// parseSignature parses "name email YYYY-MM-DD HH:MM:SS" where email is
// wrapped in angle brackets, e.g. "Ada Lovelace <ada@example.com> 2026-07-31 10:00:00".
func parseSignature(line string) (Signature, error) {
	open := strings.IndexByte(line, '<')
	close := strings.IndexByte(line, '>')
	if open == -1 || close == -1 || close < open {
		return Signature{}, fmt.Errorf("malformed signature: %q", line)
	}
	name := strings.TrimSpace(line[:open])
	email := line[open+1 : close]
	when := strings.TrimSpace(line[close+1:])
	return Signature{Name: name, Email: email, When: when}, nil
}
