// Package watch provides a debounced filesystem watcher used to back
// "status --watch": it notifies a callback whenever the repository's
// metadata or refs change or a file in the top level of the working tree is
// touched, without requiring the caller to poll.
package watch

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

const debounceTime = 100 * time.Millisecond

// Watcher watches a minigit repository's metadata directory and the top
// level of its working tree for changes and invokes onChange (debounced)
// whenever one occurs.
type Watcher struct {
	repoRoot string // <workDir>/.minigit
	logger   *slog.Logger
	fsw      *fsnotify.Watcher
	done     chan struct{}
}

// New creates a Watcher rooted at repoRoot (a repository's .minigit
// directory). It watches refs/heads directly, the same subtree the teacher's
// server watcher singles out since fsnotify does not recurse.
func New(repoRoot string, logger *slog.Logger) (*Watcher, error) {
	if logger == nil {
		logger = slog.Default()
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(repoRoot); err != nil {
		_ = fsw.Close()
		return nil, err
	}
	// The working directory is watched at its top level only; fsnotify does
	// not recurse, so changes inside its subdirectories are not reported.
	if err := fsw.Add(filepath.Dir(repoRoot)); err != nil {
		_ = fsw.Close()
		return nil, err
	}
	refsHeads := filepath.Join(repoRoot, "refs", "heads")
	walkAndWatch(fsw, refsHeads, logger)

	return &Watcher{repoRoot: repoRoot, logger: logger, fsw: fsw, done: make(chan struct{})}, nil
}

// walkAndWatch adds fsnotify watches to dir and all its subdirectories,
// supporting hierarchical branch names (e.g. refs/heads/feature/login).
// A missing directory is silently skipped.
func walkAndWatch(fsw *fsnotify.Watcher, dir string, logger *slog.Logger) {
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return
	}
	err = filepath.Walk(dir, func(path string, fi os.FileInfo, walkErr error) error {
		if walkErr != nil {
			return nil
		}
		if fi.IsDir() {
			if addErr := fsw.Add(path); addErr != nil {
				logger.Warn("failed to watch directory", "dir", path, "err", addErr)
			}
		}
		return nil
	})
	if err != nil {
		logger.Warn("failed to walk refs directory", "dir", dir, "err", err)
	}
}

// Run blocks, invoking onChange (debounced by 100ms) whenever a relevant
// event arrives, until Close is called.
func (w *Watcher) Run(onChange func()) {
	var debounceTimer *time.Timer
	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if shouldIgnoreEvent(event) {
				continue
			}
			w.logger.Debug("change detected", "file", filepath.Base(event.Name), "op", event.Op.String())
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.AfterFunc(debounceTime, onChange)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.logger.Error("watcher error", "err", err)
		}
	}
}

// Close stops the watcher and releases its underlying fsnotify resources.
// Calls after the first one do nothing.
func (w *Watcher) Close() error {
	select {
	case <-w.done:
		return nil
	default:
	}
	close(w.done)
	return w.fsw.Close()
}

func shouldIgnoreEvent(event fsnotify.Event) bool {
	base := filepath.Base(event.Name)

	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
		return true
	}
	if strings.HasSuffix(base, ".lock") {
		return true
	}
	return false
}
