package main

import (
	"errors"

	"minigit/internal/gitcore"
)

// asCoreError unwraps err looking for a *gitcore.CoreError, the same way the
// teacher's cat-file and diff commands distinguish expected, user-facing
// failures from unexpected ones.
func asCoreError(err error) (*gitcore.CoreError, bool) {
	var ce *gitcore.CoreError
	if errors.As(err, &ce) {
		return ce, true
	}
	return nil, false
}

// exitForError maps a gitcore error to the command's process exit code.
// Known CoreError kinds exit 1 (a reported, expected failure); anything
// else, including a CoreError of kind ErrUnknown, is an unexpected fatal
// error and exits 128, matching the teacher's convention for git-like CLIs.
func exitForError(err error) int {
	if ce, ok := asCoreError(err); ok && ce.Kind != gitcore.ErrUnknown {
		return 1
	}
	return 128
}
