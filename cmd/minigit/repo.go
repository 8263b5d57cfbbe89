package main

import (
	"fmt"
	"log/slog"
	"os"

	"minigit/internal/gitcore"
	"minigit/internal/osfs"
)

// loadRepo opens the repository rooted at or above workDir. It exits the
// process with the teacher's "fatal: <error>" convention on failure, since
// every command that reaches this point has already declared NeedsRepo.
func loadRepo(workDir string) *gitcore.Repository {
	newWT := func(dir string) gitcore.WorkingTree { return osfs.New(dir, gitcore.RepoDirName) }
	repo, err := gitcore.Open(workDir, newWT, slog.Default())
	if err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(128)
	}
	return repo
}

// currentIdentity returns the author/committer identity to stamp on new
// commits. minigit has no config layer (spec §9), so it falls back to a
// fixed placeholder unless MINIGIT_AUTHOR_NAME / MINIGIT_AUTHOR_EMAIL are
// set in the environment — enough to make multi-author test fixtures
// reproducible without inventing a config file format the spec never asked
// for.
func currentIdentity() gitcore.Identity {
	name := os.Getenv("MINIGIT_AUTHOR_NAME")
	if name == "" {
		name = "minigit"
	}
	email := os.Getenv("MINIGIT_AUTHOR_EMAIL")
	if email == "" {
		email = "minigit@localhost"
	}
	return gitcore.Identity{Name: name, Email: email}
}
