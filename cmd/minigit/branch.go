package main

import (
	"fmt"
	"os"

	"minigit/internal/gitcore"
	"minigit/internal/termcolor"
)

func runBranch(repo *gitcore.Repository, args []string, cw *termcolor.Writer) int {
	if len(args) > 0 {
		unlock, err := repo.Lock()
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			return 1
		}
		defer unlock()

		if err := repo.Branch(args[0]); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			return exitForError(err)
		}
		return 0
	}

	names, current, err := repo.ListBranches()
	if err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		return 128
	}
	for _, name := range names {
		if name == current {
			fmt.Printf("* %s\n", cw.Green(name))
		} else {
			fmt.Printf("  %s\n", name)
		}
	}
	return 0
}
