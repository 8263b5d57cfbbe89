package main

import (
	"fmt"
	"os"

	"minigit/internal/gitcore"
)

func runAdd(repo *gitcore.Repository, args []string) int {
	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, "usage: minigit add <path> [<path>...]")
		return 1
	}

	unlock, err := repo.Lock()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}
	defer unlock()

	failed := false
	for _, path := range args {
		if err := repo.Add(path); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			failed = true
		}
	}
	if failed {
		return 1
	}
	return 0
}
