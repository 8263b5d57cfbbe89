package main

import (
	"fmt"
	"os"
	"time"

	"minigit/internal/gitcore"
)

func runMerge(repo *gitcore.Repository, args []string) int {
	if len(args) != 1 {
		fmt.Fprintln(os.Stderr, "usage: minigit merge <branch>")
		return 1
	}

	unlock, err := repo.Lock()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}
	defer unlock()

	result, err := repo.Merge(args[0], currentIdentity(), time.Now())
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return exitForError(err)
	}

	switch {
	case result.AlreadyUpToDate:
		fmt.Println("Already up to date.")
	case len(result.Conflicts) > 0:
		fmt.Println("Automatic merge failed; fix conflicts and then commit the result.")
		for _, path := range result.Conflicts {
			fmt.Printf("CONFLICT (content): Merge conflict in %s\n", path)
		}
		return 1
	default:
		fmt.Printf("Merge made by the 'minigit' strategy.\n")
		fmt.Printf("[%s] merged\n", result.Hash.Short())
	}
	return 0
}
