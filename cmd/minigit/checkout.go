package main

import (
	"fmt"
	"os"

	"minigit/internal/gitcore"
	"minigit/internal/termcolor"
)

func runCheckout(repo *gitcore.Repository, args []string, cw *termcolor.Writer) int {
	if len(args) != 1 {
		fmt.Fprintln(os.Stderr, "usage: minigit checkout <branch|commit>")
		return 1
	}

	unlock, err := repo.Lock()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}
	defer unlock()

	target := args[0]
	if err := repo.Checkout(target); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return exitForError(err)
	}

	if repo.Refs.BranchExists(target) {
		fmt.Printf("Switched to branch '%s'\n", cw.Green(target))
	} else {
		fmt.Printf("Note: checking out '%s'.\n", target)
		fmt.Println(cw.Magenta("You are in 'detached HEAD' state."))
	}
	return 0
}
