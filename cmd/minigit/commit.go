package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"minigit/internal/gitcore"
)

func runCommit(repo *gitcore.Repository, args []string) int {
	message := ""
	for i := 0; i < len(args); i++ {
		switch {
		case args[i] == "-m" && i+1 < len(args):
			// The message is the remainder of the command line, joined by
			// single spaces (spec §6), not just the single token after -m.
			message = strings.Join(args[i+1:], " ")
			i = len(args)
		default:
			fmt.Fprintf(os.Stderr, "error: unknown option: %q\n", args[i])
			return 1
		}
	}
	if message == "" {
		fmt.Fprintln(os.Stderr, "error: empty commit message (use -m \"<message>\")")
		return 1
	}

	unlock, err := repo.Lock()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}
	defer unlock()

	h, err := repo.Commit(message, currentIdentity(), time.Now())
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return exitForError(err)
	}

	fmt.Printf("[%s] %s\n", h.Short(), firstLine(message))
	return 0
}
