package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"minigit/internal/gitcore"
	"minigit/internal/termcolor"
)

func runLog(repo *gitcore.Repository, args []string, cw *termcolor.Writer) int {
	maxCount := 0
	oneline := false

	for i := 0; i < len(args); i++ {
		switch {
		case args[i] == "--oneline":
			oneline = true
		case args[i] == "-n" && i+1 < len(args):
			i++
			n, err := strconv.Atoi(args[i])
			if err != nil {
				fmt.Fprintf(os.Stderr, "error: invalid -n value: %q\n", args[i])
				return 1
			}
			maxCount = n
		case strings.HasPrefix(args[i], "-n"):
			n, err := strconv.Atoi(args[i][2:])
			if err != nil {
				fmt.Fprintf(os.Stderr, "error: invalid -n value: %q\n", args[i][2:])
				return 1
			}
			maxCount = n
		default:
			fmt.Fprintf(os.Stderr, "error: unknown option: %q\n", args[i])
			return 1
		}
	}

	commits, err := repo.CommitLog(maxCount)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return exitForError(err)
	}

	names, current, err := repo.ListBranches()
	if err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		return 128
	}
	decorations := buildDecorations(repo, names, current, cw)

	for i, c := range commits {
		decor := ""
		if d, ok := decorations[c.ID]; ok {
			decor = " " + cw.Yellow("(") + d + cw.Yellow(")")
		}

		if oneline {
			fmt.Printf("%s%s %s\n", cw.Yellow(c.ID.Short()), decor, firstLine(c.Message))
			continue
		}

		if i > 0 {
			fmt.Println()
		}
		fmt.Printf("%s %s%s\n", cw.Yellow("commit"), cw.Yellow(string(c.ID)), decor)
		if c.IsMerge() {
			parentStrs := make([]string, len(c.Parents))
			for j, p := range c.Parents {
				parentStrs[j] = p.Short()
			}
			fmt.Printf("Merge: %s\n", strings.Join(parentStrs, " "))
		}
		fmt.Printf("Author: %s <%s>\n", c.Author.Name, c.Author.Email)
		fmt.Printf("Date:   %s\n", c.Author.When)
		fmt.Println()
		for _, line := range strings.Split(c.Message, "\n") {
			fmt.Printf("    %s\n", line)
		}
	}

	return 0
}

func buildDecorations(repo *gitcore.Repository, branches []string, current string, cw *termcolor.Writer) map[gitcore.Hash]string {
	result := make(map[gitcore.Hash]string)
	byHash := make(map[gitcore.Hash][]string)

	for _, name := range branches {
		hash, err := repo.Refs.BranchRead(name)
		if err != nil || hash == "" {
			continue
		}
		if name == current {
			byHash[hash] = append(byHash[hash], cw.BoldCyan("HEAD -> ")+cw.Green(name))
		} else {
			byHash[hash] = append(byHash[hash], cw.Green(name))
		}
	}

	if state, err := repo.Refs.HeadRead(); err == nil && !state.Attached && state.Commit != "" {
		// Detached HEAD is marked in magenta rather than the cyan used for an
		// attached branch, so the two states read apart at a glance.
		byHash[state.Commit] = append([]string{cw.Magenta("HEAD")}, byHash[state.Commit]...)
	}

	for hash, parts := range byHash {
		result[hash] = strings.Join(parts, cw.Yellow(", "))
	}

	return result
}
