package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"minigit/internal/gitcore"
	"minigit/internal/termcolor"
	"minigit/internal/watch"
)

func runStatus(repo *gitcore.Repository, args []string, cw *termcolor.Writer) int {
	porcelain := false
	watchMode := false
	for _, arg := range args {
		switch arg {
		case "-s", "--porcelain":
			porcelain = true
		case "--watch":
			watchMode = true
		}
	}

	if watchMode {
		return runStatusWatch(repo, porcelain, cw)
	}

	status, err := repo.Status()
	if err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		return 128
	}

	if porcelain {
		for _, f := range status.Files {
			fmt.Printf("%s %s\n", f.PorcelainCode(), f.Path)
		}
		return 0
	}
	return printLongStatus(repo, status, cw)
}

// runStatusWatch recomputes and reprints status every time the repository's
// metadata or refs, or a top-level working-tree file, change, until
// interrupted. This is a read-only supplement beyond the
// core spec operations, useful for dashboards and long-running shells.
func runStatusWatch(repo *gitcore.Repository, porcelain bool, cw *termcolor.Writer) int {
	w, err := watch.New(repo.Root(), repo.Logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		return 128
	}
	defer func() { _ = w.Close() }()

	print := func() {
		status, err := repo.Status()
		if err != nil {
			fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
			return
		}
		if porcelain {
			for _, f := range status.Files {
				fmt.Printf("%s %s\n", f.PorcelainCode(), f.Path)
			}
			return
		}
		printLongStatus(repo, status, cw)
	}

	print()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sig
		_ = w.Close()
	}()

	w.Run(print)
	return 0
}

func printLongStatus(repo *gitcore.Repository, status *gitcore.WorkingTreeStatus, cw *termcolor.Writer) int {
	state, err := repo.Refs.HeadRead()
	if err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		return 128
	}
	if state.Attached {
		fmt.Printf("On branch %s\n", state.Branch)
	} else {
		fmt.Printf("HEAD detached at %s\n", state.Commit.Short())
	}

	var staged, unstaged, untracked []gitcore.FileStatus
	for _, f := range status.Files {
		switch {
		case f.IsUntracked:
			untracked = append(untracked, f)
		default:
			if f.IndexStatus != "" {
				staged = append(staged, f)
			}
			if f.WorkStatus != "" {
				unstaged = append(unstaged, f)
			}
		}
	}

	if len(staged) > 0 {
		fmt.Println("Changes to be committed:")
		for _, f := range staged {
			fmt.Printf("\t%s\n", cw.Green(fmt.Sprintf("%s:   %s", statusVerb(f.IndexStatus), f.Path)))
		}
		fmt.Println()
	}

	if len(unstaged) > 0 {
		fmt.Println("Changes not staged for commit:")
		for _, f := range unstaged {
			fmt.Printf("\t%s\n", cw.Red(fmt.Sprintf("%s:   %s", statusVerb(f.WorkStatus), f.Path)))
		}
		fmt.Println()
	}

	if len(untracked) > 0 {
		fmt.Println("Untracked files:")
		for _, f := range untracked {
			fmt.Printf("\t%s\n", cw.Red(f.Path))
		}
		fmt.Println()
	}

	if len(staged) == 0 && len(unstaged) == 0 && len(untracked) == 0 {
		fmt.Println("nothing to commit, working tree clean")
	}

	return 0
}

func statusVerb(status string) string {
	switch status {
	case "added":
		return "new file"
	case "modified":
		return "modified"
	case "deleted":
		return "deleted"
	default:
		return status
	}
}
