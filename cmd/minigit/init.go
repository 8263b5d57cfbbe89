package main

import (
	"fmt"
	"log/slog"
	"os"

	"minigit/internal/gitcore"
	"minigit/internal/osfs"
)

func runInit(workDir string, _ []string) int {
	wt := osfs.New(workDir, gitcore.RepoDirName)
	_, err := gitcore.Init(workDir, wt, slog.Default())
	if err != nil {
		if ce, ok := asCoreError(err); ok && ce.Kind == gitcore.ErrAlreadyInitialized {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			return 1
		}
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		return 128
	}
	fmt.Printf("Initialized empty minigit repository in %s/%s\n", workDir, gitcore.RepoDirName)
	return 0
}
