package main

import (
	"fmt"
	"os"

	"minigit/internal/cli"
	"minigit/internal/gitcore"
	"minigit/internal/termcolor"
)

// Build-time variable set via -ldflags.
var version = "dev"

func main() {
	gf, args := parseGlobalFlags(os.Args[1:])

	for _, a := range args {
		if a == "--version" {
			fmt.Printf("minigit %s\n", version)
			os.Exit(0)
		}
	}

	workDir := "."
	if gf.chdir != "" {
		workDir = gf.chdir
	}

	cw := termcolor.NewWriter(os.Stdout, gf.colorMode)

	app := cli.NewApp("minigit", version)
	app.Stderr = os.Stderr

	var repo *gitcore.Repository

	app.Register(&cli.Command{
		Name:    "init",
		Summary: "Create an empty repository",
		Usage:   "minigit init",
		Run:     func([]string) int { return runInit(workDir, nil) },
	})

	app.Register(&cli.Command{
		Name:      "add",
		Summary:   "Stage a file's current content",
		Usage:     "minigit add <path> [<path>...]",
		Examples:  []string{"minigit add README.md", "minigit add a.txt b.txt"},
		NeedsRepo: true,
		Run:       func(args []string) int { return runAdd(repo, args) },
	})

	app.Register(&cli.Command{
		Name:      "commit",
		Aliases:   []string{"ci"},
		Summary:   "Record a new commit from the staged index",
		Usage:     "minigit commit -m <message>",
		Examples:  []string{"minigit commit -m \"add readme\""},
		NeedsRepo: true,
		Run:       func(args []string) int { return runCommit(repo, args) },
	})

	app.Register(&cli.Command{
		Name:      "log",
		Aliases:   []string{"lg"},
		Summary:   "Show commit log",
		Usage:     "minigit log [--oneline] [-n <count>]",
		Examples:  []string{"minigit log", "minigit log --oneline -n5"},
		NeedsRepo: true,
		Run:       func(args []string) int { return runLog(repo, args, cw) },
	})

	app.Register(&cli.Command{
		Name:      "branch",
		Aliases:   []string{"br"},
		Summary:   "List or create branches",
		Usage:     "minigit branch [<name>]",
		Examples:  []string{"minigit branch", "minigit branch dev"},
		NeedsRepo: true,
		Run:       func(args []string) int { return runBranch(repo, args, cw) },
	})

	app.Register(&cli.Command{
		Name:      "checkout",
		Aliases:   []string{"co"},
		Summary:   "Switch the working tree to a branch or commit",
		Usage:     "minigit checkout <branch|commit>",
		Examples:  []string{"minigit checkout dev", "minigit checkout a1b2c3d4"},
		NeedsRepo: true,
		Run:       func(args []string) int { return runCheckout(repo, args, cw) },
	})

	app.Register(&cli.Command{
		Name:      "merge",
		Summary:   "Merge a branch into HEAD",
		Usage:     "minigit merge <branch>",
		Examples:  []string{"minigit merge dev"},
		NeedsRepo: true,
		Run:       func(args []string) int { return runMerge(repo, args) },
	})

	app.Register(&cli.Command{
		Name:      "status",
		Aliases:   []string{"st"},
		Summary:   "Show working tree status",
		Usage:     "minigit status [-s|--porcelain] [--watch]",
		Examples:  []string{"minigit status", "minigit status --porcelain", "minigit status --watch"},
		NeedsRepo: true,
		Run:       func(args []string) int { return runStatus(repo, args, cw) },
	})

	app.Register(&cli.Command{
		Name:    "version",
		Summary: "Show version information",
		Usage:   "minigit version",
		Run:     func([]string) int { fmt.Printf("minigit %s\n", version); return 0 },
	})

	if len(args) > 0 {
		cmd := app.Lookup(args[0])
		if cmd != nil && cmd.NeedsRepo {
			repo = loadRepo(workDir)
		}
	}

	os.Exit(app.Run(args, cw))
}
