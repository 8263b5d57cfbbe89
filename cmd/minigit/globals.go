package main

import (
	"fmt"
	"os"
	"strings"

	"minigit/internal/termcolor"
)

type globalFlags struct {
	colorMode termcolor.ColorMode
	chdir     string // target of -C <dir>, empty means unset
}

// parseGlobalFlags extracts --color, --no-color, and -C <dir> from anywhere
// in args, returning the parsed flags and the remaining (filtered)
// arguments. Global flags may appear before or interspersed with the
// command name, matching the teacher's convention of scanning the whole
// argument list rather than requiring a fixed position.
func parseGlobalFlags(args []string) (globalFlags, []string) {
	gf := globalFlags{colorMode: termcolor.ColorAuto}
	var remaining []string

	for i := 0; i < len(args); i++ {
		arg := args[i]

		switch {
		case arg == "--no-color":
			gf.colorMode = termcolor.ColorNever
			continue
		case arg == "-C" && i+1 < len(args):
			i++
			gf.chdir = args[i]
			continue
		case strings.HasPrefix(arg, "-C") && len(arg) > 2:
			gf.chdir = arg[2:]
			continue
		case arg == "--color" && i+1 < len(args):
			i++
			mode, err := termcolor.ParseColorMode(args[i])
			if err != nil {
				fmt.Fprintf(os.Stderr, "minigit: %v\n", err)
				os.Exit(1)
			}
			gf.colorMode = mode
			continue
		}

		if val, ok := strings.CutPrefix(arg, "--color="); ok {
			mode, err := termcolor.ParseColorMode(val)
			if err != nil {
				fmt.Fprintf(os.Stderr, "minigit: %v\n", err)
				os.Exit(1)
			}
			gf.colorMode = mode
			continue
		}

		remaining = append(remaining, arg)
	}

	return gf, remaining
}
