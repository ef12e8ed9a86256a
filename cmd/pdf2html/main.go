package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"slices"

	flag "github.com/spf13/pflag"
	"go.uber.org/automaxprocs/maxprocs"

	"github.com/alnah/go-pdf2html/internal/hints"
	"github.com/alnah/go-pdf2html/internal/raster"
	"github.com/alnah/go-pdf2html/internal/script"
)

// Version is set at build time via ldflags.
var Version = "dev"

// commands lists the subcommand names. Anything else runs convert.
var commands = []string{"convert", "doctor", "version", "help"}

func main() {
	verbose := slices.Contains(os.Args[1:], "-v") || slices.Contains(os.Args[1:], "--verbose")

	// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
	// in which case Go runtime defaults apply and the program continues safely.
	if verbose {
		_, _ = maxprocs.Set(maxprocs.Logger(func(format string, args ...interface{}) {
			fmt.Fprintf(os.Stderr, format+"\n", args...)
		}))
	} else {
		_, _ = maxprocs.Set(maxprocs.Logger(func(string, ...interface{}) {}))
	}

	os.Exit(runMain(os.Args, DefaultEnv()))
}

// runMain dispatches args[1:] and returns the process exit code.
func runMain(args []string, env *Environment) int {
	ctx, stop := notifyContext(context.Background())
	defer stop()

	if len(args) < 2 {
		printUsage(env.Stderr)
		return ExitUsage
	}

	cmd, rest := args[1], args[2:]
	if !isCommand(cmd) {
		cmd, rest = "convert", args[1:]
	}

	switch cmd {
	case "version":
		fmt.Fprintf(env.Stdout, "go-pdf2html %s\n", Version)
		return ExitSuccess
	case "help":
		return runHelp(rest, env)
	case "doctor":
		return runDoctorCmd(rest, env)
	}

	flags, positional, err := parseConvertFlags(rest)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return ExitSuccess
		}
		return ExitUsage
	}

	err = runConvert(ctx, positional, flags, env)
	if err != nil && !errors.Is(err, ErrConversionFailed) && !errors.Is(err, ErrDegraded) {
		fmt.Fprintf(env.Stderr, "Error: %v%s\n", err, hintFor(err, env.Getenv))
	}
	return exitCodeFor(err)
}

// isCommand reports whether name is a subcommand.
func isCommand(name string) bool {
	return slices.Contains(commands, name)
}

// hintFor picks an actionable hint for err, or "".
func hintFor(err error, getenv func(string) string) string {
	switch {
	case errors.Is(err, raster.ErrPageLoad), errors.Is(err, raster.ErrScreenshot):
		return hints.ForTimeout()
	case errors.Is(err, raster.ErrBrowserConnect):
		return hints.ForBrowserConnect(getenv)
	case errors.Is(err, script.ErrInvalidScript), errors.Is(err, script.ErrNoPages):
		return hints.ForInvalidScript()
	case errors.Is(err, os.ErrPermission):
		return hints.ForOutputDirectory()
	}
	return ""
}
