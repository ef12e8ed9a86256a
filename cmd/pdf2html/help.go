package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: pdf2html <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  convert    Convert page event scripts to HTML (default)")
	fmt.Fprintln(w, "  doctor     Check boilerplate, staging and Chrome before converting")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'pdf2html help <command>' for details on a specific command.")
	fmt.Fprintln(w, "Run 'pdf2html help script' for the event script format.")
}

// printConvertUsage prints usage for the convert command.
func printConvertUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: pdf2html convert <script|dir>... [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Convert page event scripts to HTML documents.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output:")
	fmt.Fprintln(w, "  -d, --dest-dir <dir>          Destination directory (default: next to the script)")
	fmt.Fprintln(w, "      --tmp-dir <dir>           Staging directory (default: system temp)")
	fmt.Fprintln(w, "  -o, --output-filename <name>  Output file name (single script only)")
	fmt.Fprintln(w, "      --single-html             Inline css and backgrounds into one file")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Pages:")
	fmt.Fprintln(w, "  -f, --first-page <n>          First page (default: 1)")
	fmt.Fprintln(w, "  -l, --last-page <n>           Last page (default: last)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Resolution:")
	fmt.Fprintln(w, "      --h-dpi, --v-dpi <f>      Text resolution (default: 72)")
	fmt.Fprintln(w, "      --h-dpi2, --v-dpi2 <f>    Background resolution (default: 72)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Backgrounds:")
	fmt.Fprintln(w, "      --process-nontext         Render page backgrounds")
	fmt.Fprintln(w, "      --strict                  Fail a document on its first background error")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Other:")
	fmt.Fprintln(w, "  -c, --config <name>           Config file name or path")
	fmt.Fprintln(w, "      --data-dir <dir>          Boilerplate override directory (env: "+dataDirEnv+")")
	fmt.Fprintln(w, "  -w, --workers <n>             Parallel documents (0 = auto)")
	fmt.Fprintln(w, "  -q, --quiet                   Only show errors")
	fmt.Fprintln(w, "  -v, --verbose                 Show pages and timing")
	fmt.Fprintln(w, "      --debug                   Log staging activity")
}

// printScriptUsage describes the event script format.
func printScriptUsage(w io.Writer) {
	fmt.Fprintln(w, "Event scripts are YAML (or JSON) files:")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  pages:")
	fmt.Fprintln(w, "    - width: 612            # points (1/72 inch)")
	fmt.Fprintln(w, "      height: 792")
	fmt.Fprintln(w, "      background: scan.png  # or backgroundSVG: <svg...>, or backgroundColor: \"#eee\"")
	fmt.Fprintln(w, "      ops:")
	fmt.Fprintln(w, "        - font: {name: F1, family: serif}")
	fmt.Fprintln(w, "        - size: 12")
	fmt.Fprintln(w, "        - color: \"#333333\"")
	fmt.Fprintln(w, "        - transform: [1, 0, 0, 1, 0, 0]")
	fmt.Fprintln(w, "        - move: [72, 720]")
	fmt.Fprintln(w, "        - text: Hello")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Each op sets exactly one field. Backgrounds are drawn with --process-nontext;")
	fmt.Fprintln(w, "backgroundSVG needs Chrome (see 'pdf2html doctor').")
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) int {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return ExitSuccess
	}

	switch args[0] {
	case "convert":
		printConvertUsage(env.Stdout)
	case "script":
		printScriptUsage(env.Stdout)
	case "doctor":
		fmt.Fprintln(env.Stdout, "Usage: pdf2html doctor [--json] [--data-dir <dir>] [--tmp-dir <dir>]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Check that boilerplate loads, staging directories can be created,")
		fmt.Fprintln(env.Stdout, "and which Chrome backgroundSVG pages would use.")
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: pdf2html version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: pdf2html help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
		return ExitUsage
	}
	return ExitSuccess
}
