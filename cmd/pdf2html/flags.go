package main

import (
	"os"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
	debug   bool
}

// outputFlags holds destination flags.
type outputFlags struct {
	destDir    string
	tmpDir     string
	filename   string
	singleHTML bool
}

// pageFlags holds the page range. Zero means "not set".
type pageFlags struct {
	first int
	last  int
}

// resolutionFlags holds foreground and background DPI. Zero means "not set".
type resolutionFlags struct {
	h, v   float64
	h2, v2 float64
}

// convertFlags holds all flags for the convert command.
type convertFlags struct {
	common         commonFlags
	output         outputFlags
	pages          pageFlags
	resolution     resolutionFlags
	processNonText bool
	strict         bool
	dataDir        string
	workers        int

	// set records flags given explicitly, so false booleans can override config.
	set map[string]bool
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show detailed timing")
	fs.BoolVar(&f.debug, "debug", false, "log staging activity to stderr")
}

// addOutputFlags adds destination flags to a FlagSet.
func addOutputFlags(fs *flag.FlagSet, f *outputFlags) {
	fs.StringVarP(&f.destDir, "dest-dir", "d", "", "destination directory (default: next to the script)")
	fs.StringVar(&f.tmpDir, "tmp-dir", "", "staging directory (default: system temp)")
	fs.StringVarP(&f.filename, "output-filename", "o", "", "output file name (default: <script>.html)")
	fs.BoolVar(&f.singleHTML, "single-html", false, "inline css and backgrounds into one file")
}

// addPageFlags adds page range flags to a FlagSet.
func addPageFlags(fs *flag.FlagSet, f *pageFlags) {
	fs.IntVarP(&f.first, "first-page", "f", 0, "first page to convert (default: 1)")
	fs.IntVarP(&f.last, "last-page", "l", 0, "last page to convert (default: last)")
}

// addResolutionFlags adds DPI flags to a FlagSet.
func addResolutionFlags(fs *flag.FlagSet, f *resolutionFlags) {
	fs.Float64Var(&f.h, "h-dpi", 0, "horizontal resolution for text (default: 72)")
	fs.Float64Var(&f.v, "v-dpi", 0, "vertical resolution for text (default: 72)")
	fs.Float64Var(&f.h2, "h-dpi2", 0, "horizontal resolution for backgrounds (default: 72)")
	fs.Float64Var(&f.v2, "v-dpi2", 0, "vertical resolution for backgrounds (default: 72)")
}

// parseConvertFlags parses convert command flags and returns positional args.
func parseConvertFlags(args []string) (*convertFlags, []string, error) {
	fs := flag.NewFlagSet("convert", flag.ContinueOnError)
	f := &convertFlags{set: make(map[string]bool)}

	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel documents (0 = auto)")
	fs.BoolVar(&f.processNonText, "process-nontext", false, "render page backgrounds")
	fs.BoolVar(&f.strict, "strict", false, "fail a document on its first background error")
	fs.StringVar(&f.dataDir, "data-dir", "", "directory overriding head.html, neck.html, tail.html, base.css")

	addCommonFlags(fs, &f.common)
	addOutputFlags(fs, &f.output)
	addPageFlags(fs, &f.pages)
	addResolutionFlags(fs, &f.resolution)

	fs.Usage = func() { printConvertUsage(os.Stderr) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	fs.Visit(func(fl *flag.Flag) { f.set[fl.Name] = true })

	return f, fs.Args(), nil
}
