package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	flag "github.com/spf13/pflag"

	"github.com/alnah/go-pdf2html/internal/assets"
	"github.com/alnah/go-pdf2html/internal/fileutil"
	"github.com/alnah/go-pdf2html/internal/hints"
	"github.com/alnah/go-pdf2html/internal/raster"
)

// Check levels, in increasing severity.
const (
	levelOK    = "ok"
	levelWarn  = "warn"
	levelError = "error"
)

// doctorCheck is one line of the report.
type doctorCheck struct {
	Name   string `json:"name"`
	Level  string `json:"level"`
	Detail string `json:"detail"`
}

// doctorReport is what doctor prints, as text or JSON.
type doctorReport struct {
	Status   string        `json:"status"` // "ready", "warnings", "errors"
	Platform string        `json:"platform"`
	Checks   []doctorCheck `json:"checks"`
}

func (r *doctorReport) add(name, level, format string, args ...any) {
	r.Checks = append(r.Checks, doctorCheck{Name: name, Level: level, Detail: fmt.Sprintf(format, args...)})
}

// doctorFlags are the inputs doctor checks the way convert would use them.
type doctorFlags struct {
	json    bool
	dataDir string
	tmpDir  string
}

// runDoctorCmd executes the doctor command and returns an exit code:
// 0 when conversion can run (warnings included), 1 otherwise.
func runDoctorCmd(args []string, env *Environment) int {
	var f doctorFlags
	fs := flag.NewFlagSet("doctor", flag.ContinueOnError)
	fs.SetOutput(env.Stderr)
	fs.BoolVar(&f.json, "json", false, "print the report as JSON")
	fs.StringVar(&f.dataDir, "data-dir", "", "boilerplate override directory to check (default: $"+dataDirEnv+")")
	fs.StringVar(&f.tmpDir, "tmp-dir", "", "staging directory to check (default: system temp)")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return ExitSuccess
		}
		return ExitUsage
	}
	if f.dataDir == "" {
		f.dataDir = env.Getenv(dataDirEnv)
	}

	report := runDoctor(f, env.Getenv)
	if f.json {
		enc := json.NewEncoder(env.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(report)
	} else {
		printDoctorReport(env.Stdout, report)
	}

	if report.Status == "errors" {
		return ExitGeneral
	}
	return ExitSuccess
}

// runDoctor runs every check. Boilerplate and staging gate every
// conversion; the browser only matters for backgroundSVG pages.
func runDoctor(f doctorFlags, getenv func(string) string) *doctorReport {
	r := &doctorReport{Platform: runtime.GOOS + "/" + runtime.GOARCH}

	checkBoilerplate(r, f.dataDir)
	checkStaging(r, f.tmpDir)
	checkBrowser(r, getenv)

	r.Status = "ready"
	for _, c := range r.Checks {
		switch c.Level {
		case levelError:
			r.Status = "errors"
			return r
		case levelWarn:
			r.Status = "warnings"
		}
	}
	return r
}

// checkBoilerplate loads the fragments exactly as a conversion would and
// lists which ones a data directory overrides.
func checkBoilerplate(r *doctorReport, dataDir string) {
	resolver, err := assets.NewResolver(dataDir)
	if err == nil {
		_, err = assets.LoadBoilerplate(resolver)
	}
	if err != nil {
		r.add("boilerplate", levelError, "%v", err)
		return
	}
	if !resolver.HasCustomLoader() {
		r.add("boilerplate", levelOK, "embedded")
		return
	}

	custom, err := assets.NewFilesystemLoader(dataDir)
	if err != nil {
		r.add("boilerplate", levelError, "%v", err)
		return
	}
	var overridden []string
	for _, name := range []string{assets.HeadHTML, assets.NeckHTML, assets.TailHTML, assets.BaseCSS} {
		if _, err := custom.Load(name); err == nil {
			overridden = append(overridden, name)
		}
	}
	if len(overridden) == 0 {
		r.add("boilerplate", levelWarn, "%s has no head.html, neck.html, tail.html or base.css; embedded fragments used", dataDir)
		return
	}
	r.add("boilerplate", levelOK, "%s overrides %s", dataDir, strings.Join(overridden, ", "))
}

// checkStaging creates, writes and removes a staging directory the way
// the batch converter does for each document.
func checkStaging(r *doctorReport, tmpDir string) {
	base := tmpDir
	if base == "" {
		base = os.TempDir()
	}
	dir, err := os.MkdirTemp(base, "pdf2html-doctor-*")
	if err != nil {
		r.add("staging", levelError, "cannot create staging directories in %s: %v", base, err)
		return
	}
	defer func() { _ = os.RemoveAll(dir) }()

	probe := filepath.Join(dir, "all.css")
	if err := os.WriteFile(probe, []byte(".p{}\n"), fileutil.FilePermissions); err != nil {
		r.add("staging", levelError, "cannot write in %s: %v", base, err)
		return
	}
	r.add("staging", levelOK, "%s writable", base)
}

// checkBrowser reports which Chrome the SVG rasterizer would start and
// whether its sandbox settings suit the runtime.
func checkBrowser(r *doctorReport, getenv func(string) string) {
	settings := raster.BrowserSettingsFrom(getenv)
	path, found := settings.LookPath()
	switch {
	case !found:
		r.add("browser", levelWarn, "Chrome not found: rod downloads Chromium on the first backgroundSVG page; set %s to use an installed one", raster.EnvBrowserBin)
		return
	case !fileutil.FileExists(path):
		r.add("browser", levelWarn, "%s=%s does not exist: backgroundSVG pages will fail", raster.EnvBrowserBin, path)
		return
	}

	sandbox := "sandbox on"
	if settings.NoSandbox {
		sandbox = "sandbox off"
	}
	r.add("browser", levelOK, "%s (%s, %d per batch by default)", path, sandbox, raster.ResolvePoolSize(0))
	checkSandbox(r, settings, hints.DetectRuntime(getenv))
}

// checkSandbox warns when Chrome keeps its sandbox where it usually fails.
func checkSandbox(r *doctorReport, settings raster.BrowserSettings, rt hints.Runtime) {
	if rt.Sandboxed() && !settings.NoSandbox {
		where := "CI"
		if rt.Container != "" {
			where = "container (" + rt.Container + ")"
		}
		r.add("sandbox", levelWarn, "%s detected with the Chrome sandbox on; set %s=1 if backgroundSVG pages fail", where, raster.EnvNoSandbox)
	}
}

// printDoctorReport outputs the human-readable report.
func printDoctorReport(w io.Writer, r *doctorReport) {
	fmt.Fprintf(w, "pdf2html doctor (%s)\n\n", r.Platform)

	tags := map[string]string{levelOK: "[OK]   ", levelWarn: "[WARN] ", levelError: "[ERROR]"}
	for _, c := range r.Checks {
		fmt.Fprintf(w, "  %s %-11s %s\n", tags[c.Level], c.Name, c.Detail)
	}
	fmt.Fprintln(w)

	switch r.Status {
	case "ready":
		fmt.Fprintln(w, "Status: Ready to convert")
	case "warnings":
		fmt.Fprintln(w, "Status: Ready with warnings")
	case "errors":
		fmt.Fprintln(w, "Status: Not ready (see errors above)")
	}
}
