// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"path/filepath"
	"strconv"
	"strings"

	"github.com/alnah/go-pdf2html/internal/fileutil"
)

// IsInContainer detects if running inside a Docker container or similar.
// Checks for /.dockerenv file which Docker creates automatically.
var IsInContainer = func() bool {
	return fileutil.FileExists("/.dockerenv")
}

// ciVars are set by common CI services.
var ciVars = []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI", "JENKINS_URL", "CIRCLECI"}

// Runtime is where the process runs, as far as launching Chrome cares.
type Runtime struct {
	CI        bool
	Container string // signal that revealed the container, empty outside one
}

// Sandboxed reports whether Chrome's sandbox is likely to fail here.
func (r Runtime) Sandboxed() bool {
	return r.CI || r.Container != ""
}

// DetectRuntime inspects the environment through getenv.
func DetectRuntime(getenv func(string) string) Runtime {
	var rt Runtime
	for _, v := range ciVars {
		if getenv(v) != "" {
			rt.CI = true
			break
		}
	}

	switch {
	case getenv("PDF2HTML_CONTAINER") == "1":
		rt.Container = "PDF2HTML_CONTAINER=1"
	case IsInContainer():
		rt.Container = "/.dockerenv"
	case getenv("container") != "": // podman, systemd-nspawn
		rt.Container = "container=" + getenv("container")
	case getenv("KUBERNETES_SERVICE_HOST") != "":
		rt.Container = "KUBERNETES_SERVICE_HOST"
	}
	return rt
}

// ForBrowserConnect returns hints for browser launch errors, based on the
// runtime and the ROD_* variables already set.
func ForBrowserConnect(getenv func(string) string) string {
	var hints []string

	if DetectRuntime(getenv).Sandboxed() && getenv("ROD_NO_SANDBOX") != "1" {
		hints = append(hints, "set ROD_NO_SANDBOX=1 for Docker/CI")
	}
	if getenv("ROD_BROWSER_BIN") == "" {
		hints = append(hints, "set ROD_BROWSER_BIN to use custom Chrome")
	}
	hints = append(hints, "only backgroundSVG pages need a browser")

	return formatHints(hints)
}

// ForTimeout returns a hint about raising the SVG background timeout.
func ForTimeout() string {
	return format("for heavy SVG backgrounds, raise background.timeoutSeconds in the config file")
}

// ForConfigNotFound suggests --config, or creating the file under the
// user config directory when that location was searched.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"

	for _, p := range searchedPaths {
		if strings.Contains(filepath.ToSlash(p), "/go-pdf2html/") {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForOutputDirectory returns hints for output directory creation errors.
func ForOutputDirectory() string {
	return format("check that --dest-dir and --tmp-dir are writable")
}

// ForInvalidScript returns hints for event script decoding errors.
func ForInvalidScript() string {
	return format("run 'pdf2html help script' for the event script format")
}

// ForBackgroundFailure returns hints for pages emitted without background.
func ForBackgroundFailure(pages []int) string {
	if len(pages) == 0 {
		return ""
	}
	parts := make([]string, len(pages))
	for i, p := range pages {
		parts[i] = strconv.Itoa(p)
	}
	return format("text of page(s) " + strings.Join(parts, ", ") + " was kept; rerun with --debug for details")
}

func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
