package raster

import "github.com/go-rod/rod/lib/launcher"

// Environment variables read when launching the browser.
const (
	EnvBrowserBin = "ROD_BROWSER_BIN"
	EnvNoSandbox  = "ROD_NO_SANDBOX"
)

// BrowserSettings is how the SVG rasterizer launches Chrome.
type BrowserSettings struct {
	Bin       string // explicit binary; empty means rod's lookup or download
	NoSandbox bool
}

// BrowserSettingsFrom reads the launch settings through getenv.
// The sandbox is off with ROD_NO_SANDBOX=1, under CI=true, or when a
// pre-installed binary is given, which is how container images ship Chrome.
func BrowserSettingsFrom(getenv func(string) string) BrowserSettings {
	bin := getenv(EnvBrowserBin)
	return BrowserSettings{
		Bin:       bin,
		NoSandbox: getenv(EnvNoSandbox) == "1" || getenv("CI") == "true" || bin != "",
	}
}

// LookPath returns the binary the rasterizer would start without
// downloading one, and whether it was found.
func (s BrowserSettings) LookPath() (string, bool) {
	if s.Bin != "" {
		return s.Bin, true
	}
	return launcher.LookPath()
}

func (s BrowserSettings) newLauncher() *launcher.Launcher {
	l := launcher.New()
	if s.Bin != "" {
		l = l.Bin(s.Bin)
	}
	if s.NoSandbox {
		l = l.NoSandbox(true)
	}
	return l
}
