package config

// Notes:
// - LoadConfig by name changes the working directory and XDG_CONFIG_HOME,
//   so those tests are not parallel.

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func writeConfig(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("setup: %v", err)
	}
	return path
}

// skipUnlessXDG skips where os.UserConfigDir ignores XDG_CONFIG_HOME.
func skipUnlessXDG(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" || runtime.GOOS == "darwin" || runtime.GOOS == "plan9" {
		t.Skip("os.UserConfigDir does not read XDG_CONFIG_HOME on " + runtime.GOOS)
	}
}

// ---------------------------------------------------------------------------
// TestConfig_Validate - Value ranges
// ---------------------------------------------------------------------------

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		cfg     Config
		wantErr error
	}{
		{"empty", Config{}, nil},
		{"full", Config{
			Output:     OutputConfig{Dir: "out", Filename: "book.html", SingleHTML: true},
			Pages:      PagesConfig{First: 2, Last: 9},
			Resolution: ResolutionConfig{H: 144, V: 144},
			Background: BackgroundConfig{Enabled: true, H: 72, V: 72, TimeoutSeconds: 60},
			Workers:    4,
		}, nil},
		{"only last page", Config{Pages: PagesConfig{Last: 3}}, nil},
		{"filename with path", Config{Output: OutputConfig{Filename: "a/b.html"}}, ErrInvalidValue},
		{"negative first", Config{Pages: PagesConfig{First: -1}}, ErrInvalidValue},
		{"last before first", Config{Pages: PagesConfig{First: 5, Last: 2}}, ErrInvalidValue},
		{"dpi too low", Config{Resolution: ResolutionConfig{H: 0.5}}, ErrInvalidValue},
		{"background dpi too high", Config{Background: BackgroundConfig{V: MaxDPI + 1}}, ErrInvalidValue},
		{"negative timeout", Config{Background: BackgroundConfig{TimeoutSeconds: -1}}, ErrInvalidValue},
		{"too many workers", Config{Workers: MaxWorkers + 1}, ErrInvalidValue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if err := tt.cfg.Validate(); !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestLoadConfig - File loading
// ---------------------------------------------------------------------------

func TestLoadConfig_Path(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeConfig(t, dir, "pdf2html.yaml", `
output:
  dir: site
  singleHTML: true
pages:
  first: 2
resolution: {h: 96, v: 96}
background:
  enabled: true
  strict: true
workers: 2
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	want := &Config{
		Output:     OutputConfig{Dir: "site", SingleHTML: true},
		Pages:      PagesConfig{First: 2},
		Resolution: ResolutionConfig{H: 96, V: 96},
		Background: BackgroundConfig{Enabled: true, Strict: true},
		Workers:    2,
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("LoadConfig() mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadConfig_Errors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	tests := []struct {
		name    string
		arg     string
		wantErr error
	}{
		{"empty name", "", ErrEmptyConfigName},
		{"missing path", filepath.Join(dir, "missing.yaml"), ErrConfigNotFound},
		{"syntax error", writeConfig(t, dir, "bad.yaml", "output: [unclosed"), ErrConfigParse},
		{"unknown field", writeConfig(t, dir, "unknown.yaml", "style: default"), ErrConfigParse},
		{"invalid value", writeConfig(t, dir, "invalid.yaml", "workers: -3"), ErrInvalidValue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if _, err := LoadConfig(tt.arg); !errors.Is(err, tt.wantErr) {
				t.Errorf("LoadConfig(%q) error = %v, want %v", tt.arg, err, tt.wantErr)
			}
		})
	}
}

func TestLoadConfig_ByName(t *testing.T) {
	skipUnlessXDG(t)
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "xdg"))

	writeConfig(t, dir, "local.yml", "debug: true")
	cfg, err := LoadConfig("local")
	if err != nil {
		t.Fatalf("LoadConfig(local) error = %v", err)
	}
	if !cfg.Debug {
		t.Error("Debug = false, want true from ./local.yml")
	}

	userDir := filepath.Join(dir, "xdg", "go-pdf2html")
	if err := os.MkdirAll(userDir, 0o750); err != nil {
		t.Fatal(err)
	}
	writeConfig(t, userDir, "shared.yaml", "workers: 3")
	cfg, err = LoadConfig("shared")
	if err != nil {
		t.Fatalf("LoadConfig(shared) error = %v", err)
	}
	if cfg.Workers != 3 {
		t.Errorf("Workers = %d, want 3 from the user config directory", cfg.Workers)
	}

	if _, err := LoadConfig("nowhere"); !errors.Is(err, ErrConfigNotFound) {
		t.Errorf("LoadConfig(nowhere) error = %v, want ErrConfigNotFound", err)
	}
}

func TestSearchPaths(t *testing.T) {
	skipUnlessXDG(t)
	t.Setenv("XDG_CONFIG_HOME", "/xdg")

	want := []string{
		"work.yaml",
		"work.yml",
		filepath.Join("/xdg", "go-pdf2html", "work.yaml"),
		filepath.Join("/xdg", "go-pdf2html", "work.yml"),
	}
	if diff := cmp.Diff(want, SearchPaths("work")); diff != "" {
		t.Errorf("SearchPaths() mismatch (-want +got):\n%s", diff)
	}
}
