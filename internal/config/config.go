// Package config loads the YAML configuration file of the pdf2html CLI.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-pdf2html/internal/fileutil"
	"github.com/alnah/go-pdf2html/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrInvalidValue    = errors.New("invalid config value")
)

// Limits mirrored from the library so a config file fails early.
const (
	MinDPI         = 1
	MaxDPI         = 9600
	MaxWorkers     = 8
	MaxTimeoutSecs = 3600
)

// Config holds the defaults of the convert command. Zero values mean
// "use the built-in default"; command-line flags override every field.
type Config struct {
	Output     OutputConfig     `yaml:"output"`
	Pages      PagesConfig      `yaml:"pages"`
	Resolution ResolutionConfig `yaml:"resolution"`
	Background BackgroundConfig `yaml:"background"`
	Assets     AssetsConfig     `yaml:"assets"`
	Workers    int              `yaml:"workers"` // 0 = auto
	Debug      bool             `yaml:"debug"`
}

// OutputConfig defines where and how documents are written.
type OutputConfig struct {
	Dir        string `yaml:"dir"`        // empty = next to the script
	TmpDir     string `yaml:"tmpDir"`     // empty = system temp directory
	Filename   string `yaml:"filename"`   // empty = <script name>.html
	SingleHTML bool   `yaml:"singleHTML"` // inline css and backgrounds
}

// PagesConfig is the default page range.
type PagesConfig struct {
	First int `yaml:"first"` // 0 = 1
	Last  int `yaml:"last"`  // 0 = last page of the document
}

// ResolutionConfig is the foreground DPI.
type ResolutionConfig struct {
	H float64 `yaml:"h"`
	V float64 `yaml:"v"`
}

// BackgroundConfig controls the background raster pass.
type BackgroundConfig struct {
	Enabled        bool    `yaml:"enabled"`
	H              float64 `yaml:"h"`
	V              float64 `yaml:"v"`
	Strict         bool    `yaml:"strict"`         // abort on the first failed page
	TimeoutSeconds int     `yaml:"timeoutSeconds"` // per SVG page, 0 = default
}

// AssetsConfig points at a directory overriding boilerplate fragments.
type AssetsConfig struct {
	BasePath string `yaml:"basePath"` // empty = embedded fragments
}

// DefaultConfig returns an empty configuration: every field falls back to
// the built-in default.
func DefaultConfig() *Config {
	return &Config{}
}

// Validate checks values that are set.
func (c *Config) Validate() error {
	if c.Output.Filename != "" {
		if err := fileutil.ValidateName(c.Output.Filename); err != nil {
			return fmt.Errorf("%w: output.filename: %v", ErrInvalidValue, err)
		}
	}
	if c.Pages.First < 0 || c.Pages.Last < 0 {
		return fmt.Errorf("%w: pages: first and last must not be negative", ErrInvalidValue)
	}
	if c.Pages.Last != 0 && c.Pages.Last < max(c.Pages.First, 1) {
		return fmt.Errorf("%w: pages.last %d before pages.first %d", ErrInvalidValue, c.Pages.Last, c.Pages.First)
	}
	if err := validateDPI("resolution", c.Resolution.H, c.Resolution.V); err != nil {
		return err
	}
	if err := validateDPI("background", c.Background.H, c.Background.V); err != nil {
		return err
	}
	if c.Background.TimeoutSeconds < 0 || c.Background.TimeoutSeconds > MaxTimeoutSecs {
		return fmt.Errorf("%w: background.timeoutSeconds must be between 0 and %d, got %d",
			ErrInvalidValue, MaxTimeoutSecs, c.Background.TimeoutSeconds)
	}
	if c.Workers < 0 || c.Workers > MaxWorkers {
		return fmt.Errorf("%w: workers must be between 0 and %d, got %d", ErrInvalidValue, MaxWorkers, c.Workers)
	}
	return nil
}

func validateDPI(field string, h, v float64) error {
	for _, d := range []float64{h, v} {
		if d != 0 && (d < MinDPI || d > MaxDPI) {
			return fmt.Errorf("%w: %s: dpi must be between %d and %d, got %g",
				ErrInvalidValue, field, MinDPI, MaxDPI, d)
		}
	}
	return nil
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	configPath := nameOrPath
	if !fileutil.IsFilePath(nameOrPath) {
		var err error
		if configPath, err = resolveConfigPath(nameOrPath); err != nil {
			return nil, err
		}
	}

	var cfg Config
	if err := yamlutil.ReadFileStrict(configPath, &cfg); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// SearchPaths lists the candidate files for a config name, in lookup order:
// the current directory, then ~/.config/go-pdf2html/, each with .yaml then .yml.
func SearchPaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, len(extensions)*2)
	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}
	if userConfigDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(userConfigDir, "go-pdf2html", name+ext))
		}
	}
	return paths
}

// resolveConfigPath returns the first existing candidate of SearchPaths.
func resolveConfigPath(name string) (string, error) {
	tried := SearchPaths(name)
	for _, p := range tried {
		if fileutil.FileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(tried, ", "))
}
