package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/alnah/go-pdf2html/internal/fileutil"
)

// ErrInvalidExtension rejects explicit inputs that are not scripts.
var ErrInvalidExtension = errors.New("script must have .yaml, .yml or .json extension")

// scriptExtensions are the accepted event script extensions.
var scriptExtensions = []string{".yaml", ".yml", ".json"}

// FileToConvert is one script and where its document goes.
type FileToConvert struct {
	InputPath string
	DestDir   string
	Filename  string
}

// OutputPath is the final deliverable.
func (f FileToConvert) OutputPath() string {
	return filepath.Join(f.DestDir, f.Filename)
}

// discoverScripts expands files and directories into scripts to convert,
// in argument order and lexical order within each directory.
func discoverScripts(inputs []string, destDir string) ([]FileToConvert, error) {
	var files []FileToConvert
	for _, input := range inputs {
		info, err := os.Stat(input)
		if err != nil {
			return nil, err
		}

		if !info.IsDir() {
			if err := validateScriptExtension(input); err != nil {
				return nil, err
			}
			files = append(files, resolveTarget(input, destDir, ""))
			continue
		}

		err = filepath.WalkDir(input, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return fmt.Errorf("scanning %s: %w", path, err)
			}
			if d.IsDir() || !isScript(path) {
				return nil
			}
			files = append(files, resolveTarget(path, destDir, input))
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return files, nil
}

// resolveTarget places the document of a script. Without destDir it lands
// next to the script; under a scanned directory the relative layout is kept.
func resolveTarget(inputPath, destDir, baseInputDir string) FileToConvert {
	ext := filepath.Ext(inputPath)
	f := FileToConvert{
		InputPath: inputPath,
		DestDir:   filepath.Dir(inputPath),
		Filename:  strings.TrimSuffix(filepath.Base(inputPath), ext) + ".html",
	}

	if destDir == "" {
		return f
	}
	f.DestDir = destDir
	if baseInputDir != "" {
		if rel, err := filepath.Rel(baseInputDir, inputPath); err == nil {
			f.DestDir = filepath.Join(destDir, filepath.Dir(rel))
		}
	}
	return f
}

// separateDocuments keeps multi-file documents from sharing sibling files.
// When several documents land in one directory, each moves to a
// subdirectory named after its script so their all.css and p<n>.png stay
// apart. Two scripts resolving to the same deliverable are rejected.
func separateDocuments(files []FileToConvert, singleHTML bool) ([]FileToConvert, error) {
	out := slices.Clone(files)

	if !singleHTML {
		perDir := make(map[string]int)
		for _, f := range out {
			perDir[fileutil.CleanAbs(f.DestDir)]++
		}
		for i, f := range out {
			if perDir[fileutil.CleanAbs(f.DestDir)] > 1 {
				out[i].DestDir = filepath.Join(f.DestDir, strings.TrimSuffix(f.Filename, ".html"))
			}
		}
	}

	seen := make(map[string]string, len(out))
	for _, f := range out {
		key := fileutil.CleanAbs(f.OutputPath())
		if prev, ok := seen[key]; ok {
			return nil, fmt.Errorf("%w: %s and %s both write %s", ErrDuplicateOutput, prev, f.InputPath, key)
		}
		seen[key] = f.InputPath
	}
	return out, nil
}

func isScript(path string) bool {
	return slices.Contains(scriptExtensions, strings.ToLower(filepath.Ext(path)))
}

// validateScriptExtension checks that an explicit input is a script.
func validateScriptExtension(path string) error {
	if !isScript(path) {
		return fmt.Errorf("%w: got %q", ErrInvalidExtension, filepath.Ext(path))
	}
	return nil
}
