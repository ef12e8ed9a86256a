package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// ---------------------------------------------------------------------------
// TestDiscoverScripts - Input expansion
// ---------------------------------------------------------------------------

func TestDiscoverScripts(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	single := writeScript(t, dir, "one.json", `{"pages":[{"width":1,"height":1}]}`)
	tree := filepath.Join(dir, "tree")
	writeScript(t, tree, "b.YAML", twoPageScript)
	writeScript(t, tree, filepath.Join("nested", "c.yml"), twoPageScript)
	writeScript(t, tree, "readme.md", "skip")

	got, err := discoverScripts([]string{single, tree}, "out")
	if err != nil {
		t.Fatalf("discoverScripts() error = %v", err)
	}

	want := []FileToConvert{
		{InputPath: single, DestDir: "out", Filename: "one.html"},
		{InputPath: filepath.Join(tree, "b.YAML"), DestDir: "out", Filename: "b.html"},
		{InputPath: filepath.Join(tree, "nested", "c.yml"), DestDir: filepath.Join("out", "nested"), Filename: "c.html"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("discoverScripts() mismatch (-want +got):\n%s", diff)
	}
}

func TestDiscoverScripts_Errors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	notes := writeScript(t, dir, "notes.txt", "x")

	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{"missing", filepath.Join(dir, "missing.yaml"), os.ErrNotExist},
		{"wrong extension", notes, ErrInvalidExtension},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if _, err := discoverScripts([]string{tt.input}, ""); !errors.Is(err, tt.wantErr) {
				t.Errorf("discoverScripts(%q) error = %v, want %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestResolveTarget - Output placement
// ---------------------------------------------------------------------------

func TestResolveTarget(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		input     string
		destDir   string
		baseInput string
		want      FileToConvert
	}{
		{
			name:  "next to script",
			input: filepath.Join("docs", "a.yaml"),
			want:  FileToConvert{InputPath: filepath.Join("docs", "a.yaml"), DestDir: "docs", Filename: "a.html"},
		},
		{
			name:    "dest dir",
			input:   filepath.Join("docs", "a.yaml"),
			destDir: "site",
			want:    FileToConvert{InputPath: filepath.Join("docs", "a.yaml"), DestDir: "site", Filename: "a.html"},
		},
		{
			name:      "mirrored layout",
			input:     filepath.Join("docs", "x", "a.json"),
			destDir:   "site",
			baseInput: "docs",
			want:      FileToConvert{InputPath: filepath.Join("docs", "x", "a.json"), DestDir: filepath.Join("site", "x"), Filename: "a.html"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := resolveTarget(tt.input, tt.destDir, tt.baseInput)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("resolveTarget() mismatch (-want +got):\n%s", diff)
			}
			if got.OutputPath() != filepath.Join(got.DestDir, got.Filename) {
				t.Errorf("OutputPath() = %s", got.OutputPath())
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestSeparateDocuments - Shared destination handling
// ---------------------------------------------------------------------------

func TestSeparateDocuments(t *testing.T) {
	t.Parallel()

	files := []FileToConvert{
		{InputPath: "in/a.yaml", DestDir: "out", Filename: "a.html"},
		{InputPath: "in/b.yaml", DestDir: "./out/", Filename: "b.html"},
		{InputPath: "in/sub/c.yaml", DestDir: filepath.Join("out", "sub"), Filename: "c.html"},
	}

	tests := []struct {
		name       string
		singleHTML bool
		want       []string
	}{
		{
			name: "multi-file gets subdirectories",
			want: []string{filepath.Join("out", "a"), filepath.Join("out", "b"), filepath.Join("out", "sub")},
		},
		{
			name:       "single-file keeps directories",
			singleHTML: true,
			want:       []string{"out", "./out/", filepath.Join("out", "sub")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := separateDocuments(files, tt.singleHTML)
			if err != nil {
				t.Fatalf("separateDocuments() error = %v", err)
			}
			dirs := make([]string, len(got))
			for i, f := range got {
				dirs[i] = f.DestDir
			}
			if diff := cmp.Diff(tt.want, dirs); diff != "" {
				t.Errorf("DestDir mismatch (-want +got):\n%s", diff)
			}
			if files[0].DestDir != "out" {
				t.Error("separateDocuments modified its input")
			}
		})
	}
}

func TestSeparateDocuments_Duplicate(t *testing.T) {
	t.Parallel()

	files := []FileToConvert{
		{InputPath: "in/doc.yaml", DestDir: "out", Filename: "doc.html"},
		{InputPath: "in/doc.json", DestDir: "out", Filename: "doc.html"},
	}
	for _, single := range []bool{false, true} {
		if _, err := separateDocuments(files, single); !errors.Is(err, ErrDuplicateOutput) {
			t.Errorf("singleHTML=%v: error = %v, want ErrDuplicateOutput", single, err)
		}
	}
}
