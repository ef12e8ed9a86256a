package fileutil_test

// Notes:
// - TestWriteTempFile_CreateTempError modifies TMPDIR through t.Setenv and
//   therefore cannot run in parallel.
// - The WriteString and Close error branches of WriteTempFile need a failing
//   disk and are not covered.

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alnah/go-pdf2html/internal/fileutil"
)

// ---------------------------------------------------------------------------
// TestValidateExtension - Extension validation
// ---------------------------------------------------------------------------

func TestValidateExtension(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		extension string
		wantErr   error
	}{
		{"html", "html", nil},
		{"empty", "", fileutil.ErrExtensionEmpty},
		{"slash", "../html", fileutil.ErrExtensionPathTraversal},
		{"backslash", `x\html`, fileutil.ErrExtensionPathTraversal},
		{"null byte", "html\x00", fileutil.ErrExtensionPathTraversal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if err := fileutil.ValidateExtension(tt.extension); !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateExtension(%q) = %v, want %v", tt.extension, err, tt.wantErr)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestValidateName - Staged file names
// ---------------------------------------------------------------------------

func TestValidateName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{"page image", "p1a.png", nil},
		{"partial output", "index.html.part", nil},
		{"empty", "", fileutil.ErrNameEmpty},
		{"dot", ".", fileutil.ErrNamePathTraversal},
		{"dotdot", "..", fileutil.ErrNamePathTraversal},
		{"nested", "a/b.png", fileutil.ErrNamePathTraversal},
		{"windows nested", `a\b.png`, fileutil.ErrNamePathTraversal},
		{"null byte", "p1.png\x00", fileutil.ErrNamePathTraversal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if err := fileutil.ValidateName(tt.input); !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateName(%q) = %v, want %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestWriteTempFile - Temporary file creation
// ---------------------------------------------------------------------------

func TestWriteTempFile(t *testing.T) {
	t.Parallel()

	content := "<svg/>"
	path, cleanup, err := fileutil.WriteTempFile(content, "html")
	if err != nil {
		t.Fatalf("WriteTempFile() error = %v", err)
	}
	defer cleanup()

	if !strings.HasSuffix(path, ".html") {
		t.Errorf("path %q does not end in .html", path)
	}
	if !strings.HasPrefix(filepath.Base(path), "pdf2html-") {
		t.Errorf("path %q does not use the pdf2html- prefix", path)
	}
	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != content {
		t.Errorf("content = %q, want %q", got, content)
	}

	cleanup()
	if fileutil.FileExists(path) {
		t.Error("cleanup did not remove the file")
	}
	cleanup() // second call is harmless
}

func TestWriteTempFile_InvalidExtension(t *testing.T) {
	t.Parallel()

	_, cleanup, err := fileutil.WriteTempFile("x", "")
	if cleanup != nil {
		t.Error("cleanup returned on error")
	}
	if !errors.Is(err, fileutil.ErrExtensionEmpty) {
		t.Errorf("WriteTempFile() error = %v, want ErrExtensionEmpty", err)
	}
}

func TestWriteTempFile_CreateTempError(t *testing.T) {
	t.Setenv("TMPDIR", "/nonexistent/path/that/does/not/exist")

	_, cleanup, err := fileutil.WriteTempFile("content", "html")
	if cleanup != nil {
		defer cleanup()
	}
	if err == nil || !strings.Contains(err.Error(), "creating temp file") {
		t.Errorf("WriteTempFile() error = %v, want 'creating temp file'", err)
	}
}

// ---------------------------------------------------------------------------
// TestEnsureDir - Directory creation
// ---------------------------------------------------------------------------

func TestEnsureDir(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "a", "b", "c")
	if err := fileutil.EnsureDir(dir); err != nil {
		t.Fatalf("EnsureDir() error = %v", err)
	}
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		t.Fatalf("directory not created: %v", err)
	}
	if err := fileutil.EnsureDir(dir); err != nil {
		t.Errorf("EnsureDir() on existing dir error = %v", err)
	}

	file := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(file, nil, 0o600); err != nil {
		t.Fatal(err)
	}
	if err := fileutil.EnsureDir(filepath.Join(file, "sub")); err == nil {
		t.Error("EnsureDir() below a regular file should fail")
	}
}

// ---------------------------------------------------------------------------
// TestCopyFileTo - Streaming staged files
// ---------------------------------------------------------------------------

func TestCopyFileTo(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "all.css")
	if err := os.WriteFile(path, []byte(".p{}"), 0o600); err != nil {
		t.Fatal(err)
	}

	var sb strings.Builder
	n, err := fileutil.CopyFileTo(&sb, path)
	if err != nil {
		t.Fatalf("CopyFileTo() error = %v", err)
	}
	if n != 4 || sb.String() != ".p{}" {
		t.Errorf("CopyFileTo() = %d %q, want 4 %q", n, sb.String(), ".p{}")
	}

	if _, err := fileutil.CopyFileTo(&sb, filepath.Join(t.TempDir(), "missing")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("CopyFileTo(missing) error = %v, want os.ErrNotExist", err)
	}
}

// ---------------------------------------------------------------------------
// TestCleanAbs - Path identity
// ---------------------------------------------------------------------------

func TestCleanAbs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		a, b string
		want bool
	}{
		{"out", "out", true},
		{"out", "./out/", true},
		{"out", "out/../out", true},
		{"out", "tmp", false},
	}

	for _, tt := range tests {
		if got := fileutil.CleanAbs(tt.a) == fileutil.CleanAbs(tt.b); got != tt.want {
			t.Errorf("CleanAbs(%q) == CleanAbs(%q) is %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}

// ---------------------------------------------------------------------------
// TestFileExists - Regular file detection
// ---------------------------------------------------------------------------

func TestFileExists(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	file := filepath.Join(dir, "index.html")
	if err := os.WriteFile(file, []byte("x"), 0o600); err != nil {
		t.Fatal(err)
	}

	if !fileutil.FileExists(file) {
		t.Error("FileExists(file) = false")
	}
	if fileutil.FileExists(dir) {
		t.Error("FileExists(dir) = true, directories are not files")
	}
	if fileutil.FileExists(filepath.Join(dir, "missing")) {
		t.Error("FileExists(missing) = true")
	}
}

// ---------------------------------------------------------------------------
// TestIsFilePath - File path detection
// ---------------------------------------------------------------------------

func TestIsFilePath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  bool
	}{
		{"batch", false},
		{"name.with.dots", false},
		{"", false},
		{"./pdf2html.yaml", true},
		{"../shared/pdf2html.yaml", true},
		{"/etc/pdf2html/batch.yaml", true},
		{`C:\configs\batch.yaml`, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			if got := fileutil.IsFilePath(tt.input); got != tt.want {
				t.Errorf("IsFilePath(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}
