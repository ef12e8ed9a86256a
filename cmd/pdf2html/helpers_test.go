package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

// ---------------------------------------------------------------------------
// Test Infrastructure - Environment and scripts
// ---------------------------------------------------------------------------

// testEnv returns an Environment writing to buffers with a fixed process
// environment.
func testEnv(vars map[string]string) (*Environment, *bytes.Buffer, *bytes.Buffer) {
	var stdout, stderr bytes.Buffer
	env := &Environment{
		Stdout: &stdout,
		Stderr: &stderr,
		Getenv: func(k string) string { return vars[k] },
	}
	return env, &stdout, &stderr
}

// twoPageScript has a colored background on page 1 and none on page 2.
const twoPageScript = `
pages:
  - width: 200
    height: 100
    backgroundColor: "#eeeeee"
    ops:
      - font: {name: F1, family: serif}
      - size: 12
      - move: [10, 20]
      - text: Hello
  - width: 200
    height: 100
    ops:
      - size: 10
      - move: [10, 50]
      - text: World
`

// brokenBackgroundScript points page 1 at an image that does not exist.
const brokenBackgroundScript = `
pages:
  - width: 100
    height: 100
    background: missing.png
    ops:
      - size: 12
      - text: Still here
`

func writeScript(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("writing script: %v", err)
	}
	return path
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path) // #nosec G304 -- test path
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	return string(data)
}

func dirEntries(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("reading dir %s: %v", dir, err)
	}
	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Name()
	}
	return names
}
