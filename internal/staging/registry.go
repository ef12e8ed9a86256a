// Package staging tracks intermediate artifacts written to a staging
// directory during one document run and removes them when the run ends.
package staging

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/alnah/go-pdf2html/internal/fileutil"
)

// Registry is the set of staged file names below one staging directory.
// Adding a name twice is a no-op. Teardown removes every tracked file, then
// the directory itself, ignoring individual failures.
type Registry struct {
	dir     string
	verbose bool
	logger  *slog.Logger

	mu       sync.Mutex
	files    map[string]struct{}
	tornDown bool
}

// Option configures a Registry.
type Option func(*Registry)

// WithLogger sets the logger used for verbose diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(r *Registry) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithVerbose reports additions and removals through the logger.
func WithVerbose(verbose bool) Option {
	return func(r *Registry) {
		r.verbose = verbose
	}
}

// New creates an empty Registry rooted at dir.
func New(dir string, opts ...Option) *Registry {
	r := &Registry{
		dir:    dir,
		files:  make(map[string]struct{}),
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Dir returns the staging directory.
func (r *Registry) Dir() string {
	return r.dir
}

// Path returns the absolute location of a staged name.
func (r *Registry) Path(name string) string {
	return filepath.Join(r.dir, name)
}

// Add tracks name and reports whether it was not tracked before.
func (r *Registry) Add(name string) (bool, error) {
	if err := fileutil.ValidateName(name); err != nil {
		return false, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.files[name]; ok {
		return false, nil
	}
	r.files[name] = struct{}{}

	if r.verbose {
		r.logger.Debug("added temporary file", "name", name)
	}
	return true, nil
}

// Contains reports whether name is tracked.
func (r *Registry) Contains(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.files[name]
	return ok
}

// Len returns the number of tracked names.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.files)
}

// Names returns the tracked names in sorted order.
func (r *Registry) Names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sortedLocked()
}

func (r *Registry) sortedLocked() []string {
	names := make([]string, 0, len(r.files))
	for name := range r.files {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Teardown removes all tracked files and the staging directory.
// Every removal is attempted; failures are joined into the returned error,
// which callers are expected to log at most. Only the first call does work.
func (r *Registry) Teardown() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.tornDown {
		return nil
	}
	r.tornDown = true

	var errs []error
	for _, name := range r.sortedLocked() {
		if err := os.Remove(r.Path(name)); err != nil {
			errs = append(errs, fmt.Errorf("removing %s: %w", name, err))
			continue
		}
		delete(r.files, name)
		if r.verbose {
			r.logger.Debug("removed temporary file", "name", name)
		}
	}

	// Fails harmlessly when the directory still holds other content,
	// e.g. when it doubles as the destination directory.
	if err := os.Remove(r.dir); err != nil {
		errs = append(errs, fmt.Errorf("removing staging directory: %w", err))
	} else if r.verbose {
		r.logger.Debug("removed temporary directory", "dir", r.dir)
	}

	return errors.Join(errs...)
}
