package assets

import (
	"errors"
)

// Resolver combines a custom and the embedded loader.
// When a custom loader is configured it is tried first, and the embedded
// loader answers only for fragments the custom location does not have.
type Resolver struct {
	custom   Loader // nil if no custom path configured
	embedded Loader
}

// NewResolver creates a Resolver.
// If customBasePath is empty, only embedded assets are used.
// Returns error if customBasePath is set but invalid.
func NewResolver(customBasePath string) (*Resolver, error) {
	resolver := &Resolver{
		embedded: NewEmbeddedLoader(),
	}

	if customBasePath != "" {
		fsLoader, err := NewFilesystemLoader(customBasePath)
		if err != nil {
			return nil, err
		}
		resolver.custom = fsLoader
	}

	return resolver, nil
}

// Load loads a fragment, trying the custom loader first if available.
func (r *Resolver) Load(name string) ([]byte, error) {
	if r.custom == nil {
		return r.embedded.Load(name)
	}

	content, err := r.custom.Load(name)
	if err == nil {
		return content, nil
	}

	// Only fall back for "not found" errors, not validation or I/O errors
	if !errors.Is(err, ErrAssetNotFound) {
		return nil, err
	}

	return r.embedded.Load(name)
}

// HasCustomLoader returns true if a custom asset loader is configured.
func (r *Resolver) HasCustomLoader() bool {
	return r.custom != nil
}

// Compile-time interface check.
var _ Loader = (*Resolver)(nil)
