package assets

import (
	"embed"
	"fmt"
)

//go:embed lib/*
var lib embed.FS

// EmbeddedLoader loads fragments compiled into the binary.
type EmbeddedLoader struct{}

// NewEmbeddedLoader creates an EmbeddedLoader.
func NewEmbeddedLoader() *EmbeddedLoader {
	return &EmbeddedLoader{}
}

// Load reads a fragment from the embedded lib directory.
func (e *EmbeddedLoader) Load(name string) ([]byte, error) {
	if err := ValidateAssetName(name); err != nil {
		return nil, err
	}

	content, err := lib.ReadFile("lib/" + name)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrAssetNotFound, name)
	}

	return content, nil
}

// Compile-time interface check.
var _ Loader = (*EmbeddedLoader)(nil)
