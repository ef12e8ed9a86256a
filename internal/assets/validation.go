package assets

import (
	"fmt"
	"strings"
)

// ValidateAssetName checks that an asset name is a bare file name.
// Returns ErrInvalidAssetName if the name is empty, contains path separators
// or a NUL byte, or starts with a dot.
func ValidateAssetName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidAssetName)
	}
	if strings.ContainsAny(name, "/\\\x00") || strings.HasPrefix(name, ".") {
		return fmt.Errorf("%w: %q", ErrInvalidAssetName, name)
	}
	return nil
}
