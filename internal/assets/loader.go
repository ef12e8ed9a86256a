package assets

// Loader defines the contract for loading raw document fragments.
// Implementations may load from embedded assets, a filesystem directory, etc.
type Loader interface {
	// Load returns the bytes of the named fragment (e.g. "head.html").
	// Returns ErrAssetNotFound if the fragment doesn't exist.
	// Returns ErrInvalidAssetName if the name contains invalid characters.
	Load(name string) ([]byte, error)
}
