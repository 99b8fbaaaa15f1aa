package config

import "context"

// Loader is the interface for a format-specific sweep definition loader.
type Loader interface {
	// Load reads every sweep definition found under the given paths and
	// translates them into the format-agnostic model.
	Load(ctx context.Context, paths ...string) (*Model, error)
}
