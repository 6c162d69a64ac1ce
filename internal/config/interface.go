package config

import "context"

// Loader translates plan files of some concrete format into the agnostic
// model. Paths may be files or directories; directories are searched
// recursively.
type Loader interface {
	Load(ctx context.Context, paths ...string) (*Model, error)
}
