package domain

import "context"

// Database defines lifecycle operations for a backend that owns a schema.
// Backends without one (the filesystem layout) do not implement it.
type Database interface {
	Migrate(ctx context.Context) error
	Close() error
}
