package ports

import "context"

// ArtifactStore persists model binaries outside the database. Keys are
// opaque relative paths ("runs/<run_id>/model.json"); the store prefixes
// them with its own root (directory or bucket).
type ArtifactStore interface {
	Put(ctx context.Context, key string, data []byte) (uri string, err error)
	Get(ctx context.Context, key string) ([]byte, error)
}
