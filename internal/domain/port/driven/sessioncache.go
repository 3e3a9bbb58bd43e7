package driven

import "context"

// SessionCache defines the driven port for the session-scoped result cache.
// Keys are opaque strings; values are serialized snapshots. Only successful
// results are ever stored, and writes are idempotent snapshots, so two
// fetches racing on the same key need no coordination beyond last-write-wins.
type SessionCache interface {
	// Get returns the cached value for key and whether it was present.
	Get(ctx context.Context, key string) ([]byte, bool)

	// Set stores value under key, replacing any previous entry.
	Set(ctx context.Context, key string, value []byte)

	// Delete removes the entry for key, if any. Used to discard corrupt entries.
	Delete(ctx context.Context, key string)
}
