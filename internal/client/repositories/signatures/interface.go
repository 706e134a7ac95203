package signatures

import (
	"context"

	"github.com/nostos-app/nostos/internal/client/models"
)

// Repository is the durable signature cache. Signing is the expensive,
// user-interactive operation in the whole encryption path, so cached
// signatures survive process restarts; entries older than the configured
// TTL are treated as absent and removed lazily on access.
//
// Lookup keys are the (address, itemID, purpose) tuple; address and itemID
// comparisons are case-insensitive.
type Repository interface {
	// Get returns the cached signature, or nil if absent, expired or corrupt.
	Get(ctx context.Context, address, itemID string, purpose models.Purpose) ([]byte, error)

	// Set stores a freshly obtained signature for the tuple, replacing any
	// previous entry.
	Set(ctx context.Context, address, itemID string, purpose models.Purpose, signature []byte) error

	// ClearForAddress removes all entries stored for the given address.
	ClearForAddress(ctx context.Context, address string) error

	// ClearAll wipes the cache. Called when the active wallet disconnects so
	// one account's signatures never leak into another session.
	ClearAll(ctx context.Context) error
}
