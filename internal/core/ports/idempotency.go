package ports

import "context"

// IdempotencyStore remembers which record a create request produced so a
// retried request with the same key replays the original result.
type IdempotencyStore interface {
	// Recall returns the id stored for (scope, key), or "" when unseen.
	Recall(ctx context.Context, scope, key string) (string, error)
	Remember(ctx context.Context, scope, key, id string) error
}
