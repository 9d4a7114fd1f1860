package repositories

import "context"

// ReportCache stores computed statements keyed by their inputs. Implementations must
// treat every key built before the last Bump as stale.
type ReportCache interface {
	// Key composes a versioned cache key from parts.
	Key(ctx context.Context, parts ...string) (string, error)

	// FetchJSON fills dest from the cache, or from loader on a miss. It reports whether
	// the value came from the cache.
	FetchJSON(ctx context.Context, key string, dest any, loader func(context.Context) (any, error)) (bool, error)

	// Bump invalidates everything cached so far.
	Bump(ctx context.Context) error
}
