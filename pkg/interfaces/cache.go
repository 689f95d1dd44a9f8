package interfaces

import (
	"context"
	"time"
)

// CacheProvider is the key/value cache contract consumed by the content
// registry. Entries live until explicitly deleted or until the backend's own
// eviction policy reclaims them; callers must not assume TTL expiry.
type CacheProvider interface {
	Get(ctx context.Context, key string) (any, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}
