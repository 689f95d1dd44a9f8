package registry

import (
	"context"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/goliatone/go-slug"
	"github.com/goomento/pagebuilder/internal/content"
	"github.com/goomento/pagebuilder/internal/logging"
	"github.com/goomento/pagebuilder/pkg/interfaces"
	"github.com/google/uuid"
)

const (
	idKeyPrefix         = "pagebuilder:registry:id:"
	identifierKeyPrefix = "pagebuilder:registry:identifier:"

	// DefaultTTL bounds staleness only as a backstop; coherency comes from
	// explicit invalidation on the write path.
	DefaultTTL = 15 * time.Minute
)

// Source is the authoritative read path the registry falls back to on cache
// misses.
type Source interface {
	Get(ctx context.Context, id uuid.UUID) (*content.Content, error)
	GetByIdentifier(ctx context.Context, identifier string, storeID int) (*content.Content, error)
}

// ContentRegistry is a read-through cache over the content service. Every
// write path must call Invalidate synchronously before returning.
type ContentRegistry struct {
	source Source
	cache  interfaces.CacheProvider
	ttl    time.Duration
	logger interfaces.Logger

	// scopes records which store scopes have cached a given identifier, so
	// invalidation can evict every key that could serve stale content.
	mu     sync.Mutex
	scopes map[string]map[int]struct{}
}

var _ content.Invalidator = (*ContentRegistry)(nil)

// Option configures the registry.
type Option func(*ContentRegistry)

// WithTTL overrides the backstop entry lifetime.
func WithTTL(ttl time.Duration) Option {
	return func(r *ContentRegistry) {
		if ttl > 0 {
			r.ttl = ttl
		}
	}
}

// WithLogger attaches a module logger.
func WithLogger(logger interfaces.Logger) Option {
	return func(r *ContentRegistry) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// New constructs a registry. A nil cache provider disables caching and the
// registry degrades to pass-through reads.
func New(source Source, cache interfaces.CacheProvider, opts ...Option) *ContentRegistry {
	r := &ContentRegistry{
		source: source,
		cache:  cache,
		ttl:    DefaultTTL,
		logger: logging.NoOp(),
		scopes: make(map[string]map[int]struct{}),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// GetByID resolves content by id, serving from cache when possible.
func (r *ContentRegistry) GetByID(ctx context.Context, id uuid.UUID) (*content.Content, error) {
	key := idKey(id)
	if cached := r.lookup(ctx, key); cached != nil {
		return cached, nil
	}

	record, err := r.source.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	r.store(ctx, key, record)
	return record, nil
}

// GetByIdentifier resolves published content by identifier within a store
// scope, serving from cache when possible. Cache keys always use the
// normalized identifier so invalidation by record matches every lookup
// spelling.
func (r *ContentRegistry) GetByIdentifier(ctx context.Context, identifier string, storeID int) (*content.Content, error) {
	normalized, err := slug.Normalize(strings.TrimSpace(identifier))
	if err != nil || normalized == "" {
		return r.source.GetByIdentifier(ctx, identifier, storeID)
	}

	key := identifierKey(normalized, storeID)
	if cached := r.lookup(ctx, key); cached != nil {
		return cached, nil
	}

	record, err := r.source.GetByIdentifier(ctx, normalized, storeID)
	if err != nil {
		return nil, err
	}
	r.store(ctx, key, record)
	r.rememberScope(normalized, storeID)
	return record, nil
}

// Invalidate evicts every cache entry that could serve the record: its id
// key and its identifier key in every store scope the identifier has been
// cached under. Called synchronously by the write path.
func (r *ContentRegistry) Invalidate(ctx context.Context, record *content.Content) error {
	if r.cache == nil || record == nil {
		return nil
	}

	keys := []string{idKey(record.ID)}
	for _, storeID := range r.takeScopes(record.Identifier) {
		keys = append(keys, identifierKey(record.Identifier, storeID))
	}

	var firstErr error
	for _, key := range keys {
		if err := r.cache.Delete(ctx, key); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if firstErr != nil {
		r.logger.Error("registry eviction incomplete", "content_id", record.ID, "error", firstErr)
	}
	return firstErr
}

// Clear drops every cached entry.
func (r *ContentRegistry) Clear(ctx context.Context) error {
	r.mu.Lock()
	r.scopes = make(map[string]map[int]struct{})
	r.mu.Unlock()

	if r.cache == nil {
		return nil
	}
	return r.cache.Clear(ctx)
}

func (r *ContentRegistry) lookup(ctx context.Context, key string) *content.Content {
	if r.cache == nil {
		return nil
	}
	value, err := r.cache.Get(ctx, key)
	if err != nil || value == nil {
		return nil
	}
	record, ok := value.(*content.Content)
	if !ok {
		r.logger.Warn("registry cache holds unexpected value", "key", key)
		return nil
	}
	return content.CloneContent(record)
}

func (r *ContentRegistry) store(ctx context.Context, key string, record *content.Content) {
	if r.cache == nil || record == nil {
		return
	}
	if err := r.cache.Set(ctx, key, content.CloneContent(record), r.ttl); err != nil {
		r.logger.Warn("registry cache store failed", "key", key, "error", err)
	}
}

func (r *ContentRegistry) rememberScope(identifier string, storeID int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	set, ok := r.scopes[identifier]
	if !ok {
		set = make(map[int]struct{})
		r.scopes[identifier] = set
	}
	set[storeID] = struct{}{}
}

func (r *ContentRegistry) takeScopes(identifier string) []int {
	r.mu.Lock()
	defer r.mu.Unlock()

	set := r.scopes[identifier]
	delete(r.scopes, identifier)

	scopes := make([]int, 0, len(set)+1)
	scopes = append(scopes, 0)
	for storeID := range set {
		if storeID != 0 {
			scopes = append(scopes, storeID)
		}
	}
	return scopes
}

func idKey(id uuid.UUID) string {
	return idKeyPrefix + id.String()
}

func identifierKey(identifier string, storeID int) string {
	return identifierKeyPrefix + identifier + ":store:" + strconv.Itoa(storeID)
}
