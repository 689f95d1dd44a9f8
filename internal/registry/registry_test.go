package registry_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/goomento/pagebuilder/internal/content"
	"github.com/goomento/pagebuilder/internal/domain"
	"github.com/goomento/pagebuilder/internal/elements"
	"github.com/goomento/pagebuilder/internal/registry"
	"github.com/google/uuid"
)

type mapCache struct {
	mu      sync.Mutex
	entries map[string]any
	sets    int
	deletes int
}

func newMapCache() *mapCache {
	return &mapCache{entries: map[string]any{}}
}

func (c *mapCache) Get(_ context.Context, key string) (any, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.entries[key], nil
}

func (c *mapCache) Set(_ context.Context, key string, value any, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = value
	c.sets++
	return nil
}

func (c *mapCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
	c.deletes++
	return nil
}

func (c *mapCache) Clear(_ context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = map[string]any{}
	return nil
}

type countingSource struct {
	byID    map[uuid.UUID]*content.Content
	byIdent map[string]*content.Content
	reads   int
}

func (s *countingSource) Get(_ context.Context, id uuid.UUID) (*content.Content, error) {
	s.reads++
	record, ok := s.byID[id]
	if !ok {
		return nil, &content.NotFoundError{Resource: "content", Key: id.String()}
	}
	return content.CloneContent(record), nil
}

func (s *countingSource) GetByIdentifier(_ context.Context, identifier string, _ int) (*content.Content, error) {
	s.reads++
	record, ok := s.byIdent[identifier]
	if !ok {
		return nil, &content.NotFoundError{Resource: "content", Key: identifier}
	}
	return content.CloneContent(record), nil
}

func testContent(title, identifier string) *content.Content {
	return &content.Content{
		ID:         uuid.New(),
		Type:       domain.TypePage,
		Status:     domain.StatusPublished,
		Title:      title,
		Identifier: identifier,
		Elements: elements.Nodes{
			{ID: "h1", Type: "heading", Settings: map[string]any{"title": title}},
		},
		IsActive: true,
	}
}

func TestRegistryReadThrough(t *testing.T) {
	record := testContent("Home", "home")
	source := &countingSource{
		byID:    map[uuid.UUID]*content.Content{record.ID: record},
		byIdent: map[string]*content.Content{"home": record},
	}
	cache := newMapCache()
	reg := registry.New(source, cache)
	ctx := context.Background()

	first, err := reg.GetByID(ctx, record.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	second, err := reg.GetByID(ctx, record.ID)
	if err != nil {
		t.Fatalf("cached get: %v", err)
	}

	if source.reads != 1 {
		t.Fatalf("expected one source read, got %d", source.reads)
	}
	if first.ID != second.ID || second.Title != "Home" {
		t.Fatal("cached read must return the same content")
	}
}

func TestRegistryCachedEntriesAreIsolated(t *testing.T) {
	record := testContent("Home", "home")
	source := &countingSource{byID: map[uuid.UUID]*content.Content{record.ID: record}}
	reg := registry.New(source, newMapCache())
	ctx := context.Background()

	fetched, err := reg.GetByID(ctx, record.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	fetched.Title = "Mutated"
	fetched.Elements[0].Settings["title"] = "Mutated"

	again, err := reg.GetByID(ctx, record.ID)
	if err != nil {
		t.Fatalf("second get: %v", err)
	}
	if again.Title != "Home" || again.Elements[0].Settings["title"] != "Home" {
		t.Fatal("caller mutations must not leak into the cache")
	}
}

func TestRegistryInvalidationRestoresCoherence(t *testing.T) {
	record := testContent("Home", "home")
	source := &countingSource{
		byID:    map[uuid.UUID]*content.Content{record.ID: record},
		byIdent: map[string]*content.Content{"home": record},
	}
	cache := newMapCache()
	reg := registry.New(source, cache)
	ctx := context.Background()

	if _, err := reg.GetByID(ctx, record.ID); err != nil {
		t.Fatalf("warm id key: %v", err)
	}
	if _, err := reg.GetByIdentifier(ctx, "home", 2); err != nil {
		t.Fatalf("warm identifier key: %v", err)
	}

	// Simulate the write path: mutate the source, then invalidate.
	updated := content.CloneContent(record)
	updated.Title = "Home v2"
	source.byID[record.ID] = updated
	source.byIdent["home"] = updated

	if err := reg.Invalidate(ctx, updated); err != nil {
		t.Fatalf("invalidate: %v", err)
	}

	byID, err := reg.GetByID(ctx, record.ID)
	if err != nil {
		t.Fatalf("get after invalidate: %v", err)
	}
	if byID.Title != "Home v2" {
		t.Fatalf("stale id entry served: %q", byID.Title)
	}

	byIdent, err := reg.GetByIdentifier(ctx, "home", 2)
	if err != nil {
		t.Fatalf("get by identifier after invalidate: %v", err)
	}
	if byIdent.Title != "Home v2" {
		t.Fatalf("stale identifier entry served for scoped store: %q", byIdent.Title)
	}
}

func TestRegistryWiredAsServiceInvalidator(t *testing.T) {
	contents := content.NewMemoryContentRepository()
	revisions := content.NewMemoryRevisionRepository()
	manager := content.NewRevisionManager(revisions)

	var reg *registry.ContentRegistry
	svc := content.NewService(contents, manager,
		content.WithInvalidator(invalidatorFunc(func(ctx context.Context, record *content.Content) error {
			return reg.Invalidate(ctx, record)
		})),
	)
	reg = registry.New(serviceSource{svc}, newMapCache())
	ctx := context.Background()

	created, err := svc.Save(ctx, content.SaveRequest{
		Type:   domain.TypePage,
		Title:  "Landing",
		Status: "published",
		Elements: elements.Nodes{
			{ID: "h1", Type: "heading", Settings: map[string]any{"title": "v1"}},
		},
	})
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	warm, err := reg.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("warm read: %v", err)
	}
	if warm.Elements[0].Settings["title"] != "v1" {
		t.Fatal("unexpected warm read payload")
	}

	if _, err := svc.Save(ctx, content.SaveRequest{
		ContentID: created.ID,
		Type:      domain.TypePage,
		Title:     "Landing",
		Status:    "published",
		Elements: elements.Nodes{
			{ID: "h1", Type: "heading", Settings: map[string]any{"title": "v2"}},
		},
	}); err != nil {
		t.Fatalf("update: %v", err)
	}

	fresh, err := reg.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("read after write: %v", err)
	}
	if fresh.Elements[0].Settings["title"] != "v2" {
		t.Fatal("read after write must observe the new payload")
	}
}

func TestRegistryRenameEvictsOldIdentifier(t *testing.T) {
	contents := content.NewMemoryContentRepository()
	revisions := content.NewMemoryRevisionRepository()
	manager := content.NewRevisionManager(revisions)

	var reg *registry.ContentRegistry
	svc := content.NewService(contents, manager,
		content.WithInvalidator(invalidatorFunc(func(ctx context.Context, record *content.Content) error {
			return reg.Invalidate(ctx, record)
		})),
	)
	reg = registry.New(serviceSource{svc}, newMapCache())
	ctx := context.Background()

	created, err := svc.Save(ctx, content.SaveRequest{
		Type:       domain.TypePage,
		Title:      "Landing",
		Identifier: "landing",
		Status:     "published",
		Elements: elements.Nodes{
			{ID: "h1", Type: "heading", Settings: map[string]any{"title": "v1"}},
		},
	})
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	warm, err := reg.GetByIdentifier(ctx, "landing", 1)
	if err != nil {
		t.Fatalf("warm read: %v", err)
	}
	if warm.ID != created.ID {
		t.Fatal("warm read resolved the wrong row")
	}

	if _, err := svc.Save(ctx, content.SaveRequest{
		ContentID:  created.ID,
		Type:       domain.TypePage,
		Title:      "Landing",
		Identifier: "spring-landing",
		Status:     "published",
		Elements: elements.Nodes{
			{ID: "h1", Type: "heading", Settings: map[string]any{"title": "v2"}},
		},
	}); err != nil {
		t.Fatalf("rename: %v", err)
	}

	if stale, err := reg.GetByIdentifier(ctx, "landing", 1); err == nil {
		t.Fatalf("old identifier must stop resolving after a rename, got %q", stale.Title)
	} else if !content.IsNotFound(err) {
		t.Fatalf("expected not found for the old identifier, got %v", err)
	}

	fresh, err := reg.GetByIdentifier(ctx, "spring-landing", 1)
	if err != nil {
		t.Fatalf("read after rename: %v", err)
	}
	if fresh.ID != created.ID {
		t.Fatal("renamed identifier must resolve the same row")
	}
}

func TestRegistryNormalizesIdentifierKeys(t *testing.T) {
	record := testContent("Spring Sale", "spring-sale")
	source := &countingSource{
		byID:    map[uuid.UUID]*content.Content{record.ID: record},
		byIdent: map[string]*content.Content{"spring-sale": record},
	}
	cache := newMapCache()
	reg := registry.New(source, cache)
	ctx := context.Background()

	// Lookups are keyed by the normalized identifier, whatever the caller
	// typed.
	if _, err := reg.GetByIdentifier(ctx, "Spring Sale", 0); err != nil {
		t.Fatalf("raw lookup: %v", err)
	}
	if _, err := reg.GetByIdentifier(ctx, "spring-sale", 0); err != nil {
		t.Fatalf("normalized lookup: %v", err)
	}
	if source.reads != 1 {
		t.Fatalf("both spellings must share one cache entry, got %d source reads", source.reads)
	}

	// Invalidating by record must evict the entry those lookups populated.
	if err := reg.Invalidate(ctx, record); err != nil {
		t.Fatalf("invalidate: %v", err)
	}
	if _, err := reg.GetByIdentifier(ctx, "Spring Sale", 0); err != nil {
		t.Fatalf("lookup after invalidate: %v", err)
	}
	if source.reads != 2 {
		t.Fatalf("invalidation must evict the normalized key, got %d source reads", source.reads)
	}
}

func TestRegistryNilCachePassThrough(t *testing.T) {
	record := testContent("Home", "home")
	source := &countingSource{byID: map[uuid.UUID]*content.Content{record.ID: record}}
	reg := registry.New(source, nil)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if _, err := reg.GetByID(ctx, record.ID); err != nil {
			t.Fatalf("get %d: %v", i, err)
		}
	}
	if source.reads != 3 {
		t.Fatalf("nil cache must pass through, got %d reads", source.reads)
	}
}

type invalidatorFunc func(ctx context.Context, record *content.Content) error

func (f invalidatorFunc) Invalidate(ctx context.Context, record *content.Content) error {
	return f(ctx, record)
}

type serviceSource struct {
	svc content.Service
}

func (s serviceSource) Get(ctx context.Context, id uuid.UUID) (*content.Content, error) {
	return s.svc.Get(ctx, id)
}

func (s serviceSource) GetByIdentifier(ctx context.Context, identifier string, storeID int) (*content.Content, error) {
	return s.svc.GetByIdentifier(ctx, identifier, storeID)
}
