package content

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
)

// SourceProvider yields the starter document behind a named library source.
type SourceProvider interface {
	Document(ctx context.Context) (*Document, error)
}

// StaticSource is a SourceProvider backed by a fixed document, the common
// case for built-in library templates.
type StaticSource struct {
	Doc Document
}

// Document implements SourceProvider.
func (s StaticSource) Document(context.Context) (*Document, error) {
	doc := s.Doc
	doc.Elements = doc.Elements.Clone()
	return &doc, nil
}

// SourceRegistry maps library source names onto providers of starter content.
// It is constructed once at startup and injected into the service; lookups of
// unregistered names fail with ErrSourceNotFound.
type SourceRegistry struct {
	mu      sync.RWMutex
	sources map[string]SourceProvider
}

// NewSourceRegistry constructs an empty registry.
func NewSourceRegistry() *SourceRegistry {
	return &SourceRegistry{
		sources: make(map[string]SourceProvider),
	}
}

// Register adds a named source. Empty names and nil providers are rejected.
func (r *SourceRegistry) Register(name string, provider SourceProvider) error {
	key := sourceKey(name)
	if key == "" || provider == nil {
		return fmt.Errorf("content: source registration requires a name and provider")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.sources == nil {
		r.sources = make(map[string]SourceProvider)
	}
	r.sources[key] = provider
	return nil
}

// Resolve returns the provider registered under name.
func (r *SourceRegistry) Resolve(name string) (SourceProvider, error) {
	if r == nil {
		return nil, fmt.Errorf("%w: %s", ErrSourceNotFound, sourceKey(name))
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	provider, ok := r.sources[sourceKey(name)]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSourceNotFound, sourceKey(name))
	}
	return provider, nil
}

// Names lists the registered source names, sorted.
func (r *SourceRegistry) Names() []string {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.sources))
	for name := range r.sources {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

func sourceKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
