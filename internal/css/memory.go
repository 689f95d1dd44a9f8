package css

import (
	"context"
	"fmt"
	"sync"

	"github.com/goomento/pagebuilder/pkg/interfaces"
)

// MemoryFileStore keeps artifacts in a map, for scaffolding and tests.
type MemoryFileStore struct {
	mu    sync.RWMutex
	files map[string][]byte
	base  string
}

var _ interfaces.FileStore = (*MemoryFileStore)(nil)

// NewMemoryFileStore creates an empty store. baseURL prefixes URLFor results.
func NewMemoryFileStore(baseURL string) *MemoryFileStore {
	return &MemoryFileStore{
		files: make(map[string][]byte),
		base:  baseURL,
	}
}

func (s *MemoryFileStore) Write(_ context.Context, path string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := make([]byte, len(data))
	copy(copied, data)
	s.files[path] = copied
	return nil
}

func (s *MemoryFileStore) Read(_ context.Context, path string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok := s.files[path]
	if !ok {
		return nil, fmt.Errorf("css: artifact %s not found", path)
	}
	copied := make([]byte, len(data))
	copy(copied, data)
	return copied, nil
}

func (s *MemoryFileStore) Delete(_ context.Context, path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.files, path)
	return nil
}

func (s *MemoryFileStore) URLFor(path string) string {
	if s.base == "" {
		return path
	}
	return s.base + "/" + path
}

// Exists reports whether an artifact is stored, mainly for tests.
func (s *MemoryFileStore) Exists(path string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.files[path]
	return ok
}
