package css

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goomento/pagebuilder/pkg/interfaces"
)

// FileSystemStore persists artifacts under a root directory and maps them
// onto public URLs through a resolver.
type FileSystemStore struct {
	Root string
	URLs URLResolver
}

var _ interfaces.FileStore = (*FileSystemStore)(nil)

// URLResolver maps a relative artifact path to a public URL.
type URLResolver interface {
	Resolve(path string) (string, error)
}

// NewFileSystemStore constructs a store rooted at dir. urls may be nil, in
// which case URLFor returns the relative path.
func NewFileSystemStore(dir string, urls URLResolver) *FileSystemStore {
	return &FileSystemStore{Root: dir, URLs: urls}
}

// Write stores data under the relative path, creating directories as needed.
func (s *FileSystemStore) Write(_ context.Context, path string, data []byte) error {
	full, err := s.cleanPath(path)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return fmt.Errorf("css: create artifact dir: %w", err)
	}
	if err := os.WriteFile(full, data, 0o644); err != nil {
		return fmt.Errorf("css: write artifact %s: %w", path, err)
	}
	return nil
}

// Read returns the stored bytes for the relative path.
func (s *FileSystemStore) Read(_ context.Context, path string) ([]byte, error) {
	full, err := s.cleanPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(full)
	if err != nil {
		return nil, fmt.Errorf("css: read artifact %s: %w", path, err)
	}
	return data, nil
}

// Delete removes the file; missing files are a no-op.
func (s *FileSystemStore) Delete(_ context.Context, path string) error {
	full, err := s.cleanPath(path)
	if err != nil {
		return err
	}
	if err := os.Remove(full); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("css: delete artifact %s: %w", path, err)
	}
	return nil
}

// URLFor resolves the public URL for the relative path.
func (s *FileSystemStore) URLFor(path string) string {
	if s.URLs == nil {
		return path
	}
	url, err := s.URLs.Resolve(path)
	if err != nil {
		return path
	}
	return url
}

func (s *FileSystemStore) cleanPath(path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return "", fmt.Errorf("css: artifact path required")
	}
	root := s.Root
	if strings.TrimSpace(root) == "" {
		root = "."
	}
	joined := filepath.Join(root, filepath.FromSlash(path))
	clean := filepath.Clean(joined)
	rootClean := filepath.Clean(root)
	if rootClean != "." && !strings.HasPrefix(clean, rootClean) {
		return "", fmt.Errorf("css: artifact traversal detected")
	}
	return clean, nil
}
