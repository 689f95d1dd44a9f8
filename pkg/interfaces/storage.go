package interfaces

import "context"

// FileStore persists generated assets (CSS artifacts). Implementations map
// relative paths onto a media directory, an object store, or a test
// in-memory map.
type FileStore interface {
	Write(ctx context.Context, path string, data []byte) error
	Read(ctx context.Context, path string) ([]byte, error)
	Delete(ctx context.Context, path string) error
	URLFor(path string) string
}

// SettingsStore is a key/value configuration store used for artifact
// metadata and global style settings. Missing keys return ("", false, nil).
type SettingsStore interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}
