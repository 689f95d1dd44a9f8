package noop

import (
	"context"
	"time"

	"github.com/goomento/pagebuilder/pkg/interfaces"
	"github.com/google/uuid"
)

// Cache returns an interfaces.CacheProvider that does nothing.
func Cache() interfaces.CacheProvider {
	return cacheAdapter{}
}

type cacheAdapter struct{}

func (cacheAdapter) Get(context.Context, string) (any, error) {
	return nil, nil
}

func (cacheAdapter) Set(context.Context, string, any, time.Duration) error {
	return nil
}

func (cacheAdapter) Delete(context.Context, string) error {
	return nil
}

func (cacheAdapter) Clear(context.Context) error {
	return nil
}

// Auth returns an auth provider that allows everything. Hosts that need
// real authorization wire their own provider.
func Auth() interfaces.AuthProvider {
	return authAdapter{}
}

type authAdapter struct{}

func (authAdapter) CurrentUserID(context.Context) (string, error) {
	return uuid.Nil.String(), nil
}

func (authAdapter) HasPermission(context.Context, string) (bool, error) {
	return true, nil
}

// Files returns a file store that swallows writes and reports every path as
// missing. Useful when artifact generation is disabled.
func Files() interfaces.FileStore {
	return fileAdapter{}
}

type fileAdapter struct{}

func (fileAdapter) Write(context.Context, string, []byte) error {
	return nil
}

func (fileAdapter) Read(_ context.Context, path string) ([]byte, error) {
	return nil, &missingFileError{path: path}
}

func (fileAdapter) Delete(context.Context, string) error {
	return nil
}

func (fileAdapter) URLFor(path string) string {
	return path
}

type missingFileError struct {
	path string
}

func (e *missingFileError) Error() string {
	return "noop file store has no file " + e.path
}
