package content

import (
	"context"

	"github.com/goomento/pagebuilder/pkg/interfaces"
)

// SettingsStore adapts a SettingRepository to the interfaces.SettingsStore
// contract consumed by the CSS artifact layer.
type SettingsStore struct {
	repo SettingRepository
}

var _ interfaces.SettingsStore = (*SettingsStore)(nil)

// NewSettingsStore wraps the repository.
func NewSettingsStore(repo SettingRepository) *SettingsStore {
	return &SettingsStore{repo: repo}
}

// Get returns the value and whether the key exists.
func (s *SettingsStore) Get(ctx context.Context, key string) (string, bool, error) {
	record, err := s.repo.Get(ctx, key)
	if err != nil {
		if IsNotFound(err) {
			return "", false, nil
		}
		return "", false, err
	}
	return record.Value, true, nil
}

// Set writes the value under the key.
func (s *SettingsStore) Set(ctx context.Context, key, value string) error {
	_, err := s.repo.Set(ctx, key, value)
	return err
}

// Delete removes the key.
func (s *SettingsStore) Delete(ctx context.Context, key string) error {
	return s.repo.Delete(ctx, key)
}
