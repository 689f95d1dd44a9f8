package content

import (
	"context"
	"sync"
	"time"

	"github.com/goomento/pagebuilder/internal/identity"
	"github.com/google/uuid"
)

// MemoryContentRepository is an in-memory implementation for scaffolding and
// tests.
type MemoryContentRepository struct {
	mu       sync.RWMutex
	contents map[uuid.UUID]*Content
}

// NewMemoryContentRepository creates an empty in-memory content repository.
func NewMemoryContentRepository() *MemoryContentRepository {
	return &MemoryContentRepository{contents: make(map[uuid.UUID]*Content)}
}

// Create inserts the supplied content.
func (m *MemoryContentRepository) Create(_ context.Context, record *Content) (*Content, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	copied := CloneContent(record)
	m.contents[copied.ID] = copied
	return CloneContent(copied), nil
}

// Update replaces an existing canonical row.
func (m *MemoryContentRepository) Update(_ context.Context, record *Content) (*Content, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.contents[record.ID]; !ok {
		return nil, &NotFoundError{Resource: "content", Key: record.ID.String()}
	}
	copied := CloneContent(record)
	m.contents[copied.ID] = copied
	return CloneContent(copied), nil
}

// GetByID retrieves content by identifier.
func (m *MemoryContentRepository) GetByID(_ context.Context, id uuid.UUID) (*Content, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	record, ok := m.contents[id]
	if !ok {
		return nil, &NotFoundError{Resource: "content", Key: id.String()}
	}
	return CloneContent(record), nil
}

// ListByIdentifier returns every row carrying the identifier.
func (m *MemoryContentRepository) ListByIdentifier(_ context.Context, identifier string) ([]*Content, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := []*Content{}
	for _, record := range m.contents {
		if record.Identifier == identifier {
			out = append(out, CloneContent(record))
		}
	}
	return out, nil
}

// List returns all content entries.
func (m *MemoryContentRepository) List(_ context.Context) ([]*Content, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*Content, 0, len(m.contents))
	for _, record := range m.contents {
		out = append(out, CloneContent(record))
	}
	return out, nil
}

// Delete removes a canonical row.
func (m *MemoryContentRepository) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.contents[id]; !ok {
		return &NotFoundError{Resource: "content", Key: id.String()}
	}
	delete(m.contents, id)
	return nil
}

// MemoryRevisionRepository stores revision snapshots in-memory.
type MemoryRevisionRepository struct {
	mu        sync.RWMutex
	revisions map[uuid.UUID]*Revision
	seqs      map[uuid.UUID]int64
}

// NewMemoryRevisionRepository constructs the repository.
func NewMemoryRevisionRepository() *MemoryRevisionRepository {
	return &MemoryRevisionRepository{
		revisions: make(map[uuid.UUID]*Revision),
		seqs:      make(map[uuid.UUID]int64),
	}
}

// Create inserts a snapshot row.
func (m *MemoryRevisionRepository) Create(_ context.Context, record *Revision) (*Revision, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	copied := CloneRevision(record)
	m.revisions[copied.ID] = copied
	if copied.Seq > m.seqs[copied.ContentID] {
		m.seqs[copied.ContentID] = copied.Seq
	}
	return CloneRevision(copied), nil
}

// GetByID fetches a snapshot row.
func (m *MemoryRevisionRepository) GetByID(_ context.Context, id uuid.UUID) (*Revision, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	record, ok := m.revisions[id]
	if !ok {
		return nil, &NotFoundError{Resource: "revision", Key: id.String()}
	}
	return CloneRevision(record), nil
}

// ListByContent returns all revisions owned by the content, unordered.
func (m *MemoryRevisionRepository) ListByContent(_ context.Context, contentID uuid.UUID) ([]*Revision, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := []*Revision{}
	for _, record := range m.revisions {
		if record.ContentID == contentID {
			out = append(out, CloneRevision(record))
		}
	}
	return out, nil
}

// Delete removes one snapshot row.
func (m *MemoryRevisionRepository) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.revisions[id]; !ok {
		return &NotFoundError{Resource: "revision", Key: id.String()}
	}
	delete(m.revisions, id)
	return nil
}

// DeleteByContent removes every snapshot owned by the content.
func (m *MemoryRevisionRepository) DeleteByContent(_ context.Context, contentID uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for id, record := range m.revisions {
		if record.ContentID == contentID {
			delete(m.revisions, id)
		}
	}
	delete(m.seqs, contentID)
	return nil
}

// NextSeq returns the next monotonic sequence number for the content.
func (m *MemoryRevisionRepository) NextSeq(_ context.Context, contentID uuid.UUID) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	next := m.seqs[contentID] + 1
	m.seqs[contentID] = next
	return next, nil
}

// MemorySettingRepository stores key/value settings in-memory.
type MemorySettingRepository struct {
	mu       sync.RWMutex
	settings map[string]*Setting
}

// NewMemorySettingRepository constructs the repository.
func NewMemorySettingRepository() *MemorySettingRepository {
	return &MemorySettingRepository{settings: make(map[string]*Setting)}
}

// Get fetches a setting row by key.
func (m *MemorySettingRepository) Get(_ context.Context, key string) (*Setting, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	record, ok := m.settings[key]
	if !ok {
		return nil, &NotFoundError{Resource: "setting", Key: key}
	}
	copied := *record
	return &copied, nil
}

// Set inserts or replaces a setting row.
func (m *MemorySettingRepository) Set(_ context.Context, key, value string) (*Setting, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	record, ok := m.settings[key]
	if !ok {
		record = &Setting{ID: identity.SettingUUID(key), Key: key}
		m.settings[key] = record
	}
	record.Value = value
	record.UpdatedAt = time.Now().UTC()

	copied := *record
	return &copied, nil
}

// Delete removes a setting row; missing keys are a no-op.
func (m *MemorySettingRepository) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.settings, key)
	return nil
}
