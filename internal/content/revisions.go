package content

import (
	"context"
	"sort"
	"time"

	"github.com/goomento/pagebuilder/internal/domain"
	"github.com/goomento/pagebuilder/internal/elements"
	"github.com/goomento/pagebuilder/internal/logging"
	"github.com/goomento/pagebuilder/pkg/interfaces"
	"github.com/google/uuid"
)

// DefaultRevisionRetention bounds how many revisions are kept per content
// when no explicit retention is configured.
const DefaultRevisionRetention = 100

// RevisionManager owns the revision history of content aggregates: snapshot
// capture, ordered listing, and retention pruning.
type RevisionManager struct {
	repo           RevisionRepository
	retention      int
	countAutosaves bool
	now            func() time.Time
	id             IDGenerator
	logger         interfaces.Logger
}

// RevisionOption configures the manager at construction time.
type RevisionOption func(*RevisionManager)

// WithRetention bounds the number of revisions kept per content. Zero or
// negative disables pruning.
func WithRetention(limit int) RevisionOption {
	return func(m *RevisionManager) {
		m.retention = limit
	}
}

// WithAutosavesCounted makes autosave rows count toward the retention bound.
// By default only revision-status rows do.
func WithAutosavesCounted(counted bool) RevisionOption {
	return func(m *RevisionManager) {
		m.countAutosaves = counted
	}
}

// WithRevisionClock overrides the snapshot timestamp source.
func WithRevisionClock(clock func() time.Time) RevisionOption {
	return func(m *RevisionManager) {
		if clock != nil {
			m.now = clock
		}
	}
}

// WithRevisionIDGenerator overrides uuid generation for snapshot rows.
func WithRevisionIDGenerator(generator IDGenerator) RevisionOption {
	return func(m *RevisionManager) {
		if generator != nil {
			m.id = generator
		}
	}
}

// WithRevisionLogger attaches a module logger.
func WithRevisionLogger(logger interfaces.Logger) RevisionOption {
	return func(m *RevisionManager) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// NewRevisionManager constructs a manager over the supplied repository.
func NewRevisionManager(repo RevisionRepository, opts ...RevisionOption) *RevisionManager {
	m := &RevisionManager{
		repo:      repo,
		retention: DefaultRevisionRetention,
		now:       time.Now,
		id:        uuid.New,
		logger:    logging.NoOp(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Create captures the supplied content state as a revision row carrying the
// given snapshot status. When the context carries a queued buffer the
// snapshot is deferred and coalesced until the buffer is flushed.
func (m *RevisionManager) Create(ctx context.Context, record *Content, status domain.Status, label *string) (*Revision, error) {
	if record == nil || record.ID == uuid.Nil {
		return nil, ErrContentIDRequired
	}
	if !domain.IsSnapshotStatus(status) {
		status = domain.MirrorStatus(status)
	}

	if queue := queueFrom(ctx); queue != nil {
		return queue.enqueue(record, status, label)
	}
	return m.persist(ctx, record, status, label)
}

func (m *RevisionManager) persist(ctx context.Context, record *Content, status domain.Status, label *string) (*Revision, error) {
	if status == domain.StatusAutosave {
		if err := m.replaceAutosave(ctx, record.ID, record.LastEditorID); err != nil {
			return nil, err
		}
	}

	seq, err := m.repo.NextSeq(ctx, record.ID)
	if err != nil {
		return nil, err
	}

	snapshot := &Revision{
		ID:        m.id(),
		ContentID: record.ID,
		Seq:       seq,
		Status:    status,
		Label:     label,
		Elements:  record.Elements.Clone(),
		Settings:  elements.CloneSettings(record.Settings),
		AuthorID:  record.LastEditorID,
		CreatedAt: m.now(),
	}
	if snapshot.AuthorID == uuid.Nil {
		snapshot.AuthorID = record.AuthorID
	}

	created, err := m.repo.Create(ctx, snapshot)
	if err != nil {
		return nil, err
	}

	if err := m.prune(ctx, record.ID); err != nil {
		// Retention overshoot is tolerable; the next snapshot retries.
		m.logger.Warn("revision prune failed", "content_id", record.ID, "error", err)
	}

	return created, nil
}

// replaceAutosave drops the previous autosave for the content+author pair so
// at most one is retained per editor.
func (m *RevisionManager) replaceAutosave(ctx context.Context, contentID, authorID uuid.UUID) error {
	existing, err := m.repo.ListByContent(ctx, contentID)
	if err != nil {
		return err
	}
	for _, rev := range existing {
		if rev.Status != domain.StatusAutosave {
			continue
		}
		if authorID != uuid.Nil && rev.AuthorID != authorID {
			continue
		}
		if err := m.repo.Delete(ctx, rev.ID); err != nil {
			return err
		}
	}
	return nil
}

// ListByContent returns the content's revision history newest-first, with
// optional status filtering and pagination.
func (m *RevisionManager) ListByContent(ctx context.Context, contentID uuid.UUID, opts ListRevisionsOptions) ([]*Revision, error) {
	if contentID == uuid.Nil {
		return nil, ErrContentIDRequired
	}

	records, err := m.repo.ListByContent(ctx, contentID)
	if err != nil {
		return nil, err
	}

	filtered := records[:0:0]
	for _, rev := range records {
		if opts.Status != "" && rev.Status != opts.Status {
			continue
		}
		filtered = append(filtered, rev)
	}

	sort.Slice(filtered, func(i, j int) bool {
		return filtered[i].Seq > filtered[j].Seq
	})

	if opts.Limit <= 0 {
		return filtered, nil
	}
	page := opts.Page
	if page < 1 {
		page = 1
	}
	start := (page - 1) * opts.Limit
	if start >= len(filtered) {
		return []*Revision{}, nil
	}
	end := start + opts.Limit
	if end > len(filtered) {
		end = len(filtered)
	}
	return filtered[start:end], nil
}

// GetLast returns the most recent revision for the content, or a
// NotFoundError when history is empty.
func (m *RevisionManager) GetLast(ctx context.Context, contentID uuid.UUID) (*Revision, error) {
	records, err := m.ListByContent(ctx, contentID, ListRevisionsOptions{Limit: 1})
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, &NotFoundError{Resource: "revision", Key: contentID.String()}
	}
	return records[0], nil
}

// Get fetches a single revision by id.
func (m *RevisionManager) Get(ctx context.Context, id uuid.UUID) (*Revision, error) {
	return m.repo.GetByID(ctx, id)
}

// DeleteByContent removes the content's entire history.
func (m *RevisionManager) DeleteByContent(ctx context.Context, contentID uuid.UUID) error {
	return m.repo.DeleteByContent(ctx, contentID)
}

// prune deletes the oldest countable revisions beyond the retention bound.
// Autosaves are exempt unless configured to count.
func (m *RevisionManager) prune(ctx context.Context, contentID uuid.UUID) error {
	if m.retention <= 0 {
		return nil
	}

	records, err := m.repo.ListByContent(ctx, contentID)
	if err != nil {
		return err
	}

	countable := records[:0:0]
	for _, rev := range records {
		if rev.Status == domain.StatusAutosave && !m.countAutosaves {
			continue
		}
		countable = append(countable, rev)
	}
	if len(countable) <= m.retention {
		return nil
	}

	// Oldest-first so the newest R survive.
	sort.Slice(countable, func(i, j int) bool {
		return countable[i].Seq < countable[j].Seq
	})
	for _, rev := range countable[:len(countable)-m.retention] {
		if err := m.repo.Delete(ctx, rev.ID); err != nil {
			return err
		}
	}
	return nil
}
