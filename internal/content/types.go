package content

import (
	"context"
	"time"

	"github.com/goomento/pagebuilder/internal/domain"
	"github.com/goomento/pagebuilder/internal/elements"
	"github.com/goomento/pagebuilder/pkg/activity"
	"github.com/goomento/pagebuilder/pkg/interfaces"
	"github.com/google/uuid"
)

// ActivityHook receives audit events after mutations commit.
type ActivityHook = activity.Hook

// Service exposes buildable content management use-cases.
type Service interface {
	Build(ctx context.Context, req BuildRequest) (*Content, error)
	BuildFromSource(ctx context.Context, source string, authorID uuid.UUID) (*Content, error)
	Save(ctx context.Context, req SaveRequest) (*Content, error)
	Get(ctx context.Context, id uuid.UUID) (*Content, error)
	GetByIdentifier(ctx context.Context, identifier string, storeID int) (*Content, error)
	List(ctx context.Context) ([]*Content, error)
	LastRevision(ctx context.Context, record *Content) (*Revision, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Export(ctx context.Context, id uuid.UUID) (*Document, error)
	Import(ctx context.Context, doc Document, authorID uuid.UUID) (*Content, error)
	ImportJSON(ctx context.Context, payload []byte, authorID uuid.UUID) (*Content, error)
}

// BuildRequest captures the information required to assemble a transient
// content aggregate. Nothing is persisted until Save.
type BuildRequest struct {
	Type       domain.ContentType
	Title      string
	Identifier string
	StoreIDs   []int
	Elements   elements.Nodes
	Settings   map[string]any
	AuthorID   uuid.UUID
}

// SaveRequest captures a full editor payload. A nil ContentID creates a new
// canonical row; otherwise the existing row is overwritten after its current
// state is snapshotted.
type SaveRequest struct {
	ContentID  uuid.UUID
	Type       domain.ContentType
	Title      string
	Identifier string
	Status     string
	StoreIDs   []int
	Elements   elements.Nodes
	Settings   map[string]any
	Meta       *ContentMeta
	AuthorID   uuid.UUID
	// Label annotates the revision snapshot taken by this save, when any.
	Label *string
}

// ListRevisionsOptions filters and pages revision history queries. Results
// are always newest-first.
type ListRevisionsOptions struct {
	Status domain.Status
	Limit  int
	Page   int
}

// ContentRepository abstracts storage operations for canonical content rows.
type ContentRepository interface {
	Create(ctx context.Context, record *Content) (*Content, error)
	Update(ctx context.Context, record *Content) (*Content, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Content, error)
	// ListByIdentifier returns every canonical row carrying the identifier,
	// regardless of store scope or status.
	ListByIdentifier(ctx context.Context, identifier string) ([]*Content, error)
	List(ctx context.Context) ([]*Content, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// RevisionRepository abstracts storage operations for revision snapshots.
type RevisionRepository interface {
	Create(ctx context.Context, record *Revision) (*Revision, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Revision, error)
	ListByContent(ctx context.Context, contentID uuid.UUID) ([]*Revision, error)
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByContent(ctx context.Context, contentID uuid.UUID) error
	NextSeq(ctx context.Context, contentID uuid.UUID) (int64, error)
}

// SettingRepository abstracts the key/value configuration rows.
type SettingRepository interface {
	Get(ctx context.Context, key string) (*Setting, error)
	Set(ctx context.Context, key, value string) (*Setting, error)
	Delete(ctx context.Context, key string) error
}

// Transactor runs a function inside a storage transaction. The context passed
// to fn must be used for every repository call that should join the
// transaction.
type Transactor interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// NoopTransactor satisfies Transactor without transactional semantics; the
// in-memory repositories rely on it.
type NoopTransactor struct{}

func (NoopTransactor) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// Invalidator evicts registry cache entries for a content row. Implemented by
// the content registry; declared here so the write path does not import it.
type Invalidator interface {
	Invalidate(ctx context.Context, record *Content) error
}

// CssRefresher recompiles or removes the CSS artifact derived from a content
// row. Failures must not abort the originating write.
type CssRefresher interface {
	Refresh(ctx context.Context, record *Content) error
	Remove(ctx context.Context, record *Content) error
}

// IDGenerator mints entity identifiers.
type IDGenerator func() uuid.UUID

// ServiceOption configures the service at construction time.
type ServiceOption func(*service)

// WithClock overrides the clock used to stamp records.
func WithClock(clock func() time.Time) ServiceOption {
	return func(s *service) {
		if clock != nil {
			s.now = clock
		}
	}
}

// WithIDGenerator overrides uuid generation, mainly for tests.
func WithIDGenerator(generator IDGenerator) ServiceOption {
	return func(s *service) {
		if generator != nil {
			s.id = generator
		}
	}
}

// WithLogger attaches a module logger to the service.
func WithLogger(logger interfaces.Logger) ServiceOption {
	return func(s *service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithAuth installs the permission gate consulted before every mutation.
func WithAuth(auth interfaces.AuthProvider) ServiceOption {
	return func(s *service) {
		s.auth = auth
	}
}

// WithTransactor overrides the transaction runner.
func WithTransactor(tx Transactor) ServiceOption {
	return func(s *service) {
		if tx != nil {
			s.tx = tx
		}
	}
}

// WithInvalidator registers the registry eviction hook invoked after commits.
func WithInvalidator(invalidator Invalidator) ServiceOption {
	return func(s *service) {
		s.invalidator = invalidator
	}
}

// WithCssRefresher registers the artifact refresh hook invoked after commits.
func WithCssRefresher(refresher CssRefresher) ServiceOption {
	return func(s *service) {
		s.css = refresher
	}
}

// WithActivityHook registers the audit event hook.
func WithActivityHook(hook ActivityHook) ServiceOption {
	return func(s *service) {
		if hook != nil {
			s.activity = hook
		}
	}
}

// WithSources installs the library source registry consumed by
// BuildFromSource.
func WithSources(sources *SourceRegistry) ServiceOption {
	return func(s *service) {
		s.sources = sources
	}
}

// WithVersioningEnabled toggles revision capture on the save path.
func WithVersioningEnabled(enabled bool) ServiceOption {
	return func(s *service) {
		s.versioningEnabled = enabled
	}
}
