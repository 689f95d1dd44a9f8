package content

import (
	"context"
	"strings"
	"time"

	"github.com/goliatone/go-slug"
	"github.com/goomento/pagebuilder/internal/domain"
	"github.com/goomento/pagebuilder/internal/elements"
	"github.com/goomento/pagebuilder/internal/logging"
	"github.com/goomento/pagebuilder/pkg/activity"
	"github.com/goomento/pagebuilder/pkg/interfaces"
	"github.com/google/uuid"
)

const (
	PermissionSave   = "pagebuilder:save"
	PermissionDelete = "pagebuilder:delete"

	activityChannel    = "pagebuilder"
	activityObjectType = "pagebuilder_content"
)

// service implements Service.
type service struct {
	contents          ContentRepository
	revisions         *RevisionManager
	machine           StateMachine
	tx                Transactor
	auth              interfaces.AuthProvider
	invalidator       Invalidator
	css               CssRefresher
	activity          ActivityHook
	sources           *SourceRegistry
	logger            interfaces.Logger
	now               func() time.Time
	id                IDGenerator
	versioningEnabled bool
}

// NewService constructs the content management service.
func NewService(contents ContentRepository, revisions *RevisionManager, opts ...ServiceOption) Service {
	s := &service{
		contents:          contents,
		revisions:         revisions,
		tx:                NoopTransactor{},
		activity:          activity.NoOp{},
		logger:            logging.NoOp(),
		now:               time.Now,
		id:                uuid.New,
		versioningEnabled: true,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Build assembles a transient content aggregate. Nothing touches storage
// until the aggregate is saved.
func (s *service) Build(_ context.Context, req BuildRequest) (*Content, error) {
	if !domain.IsCanonicalType(req.Type) {
		return nil, ErrTypeInvalid
	}
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, ErrTitleRequired
	}
	identifier, err := deriveIdentifier(req.Identifier, title)
	if err != nil {
		return nil, err
	}

	now := s.now()
	return &Content{
		Type:       req.Type,
		Status:     domain.StatusPending,
		Title:      title,
		Identifier: identifier,
		StoreIDs:   append([]int(nil), req.StoreIDs...),
		Elements:   req.Elements.Clone(),
		Settings:   elements.CloneSettings(req.Settings),
		AuthorID:   req.AuthorID,
		IsActive:   true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}, nil
}

// BuildFromSource materialises a registered library source as new pending
// content owned by authorID. Element ids are regenerated so repeated builds
// never collide.
func (s *service) BuildFromSource(ctx context.Context, source string, authorID uuid.UUID) (*Content, error) {
	provider, err := s.sources.Resolve(source)
	if err != nil {
		return nil, err
	}
	doc, err := provider.Document(ctx)
	if err != nil {
		return nil, err
	}
	return s.Import(ctx, *doc, authorID)
}

// Save runs the orchestrated write path: authorize, classify via the state
// machine, snapshot the pre-save state, persist the canonical row, then
// refresh caches and derived CSS.
func (s *service) Save(ctx context.Context, req SaveRequest) (*Content, error) {
	if err := s.authorize(ctx, PermissionSave); err != nil {
		return nil, err
	}
	if !domain.IsCanonicalType(req.Type) {
		return nil, ErrTypeInvalid
	}
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, ErrTitleRequired
	}

	status := domain.NormalizeStatus(req.Status)
	if !domain.IsValidStatus(status) {
		return nil, ErrStatusInvalid
	}

	var current *Content
	if req.ContentID != uuid.Nil {
		record, err := s.contents.GetByID(ctx, req.ContentID)
		if err != nil {
			return nil, err
		}
		current = record
	}

	incomingHash := elements.Fingerprint(req.Elements, req.Settings)
	action, err := s.machine.Decide(current, status, incomingHash)
	if err != nil {
		return nil, err
	}

	switch action {
	case ActionNoop:
		s.logger.Debug("save skipped, payload unchanged", "content_id", current.ID)
		return current, nil
	case ActionSnapshotOnly:
		return s.saveSnapshot(ctx, current, req, status)
	case ActionCreate:
		return s.saveCreate(ctx, req, status, title)
	default:
		return s.saveOverwrite(ctx, current, req, status, title, incomingHash)
	}
}

// saveSnapshot records an autosave/revision of the incoming editor state and
// leaves the canonical row untouched.
func (s *service) saveSnapshot(ctx context.Context, current *Content, req SaveRequest, status domain.Status) (*Content, error) {
	if !s.versioningEnabled {
		return nil, ErrVersioningDisabled
	}

	capture := CloneContent(current)
	capture.Elements = req.Elements.Clone()
	capture.Settings = elements.CloneSettings(req.Settings)
	if req.AuthorID != uuid.Nil {
		capture.LastEditorID = req.AuthorID
	}

	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		queuedCtx, flush := s.revisions.BeginQueued(txCtx)
		if _, err := s.revisions.Create(queuedCtx, capture, status, req.Label); err != nil {
			return err
		}
		return flush(txCtx)
	})
	if err != nil {
		return nil, err
	}

	s.emit(ctx, string(status), req.AuthorID, current.ID, map[string]any{
		"content_status": string(current.Status),
	})
	return current, nil
}

func (s *service) saveCreate(ctx context.Context, req SaveRequest, status domain.Status, title string) (*Content, error) {
	identifier, err := deriveIdentifier(req.Identifier, title)
	if err != nil {
		return nil, err
	}
	if err := s.ensureIdentifierAvailable(ctx, identifier, req.StoreIDs, status, uuid.Nil); err != nil {
		return nil, err
	}

	now := s.now()
	record := &Content{
		ID:           s.id(),
		Type:         req.Type,
		Status:       status,
		Title:        title,
		Identifier:   identifier,
		StoreIDs:     append([]int(nil), req.StoreIDs...),
		Elements:     req.Elements.Clone(),
		Settings:     elements.CloneSettings(req.Settings),
		AuthorID:     req.AuthorID,
		LastEditorID: req.AuthorID,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if req.Meta != nil {
		record.Meta = *req.Meta
	}

	var created *Content
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		persisted, err := s.contents.Create(txCtx, record)
		if err != nil {
			return err
		}
		created = persisted
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.finishWrite(ctx, created, nil)
	s.emit(ctx, "create", req.AuthorID, created.ID, map[string]any{
		"status": string(created.Status),
		"type":   string(created.Type),
	})
	return created, nil
}

// saveOverwrite snapshots the current canonical state when the payload
// differs, then replaces it with the incoming payload inside the same
// transaction. Status-only promotions overwrite without minting a revision.
func (s *service) saveOverwrite(ctx context.Context, current *Content, req SaveRequest, status domain.Status, title string, incomingHash string) (*Content, error) {
	identifier, err := deriveIdentifier(req.Identifier, title)
	if err != nil {
		return nil, err
	}
	if err := s.ensureIdentifierAvailable(ctx, identifier, req.StoreIDs, status, current.ID); err != nil {
		return nil, err
	}

	updated := CloneContent(current)
	updated.Type = req.Type
	updated.Status = status
	updated.Title = title
	updated.Identifier = identifier
	updated.StoreIDs = append([]int(nil), req.StoreIDs...)
	updated.Elements = req.Elements.Clone()
	updated.Settings = elements.CloneSettings(req.Settings)
	updated.UpdatedAt = s.now()
	if req.AuthorID != uuid.Nil {
		updated.LastEditorID = req.AuthorID
	}
	if req.Meta != nil {
		updated.Meta = *req.Meta
	}

	var persisted *Content
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		queuedCtx, flush := s.revisions.BeginQueued(txCtx)
		if s.versioningEnabled && current.RevisionHash() != incomingHash {
			if _, err := s.revisions.Create(queuedCtx, current, current.Status, req.Label); err != nil {
				return err
			}
		}
		record, err := s.contents.Update(queuedCtx, updated)
		if err != nil {
			return err
		}
		persisted = record
		return flush(txCtx)
	})
	if err != nil {
		return nil, err
	}

	s.finishWrite(ctx, persisted, current)
	s.emit(ctx, "save", req.AuthorID, persisted.ID, map[string]any{
		"status":          string(persisted.Status),
		"previous_status": string(current.Status),
	})
	return persisted, nil
}

// finishWrite runs the post-commit fan-out: synchronous cache invalidation,
// then a graceful CSS refresh that never fails the save. previous carries the
// pre-save row so entries cached under a renamed identifier get evicted too.
func (s *service) finishWrite(ctx context.Context, record, previous *Content) {
	if s.invalidator != nil {
		if previous != nil && previous.Identifier != record.Identifier {
			if err := s.invalidator.Invalidate(ctx, previous); err != nil {
				s.logger.Error("registry invalidation failed", "content_id", previous.ID, "error", err)
			}
		}
		if err := s.invalidator.Invalidate(ctx, record); err != nil {
			s.logger.Error("registry invalidation failed", "content_id", record.ID, "error", err)
		}
	}
	if s.css != nil {
		if err := s.css.Refresh(ctx, record); err != nil {
			s.logger.Warn("css refresh failed, artifact will be rebuilt lazily", "content_id", record.ID, "error", err)
		}
	}
}

// Get fetches canonical content by id.
func (s *service) Get(ctx context.Context, id uuid.UUID) (*Content, error) {
	if id == uuid.Nil {
		return nil, ErrContentIDRequired
	}
	return s.contents.GetByID(ctx, id)
}

// GetByIdentifier resolves published content by identifier within a store
// scope. Non-published matches stay invisible.
func (s *service) GetByIdentifier(ctx context.Context, identifier string, storeID int) (*Content, error) {
	normalized, err := slug.Normalize(identifier)
	if err != nil || normalized == "" {
		return nil, ErrIdentifierInvalid
	}

	records, err := s.contents.ListByIdentifier(ctx, normalized)
	if err != nil {
		return nil, err
	}
	for _, record := range records {
		if record.IsPubliclyResolvable(storeID) {
			return record, nil
		}
	}
	return nil, &NotFoundError{Resource: "content", Key: normalized}
}

// List returns all canonical content rows.
func (s *service) List(ctx context.Context) ([]*Content, error) {
	return s.contents.List(ctx)
}

// LastRevision returns the newest revision of the aggregate, memoizing it on
// the record for repeated reads within a request.
func (s *service) LastRevision(ctx context.Context, record *Content) (*Revision, error) {
	if record == nil || record.ID == uuid.Nil {
		return nil, ErrContentIDRequired
	}
	if record.lastRevision != nil {
		return record.lastRevision, nil
	}
	rev, err := s.revisions.GetLast(ctx, record.ID)
	if err != nil {
		return nil, err
	}
	record.lastRevision = rev
	return rev, nil
}

// Delete removes the canonical row, its entire revision history, and every
// derived artifact and cache entry.
func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.authorize(ctx, PermissionDelete); err != nil {
		return err
	}
	if id == uuid.Nil {
		return ErrContentIDRequired
	}

	record, err := s.contents.GetByID(ctx, id)
	if err != nil {
		return err
	}

	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.revisions.DeleteByContent(txCtx, id); err != nil {
			return err
		}
		return s.contents.Delete(txCtx, id)
	})
	if err != nil {
		return err
	}

	if s.invalidator != nil {
		if err := s.invalidator.Invalidate(ctx, record); err != nil {
			s.logger.Error("registry invalidation failed", "content_id", id, "error", err)
		}
	}
	if s.css != nil {
		if err := s.css.Remove(ctx, record); err != nil {
			s.logger.Warn("css artifact removal failed", "content_id", id, "error", err)
		}
	}

	s.emit(ctx, "delete", record.LastEditorID, id, map[string]any{
		"type": string(record.Type),
	})
	return nil
}

func (s *service) authorize(ctx context.Context, permission string) error {
	if s.auth == nil {
		return nil
	}
	allowed, err := s.auth.HasPermission(ctx, permission)
	if err != nil {
		return err
	}
	if !allowed {
		return ErrPermissionDenied
	}
	return nil
}

// ensureIdentifierAvailable rejects a published save whose identifier is
// already claimed by other published content with an overlapping store scope.
func (s *service) ensureIdentifierAvailable(ctx context.Context, identifier string, storeIDs []int, status domain.Status, selfID uuid.UUID) error {
	if status != domain.StatusPublished {
		return nil
	}

	records, err := s.contents.ListByIdentifier(ctx, identifier)
	if err != nil {
		return err
	}
	for _, record := range records {
		if record.ID == selfID || record.Status != domain.StatusPublished {
			continue
		}
		if storesOverlap(record.StoreIDs, storeIDs) {
			return ErrIdentifierExists
		}
	}
	return nil
}

func (s *service) emit(ctx context.Context, verb string, actorID, objectID uuid.UUID, metadata map[string]any) {
	event := activity.Event{
		Verb:           verb,
		ActorID:        actorID.String(),
		UserID:         actorID.String(),
		ObjectType:     activityObjectType,
		ObjectID:       objectID.String(),
		Channel:        activityChannel,
		DefinitionCode: "content:" + verb,
		Metadata:       metadata,
		OccurredAt:     s.now(),
	}
	if err := s.activity.Notify(ctx, event); err != nil {
		s.logger.Warn("activity hook failed", "verb", verb, "content_id", objectID, "error", err)
	}
}

func deriveIdentifier(identifier, title string) (string, error) {
	source := strings.TrimSpace(identifier)
	if source == "" {
		source = title
	}
	normalized, err := slug.Normalize(source)
	if err != nil || normalized == "" {
		return "", ErrIdentifierInvalid
	}
	return normalized, nil
}

// storesOverlap reports whether two store scopes share at least one store.
// An empty scope or one containing store 0 means "all stores".
func storesOverlap(a, b []int) bool {
	if allStores(a) || allStores(b) {
		return true
	}
	seen := make(map[int]struct{}, len(a))
	for _, id := range a {
		seen[id] = struct{}{}
	}
	for _, id := range b {
		if _, ok := seen[id]; ok {
			return true
		}
	}
	return false
}

func allStores(ids []int) bool {
	if len(ids) == 0 {
		return true
	}
	for _, id := range ids {
		if id == 0 {
			return true
		}
	}
	return false
}
