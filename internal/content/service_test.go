package content_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/goomento/pagebuilder/internal/content"
	"github.com/goomento/pagebuilder/internal/domain"
	"github.com/goomento/pagebuilder/internal/elements"
	"github.com/google/uuid"
)

type fixture struct {
	svc         content.Service
	contents    *content.MemoryContentRepository
	revisions   *content.MemoryRevisionRepository
	manager     *content.RevisionManager
	invalidator *recordingInvalidator
	css         *recordingRefresher
}

type recordingInvalidator struct {
	invalidated []uuid.UUID
}

func (r *recordingInvalidator) Invalidate(_ context.Context, record *content.Content) error {
	r.invalidated = append(r.invalidated, record.ID)
	return nil
}

type recordingRefresher struct {
	refreshed []uuid.UUID
	removed   []uuid.UUID
	fail      bool
}

func (r *recordingRefresher) Refresh(_ context.Context, record *content.Content) error {
	if r.fail {
		return errors.New("compile blew up")
	}
	r.refreshed = append(r.refreshed, record.ID)
	return nil
}

func (r *recordingRefresher) Remove(_ context.Context, record *content.Content) error {
	r.removed = append(r.removed, record.ID)
	return nil
}

type staticAuth struct {
	allow bool
}

func (a staticAuth) CurrentUserID(context.Context) (string, error) {
	return uuid.Nil.String(), nil
}

func (a staticAuth) HasPermission(context.Context, string) (bool, error) {
	return a.allow, nil
}

func newFixture(t *testing.T, opts ...content.ServiceOption) *fixture {
	t.Helper()

	contents := content.NewMemoryContentRepository()
	revisions := content.NewMemoryRevisionRepository()
	manager := content.NewRevisionManager(revisions)
	invalidator := &recordingInvalidator{}
	css := &recordingRefresher{}

	base := []content.ServiceOption{
		content.WithInvalidator(invalidator),
		content.WithCssRefresher(css),
		content.WithClock(func() time.Time {
			return time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
		}),
	}
	svc := content.NewService(contents, manager, append(base, opts...)...)

	return &fixture{
		svc:         svc,
		contents:    contents,
		revisions:   revisions,
		manager:     manager,
		invalidator: invalidator,
		css:         css,
	}
}

func pageRequest(title string) content.SaveRequest {
	return content.SaveRequest{
		Type:   domain.TypePage,
		Title:  title,
		Status: "pending",
		Elements: elements.Nodes{
			{ID: "s1", Type: "section", Children: elements.Nodes{
				{ID: "h1", Type: "heading", Settings: map[string]any{"title": "Hello", "color": "#111"}},
			}},
		},
		Settings: map[string]any{"background_color": "#fff"},
		AuthorID: uuid.New(),
	}
}

func TestServiceBuildReturnsTransientAggregate(t *testing.T) {
	f := newFixture(t)

	record, err := f.svc.Build(context.Background(), content.BuildRequest{
		Type:  domain.TypePage,
		Title: "Landing Page",
	})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if !record.IsTransient() {
		t.Fatal("built content must not carry an id before save")
	}
	if record.Status != domain.StatusPending {
		t.Fatalf("expected pending status got %s", record.Status)
	}
	if record.Identifier != "landing-page" {
		t.Fatalf("expected derived identifier, got %q", record.Identifier)
	}

	if all, _ := f.contents.List(context.Background()); len(all) != 0 {
		t.Fatal("build must not persist anything")
	}
}

func TestServiceSaveFirstSaveTakesNoSnapshot(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.svc.Save(ctx, pageRequest("About"))
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if created.ID == uuid.Nil {
		t.Fatal("expected persisted id")
	}

	history, err := f.manager.ListByContent(ctx, created.ID, content.ListRevisionsOptions{})
	if err != nil {
		t.Fatalf("list revisions: %v", err)
	}
	if len(history) != 0 {
		t.Fatalf("first save must not snapshot, got %d revisions", len(history))
	}
}

func TestServiceSaveSnapshotsPreviousState(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	req := pageRequest("About")
	created, err := f.svc.Save(ctx, req)
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	update := req
	update.ContentID = created.ID
	update.Status = "published"
	update.Elements = elements.Nodes{
		{ID: "s1", Type: "section", Children: elements.Nodes{
			{ID: "h1", Type: "heading", Settings: map[string]any{"title": "Changed", "color": "#222"}},
		}},
	}

	updated, err := f.svc.Save(ctx, update)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Status != domain.StatusPublished {
		t.Fatalf("expected published got %s", updated.Status)
	}

	history, err := f.manager.ListByContent(ctx, created.ID, content.ListRevisionsOptions{})
	if err != nil {
		t.Fatalf("list revisions: %v", err)
	}
	if len(history) != 1 {
		t.Fatalf("expected exactly one snapshot, got %d", len(history))
	}

	snapshot := history[0]
	if snapshot.Status != domain.StatusPending {
		t.Fatalf("snapshot must mirror the pre-save status, got %s", snapshot.Status)
	}
	if snapshot.RevisionHash() != created.RevisionHash() {
		t.Fatal("snapshot must capture the pre-save payload")
	}
	if snapshot.RevisionHash() == updated.RevisionHash() {
		t.Fatal("snapshot must not capture the incoming payload")
	}
}

func TestServiceSaveIdempotent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	req := pageRequest("About")
	created, err := f.svc.Save(ctx, req)
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	again := req
	again.ContentID = created.ID

	repeat, err := f.svc.Save(ctx, again)
	if err != nil {
		t.Fatalf("repeat save: %v", err)
	}
	if !repeat.UpdatedAt.Equal(created.UpdatedAt) {
		t.Fatal("identical save must not touch the canonical row")
	}

	history, _ := f.manager.ListByContent(ctx, created.ID, content.ListRevisionsOptions{})
	if len(history) != 0 {
		t.Fatalf("identical save must not snapshot, got %d revisions", len(history))
	}
}

func TestServiceSavePromotionWithIdenticalPayloadSkipsSnapshot(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	req := pageRequest("About")
	created, err := f.svc.Save(ctx, req)
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	promote := req
	promote.ContentID = created.ID
	promote.Status = "published"

	published, err := f.svc.Save(ctx, promote)
	if err != nil {
		t.Fatalf("promote: %v", err)
	}
	if published.Status != domain.StatusPublished {
		t.Fatalf("expected published got %s", published.Status)
	}

	history, err := f.manager.ListByContent(ctx, created.ID, content.ListRevisionsOptions{})
	if err != nil {
		t.Fatalf("list revisions: %v", err)
	}
	if len(history) != 0 {
		t.Fatalf("status-only promotion must not mint a revision, got %d", len(history))
	}
}

func TestServiceSaveAutosaveLeavesCanonicalUntouched(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	req := pageRequest("About")
	created, err := f.svc.Save(ctx, req)
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	auto := req
	auto.ContentID = created.ID
	auto.Status = "autosave"
	auto.Elements = elements.Nodes{{ID: "x1", Type: "text", Settings: map[string]any{"content": "wip"}}}

	result, err := f.svc.Save(ctx, auto)
	if err != nil {
		t.Fatalf("autosave: %v", err)
	}
	if result.RevisionHash() != created.RevisionHash() {
		t.Fatal("autosave must not overwrite the canonical payload")
	}

	stored, err := f.contents.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if stored.Status != domain.StatusPending {
		t.Fatalf("canonical status must survive autosave, got %s", stored.Status)
	}

	history, _ := f.manager.ListByContent(ctx, created.ID, content.ListRevisionsOptions{Status: domain.StatusAutosave})
	if len(history) != 1 {
		t.Fatalf("expected one autosave row, got %d", len(history))
	}
	if history[0].RevisionHash() == created.RevisionHash() {
		t.Fatal("autosave must capture the incoming editor state")
	}
}

func TestServiceSaveRejectsSnapshotForUnknownContent(t *testing.T) {
	f := newFixture(t)

	req := pageRequest("Orphan")
	req.Status = "autosave"

	if _, err := f.svc.Save(context.Background(), req); !errors.Is(err, content.ErrStatusTransition) {
		t.Fatalf("expected ErrStatusTransition got %v", err)
	}
}

func TestServiceSaveVersioningDisabled(t *testing.T) {
	f := newFixture(t, content.WithVersioningEnabled(false))
	ctx := context.Background()

	created, err := f.svc.Save(ctx, pageRequest("About"))
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	auto := pageRequest("About")
	auto.ContentID = created.ID
	auto.Status = "autosave"
	if _, err := f.svc.Save(ctx, auto); !errors.Is(err, content.ErrVersioningDisabled) {
		t.Fatalf("expected ErrVersioningDisabled got %v", err)
	}

	update := pageRequest("About")
	update.ContentID = created.ID
	update.Status = "published"
	if _, err := f.svc.Save(ctx, update); err != nil {
		t.Fatalf("overwrite with versioning off: %v", err)
	}

	history, _ := f.manager.ListByContent(ctx, created.ID, content.ListRevisionsOptions{})
	if len(history) != 0 {
		t.Fatal("versioning off must suppress snapshots")
	}
}

func TestServiceSaveInvalidatesRegistryAndRefreshesCss(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.svc.Save(ctx, pageRequest("About"))
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	if len(f.invalidator.invalidated) != 1 || f.invalidator.invalidated[0] != created.ID {
		t.Fatalf("expected one invalidation for %s, got %v", created.ID, f.invalidator.invalidated)
	}
	if len(f.css.refreshed) != 1 || f.css.refreshed[0] != created.ID {
		t.Fatalf("expected one css refresh for %s, got %v", created.ID, f.css.refreshed)
	}
}

func TestServiceSaveSurvivesCssFailure(t *testing.T) {
	f := newFixture(t)
	f.css.fail = true

	created, err := f.svc.Save(context.Background(), pageRequest("About"))
	if err != nil {
		t.Fatalf("save must not fail on css refresh errors: %v", err)
	}
	if created.ID == uuid.Nil {
		t.Fatal("expected persisted content")
	}
}

func TestServiceSavePermissionDenied(t *testing.T) {
	f := newFixture(t, content.WithAuth(staticAuth{allow: false}))

	if _, err := f.svc.Save(context.Background(), pageRequest("About")); !errors.Is(err, content.ErrPermissionDenied) {
		t.Fatalf("expected ErrPermissionDenied got %v", err)
	}
}

func TestServiceSaveIdentifierConflict(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	first := pageRequest("Pricing")
	first.Status = "published"
	first.StoreIDs = []int{1}
	if _, err := f.svc.Save(ctx, first); err != nil {
		t.Fatalf("save first: %v", err)
	}

	conflicting := pageRequest("Pricing")
	conflicting.Status = "published"
	conflicting.StoreIDs = []int{1, 2}
	conflicting.Elements = elements.Nodes{{ID: "z1", Type: "text"}}
	if _, err := f.svc.Save(ctx, conflicting); !errors.Is(err, content.ErrIdentifierExists) {
		t.Fatalf("expected ErrIdentifierExists got %v", err)
	}

	disjoint := pageRequest("Pricing")
	disjoint.Status = "published"
	disjoint.StoreIDs = []int{3}
	disjoint.Elements = elements.Nodes{{ID: "z2", Type: "text"}}
	if _, err := f.svc.Save(ctx, disjoint); err != nil {
		t.Fatalf("disjoint store scope must not conflict: %v", err)
	}
}

func TestServiceGetByIdentifierPublishedOnly(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	draft := pageRequest("Hidden Page")
	if _, err := f.svc.Save(ctx, draft); err != nil {
		t.Fatalf("save: %v", err)
	}

	if _, err := f.svc.GetByIdentifier(ctx, "hidden-page", 0); !content.IsNotFound(err) {
		t.Fatalf("pending content must not resolve publicly, got %v", err)
	}

	published := pageRequest("Public Page")
	published.Status = "published"
	record, err := f.svc.Save(ctx, published)
	if err != nil {
		t.Fatalf("save published: %v", err)
	}

	resolved, err := f.svc.GetByIdentifier(ctx, "public-page", 0)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if resolved.ID != record.ID {
		t.Fatalf("expected %s got %s", record.ID, resolved.ID)
	}
}

func TestServiceDeleteCascades(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	req := pageRequest("Doomed")
	created, err := f.svc.Save(ctx, req)
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	update := req
	update.ContentID = created.ID
	update.Elements = elements.Nodes{{ID: "n1", Type: "text"}}
	if _, err := f.svc.Save(ctx, update); err != nil {
		t.Fatalf("update: %v", err)
	}

	if err := f.svc.Delete(ctx, created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	if _, err := f.svc.Get(ctx, created.ID); !content.IsNotFound(err) {
		t.Fatalf("expected content gone, got %v", err)
	}
	history, err := f.revisions.ListByContent(ctx, created.ID)
	if err != nil {
		t.Fatalf("list revisions: %v", err)
	}
	if len(history) != 0 {
		t.Fatalf("expected revisions cascade-deleted, got %d", len(history))
	}
	if len(f.css.removed) != 1 || f.css.removed[0] != created.ID {
		t.Fatalf("expected artifact removal for %s, got %v", created.ID, f.css.removed)
	}
	if len(f.invalidator.invalidated) == 0 {
		t.Fatal("delete must invalidate the registry")
	}
}

func TestServiceLastRevisionMemoized(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	req := pageRequest("History")
	created, err := f.svc.Save(ctx, req)
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	update := req
	update.ContentID = created.ID
	update.Elements = elements.Nodes{{ID: "n1", Type: "text"}}
	updated, err := f.svc.Save(ctx, update)
	if err != nil {
		t.Fatalf("update: %v", err)
	}

	last, err := f.svc.LastRevision(ctx, updated)
	if err != nil {
		t.Fatalf("last revision: %v", err)
	}
	if last.ContentID != created.ID {
		t.Fatalf("unexpected revision owner %s", last.ContentID)
	}

	again, err := f.svc.LastRevision(ctx, updated)
	if err != nil {
		t.Fatalf("second lookup: %v", err)
	}
	if again != last {
		t.Fatal("expected memoized revision instance")
	}
}
