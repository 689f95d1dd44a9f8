package content_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/goomento/pagebuilder/internal/content"
	"github.com/goomento/pagebuilder/internal/domain"
	"github.com/goomento/pagebuilder/internal/elements"
	"github.com/google/uuid"
)

func snapshotSource(id uuid.UUID, marker string) *content.Content {
	return &content.Content{
		ID:     id,
		Type:   domain.TypePage,
		Status: domain.StatusPending,
		Title:  "Versioned",
		Elements: elements.Nodes{
			{ID: "h1", Type: "heading", Settings: map[string]any{"title": marker}},
		},
		AuthorID: uuid.New(),
	}
}

func TestRevisionRetentionBound(t *testing.T) {
	repo := content.NewMemoryRevisionRepository()
	manager := content.NewRevisionManager(repo, content.WithRetention(3))
	ctx := context.Background()
	contentID := uuid.New()

	for i := 0; i < 5; i++ {
		source := snapshotSource(contentID, fmt.Sprintf("v%d", i))
		if _, err := manager.Create(ctx, source, domain.StatusRevision, nil); err != nil {
			t.Fatalf("create %d: %v", i, err)
		}
	}

	history, err := manager.ListByContent(ctx, contentID, content.ListRevisionsOptions{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(history) != 3 {
		t.Fatalf("expected retention of 3, got %d", len(history))
	}
	// Newest first; the two oldest snapshots were pruned.
	for i, want := range []string{"v4", "v3", "v2"} {
		got := history[i].Elements[0].Settings["title"]
		if got != want {
			t.Fatalf("position %d: expected %s got %v", i, want, got)
		}
	}
}

func TestRevisionAutosavesExemptFromRetention(t *testing.T) {
	repo := content.NewMemoryRevisionRepository()
	manager := content.NewRevisionManager(repo, content.WithRetention(2))
	ctx := context.Background()
	contentID := uuid.New()

	auto := snapshotSource(contentID, "wip")
	if _, err := manager.Create(ctx, auto, domain.StatusAutosave, nil); err != nil {
		t.Fatalf("autosave: %v", err)
	}
	for i := 0; i < 3; i++ {
		if _, err := manager.Create(ctx, snapshotSource(contentID, fmt.Sprintf("v%d", i)), domain.StatusRevision, nil); err != nil {
			t.Fatalf("create %d: %v", i, err)
		}
	}

	all, _ := manager.ListByContent(ctx, contentID, content.ListRevisionsOptions{})
	autosaves, _ := manager.ListByContent(ctx, contentID, content.ListRevisionsOptions{Status: domain.StatusAutosave})

	if len(autosaves) != 1 {
		t.Fatalf("autosave must survive pruning, got %d", len(autosaves))
	}
	if len(all) != 3 {
		t.Fatalf("expected 2 revisions + 1 autosave, got %d", len(all))
	}
}

func TestRevisionAutosavesCountedWhenConfigured(t *testing.T) {
	repo := content.NewMemoryRevisionRepository()
	manager := content.NewRevisionManager(repo,
		content.WithRetention(2),
		content.WithAutosavesCounted(true),
	)
	ctx := context.Background()
	contentID := uuid.New()
	author := uuid.New()

	auto := snapshotSource(contentID, "wip")
	auto.LastEditorID = author
	if _, err := manager.Create(ctx, auto, domain.StatusAutosave, nil); err != nil {
		t.Fatalf("autosave: %v", err)
	}
	for i := 0; i < 2; i++ {
		if _, err := manager.Create(ctx, snapshotSource(contentID, fmt.Sprintf("v%d", i)), domain.StatusRevision, nil); err != nil {
			t.Fatalf("create %d: %v", i, err)
		}
	}

	all, _ := manager.ListByContent(ctx, contentID, content.ListRevisionsOptions{})
	if len(all) != 2 {
		t.Fatalf("expected autosave to count toward retention, got %d rows", len(all))
	}
}

func TestRevisionAutosaveReplacedPerAuthor(t *testing.T) {
	repo := content.NewMemoryRevisionRepository()
	manager := content.NewRevisionManager(repo)
	ctx := context.Background()
	contentID := uuid.New()

	alice := uuid.New()
	bob := uuid.New()

	first := snapshotSource(contentID, "alice-1")
	first.LastEditorID = alice
	if _, err := manager.Create(ctx, first, domain.StatusAutosave, nil); err != nil {
		t.Fatalf("first autosave: %v", err)
	}

	other := snapshotSource(contentID, "bob-1")
	other.LastEditorID = bob
	if _, err := manager.Create(ctx, other, domain.StatusAutosave, nil); err != nil {
		t.Fatalf("bob autosave: %v", err)
	}

	second := snapshotSource(contentID, "alice-2")
	second.LastEditorID = alice
	if _, err := manager.Create(ctx, second, domain.StatusAutosave, nil); err != nil {
		t.Fatalf("second autosave: %v", err)
	}

	autosaves, _ := manager.ListByContent(ctx, contentID, content.ListRevisionsOptions{Status: domain.StatusAutosave})
	if len(autosaves) != 2 {
		t.Fatalf("expected one autosave per author, got %d", len(autosaves))
	}
	markers := map[any]bool{}
	for _, rev := range autosaves {
		markers[rev.Elements[0].Settings["title"]] = true
	}
	if !markers["alice-2"] || !markers["bob-1"] || markers["alice-1"] {
		t.Fatalf("unexpected surviving autosaves: %v", markers)
	}
}

func TestRevisionListFilterAndPaging(t *testing.T) {
	repo := content.NewMemoryRevisionRepository()
	manager := content.NewRevisionManager(repo)
	ctx := context.Background()
	contentID := uuid.New()

	for i := 0; i < 5; i++ {
		if _, err := manager.Create(ctx, snapshotSource(contentID, fmt.Sprintf("v%d", i)), domain.StatusRevision, nil); err != nil {
			t.Fatalf("create %d: %v", i, err)
		}
	}

	page1, err := manager.ListByContent(ctx, contentID, content.ListRevisionsOptions{Limit: 2, Page: 1})
	if err != nil {
		t.Fatalf("page 1: %v", err)
	}
	page2, err := manager.ListByContent(ctx, contentID, content.ListRevisionsOptions{Limit: 2, Page: 2})
	if err != nil {
		t.Fatalf("page 2: %v", err)
	}

	if len(page1) != 2 || len(page2) != 2 {
		t.Fatalf("expected 2+2 rows, got %d+%d", len(page1), len(page2))
	}
	if page1[0].Seq <= page1[1].Seq || page1[1].Seq <= page2[0].Seq {
		t.Fatal("expected strictly newest-first ordering across pages")
	}

	beyond, err := manager.ListByContent(ctx, contentID, content.ListRevisionsOptions{Limit: 2, Page: 9})
	if err != nil {
		t.Fatalf("page 9: %v", err)
	}
	if len(beyond) != 0 {
		t.Fatalf("expected empty page beyond history, got %d", len(beyond))
	}
}

func TestRevisionGetLast(t *testing.T) {
	repo := content.NewMemoryRevisionRepository()
	manager := content.NewRevisionManager(repo)
	ctx := context.Background()
	contentID := uuid.New()

	if _, err := manager.GetLast(ctx, contentID); !content.IsNotFound(err) {
		t.Fatalf("expected not found on empty history, got %v", err)
	}

	for i := 0; i < 3; i++ {
		if _, err := manager.Create(ctx, snapshotSource(contentID, fmt.Sprintf("v%d", i)), domain.StatusRevision, nil); err != nil {
			t.Fatalf("create %d: %v", i, err)
		}
	}

	last, err := manager.GetLast(ctx, contentID)
	if err != nil {
		t.Fatalf("get last: %v", err)
	}
	if got := last.Elements[0].Settings["title"]; got != "v2" {
		t.Fatalf("expected newest snapshot, got %v", got)
	}
}

func TestRevisionSnapshotsAreImmutableCopies(t *testing.T) {
	repo := content.NewMemoryRevisionRepository()
	manager := content.NewRevisionManager(repo)
	ctx := context.Background()

	source := snapshotSource(uuid.New(), "original")
	created, err := manager.Create(ctx, source, domain.StatusRevision, nil)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	// Mutating the source after the snapshot must not leak into history.
	source.Elements[0].Settings["title"] = "mutated"

	stored, err := manager.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got := stored.Elements[0].Settings["title"]; got != "original" {
		t.Fatalf("snapshot mutated through the source aggregate: %v", got)
	}
}
