package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	pagebuilder "github.com/goomento/pagebuilder"
	"github.com/goomento/pagebuilder/internal/content"
	"github.com/goomento/pagebuilder/internal/domain"
	"github.com/goomento/pagebuilder/internal/elements"
	"github.com/google/uuid"
)

func main() {
	ctx := context.Background()

	cfg := pagebuilder.DefaultConfig()
	cfg.Retention.Revisions = 5
	cfg.Css.CustomCSS = ".site-footer { color: #888; }"

	sources := pagebuilder.NewSourceRegistry()
	if err := sources.Register("starter-landing", pagebuilder.StaticSource{Doc: starterLanding()}); err != nil {
		log.Fatalf("register source: %v", err)
	}

	module, err := pagebuilder.New(cfg, pagebuilder.WithLibrarySources(sources))
	if err != nil {
		log.Fatalf("initialise pagebuilder: %v", err)
	}
	defer module.Close()

	svc := module.Content()
	authorID := uuid.MustParse("aaaaaaaa-aaaa-aaaa-aaaa-aaaaaaaaaaaa")

	record, err := svc.BuildFromSource(ctx, "starter-landing", authorID)
	if err != nil {
		log.Fatalf("build from source: %v", err)
	}
	fmt.Printf("created %s %q as %s\n", record.Type, record.Title, record.Status)

	// Edit and publish; every save snapshots the prior state.
	record.Elements[0].Children[0].Settings["title"] = "Welcome back"
	published, err := svc.Save(ctx, content.SaveRequest{
		ContentID:  record.ID,
		Type:       record.Type,
		Title:      record.Title,
		Identifier: "landing",
		Status:     string(domain.StatusPublished),
		Elements:   record.Elements,
		Settings:   record.Settings,
		AuthorID:   authorID,
	})
	if err != nil {
		log.Fatalf("publish: %v", err)
	}
	fmt.Printf("published %q at %s\n", published.Identifier, published.UpdatedAt.Format("15:04:05"))

	history, err := module.Revisions().ListByContent(ctx, published.ID, content.ListRevisionsOptions{})
	if err != nil {
		log.Fatalf("list revisions: %v", err)
	}
	fmt.Printf("history holds %d snapshot(s)\n", len(history))

	// Public reads go through the cache-coherent registry.
	resolved, err := module.Registry().GetByIdentifier(ctx, "landing", 0)
	if err != nil {
		log.Fatalf("resolve: %v", err)
	}
	fmt.Printf("registry resolved %q\n", resolved.Title)

	if css := module.Css(); css != nil {
		compiled, err := css.Content(ctx, published)
		if err != nil {
			log.Fatalf("compile css: %v", err)
		}
		fmt.Printf("css artifact bytes=%d url=%q\n", len(compiled), css.URLFor(ctx, published))
	}

	doc, err := svc.Export(ctx, published.ID)
	if err != nil {
		log.Fatalf("export: %v", err)
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		log.Fatalf("encode document: %v", err)
	}
}

func starterLanding() pagebuilder.Document {
	return pagebuilder.Document{
		Version: content.DocumentVersion,
		Type:    string(domain.TypePage),
		Title:   "Landing",
		Elements: elements.Nodes{
			{ID: "s1", Type: "section", Settings: map[string]any{"background_color": "#f5f5f5"}, Children: elements.Nodes{
				{ID: "h1", Type: "heading", Settings: map[string]any{"title": "Welcome", "color": "#123456"}},
				{ID: "t1", Type: "text", Settings: map[string]any{"content": "Build pages visually."}},
			}},
		},
	}
}
