package migrations

import (
	"context"
	"fmt"

	"github.com/goomento/pagebuilder/internal/content"
	"github.com/uptrace/bun"
)

// Models lists every bun model the module persists, in creation order.
func Models() []any {
	return []any{
		(*content.Content)(nil),
		(*content.Revision)(nil),
		(*content.Setting)(nil),
	}
}

type indexSpec struct {
	name    string
	model   any
	columns []string
}

var indexes = []indexSpec{
	{name: "idx_pagebuilder_contents_identifier", model: (*content.Content)(nil), columns: []string{"identifier"}},
	{name: "idx_pagebuilder_revisions_content_seq", model: (*content.Revision)(nil), columns: []string{"content_id", "seq"}},
	{name: "idx_pagebuilder_settings_key", model: (*content.Setting)(nil), columns: []string{"key"}},
}

// Migrate creates the pagebuilder tables and indexes when missing. It is
// idempotent, so hosts can run it on every startup.
func Migrate(ctx context.Context, db *bun.DB) error {
	for _, model := range Models() {
		if _, err := db.NewCreateTable().Model(model).IfNotExists().Exec(ctx); err != nil {
			return fmt.Errorf("migrations: create table %T: %w", model, err)
		}
	}
	for _, idx := range indexes {
		if _, err := db.NewCreateIndex().Model(idx.model).Index(idx.name).Column(idx.columns...).IfNotExists().Exec(ctx); err != nil {
			return fmt.Errorf("migrations: create index %s: %w", idx.name, err)
		}
	}
	return nil
}

// Reset drops and recreates the pagebuilder tables. Intended for tests and
// disposable environments only.
func Reset(ctx context.Context, db *bun.DB) error {
	models := Models()
	for i := len(models) - 1; i >= 0; i-- {
		if _, err := db.NewDropTable().Model(models[i]).IfExists().Exec(ctx); err != nil {
			return fmt.Errorf("migrations: drop table %T: %w", models[i], err)
		}
	}
	return Migrate(ctx, db)
}
