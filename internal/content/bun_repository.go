package content

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-repository-bun"
	"github.com/goliatone/go-repository-cache/cache"
	repositorycache "github.com/goliatone/go-repository-cache/repositorycache"
	"github.com/goomento/pagebuilder/internal/identity"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// BunContentRepository implements ContentRepository over go-repository-bun
// with optional read-through caching.
type BunContentRepository struct {
	repo repository.Repository[*Content]
}

func NewBunContentRepository(db *bun.DB) *BunContentRepository {
	return NewBunContentRepositoryWithCache(db, nil, nil)
}

func NewBunContentRepositoryWithCache(db *bun.DB, cacheService cache.CacheService, keySerializer cache.KeySerializer) *BunContentRepository {
	base := NewContentRepository(db)
	wrapped := wrapWithCache(base, cacheService, keySerializer)
	return &BunContentRepository{repo: wrapped}
}

var contentUpdateColumns = []string{
	"type",
	"status",
	"title",
	"identifier",
	"store_ids",
	"elements",
	"settings",
	"last_editor_id",
	"is_active",
	"meta",
	"updated_at",
}

func (r *BunContentRepository) Create(ctx context.Context, record *Content) (*Content, error) {
	if tx, ok := txFrom(ctx); ok {
		if _, err := tx.NewInsert().Model(record).Exec(ctx); err != nil {
			return nil, mapRepositoryError(err, "content", record.ID.String())
		}
		return record, nil
	}

	created, err := r.repo.Create(ctx, record)
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (r *BunContentRepository) Update(ctx context.Context, record *Content) (*Content, error) {
	if tx, ok := txFrom(ctx); ok {
		res, err := tx.NewUpdate().Model(record).
			Column(contentUpdateColumns...).
			WherePK().
			Exec(ctx)
		if err != nil {
			return nil, mapRepositoryError(err, "content", record.ID.String())
		}
		if affected, _ := res.RowsAffected(); affected == 0 {
			return nil, &NotFoundError{Resource: "content", Key: record.ID.String()}
		}
		return record, nil
	}

	updated, err := r.repo.Update(ctx, record,
		repository.UpdateByID(record.ID.String()),
		repository.UpdateColumns(contentUpdateColumns...),
	)
	if err != nil {
		return nil, mapRepositoryError(err, "content", record.ID.String())
	}
	return updated, nil
}

func (r *BunContentRepository) GetByID(ctx context.Context, id uuid.UUID) (*Content, error) {
	record, err := r.repo.GetByID(ctx, id.String())
	if err != nil {
		return nil, mapRepositoryError(err, "content", id.String())
	}
	return record, nil
}

func (r *BunContentRepository) ListByIdentifier(ctx context.Context, identifier string) ([]*Content, error) {
	records, _, err := r.repo.List(ctx, repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("?TableAlias.identifier = ?", identifier)
	}))
	if err != nil {
		return nil, mapRepositoryError(err, "content", identifier)
	}
	return records, nil
}

func (r *BunContentRepository) List(ctx context.Context) ([]*Content, error) {
	records, _, err := r.repo.List(ctx)
	return records, err
}

func (r *BunContentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if tx, ok := txFrom(ctx); ok {
		if _, err := tx.NewDelete().Model(&Content{ID: id}).WherePK().Exec(ctx); err != nil {
			return mapRepositoryError(err, "content", id.String())
		}
		return nil
	}
	return r.repo.Delete(ctx, &Content{ID: id})
}

// BunRevisionRepository implements RevisionRepository with optional caching.
type BunRevisionRepository struct {
	repo repository.Repository[*Revision]
}

func NewBunRevisionRepository(db *bun.DB) *BunRevisionRepository {
	return NewBunRevisionRepositoryWithCache(db, nil, nil)
}

func NewBunRevisionRepositoryWithCache(db *bun.DB, cacheService cache.CacheService, keySerializer cache.KeySerializer) *BunRevisionRepository {
	base := NewRevisionRepository(db)
	wrapped := wrapWithCache(base, cacheService, keySerializer)
	return &BunRevisionRepository{repo: wrapped}
}

func (r *BunRevisionRepository) Create(ctx context.Context, record *Revision) (*Revision, error) {
	if tx, ok := txFrom(ctx); ok {
		if _, err := tx.NewInsert().Model(record).Exec(ctx); err != nil {
			return nil, mapRepositoryError(err, "revision", record.ID.String())
		}
		return record, nil
	}

	created, err := r.repo.Create(ctx, record)
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (r *BunRevisionRepository) GetByID(ctx context.Context, id uuid.UUID) (*Revision, error) {
	record, err := r.repo.GetByID(ctx, id.String())
	if err != nil {
		return nil, mapRepositoryError(err, "revision", id.String())
	}
	return record, nil
}

func (r *BunRevisionRepository) ListByContent(ctx context.Context, contentID uuid.UUID) ([]*Revision, error) {
	if tx, ok := txFrom(ctx); ok {
		var records []*Revision
		if err := tx.NewSelect().Model(&records).
			Where("?TableAlias.content_id = ?", contentID.String()).
			Scan(ctx); err != nil {
			return nil, mapRepositoryError(err, "revision", contentID.String())
		}
		return records, nil
	}

	records, _, err := r.repo.List(ctx, repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("?TableAlias.content_id = ?", contentID.String())
	}))
	if err != nil {
		return nil, mapRepositoryError(err, "revision", contentID.String())
	}
	return records, nil
}

func (r *BunRevisionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if tx, ok := txFrom(ctx); ok {
		if _, err := tx.NewDelete().Model(&Revision{ID: id}).WherePK().Exec(ctx); err != nil {
			return mapRepositoryError(err, "revision", id.String())
		}
		return nil
	}
	return r.repo.Delete(ctx, &Revision{ID: id})
}

func (r *BunRevisionRepository) DeleteByContent(ctx context.Context, contentID uuid.UUID) error {
	if tx, ok := txFrom(ctx); ok {
		if _, err := tx.NewDelete().Model((*Revision)(nil)).
			Where("?TableAlias.content_id = ?", contentID.String()).
			Exec(ctx); err != nil {
			return mapRepositoryError(err, "revision", contentID.String())
		}
		return nil
	}

	records, err := r.ListByContent(ctx, contentID)
	if err != nil {
		return err
	}
	for _, record := range records {
		if err := r.Delete(ctx, record.ID); err != nil {
			return err
		}
	}
	return nil
}

func (r *BunRevisionRepository) NextSeq(ctx context.Context, contentID uuid.UUID) (int64, error) {
	if tx, ok := txFrom(ctx); ok {
		last := new(Revision)
		err := tx.NewSelect().Model(last).
			Where("?TableAlias.content_id = ?", contentID.String()).
			Order("seq DESC").
			Limit(1).
			Scan(ctx)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return 1, nil
			}
			return 0, mapRepositoryError(err, "revision", contentID.String())
		}
		return last.Seq + 1, nil
	}

	records, _, err := r.repo.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("?TableAlias.content_id = ?", contentID.String()).
				Order("seq DESC")
		}),
		repository.SelectPaginate(1, 0),
	)
	if err != nil {
		return 0, mapRepositoryError(err, "revision", contentID.String())
	}
	if len(records) == 0 {
		return 1, nil
	}
	return records[0].Seq + 1, nil
}

// BunSettingRepository implements SettingRepository.
type BunSettingRepository struct {
	repo repository.Repository[*Setting]
}

func NewBunSettingRepository(db *bun.DB) *BunSettingRepository {
	return NewBunSettingRepositoryWithCache(db, nil, nil)
}

func NewBunSettingRepositoryWithCache(db *bun.DB, cacheService cache.CacheService, keySerializer cache.KeySerializer) *BunSettingRepository {
	base := NewSettingRepository(db)
	wrapped := wrapWithCache(base, cacheService, keySerializer)
	return &BunSettingRepository{repo: wrapped}
}

func (r *BunSettingRepository) Get(ctx context.Context, key string) (*Setting, error) {
	record, err := r.repo.GetByIdentifier(ctx, key)
	if err != nil {
		return nil, mapRepositoryError(err, "setting", key)
	}
	return record, nil
}

func (r *BunSettingRepository) Set(ctx context.Context, key, value string) (*Setting, error) {
	now := time.Now().UTC()

	existing, err := r.Get(ctx, key)
	if err != nil {
		if !IsNotFound(err) {
			return nil, err
		}
		created, createErr := r.repo.Create(ctx, &Setting{
			ID:        identity.SettingUUID(key),
			Key:       key,
			Value:     value,
			UpdatedAt: now,
		})
		if createErr != nil {
			return nil, mapRepositoryError(createErr, "setting", key)
		}
		return created, nil
	}

	existing.Value = value
	existing.UpdatedAt = now
	updated, err := r.repo.Update(ctx, existing,
		repository.UpdateByID(existing.ID.String()),
		repository.UpdateColumns("value", "updated_at"),
	)
	if err != nil {
		return nil, mapRepositoryError(err, "setting", key)
	}
	return updated, nil
}

func (r *BunSettingRepository) Delete(ctx context.Context, key string) error {
	existing, err := r.Get(ctx, key)
	if err != nil {
		if IsNotFound(err) {
			return nil
		}
		return err
	}
	return r.repo.Delete(ctx, existing)
}

// BunTransactor runs write paths inside a database transaction. The open
// bun.Tx travels in the context so every repository statement issued by the
// callback joins it; a failure rolls the whole operation back.
type BunTransactor struct {
	db *bun.DB
}

func NewBunTransactor(db *bun.DB) *BunTransactor {
	return &BunTransactor{db: db}
}

func (t *BunTransactor) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return t.db.RunInTx(ctx, nil, func(txCtx context.Context, tx bun.Tx) error {
		return fn(withTx(txCtx, tx))
	})
}

type txKey struct{}

func withTx(ctx context.Context, tx bun.Tx) context.Context {
	return context.WithValue(ctx, txKey{}, tx)
}

func txFrom(ctx context.Context) (bun.Tx, bool) {
	tx, ok := ctx.Value(txKey{}).(bun.Tx)
	return tx, ok
}

func mapRepositoryError(err error, resource, key string) error {
	if err == nil {
		return nil
	}
	if goerrors.IsCategory(err, repository.CategoryDatabaseNotFound) {
		return &NotFoundError{
			Resource: resource,
			Key:      key,
		}
	}
	return fmt.Errorf("%s repository error: %w", resource, err)
}

func wrapWithCache[T any](base repository.Repository[T], cacheService cache.CacheService, keySerializer cache.KeySerializer) repository.Repository[T] {
	if cacheService == nil || keySerializer == nil {
		return base
	}
	return repositorycache.New(base, cacheService, keySerializer)
}
