package content

import (
	"time"

	"github.com/google/uuid"
	"github.com/goomento/pagebuilder/internal/domain"
	"github.com/goomento/pagebuilder/internal/elements"
	"github.com/goomento/pagebuilder/internal/identity"
	"github.com/uptrace/bun"
)

// BuildableContent is the behavioural contract shared by canonical Content
// rows and Revision snapshots: everything the style compiler and artifact
// layer need without caring which side of the history they are looking at.
type BuildableContent interface {
	GetID() uuid.UUID
	ContentType() domain.ContentType
	GetStatus() domain.Status
	GetElements() elements.Nodes
	GetSettings() map[string]any
	// UniqueIdentity is deterministic for a given id and distinct between a
	// Content and its Revisions; it namespaces generated CSS selectors.
	UniqueIdentity() string
	// RevisionHash fingerprints elements+settings; equal hashes mean a save
	// would be a no-op.
	RevisionHash() string
}

// ContentMeta carries SEO metadata for a canonical content entry.
type ContentMeta struct {
	Title       string `json:"title,omitempty"`
	Keywords    string `json:"keywords,omitempty"`
	Description string `json:"description,omitempty"`
}

// Content is the canonical, addressable buildable content row.
type Content struct {
	bun.BaseModel `bun:"table:pagebuilder_contents,alias:pc"`

	ID           uuid.UUID          `bun:",pk,type:uuid"                      json:"id"`
	Type         domain.ContentType `bun:"type,notnull"                       json:"type"`
	Status       domain.Status      `bun:"status,notnull,default:'pending'"   json:"status"`
	Title        string             `bun:"title,notnull"                      json:"title"`
	Identifier   string             `bun:"identifier,notnull"                 json:"identifier"`
	StoreIDs     []int              `bun:"store_ids,type:jsonb"               json:"store_ids"`
	Elements     elements.Nodes     `bun:"elements,type:jsonb"                json:"elements"`
	Settings     map[string]any     `bun:"settings,type:jsonb"                json:"settings,omitempty"`
	AuthorID     uuid.UUID          `bun:"author_id,type:uuid"                json:"author_id"`
	LastEditorID uuid.UUID          `bun:"last_editor_id,type:uuid"           json:"last_editor_id"`
	IsActive     bool               `bun:"is_active,notnull,default:true"     json:"is_active"`
	Meta         ContentMeta        `bun:"meta,type:jsonb"                    json:"meta"`
	CreatedAt    time.Time          `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt    time.Time          `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`

	Revisions []*Revision `bun:"rel:has-many,join:id=content_id" json:"revisions,omitempty"`

	lastRevision *Revision
}

var _ BuildableContent = (*Content)(nil)

func (c *Content) GetID() uuid.UUID                { return c.ID }
func (c *Content) ContentType() domain.ContentType { return c.Type }
func (c *Content) GetStatus() domain.Status        { return c.Status }
func (c *Content) GetElements() elements.Nodes     { return c.Elements }
func (c *Content) GetSettings() map[string]any     { return c.Settings }

// UniqueIdentity namespaces CSS selectors for this canonical row.
func (c *Content) UniqueIdentity() string {
	return identity.ContentIdentity(c.ID)
}

// RevisionHash fingerprints the current elements and settings.
func (c *Content) RevisionHash() string {
	return elements.Fingerprint(c.Elements, c.Settings)
}

// IsTransient reports whether the content has never been persisted.
func (c *Content) IsTransient() bool {
	return c.ID == uuid.Nil
}

// HasStore reports whether the content is scoped to the given store. Store 0
// on the row means "all stores"; store 0 as an argument matches any scoping.
func (c *Content) HasStore(storeID int) bool {
	if storeID == 0 || len(c.StoreIDs) == 0 {
		return true
	}
	for _, id := range c.StoreIDs {
		if id == 0 || id == storeID {
			return true
		}
	}
	return false
}

// IsPubliclyResolvable reports whether the content may be served publicly
// for a store scope.
func (c *Content) IsPubliclyResolvable(storeID int) bool {
	return c.Status == domain.StatusPublished && c.IsActive && c.HasStore(storeID)
}

// Revision is an immutable snapshot of a content's elements and settings at
// a point in time.
type Revision struct {
	bun.BaseModel `bun:"table:pagebuilder_revisions,alias:pr"`

	ID        uuid.UUID      `bun:",pk,type:uuid"                     json:"id"`
	ContentID uuid.UUID      `bun:"content_id,notnull,type:uuid"      json:"content_id"`
	Seq       int64          `bun:"seq,notnull"                       json:"seq"`
	Status    domain.Status  `bun:"status,notnull,default:'revision'" json:"status"`
	Label     *string        `bun:"label"                             json:"label,omitempty"`
	Elements  elements.Nodes `bun:"elements,type:jsonb"               json:"elements"`
	Settings  map[string]any `bun:"settings,type:jsonb"               json:"settings,omitempty"`
	AuthorID  uuid.UUID      `bun:"author_id,type:uuid"               json:"author_id"`
	CreatedAt time.Time      `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`

	Content *Content `bun:"rel:belongs-to,join:content_id=id" json:"content,omitempty"`
}

var _ BuildableContent = (*Revision)(nil)

func (r *Revision) GetID() uuid.UUID                { return r.ID }
func (r *Revision) ContentType() domain.ContentType { return domain.TypeRevision }
func (r *Revision) GetStatus() domain.Status        { return r.Status }
func (r *Revision) GetElements() elements.Nodes     { return r.Elements }
func (r *Revision) GetSettings() map[string]any     { return r.Settings }

// UniqueIdentity namespaces CSS selectors for this snapshot, distinct from
// the owning content's identity.
func (r *Revision) UniqueIdentity() string {
	return identity.RevisionIdentity(r.ID)
}

// RevisionHash fingerprints the snapshotted elements and settings.
func (r *Revision) RevisionHash() string {
	return elements.Fingerprint(r.Elements, r.Settings)
}

// Setting is one key/value configuration row; artifact metadata and global
// style settings live here so they can be queried without touching artifact
// files.
type Setting struct {
	bun.BaseModel `bun:"table:pagebuilder_settings,alias:ps"`

	ID        uuid.UUID `bun:",pk,type:uuid"      json:"id"`
	Key       string    `bun:"key,notnull,unique" json:"key"`
	Value     string    `bun:"value"              json:"value"`
	UpdatedAt time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`
}

// CloneContent deep-copies a content row, detaching elements and settings
// from the source so snapshot rows stay immutable.
func CloneContent(src *Content) *Content {
	if src == nil {
		return nil
	}
	copied := *src
	copied.StoreIDs = append([]int(nil), src.StoreIDs...)
	copied.Elements = src.Elements.Clone()
	copied.Settings = elements.CloneSettings(src.Settings)
	copied.Revisions = nil
	copied.lastRevision = nil
	return &copied
}

// CloneRevision deep-copies a revision row.
func CloneRevision(src *Revision) *Revision {
	if src == nil {
		return nil
	}
	copied := *src
	copied.Elements = src.Elements.Clone()
	copied.Settings = elements.CloneSettings(src.Settings)
	copied.Content = nil
	if src.Label != nil {
		label := *src.Label
		copied.Label = &label
	}
	return &copied
}
