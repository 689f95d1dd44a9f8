package content

import (
	"github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

func NewContentRepository(db *bun.DB) repository.Repository[*Content] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*Content]{
		NewRecord: func() *Content { return &Content{} },
		GetID: func(c *Content) uuid.UUID {
			return c.ID
		},
		SetID: func(c *Content, id uuid.UUID) {
			c.ID = id
		},
		GetIdentifier: func() string {
			return "identifier"
		},
		GetIdentifierValue: func(c *Content) string {
			return c.Identifier
		},
	})
}

func NewRevisionRepository(db *bun.DB) repository.Repository[*Revision] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*Revision]{
		NewRecord: func() *Revision { return &Revision{} },
		GetID: func(r *Revision) uuid.UUID {
			return r.ID
		},
		SetID: func(r *Revision, id uuid.UUID) {
			r.ID = id
		},
		GetIdentifier: func() string {
			return "id"
		},
		GetIdentifierValue: func(r *Revision) string {
			if r == nil {
				return ""
			}
			return r.ID.String()
		},
	})
}

func NewSettingRepository(db *bun.DB) repository.Repository[*Setting] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*Setting]{
		NewRecord: func() *Setting { return &Setting{} },
		GetID: func(s *Setting) uuid.UUID {
			return s.ID
		},
		SetID: func(s *Setting, id uuid.UUID) {
			s.ID = id
		},
		GetIdentifier: func() string {
			return "key"
		},
		GetIdentifierValue: func(s *Setting) string {
			return s.Key
		},
	})
}
