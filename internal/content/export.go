package content

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/goomento/pagebuilder/internal/domain"
	"github.com/goomento/pagebuilder/internal/elements"
	"github.com/google/uuid"
	"github.com/santhosh-tekuri/jsonschema/v5"
)

// DocumentVersion is the interchange format version stamped on exports.
const DocumentVersion = "1.0.0"

// Document is the portable interchange representation of a content
// aggregate. The element tree travels under the top-level "content" key;
// element ids are regenerated on import so documents can be applied to any
// installation repeatedly.
type Document struct {
	Version    string         `json:"version"`
	Type       string         `json:"type"`
	Title      string         `json:"title"`
	Identifier string         `json:"identifier,omitempty"`
	Elements   elements.Nodes `json:"content"`
	Settings   map[string]any `json:"page_settings,omitempty"`
	Meta       *ContentMeta   `json:"meta,omitempty"`
	ExportedAt time.Time      `json:"exported_at,omitempty"`
}

const documentSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["version", "type", "title", "content"],
  "properties": {
    "version": {"type": "string", "minLength": 1},
    "type": {"type": "string", "enum": ["page", "template", "section"]},
    "title": {"type": "string", "minLength": 1},
    "identifier": {"type": "string"},
    "content": {"type": "array", "items": {"$ref": "#/$defs/element"}},
    "page_settings": {"type": "object"},
    "meta": {"type": "object"},
    "exported_at": {"type": "string"}
  },
  "$defs": {
    "element": {
      "type": "object",
      "required": ["type"],
      "properties": {
        "id": {"type": "string"},
        "type": {"type": "string", "minLength": 1},
        "settings": {"type": "object"},
        "elements": {"type": "array", "items": {"$ref": "#/$defs/element"}}
      }
    }
  }
}`

var compiledDocumentSchema = jsonschema.MustCompileString("pagebuilder://export/document.schema.json", documentSchema)

// Export serializes the aggregate into a portable document.
func (s *service) Export(ctx context.Context, id uuid.UUID) (*Document, error) {
	record, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	return &Document{
		Version:    DocumentVersion,
		Type:       string(record.Type),
		Title:      record.Title,
		Identifier: record.Identifier,
		Elements:   record.Elements.Clone(),
		Settings:   elements.CloneSettings(record.Settings),
		Meta:       &ContentMeta{Title: record.Meta.Title, Keywords: record.Meta.Keywords, Description: record.Meta.Description},
		ExportedAt: s.now(),
	}, nil
}

// ImportJSON validates a raw export payload against the document schema and
// imports it. Structural violations come back as *ImportError with the
// offending location.
func (s *service) ImportJSON(ctx context.Context, payload []byte, authorID uuid.UUID) (*Content, error) {
	var generic any
	if err := json.Unmarshal(payload, &generic); err != nil {
		return nil, &ImportError{Reason: "payload is not valid JSON"}
	}
	if err := compiledDocumentSchema.Validate(generic); err != nil {
		return nil, schemaImportError(err)
	}

	var doc Document
	if err := json.Unmarshal(payload, &doc); err != nil {
		return nil, &ImportError{Reason: "payload does not match the document shape"}
	}
	return s.Import(ctx, doc, authorID)
}

// Import creates new content from a document. Element ids are regenerated so
// repeated imports never collide, and the result always lands as a pending
// draft.
func (s *service) Import(ctx context.Context, doc Document, authorID uuid.UUID) (*Content, error) {
	if strings.TrimSpace(doc.Version) == "" {
		return nil, &ImportError{Field: "version", Reason: "missing"}
	}
	if major(doc.Version) != major(DocumentVersion) {
		return nil, &ImportError{Field: "version", Reason: "unsupported document version " + doc.Version}
	}

	contentType := domain.ContentType(strings.ToLower(strings.TrimSpace(doc.Type)))
	if !domain.IsCanonicalType(contentType) {
		return nil, &ImportError{Field: "type", Reason: "unknown content type"}
	}
	if strings.TrimSpace(doc.Title) == "" {
		return nil, &ImportError{Field: "title", Reason: "missing"}
	}

	imported := doc.Elements.Clone()
	if err := imported.RegenerateIDs(elements.NewID); err != nil {
		return nil, &ImportError{Field: "elements", Reason: "element tree exceeds the maximum depth"}
	}

	record, err := s.Save(ctx, SaveRequest{
		Type:     contentType,
		Title:    strings.TrimSpace(doc.Title),
		Status:   string(domain.StatusPending),
		Elements: imported,
		Settings: elements.CloneSettings(doc.Settings),
		Meta:     doc.Meta,
		AuthorID: authorID,
	})
	if err != nil {
		return nil, err
	}

	s.emit(ctx, "import", authorID, record.ID, map[string]any{
		"document_version": doc.Version,
		"type":             string(record.Type),
	})
	return record, nil
}

func schemaImportError(err error) *ImportError {
	var validationErr *jsonschema.ValidationError
	if ok := asValidationError(err, &validationErr); ok {
		leaf := validationErr
		for len(leaf.Causes) > 0 {
			leaf = leaf.Causes[0]
		}
		return &ImportError{
			Field:  strings.TrimPrefix(leaf.InstanceLocation, "/"),
			Reason: leaf.Message,
		}
	}
	return &ImportError{Reason: err.Error()}
}

func asValidationError(err error, target **jsonschema.ValidationError) bool {
	ve, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return false
	}
	*target = ve
	return true
}

func major(version string) string {
	if idx := strings.IndexByte(version, '.'); idx > 0 {
		return version[:idx]
	}
	return version
}
