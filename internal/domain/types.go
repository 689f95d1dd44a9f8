package domain

import "strings"

// Status represents lifecycle states for buildable content.
type Status string

const (
	// StatusPending indicates content saved as a draft, not publicly resolvable.
	StatusPending Status = "pending"
	// StatusPublished identifies content eligible for public resolution.
	StatusPublished Status = "published"
	// StatusAutosave marks an ephemeral draft capture taken by the editor.
	StatusAutosave Status = "autosave"
	// StatusRevision marks an explicit historical snapshot.
	StatusRevision Status = "revision"
)

// ContentType identifies the kind of buildable content.
type ContentType string

const (
	TypePage     ContentType = "page"
	TypeTemplate ContentType = "template"
	TypeSection  ContentType = "section"
	TypeRevision ContentType = "revision"
)

// NormalizeStatus coerces arbitrary status strings into a known Status,
// defaulting to pending.
func NormalizeStatus(input string) Status {
	status := Status(strings.ToLower(strings.TrimSpace(input)))
	if status == "" {
		return StatusPending
	}
	return status
}

// IsValidStatus reports whether the value is one of the known statuses.
func IsValidStatus(status Status) bool {
	switch status {
	case StatusPending, StatusPublished, StatusAutosave, StatusRevision:
		return true
	default:
		return false
	}
}

// IsValidContentType reports whether the value is a known content type.
func IsValidContentType(contentType ContentType) bool {
	switch contentType {
	case TypePage, TypeTemplate, TypeSection, TypeRevision:
		return true
	default:
		return false
	}
}

// IsCanonicalType reports whether the content type identifies a canonical
// (addressable) row rather than a snapshot.
func IsCanonicalType(contentType ContentType) bool {
	switch contentType {
	case TypePage, TypeTemplate, TypeSection:
		return true
	default:
		return false
	}
}
