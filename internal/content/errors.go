package content

import (
	"errors"
	"fmt"
)

var (
	ErrContentIDRequired   = errors.New("content: content id required")
	ErrTitleRequired       = errors.New("content: title is required")
	ErrTypeInvalid         = errors.New("content: unknown content type")
	ErrStatusInvalid       = errors.New("content: unknown status")
	ErrStatusTransition    = errors.New("content: illegal status transition")
	ErrIdentifierInvalid   = errors.New("content: identifier contains invalid characters")
	ErrIdentifierExists    = errors.New("content: identifier already in use")
	ErrPermissionDenied    = errors.New("content: permission denied")
	ErrVersioningDisabled  = errors.New("content: versioning feature disabled")
	ErrSnapshotImmutable   = errors.New("content: revisions are immutable")
	ErrSourceNotFound      = errors.New("content: source content not found")
	ErrImportInvalid       = errors.New("content: import document is invalid")
	ErrFlushAlreadyApplied = errors.New("content: queued revisions already flushed")
)

// NotFoundError represents missing records from repository lookups.
type NotFoundError struct {
	Resource string
	Key      string
}

func (e *NotFoundError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("%s not found", e.Resource)
	}
	return fmt.Sprintf("%s %q not found", e.Resource, e.Key)
}

// IsNotFound reports whether err is a repository NotFoundError.
func IsNotFound(err error) bool {
	var notFound *NotFoundError
	return errors.As(err, &notFound)
}

// ImportError describes why an import document was rejected. It unwraps to
// ErrImportInvalid so callers can branch without inspecting fields.
type ImportError struct {
	Field  string
	Reason string
}

func (e *ImportError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("content: import rejected: %s", e.Reason)
	}
	return fmt.Sprintf("content: import rejected: %s: %s", e.Field, e.Reason)
}

func (e *ImportError) Unwrap() error { return ErrImportInvalid }
