package identity

import (
	"strings"

	hashid "github.com/goliatone/hashid/pkg/hashid"
	"github.com/google/uuid"
)

// UUID derives a deterministic UUID from a stable key using go-hashid.
//
// Callers must ensure key construction prevents cross-entity collisions
// (prefix by domain/type).
func UUID(key string) uuid.UUID {
	trimmed := strings.TrimSpace(key)
	if trimmed == "" {
		return uuid.Nil
	}
	uid, err := hashid.NewUUID(trimmed, hashid.WithHashAlgorithm(hashid.SHA256), hashid.WithNormalization(true))
	if err != nil || uid == uuid.Nil {
		return uuid.NewSHA1(uuid.NameSpaceOID, []byte(trimmed))
	}
	return uid
}

// ContentIdentity derives the selector-namespacing identity for a canonical
// content row. Deterministic per id, and distinct from any revision identity
// for the same id.
func ContentIdentity(contentID uuid.UUID) string {
	return "content-" + shortHash("pagebuilder:content:"+contentID.String())
}

// RevisionIdentity derives the selector-namespacing identity for a revision
// row.
func RevisionIdentity(revisionID uuid.UUID) string {
	return "revision-" + shortHash("pagebuilder:revision:"+revisionID.String())
}

// SettingUUID derives a deterministic id for a key/value setting row.
func SettingUUID(key string) uuid.UUID {
	return UUID("pagebuilder:setting:" + strings.ToLower(strings.TrimSpace(key)))
}

func shortHash(key string) string {
	uid := UUID(key)
	return strings.ReplaceAll(uid.String(), "-", "")[:12]
}
