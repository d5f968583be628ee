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

// PostUUID identifies a post by its public route.
func PostUUID(path string) uuid.UUID {
	return UUID("go-blog:post:" + strings.TrimSpace(path))
}

// PageUUID identifies a generated page by its route.
func PageUUID(route string) uuid.UUID {
	return UUID("go-blog:page:" + strings.TrimSpace(route))
}

// TagUUID identifies a tag archive by its normalized slug.
func TagUUID(slug string) uuid.UUID {
	return UUID("go-blog:tag:" + strings.ToLower(strings.TrimSpace(slug)))
}
