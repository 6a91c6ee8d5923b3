package storage

import (
	"fmt"
	"strings"
	"time"
)

const (
	publicPathSegment  = "public/uploads/"
	privatePathSegment = "uploads/"
)

// DeriveKey builds the storage key for an upload: an optional folder prefix,
// a public or private path segment, and a millisecond timestamp joined to the
// original file name to avoid collisions.
func DeriveKey(folderPrefix, fileName string, isPublic bool, now time.Time) string {
	segment := privatePathSegment
	if isPublic {
		segment = publicPathSegment
	}
	return fmt.Sprintf("%s%s%d-%s", folderPrefix, segment, now.UnixMilli(), fileName)
}

// IsPublicKey reports whether a storage key sits under the public path segment.
func IsPublicKey(folderPrefix, storageKey string) bool {
	return strings.HasPrefix(storageKey, folderPrefix+publicPathSegment)
}
