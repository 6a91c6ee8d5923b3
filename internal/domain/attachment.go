package domain

import "time"

// Attachment is a file reference owned by exactly one request, pointing to an
// object-storage key. Created in a batch right after the owning request and
// immutable thereafter.
type Attachment struct {
	ID         string
	RequestID  string
	FileName   string
	StorageKey string
	IsPublic   bool
	CreatedAt  time.Time
}
