package storage

import (
	"context"
	"time"
)

// Package storage holds the object-storage gateway for attachment files.
// Bytes never pass through the service: clients upload and download directly
// against pre-signed URLs.

// PresignedUpload is the result of authorizing a single direct PUT.
type PresignedUpload struct {
	UploadURL  string
	StorageKey string
	ExpiresAt  time.Time
}

// Gateway issues pre-signed upload URLs and resolves stored keys to
// downloadable URLs.
type Gateway interface {
	// PresignUpload builds a time-bounded signed URL authorizing one PUT at a
	// deterministically derived key. Non-public uploads sign an attachment
	// content-disposition header; the transfer must then send every header the
	// signature covers or the storage backend rejects it.
	PresignUpload(ctx context.Context, fileName, contentType string, isPublic bool) (*PresignedUpload, error)
	// ResolveDownloadURL returns a stable direct URL for public objects, or a
	// fresh time-bounded signed GET URL forcing attachment disposition for
	// private ones. Object existence is not verified.
	ResolveDownloadURL(ctx context.Context, storageKey string, isPublic bool) (string, error)
	// Delete removes the object by key. Part of the gateway contract even
	// though no workflow exercises it today.
	Delete(ctx context.Context, storageKey string) error
}
