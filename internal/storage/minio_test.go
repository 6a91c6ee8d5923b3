package storage

import (
	"context"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/docrequest-service/internal/config"
)

func testStorageConfig() config.StorageConfig {
	return config.StorageConfig{
		Endpoint:      "storage.test:9000",
		AccessKey:     "test-access",
		SecretKey:     "test-secret",
		Bucket:        "documents",
		Region:        "us-east-1",
		PresignExpiry: time.Hour,
	}
}

func newTestGateway(t *testing.T) *minioGateway {
	t.Helper()
	gw, err := NewMinIO(testStorageConfig())
	require.NoError(t, err)
	mg, ok := gw.(*minioGateway)
	require.True(t, ok)
	mg.now = func() time.Time { return time.UnixMilli(1710500000000) }
	return mg
}

func TestNewMinIORequiresCredentials(t *testing.T) {
	cfg := testStorageConfig()
	cfg.AccessKey = ""

	_, err := NewMinIO(cfg)

	require.Error(t, err)
}

func TestNewMinIORequiresBucket(t *testing.T) {
	cfg := testStorageConfig()
	cfg.Bucket = ""

	_, err := NewMinIO(cfg)

	require.Error(t, err)
}

func TestPresignUploadPublic(t *testing.T) {
	gw := newTestGateway(t)

	presigned, err := gw.PresignUpload(context.Background(), "factura.pdf", "application/pdf", true)

	require.NoError(t, err)
	assert.Equal(t, "public/uploads/1710500000000-factura.pdf", presigned.StorageKey)

	parsed, err := url.Parse(presigned.UploadURL)
	require.NoError(t, err)
	signedHeaders := parsed.Query().Get("X-Amz-SignedHeaders")
	assert.Contains(t, signedHeaders, "content-type")
	assert.NotContains(t, signedHeaders, "content-disposition")
}

func TestPresignUploadPrivateSignsContentDisposition(t *testing.T) {
	gw := newTestGateway(t)

	presigned, err := gw.PresignUpload(context.Background(), "contrato.pdf", "application/pdf", false)

	require.NoError(t, err)
	assert.True(t, strings.Contains(presigned.StorageKey, "uploads/"))
	assert.False(t, strings.HasPrefix(presigned.StorageKey, "public/"))

	parsed, err := url.Parse(presigned.UploadURL)
	require.NoError(t, err)
	assert.Contains(t, parsed.Query().Get("X-Amz-SignedHeaders"), "content-disposition")
	assert.Equal(t, "3600", parsed.Query().Get("X-Amz-Expires"))
	assert.Equal(t, time.UnixMilli(1710500000000).Add(time.Hour), presigned.ExpiresAt)
}

func TestResolveDownloadURLPublicIsStable(t *testing.T) {
	gw := newTestGateway(t)

	first, err := gw.ResolveDownloadURL(context.Background(), "public/uploads/1-f.pdf", true)
	require.NoError(t, err)
	second, err := gw.ResolveDownloadURL(context.Background(), "public/uploads/1-f.pdf", true)
	require.NoError(t, err)

	// Public URLs are direct, unsigned and carry no expiry.
	assert.Equal(t, first, second)
	assert.Equal(t, "http://storage.test:9000/documents/public/uploads/1-f.pdf", first)
}

func TestResolveDownloadURLPrivateForcesAttachment(t *testing.T) {
	gw := newTestGateway(t)

	resolved, err := gw.ResolveDownloadURL(context.Background(), "uploads/1-f.pdf", false)

	require.NoError(t, err)
	parsed, err := url.Parse(resolved)
	require.NoError(t, err)
	assert.Equal(t, "attachment", parsed.Query().Get("response-content-disposition"))
	assert.NotEmpty(t, parsed.Query().Get("X-Amz-Signature"))
}
