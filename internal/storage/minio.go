package storage

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/spec-kit/docrequest-service/internal/config"
	apperrors "github.com/spec-kit/docrequest-service/pkg/util/errorutil"
)

// minioGateway implements Gateway against an S3-compatible backend
// (MinIO, AWS S3, etc.). Safe for concurrent use.
type minioGateway struct {
	client       *minio.Client
	bucket       string
	folderPrefix string
	expiry       time.Duration
	now          func() time.Time
}

// NewMinIO creates the gateway from configuration.
func NewMinIO(cfg config.StorageConfig) (Gateway, error) {
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("storage endpoint is required")
	}
	if cfg.AccessKey == "" || cfg.SecretKey == "" {
		return nil, fmt.Errorf("storage credentials are required")
	}
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("storage bucket is required")
	}

	cli, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("create storage client: %w", err)
	}

	expiry := cfg.PresignExpiry
	if expiry <= 0 {
		expiry = time.Hour
	}

	return &minioGateway{
		client:       cli,
		bucket:       cfg.Bucket,
		folderPrefix: cfg.FolderPrefix,
		expiry:       expiry,
		now:          time.Now,
	}, nil
}

func (g *minioGateway) PresignUpload(ctx context.Context, fileName, contentType string, isPublic bool) (*PresignedUpload, error) {
	key := DeriveKey(g.folderPrefix, fileName, isPublic, g.now())

	headers := http.Header{}
	headers.Set("Content-Type", contentType)
	if !isPublic {
		// Signed into the URL so retrieval always forces a download.
		headers.Set("Content-Disposition", "attachment")
	}

	signed, err := g.client.PresignHeader(ctx, http.MethodPut, g.bucket, key, g.expiry, url.Values{}, headers)
	if err != nil {
		return nil, apperrors.NewUpstreamError("object storage", err)
	}

	return &PresignedUpload{
		UploadURL:  signed.String(),
		StorageKey: key,
		ExpiresAt:  g.now().Add(g.expiry),
	}, nil
}

func (g *minioGateway) ResolveDownloadURL(ctx context.Context, storageKey string, isPublic bool) (string, error) {
	if isPublic {
		endpoint := g.client.EndpointURL()
		return fmt.Sprintf("%s://%s/%s/%s", endpoint.Scheme, endpoint.Host, g.bucket, storageKey), nil
	}

	params := url.Values{}
	params.Set("response-content-disposition", "attachment")
	signed, err := g.client.PresignedGetObject(ctx, g.bucket, storageKey, g.expiry, params)
	if err != nil {
		return "", apperrors.NewUpstreamError("object storage", err)
	}
	return signed.String(), nil
}

func (g *minioGateway) Delete(ctx context.Context, storageKey string) error {
	if err := g.client.RemoveObject(ctx, g.bucket, storageKey, minio.RemoveObjectOptions{}); err != nil {
		return apperrors.NewUpstreamError("object storage", err)
	}
	return nil
}
