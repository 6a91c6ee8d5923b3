package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/spec-kit/docrequest-service/internal/storage"
)

type MockGateway struct {
	mock.Mock
}

func (m *MockGateway) PresignUpload(ctx context.Context, fileName, contentType string, isPublic bool) (*storage.PresignedUpload, error) {
	args := m.Called(ctx, fileName, contentType, isPublic)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*storage.PresignedUpload), args.Error(1)
}

func (m *MockGateway) ResolveDownloadURL(ctx context.Context, storageKey string, isPublic bool) (string, error) {
	args := m.Called(ctx, storageKey, isPublic)
	return args.String(0), args.Error(1)
}

func (m *MockGateway) Delete(ctx context.Context, storageKey string) error {
	args := m.Called(ctx, storageKey)
	return args.Error(0)
}
