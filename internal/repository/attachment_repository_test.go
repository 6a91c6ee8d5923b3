package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/spec-kit/docrequest-service/internal/domain"
)

func TestCreateBatchEmptySliceIsNoop(t *testing.T) {
	// A nil pool proves the early return: any database access would panic.
	repo := NewAttachmentRepository(nil)

	require.NoError(t, repo.CreateBatch(context.Background(), "req-1", nil))
	require.NoError(t, repo.CreateBatch(context.Background(), "req-1", []domain.Attachment{}))
}
