package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/docrequest-service/internal/domain"
)

// AttachmentRepository persists attachment metadata.
type AttachmentRepository interface {
	// CreateBatch inserts all given attachments for a request. A no-op on an
	// empty slice. Not transactional with the parent request insert.
	CreateBatch(ctx context.Context, requestID string, attachments []domain.Attachment) error
	ListByRequest(ctx context.Context, requestID string) ([]domain.Attachment, error)
}

type attachmentRepository struct {
	pool *pgxpool.Pool
}

// NewAttachmentRepository constructs repository.
func NewAttachmentRepository(pool *pgxpool.Pool) AttachmentRepository {
	return &attachmentRepository{pool: pool}
}

func (r *attachmentRepository) CreateBatch(ctx context.Context, requestID string, attachments []domain.Attachment) error {
	if len(attachments) == 0 {
		return nil
	}

	const query = `
        INSERT INTO attachments (request_id, file_name, storage_key, is_public)
        VALUES ($1,$2,$3,$4)
        RETURNING id, created_at`

	batch := &pgx.Batch{}
	for i := range attachments {
		batch.Queue(query,
			requestID,
			attachments[i].FileName,
			attachments[i].StorageKey,
			attachments[i].IsPublic,
		)
	}

	results := r.pool.SendBatch(ctx, batch)
	defer results.Close()

	for i := range attachments {
		attachments[i].RequestID = requestID
		if err := results.QueryRow().Scan(&attachments[i].ID, &attachments[i].CreatedAt); err != nil {
			return err
		}
	}
	return nil
}

func (r *attachmentRepository) ListByRequest(ctx context.Context, requestID string) ([]domain.Attachment, error) {
	const query = `
        SELECT id, request_id, file_name, storage_key, is_public, created_at
        FROM attachments WHERE request_id=$1`
	rows, err := r.pool.Query(ctx, query, requestID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanAttachments(rows)
}

func scanAttachments(rows pgx.Rows) ([]domain.Attachment, error) {
	var result []domain.Attachment
	for rows.Next() {
		var att domain.Attachment
		if err := rows.Scan(
			&att.ID,
			&att.RequestID,
			&att.FileName,
			&att.StorageKey,
			&att.IsPublic,
			&att.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, att)
	}
	return result, rows.Err()
}
