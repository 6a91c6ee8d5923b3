package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/docrequest-service/internal/domain"
)

// RequestFilter captures triage/list search parameters. Nil fields and the
// "todos" sentinel impose no constraint; set fields combine with AND.
type RequestFilter struct {
	Type   *domain.DocumentType
	Status *domain.RequestStatus
	UserID *string
}

// RequestRepository encapsulates request persistence. Reads eagerly populate
// the owning user and the attachment list.
type RequestRepository interface {
	Create(ctx context.Context, request *domain.Request) error
	GetByID(ctx context.Context, id string) (*domain.Request, error)
	ListWithFilter(ctx context.Context, filter RequestFilter) ([]domain.Request, error)
	UpdateStatus(ctx context.Context, id string, status domain.RequestStatus) (*domain.Request, error)
}

type requestRepository struct {
	pool        *pgxpool.Pool
	attachments AttachmentRepository
}

// NewRequestRepository instantiates repository.
func NewRequestRepository(pool *pgxpool.Pool, attachments AttachmentRepository) RequestRepository {
	return &requestRepository{pool: pool, attachments: attachments}
}

const requestColumns = `
        r.id, r.doc_type, r.reference, r.request_date, r.description, r.status,
        r.user_id, r.destinatario_id, r.created_at,
        u.id, u.name, u.email, u.role, u.created_at`

func (r *requestRepository) Create(ctx context.Context, request *domain.Request) error {
	const query = `
        INSERT INTO requests (doc_type, reference, request_date, description, status, user_id, destinatario_id)
        VALUES ($1,$2,$3,$4,$5,$6,$7)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query,
		request.Type,
		request.Reference,
		request.Date,
		request.Description,
		request.Status,
		request.UserID,
		request.DestinatarioID,
	).Scan(&request.ID, &request.CreatedAt)
}

func (r *requestRepository) GetByID(ctx context.Context, id string) (*domain.Request, error) {
	query := `
        SELECT ` + requestColumns + `
        FROM requests r
        JOIN users u ON u.id = r.user_id
        WHERE r.id=$1`

	row := r.pool.QueryRow(ctx, query, id)
	request, err := scanRequest(row)
	if err != nil {
		return nil, err
	}

	attachments, err := r.attachments.ListByRequest(ctx, request.ID)
	if err != nil {
		return nil, err
	}
	request.Attachments = attachments
	return request, nil
}

func (r *requestRepository) ListWithFilter(ctx context.Context, filter RequestFilter) ([]domain.Request, error) {
	query := `
        SELECT ` + requestColumns + `
        FROM requests r
        JOIN users u ON u.id = r.user_id
        WHERE 1=1`
	args := []any{}

	if filter.Type != nil && string(*filter.Type) != domain.FilterAll {
		args = append(args, *filter.Type)
		query += fmt.Sprintf(" AND r.doc_type=$%d", len(args))
	}
	if filter.Status != nil && string(*filter.Status) != domain.FilterAll {
		args = append(args, *filter.Status)
		query += fmt.Sprintf(" AND r.status=$%d", len(args))
	}
	if filter.UserID != nil {
		args = append(args, *filter.UserID)
		query += fmt.Sprintf(" AND r.user_id=$%d", len(args))
	}

	query += " ORDER BY r.created_at DESC"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Request
	for rows.Next() {
		request, err := scanRequest(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *request)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := r.populateAttachments(ctx, result); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *requestRepository) UpdateStatus(ctx context.Context, id string, status domain.RequestStatus) (*domain.Request, error) {
	const query = `UPDATE requests SET status=$1 WHERE id=$2`
	cmd, err := r.pool.Exec(ctx, query, status, id)
	if err != nil {
		return nil, err
	}
	if cmd.RowsAffected() == 0 {
		return nil, pgx.ErrNoRows
	}
	return r.GetByID(ctx, id)
}

// populateAttachments loads attachments for the whole result set in one query.
func (r *requestRepository) populateAttachments(ctx context.Context, requests []domain.Request) error {
	if len(requests) == 0 {
		return nil
	}

	ids := make([]string, 0, len(requests))
	index := make(map[string]*domain.Request, len(requests))
	for i := range requests {
		ids = append(ids, requests[i].ID)
		index[requests[i].ID] = &requests[i]
	}

	const query = `
        SELECT id, request_id, file_name, storage_key, is_public, created_at
        FROM attachments WHERE request_id = ANY($1)`
	rows, err := r.pool.Query(ctx, query, ids)
	if err != nil {
		return err
	}
	defer rows.Close()

	attachments, err := scanAttachments(rows)
	if err != nil {
		return err
	}
	for _, att := range attachments {
		if req, ok := index[att.RequestID]; ok {
			req.Attachments = append(req.Attachments, att)
		}
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRequest(row rowScanner) (*domain.Request, error) {
	var request domain.Request
	var owner domain.User
	if err := row.Scan(
		&request.ID,
		&request.Type,
		&request.Reference,
		&request.Date,
		&request.Description,
		&request.Status,
		&request.UserID,
		&request.DestinatarioID,
		&request.CreatedAt,
		&owner.ID,
		&owner.Name,
		&owner.Email,
		&owner.Role,
		&owner.CreatedAt,
	); err != nil {
		return nil, err
	}
	request.User = &owner
	return &request, nil
}
