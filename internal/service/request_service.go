package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/docrequest-service/internal/domain"
	"github.com/spec-kit/docrequest-service/internal/events"
	"github.com/spec-kit/docrequest-service/internal/repository"
	apperrors "github.com/spec-kit/docrequest-service/pkg/util/errorutil"
)

// RequestService coordinates the request lifecycle.
type RequestService struct {
	requests    repository.RequestRepository
	attachments repository.AttachmentRepository
	employees   repository.EmployeeRepository
	dispatcher  events.Dispatcher
}

// RequestDependencies bundles repositories for the request service.
type RequestDependencies struct {
	RequestRepo    repository.RequestRepository
	AttachmentRepo repository.AttachmentRepository
	EmployeeRepo   repository.EmployeeRepository
	Dispatcher     events.Dispatcher
}

// RequestCreateInput describes the submission payload. Callers cannot supply
// a status; new requests always start Pendiente.
type RequestCreateInput struct {
	Type           domain.DocumentType
	Reference      string
	Date           time.Time
	Description    string
	DestinatarioID *string
	Attachments    []AttachmentInput
}

// AttachmentInput describes an already-uploaded file to record.
type AttachmentInput struct {
	FileName   string
	StorageKey string
	IsPublic   bool
}

// NewRequestService constructs the service.
func NewRequestService(deps RequestDependencies) *RequestService {
	return &RequestService{
		requests:    deps.RequestRepo,
		attachments: deps.AttachmentRepo,
		employees:   deps.EmployeeRepo,
		dispatcher:  deps.Dispatcher,
	}
}

// Create validates the submission, persists the request as Pendiente, records
// the attachment batch and publishes the creation event. The attachment batch
// and the notification are not transactional with the insert.
func (s *RequestService) Create(ctx context.Context, user *domain.User, input RequestCreateInput) (*domain.Request, error) {
	if input.Type == "" || strings.TrimSpace(input.Reference) == "" ||
		input.Date.IsZero() || strings.TrimSpace(input.Description) == "" {
		return nil, apperrors.NewValidationError("type, reference, date and description are required", nil)
	}
	if !domain.ValidDocumentType(input.Type) {
		return nil, apperrors.NewValidationError("unknown document type", map[string]any{"type": string(input.Type)})
	}

	if input.DestinatarioID != nil && *input.DestinatarioID != "" {
		if _, err := s.employees.GetByID(ctx, *input.DestinatarioID); err != nil {
			if err == pgx.ErrNoRows {
				return nil, apperrors.NewValidationError("destinatario does not exist", map[string]any{"destinatario_id": *input.DestinatarioID})
			}
			return nil, err
		}
	} else {
		input.DestinatarioID = nil
	}

	request := &domain.Request{
		Type:           input.Type,
		Reference:      strings.TrimSpace(input.Reference),
		Date:           input.Date,
		Description:    strings.TrimSpace(input.Description),
		Status:         domain.RequestStatusPending,
		UserID:         user.ID,
		DestinatarioID: input.DestinatarioID,
	}

	if err := s.requests.Create(ctx, request); err != nil {
		return nil, err
	}

	attachments := make([]domain.Attachment, 0, len(input.Attachments))
	for _, att := range input.Attachments {
		attachments = append(attachments, domain.Attachment{
			FileName:   att.FileName,
			StorageKey: att.StorageKey,
			IsPublic:   att.IsPublic,
		})
	}
	if err := s.attachments.CreateBatch(ctx, request.ID, attachments); err != nil {
		return nil, err
	}
	request.Attachments = attachments
	request.User = user

	fileNames := make([]string, 0, len(attachments))
	for _, att := range attachments {
		fileNames = append(fileNames, att.FileName)
	}
	s.publishEvent(ctx, events.Event{
		Type:      events.EventRequestCreated,
		RequestID: request.ID,
		UserID:    user.ID,
		Payload: events.RequestCreatedPayload{
			Type:                request.Type,
			Reference:           request.Reference,
			Date:                request.Date,
			Description:         request.Description,
			OwnerName:           user.Name,
			OwnerEmail:          user.Email,
			AttachmentFileNames: fileNames,
		},
	})
	return request, nil
}

// Get fetches a request with owner and attachments populated.
func (s *RequestService) Get(ctx context.Context, id string) (*domain.Request, error) {
	request, err := s.requests.GetByID(ctx, id)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("request", map[string]any{"id": id})
		}
		return nil, err
	}
	return request, nil
}

// List returns requests matching all supplied filter fields, newest first.
func (s *RequestService) List(ctx context.Context, filter repository.RequestFilter) ([]domain.Request, error) {
	return s.requests.ListWithFilter(ctx, filter)
}

// UpdateStatus unconditionally overwrites the status. Any of the three values
// is accepted at any time; no transition graph is enforced.
func (s *RequestService) UpdateStatus(ctx context.Context, id string, status domain.RequestStatus) (*domain.Request, error) {
	if !domain.ValidStatus(status) {
		return nil, apperrors.NewValidationError("unknown status", map[string]any{"status": string(status)})
	}

	current, err := s.requests.GetByID(ctx, id)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("request", map[string]any{"id": id})
		}
		return nil, err
	}

	updated, err := s.requests.UpdateStatus(ctx, id, status)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("request", map[string]any{"id": id})
		}
		return nil, err
	}

	s.publishEvent(ctx, events.Event{
		Type:      events.EventRequestStatusChanged,
		RequestID: updated.ID,
		UserID:    updated.UserID,
		Payload: events.RequestStatusChangedPayload{
			OldStatus: current.Status,
			NewStatus: updated.Status,
		},
	})
	return updated, nil
}

func (s *RequestService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	event.ID = uuid.NewString()
	event.Timestamp = time.Now()
	_ = s.dispatcher.Publish(ctx, event)
}
