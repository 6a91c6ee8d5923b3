package service

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/docrequest-service/internal/domain"
	"github.com/spec-kit/docrequest-service/internal/events"
	"github.com/spec-kit/docrequest-service/internal/repository"
	"github.com/spec-kit/docrequest-service/internal/repository/mocks"
	apperrors "github.com/spec-kit/docrequest-service/pkg/util/errorutil"
)

type requestServiceFixture struct {
	requests    *mocks.MockRequestRepository
	attachments *mocks.MockAttachmentRepository
	employees   *mocks.MockEmployeeRepository
	dispatcher  events.Dispatcher
	service     *RequestService
	published   *[]events.Event
}

func newRequestServiceFixture(t *testing.T) *requestServiceFixture {
	t.Helper()

	requests := new(mocks.MockRequestRepository)
	attachments := new(mocks.MockAttachmentRepository)
	employees := new(mocks.MockEmployeeRepository)
	dispatcher := events.NewInMemoryDispatcher()

	published := &[]events.Event{}
	capture := func(_ context.Context, event events.Event) error {
		*published = append(*published, event)
		return nil
	}
	dispatcher.Subscribe(events.EventRequestCreated, capture)
	dispatcher.Subscribe(events.EventRequestStatusChanged, capture)

	svc := NewRequestService(RequestDependencies{
		RequestRepo:    requests,
		AttachmentRepo: attachments,
		EmployeeRepo:   employees,
		Dispatcher:     dispatcher,
	})

	return &requestServiceFixture{
		requests:    requests,
		attachments: attachments,
		employees:   employees,
		dispatcher:  dispatcher,
		service:     svc,
		published:   published,
	}
}

func testUser() *domain.User {
	return &domain.User{
		ID:    "user-1",
		Name:  "Ana García",
		Email: "ana@example.com",
		Role:  domain.UserRoleUser,
	}
}

func TestCreateRequestAlwaysStartsPending(t *testing.T) {
	f := newRequestServiceFixture(t)

	f.requests.On("Create", mock.Anything, mock.MatchedBy(func(r *domain.Request) bool {
		return r.Status == domain.RequestStatusPending
	})).Run(func(args mock.Arguments) {
		r := args.Get(1).(*domain.Request)
		r.ID = "req-1"
		r.CreatedAt = time.Now()
	}).Return(nil)
	f.attachments.On("CreateBatch", mock.Anything, "req-1", mock.Anything).Return(nil)

	created, err := f.service.Create(context.Background(), testUser(), RequestCreateInput{
		Type:        domain.DocumentTypeInvoice,
		Reference:   "PED-2024-001",
		Date:        time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
		Description: "Factura del pedido de marzo",
		Attachments: []AttachmentInput{
			{FileName: "factura.pdf", StorageKey: "uploads/1-factura.pdf", IsPublic: true},
		},
	})

	require.NoError(t, err)
	assert.Equal(t, domain.RequestStatusPending, created.Status)
	assert.Equal(t, "PED-2024-001", created.Reference)
	assert.Equal(t, "user-1", created.UserID)
	require.Len(t, created.Attachments, 1)

	require.Len(t, *f.published, 1)
	event := (*f.published)[0]
	assert.Equal(t, events.EventRequestCreated, event.Type)
	payload, ok := event.Payload.(events.RequestCreatedPayload)
	require.True(t, ok)
	assert.Equal(t, domain.DocumentTypeInvoice, payload.Type)
	assert.Equal(t, []string{"factura.pdf"}, payload.AttachmentFileNames)
	f.requests.AssertExpectations(t)
	f.attachments.AssertExpectations(t)
}

func TestCreateRequestValidatesRequiredFields(t *testing.T) {
	f := newRequestServiceFixture(t)

	_, err := f.service.Create(context.Background(), testUser(), RequestCreateInput{
		Type:      domain.DocumentTypeInvoice,
		Reference: "PED-2024-002",
		// date and description missing
	})

	require.Error(t, err)
	domainErr := apperrors.ToDomainError(err)
	assert.Equal(t, apperrors.CodeValidationFailed, domainErr.Code)
	f.requests.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	assert.Empty(t, *f.published)
}

func TestCreateRequestRejectsUnknownDocumentType(t *testing.T) {
	f := newRequestServiceFixture(t)

	_, err := f.service.Create(context.Background(), testUser(), RequestCreateInput{
		Type:        "Recibo",
		Reference:   "PED-2024-003",
		Date:        time.Now(),
		Description: "tipo desconocido",
	})

	require.Error(t, err)
	assert.Equal(t, apperrors.CodeValidationFailed, apperrors.ToDomainError(err).Code)
}

func TestCreateRequestRejectsUnknownDestinatario(t *testing.T) {
	f := newRequestServiceFixture(t)

	missing := "emp-404"
	f.employees.On("GetByID", mock.Anything, missing).Return(nil, pgx.ErrNoRows)

	_, err := f.service.Create(context.Background(), testUser(), RequestCreateInput{
		Type:           domain.DocumentTypeContract,
		Reference:      "PED-2024-004",
		Date:           time.Now(),
		Description:    "contrato",
		DestinatarioID: &missing,
	})

	require.Error(t, err)
	assert.Equal(t, apperrors.CodeValidationFailed, apperrors.ToDomainError(err).Code)
	f.requests.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateRequestEmptyDestinatarioTreatedAsAbsent(t *testing.T) {
	f := newRequestServiceFixture(t)

	empty := ""
	f.requests.On("Create", mock.Anything, mock.MatchedBy(func(r *domain.Request) bool {
		return r.DestinatarioID == nil
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*domain.Request).ID = "req-2"
	}).Return(nil)
	f.attachments.On("CreateBatch", mock.Anything, "req-2", mock.Anything).Return(nil)

	_, err := f.service.Create(context.Background(), testUser(), RequestCreateInput{
		Type:           domain.DocumentTypeOther,
		Reference:      "PED-2024-005",
		Date:           time.Now(),
		Description:    "sin destinatario",
		DestinatarioID: &empty,
	})

	require.NoError(t, err)
	f.employees.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestCreateRequestWithoutAttachmentsRecordsEmptyBatch(t *testing.T) {
	f := newRequestServiceFixture(t)

	f.requests.On("Create", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		args.Get(1).(*domain.Request).ID = "req-3"
	}).Return(nil)
	f.attachments.On("CreateBatch", mock.Anything, "req-3", []domain.Attachment{}).Return(nil)

	created, err := f.service.Create(context.Background(), testUser(), RequestCreateInput{
		Type:        domain.DocumentTypeDeliveryNote,
		Reference:   "PED-2024-006",
		Date:        time.Now(),
		Description: "sin adjuntos",
	})

	require.NoError(t, err)
	assert.Empty(t, created.Attachments)
	f.attachments.AssertExpectations(t)
}

func TestUpdateStatusOverwritesUnconditionally(t *testing.T) {
	f := newRequestServiceFixture(t)

	current := &domain.Request{ID: "req-1", Status: domain.RequestStatusCompleted, UserID: "user-1"}
	updated := &domain.Request{ID: "req-1", Status: domain.RequestStatusPending, UserID: "user-1"}

	// Completed back to Pending is allowed; there is no transition graph.
	f.requests.On("GetByID", mock.Anything, "req-1").Return(current, nil)
	f.requests.On("UpdateStatus", mock.Anything, "req-1", domain.RequestStatusPending).Return(updated, nil)

	result, err := f.service.UpdateStatus(context.Background(), "req-1", domain.RequestStatusPending)

	require.NoError(t, err)
	assert.Equal(t, domain.RequestStatusPending, result.Status)

	require.Len(t, *f.published, 1)
	payload, ok := (*f.published)[0].Payload.(events.RequestStatusChangedPayload)
	require.True(t, ok)
	assert.Equal(t, domain.RequestStatusCompleted, payload.OldStatus)
	assert.Equal(t, domain.RequestStatusPending, payload.NewStatus)
}

func TestUpdateStatusSameValueIsIdempotent(t *testing.T) {
	f := newRequestServiceFixture(t)

	current := &domain.Request{ID: "req-1", Status: domain.RequestStatusInProgress, UserID: "user-1"}
	f.requests.On("GetByID", mock.Anything, "req-1").Return(current, nil)
	f.requests.On("UpdateStatus", mock.Anything, "req-1", domain.RequestStatusInProgress).Return(current, nil)

	result, err := f.service.UpdateStatus(context.Background(), "req-1", domain.RequestStatusInProgress)

	require.NoError(t, err)
	assert.Equal(t, domain.RequestStatusInProgress, result.Status)
}

func TestUpdateStatusUnknownValueRejected(t *testing.T) {
	f := newRequestServiceFixture(t)

	_, err := f.service.UpdateStatus(context.Background(), "req-1", "Archivada")

	require.Error(t, err)
	assert.Equal(t, apperrors.CodeValidationFailed, apperrors.ToDomainError(err).Code)
	f.requests.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateStatusMissingRequest(t *testing.T) {
	f := newRequestServiceFixture(t)

	f.requests.On("GetByID", mock.Anything, "req-404").Return(nil, pgx.ErrNoRows)

	_, err := f.service.UpdateStatus(context.Background(), "req-404", domain.RequestStatusCompleted)

	require.Error(t, err)
	assert.Equal(t, apperrors.CodeNotFound, apperrors.ToDomainError(err).Code)
	assert.Empty(t, *f.published)
}

func TestGetRequestNotFound(t *testing.T) {
	f := newRequestServiceFixture(t)

	f.requests.On("GetByID", mock.Anything, "req-404").Return(nil, pgx.ErrNoRows)

	_, err := f.service.Get(context.Background(), "req-404")

	require.Error(t, err)
	domainErr := apperrors.ToDomainError(err)
	assert.Equal(t, apperrors.CodeNotFound, domainErr.Code)
	assert.Equal(t, 404, domainErr.HTTPStatus)
}

func TestListPassesFilterThrough(t *testing.T) {
	f := newRequestServiceFixture(t)

	status := domain.RequestStatusPending
	filter := repository.RequestFilter{Status: &status}
	expected := []domain.Request{{ID: "req-1"}, {ID: "req-2"}}
	f.requests.On("ListWithFilter", mock.Anything, filter).Return(expected, nil)

	result, err := f.service.List(context.Background(), filter)

	require.NoError(t, err)
	assert.Equal(t, expected, result)
}
