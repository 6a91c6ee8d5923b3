package handlers

import (
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/docrequest-service/internal/api/dto"
	"github.com/spec-kit/docrequest-service/internal/auth"
	"github.com/spec-kit/docrequest-service/internal/domain"
	"github.com/spec-kit/docrequest-service/internal/repository"
	"github.com/spec-kit/docrequest-service/internal/service"
	apperrors "github.com/spec-kit/docrequest-service/pkg/util/errorutil"
)

const dateLayout = "2006-01-02"

// RequestsHandler manages request submission and triage endpoints.
type RequestsHandler struct {
	service *service.RequestService
}

// NewRequestsHandler constructs handler.
func NewRequestsHandler(requestService *service.RequestService) *RequestsHandler {
	return &RequestsHandler{service: requestService}
}

// CreateRequest POST /requests.
func (h *RequestsHandler) CreateRequest(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("session required")
	}
	var req dto.CreateRequestRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Type == "" || req.Reference == "" || req.Date == "" || req.Description == "" {
		return apperrors.NewValidationError("type, reference, date and description are required", nil)
	}
	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		return apperrors.NewValidationError("invalid date", map[string]any{"date": req.Date})
	}

	attachments := make([]service.AttachmentInput, 0, len(req.Attachments))
	for _, att := range req.Attachments {
		isPublic := true
		if att.IsPublic != nil {
			isPublic = *att.IsPublic
		}
		attachments = append(attachments, service.AttachmentInput{
			FileName:   att.FileName,
			StorageKey: att.StorageKey,
			IsPublic:   isPublic,
		})
	}

	input := service.RequestCreateInput{
		Type:           domain.DocumentType(req.Type),
		Reference:      req.Reference,
		Date:           date,
		Description:    req.Description,
		DestinatarioID: req.DestinatarioID,
		Attachments:    attachments,
	}
	request, err := h.service.Create(c.Context(), principal.User, input)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": requestResponse(request)})
}

// ListRequests GET /requests.
func (h *RequestsHandler) ListRequests(c *fiber.Ctx) error {
	if _, ok := auth.PrincipalFromContext(c); !ok {
		return apperrors.NewUnauthorized("session required")
	}
	filter := parseRequestFilter(c)
	requests, err := h.service.List(c.Context(), filter)
	if err != nil {
		return err
	}
	items := make([]dto.RequestResponse, 0, len(requests))
	for i := range requests {
		items = append(items, requestResponse(&requests[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// GetRequest GET /requests/:id.
func (h *RequestsHandler) GetRequest(c *fiber.Ctx) error {
	if _, ok := auth.PrincipalFromContext(c); !ok {
		return apperrors.NewUnauthorized("session required")
	}
	request, err := h.service.Get(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": requestResponse(request)})
}

// UpdateStatus PATCH /requests/:id/status.
func (h *RequestsHandler) UpdateStatus(c *fiber.Ctx) error {
	if _, ok := auth.PrincipalFromContext(c); !ok {
		return apperrors.NewUnauthorized("session required")
	}
	var req dto.UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	status, err := resolveTargetStatus(req)
	if err != nil {
		return err
	}

	request, err := h.service.UpdateStatus(c.Context(), c.Params("id"), status)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": requestResponse(request)})
}

// resolveTargetStatus maps the triage gesture to a status value: either an
// explicit status or a kanban drop-zone identifier.
func resolveTargetStatus(req dto.UpdateStatusRequest) (domain.RequestStatus, error) {
	if req.Status != "" {
		return domain.RequestStatus(req.Status), nil
	}
	if req.Column != "" {
		status, ok := domain.StatusForColumn(req.Column)
		if !ok {
			return "", apperrors.NewValidationError("unknown board column", map[string]any{"column": req.Column})
		}
		return status, nil
	}
	return "", apperrors.NewValidationError("status is required", nil)
}

func parseRequestFilter(c *fiber.Ctx) repository.RequestFilter {
	filter := repository.RequestFilter{}
	if t := c.Query("type"); t != "" && t != domain.FilterAll {
		docType := domain.DocumentType(t)
		filter.Type = &docType
	}
	if s := c.Query("status"); s != "" && s != domain.FilterAll {
		status := domain.RequestStatus(s)
		filter.Status = &status
	}
	if userID := c.Query("userId"); userID != "" {
		filter.UserID = &userID
	}
	return filter
}

func requestResponse(request *domain.Request) dto.RequestResponse {
	attachments := make([]dto.AttachmentResponse, 0, len(request.Attachments))
	for _, att := range request.Attachments {
		attachments = append(attachments, dto.AttachmentResponse{
			ID:         att.ID,
			FileName:   att.FileName,
			StorageKey: att.StorageKey,
			IsPublic:   att.IsPublic,
		})
	}

	resp := dto.RequestResponse{
		ID:             request.ID,
		Type:           request.Type,
		Reference:      request.Reference,
		Date:           request.Date.Format(dateLayout),
		Description:    request.Description,
		Status:         request.Status,
		DestinatarioID: request.DestinatarioID,
		CreatedAt:      request.CreatedAt,
		Attachments:    attachments,
	}
	if request.User != nil {
		resp.User = &dto.UserResponse{
			ID:    request.User.ID,
			Name:  request.User.Name,
			Email: request.User.Email,
		}
	}
	return resp
}
