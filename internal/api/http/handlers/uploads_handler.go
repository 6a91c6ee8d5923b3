package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/docrequest-service/internal/api/dto"
	"github.com/spec-kit/docrequest-service/internal/auth"
	"github.com/spec-kit/docrequest-service/internal/storage"
	apperrors "github.com/spec-kit/docrequest-service/pkg/util/errorutil"
)

// UploadsHandler exposes the storage gateway: presigned uploads and download
// URL resolution. File bytes never pass through the service.
type UploadsHandler struct {
	gateway storage.Gateway
}

// NewUploadsHandler constructs handler.
func NewUploadsHandler(gateway storage.Gateway) *UploadsHandler {
	return &UploadsHandler{gateway: gateway}
}

// PresignUpload POST /upload/presigned.
func (h *UploadsHandler) PresignUpload(c *fiber.Ctx) error {
	if _, ok := auth.PrincipalFromContext(c); !ok {
		return apperrors.NewUnauthorized("session required")
	}
	var req dto.PresignUploadRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.FileName == "" || req.ContentType == "" {
		return apperrors.NewValidationError("fileName and contentType are required", nil)
	}
	isPublic := true
	if req.IsPublic != nil {
		isPublic = *req.IsPublic
	}

	presigned, err := h.gateway.PresignUpload(c.Context(), req.FileName, req.ContentType, isPublic)
	if err != nil {
		return err
	}
	return c.JSON(dto.PresignUploadResponse{
		UploadURL:  presigned.UploadURL,
		StorageKey: presigned.StorageKey,
	})
}

// ResolveDownload GET /files/download?path&isPublic.
func (h *UploadsHandler) ResolveDownload(c *fiber.Ctx) error {
	if _, ok := auth.PrincipalFromContext(c); !ok {
		return apperrors.NewUnauthorized("session required")
	}
	path := c.Query("path")
	if path == "" {
		return apperrors.NewValidationError("path is required", nil)
	}
	isPublic := c.Query("isPublic") == "true"

	url, err := h.gateway.ResolveDownloadURL(c.Context(), path, isPublic)
	if err != nil {
		return err
	}
	return c.JSON(dto.DownloadURLResponse{URL: url})
}
