package dto

import (
	"time"

	"github.com/spec-kit/docrequest-service/internal/domain"
)

// CreateRequestRequest payload. A status field is deliberately absent: new
// requests always start Pendiente.
type CreateRequestRequest struct {
	Type           string              `json:"type"`
	Reference      string              `json:"reference"`
	Date           string              `json:"date"`
	Description    string              `json:"description"`
	DestinatarioID *string             `json:"destinatarioId"`
	Attachments    []AttachmentRequest `json:"attachments"`
}

// AttachmentRequest describes an already-uploaded file. Field names follow
// the upload wire contract (cloud_storage_path is the storage key).
type AttachmentRequest struct {
	FileName   string `json:"fileName"`
	StorageKey string `json:"cloud_storage_path"`
	IsPublic   *bool  `json:"isPublic"`
}

// UpdateStatusRequest carries either an explicit status value or a kanban
// column identifier resolved through the board lookup table.
type UpdateStatusRequest struct {
	Status string `json:"status"`
	Column string `json:"column"`
}

// RequestResponse is the full request representation.
type RequestResponse struct {
	ID             string               `json:"id"`
	Type           domain.DocumentType  `json:"type"`
	Reference      string               `json:"reference"`
	Date           string               `json:"date"`
	Description    string               `json:"description"`
	Status         domain.RequestStatus `json:"status"`
	DestinatarioID *string              `json:"destinatarioId"`
	CreatedAt      time.Time            `json:"createdAt"`
	User           *UserResponse        `json:"user,omitempty"`
	Attachments    []AttachmentResponse `json:"attachments"`
}

// UserResponse is the owner summary embedded in request responses.
type UserResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// AttachmentResponse metadata.
type AttachmentResponse struct {
	ID         string `json:"id"`
	FileName   string `json:"fileName"`
	StorageKey string `json:"cloud_storage_path"`
	IsPublic   bool   `json:"isPublic"`
}

// EmployeeResponse is an addressee roster entry.
type EmployeeResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}
