package events

import (
	"time"

	"github.com/spec-kit/docrequest-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventRequestCreated       EventType = "request_created"
	EventRequestStatusChanged EventType = "request_status_changed"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	RequestID string      `json:"request_id"`
	UserID    string      `json:"user_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// RequestCreatedPayload carries everything the notification email summarizes.
type RequestCreatedPayload struct {
	Type                domain.DocumentType `json:"type"`
	Reference           string              `json:"reference"`
	Date                time.Time           `json:"date"`
	Description         string              `json:"description"`
	OwnerName           string              `json:"owner_name"`
	OwnerEmail          string              `json:"owner_email"`
	AttachmentFileNames []string            `json:"attachment_file_names"`
}

// RequestStatusChangedPayload payload.
type RequestStatusChangedPayload struct {
	OldStatus domain.RequestStatus `json:"old_status"`
	NewStatus domain.RequestStatus `json:"new_status"`
}
