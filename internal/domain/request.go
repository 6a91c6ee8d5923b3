package domain

import "time"

// RequestStatus enumerates lifecycle states for document requests.
// Any status is reachable from any other status; no transition graph is enforced.
type RequestStatus string

const (
	RequestStatusPending    RequestStatus = "Pendiente"
	RequestStatusInProgress RequestStatus = "En proceso"
	RequestStatusCompleted  RequestStatus = "Completada"
)

// DocumentType enumerates the kinds of documents a user can request.
type DocumentType string

const (
	DocumentTypeInvoice      DocumentType = "Factura"
	DocumentTypeDeliveryNote DocumentType = "Albarán"
	DocumentTypeGoodsReceipt DocumentType = "Nota de entrega"
	DocumentTypeContract     DocumentType = "Contrato"
	DocumentTypeOther        DocumentType = "Otros"
)

// FilterAll is the sentinel filter value that imposes no constraint.
const FilterAll = "todos"

// boardColumns maps kanban drop-zone identifiers to target statuses.
// The mapping is data, not control flow: the board view only knows column ids.
var boardColumns = map[string]RequestStatus{
	"pendientes":  RequestStatusPending,
	"en-proceso":  RequestStatusInProgress,
	"completadas": RequestStatusCompleted,
}

// StatusForColumn resolves a kanban column identifier to its target status.
func StatusForColumn(column string) (RequestStatus, bool) {
	status, ok := boardColumns[column]
	return status, ok
}

// ValidStatus reports whether s is one of the enumerated statuses.
func ValidStatus(s RequestStatus) bool {
	switch s {
	case RequestStatusPending, RequestStatusInProgress, RequestStatusCompleted:
		return true
	}
	return false
}

// ValidDocumentType reports whether t is one of the enumerated document types.
func ValidDocumentType(t DocumentType) bool {
	switch t {
	case DocumentTypeInvoice, DocumentTypeDeliveryNote, DocumentTypeGoodsReceipt,
		DocumentTypeContract, DocumentTypeOther:
		return true
	}
	return false
}

// Request is the aggregate for document requests.
type Request struct {
	ID             string
	Type           DocumentType
	Reference      string
	Date           time.Time
	Description    string
	Status         RequestStatus
	UserID         string
	DestinatarioID *string
	CreatedAt      time.Time
	User           *User
	Destinatario   *Employee
	Attachments    []Attachment
}
