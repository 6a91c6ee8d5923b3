package domain

// Employee is an optional addressee (destinatario) for a request,
// drawn from a fixed roster. Read-only from this service's perspective.
type Employee struct {
	ID    string
	Name  string
	Email string
}
