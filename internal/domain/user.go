package domain

import "time"

// UserRole distinguishes requesters from triaging administrators.
type UserRole string

const (
	UserRoleUser  UserRole = "USER"
	UserRoleAdmin UserRole = "ADMIN"
)

// User is the domain model for accounts that submit requests.
// Accounts are provisioned out of band and never mutated by this service.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Role         UserRole
	CreatedAt    time.Time
}
