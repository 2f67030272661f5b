package models

import (
	"time"

	"github.com/google/uuid"
)

// User role. Closed set, stored as text
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleSchool  Role = "school"
	RoleStudent Role = "student"
)

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleSchool, RoleStudent:
		return true
	}
	return false
}

type User struct {
	ID             uuid.UUID
	CreatedAt      time.Time
	Email          string
	FirstName      string
	LastName       string
	Role           Role
	Avatar         *string
	HashedPassword string

	// Bcrypt hash of the current refresh token
	// nil means the user has no active session
	RefreshTokenHash *string
}

// Principal is the resolved caller identity for a single request.
// It is a snapshot of the access token claims and may be stale relative
// to later role changes until the next refresh.
type Principal struct {
	ID    uuid.UUID
	Email string
	Role  Role
}
