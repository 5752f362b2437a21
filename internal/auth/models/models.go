// Package models contains pure domain models for authentication: entities
// that do not depend on transport or HTTP-specific concerns.
package models

import (
	"time"

	"github.com/google/uuid"

	"presales/pkg/roles"
)

// UserStatus is the lifecycle state of an account.
type UserStatus string

const (
	UserStatusActive   UserStatus = "ACTIVE"
	UserStatusInactive UserStatus = "INACTIVE"
)

// User is an account that can sign in to the admin surface.
type User struct {
	ID           uuid.UUID
	Email        string
	DisplayName  string
	PasswordHash string
	Role         roles.Role
	Status       UserStatus
	CreatedAt    time.Time
}

// IsActive reports whether the account may sign in.
func (u *User) IsActive() bool {
	return u.Status == UserStatusActive
}
