package domain

import "time"

// UserStatus represents lifecycle states for a resident account.
type UserStatus string

const (
	UserStatusActive    UserStatus = "ACTIVE"
	UserStatusSuspended UserStatus = "SUSPENDED"
)

// User is the domain model for residents and community managers.
type User struct {
	ID             string
	Username       string
	Email          string
	PasswordHash   string
	Status         UserStatus
	EmailConfirmed bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Credential is the stored login record looked up by email or username.
type Credential struct {
	PrincipalID  string
	PasswordHash string
	Status       UserStatus
}
