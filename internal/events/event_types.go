package events

import "time"

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventUserRegistered         EventType = "user_registered"
	EventPasswordResetRequested EventType = "password_reset_requested"
	EventCommunityAdminAdded    EventType = "community_admin_added"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	SubjectID string      `json:"subject_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// UserRegisteredPayload carries what the confirmation email needs.
type UserRegisteredPayload struct {
	Email        string    `json:"email"`
	Username     string    `json:"username"`
	ConfirmToken string    `json:"-"`
	ExpiresAt    time.Time `json:"expires_at"`
}

// PasswordResetRequestedPayload carries what the reset email needs.
type PasswordResetRequestedPayload struct {
	Email      string    `json:"email"`
	ResetToken string    `json:"-"`
	ExpiresAt  time.Time `json:"expires_at"`
}

// CommunityAdminAddedPayload payload.
type CommunityAdminAddedPayload struct {
	CommunityID string `json:"community_id"`
	UserID      string `json:"user_id"`
	AddedBy     string `json:"added_by"`
}
