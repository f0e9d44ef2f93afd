package domain

import "time"

// Token is the decoded content of a bearer token.
type Token struct {
	Subject   string
	ExpiresAt time.Time
}

// OneTimeTokenType distinguishes out-of-band flows.
type OneTimeTokenType string

const (
	OneTimeTokenReset   OneTimeTokenType = "RESET"
	OneTimeTokenConfirm OneTimeTokenType = "CONFIRM"
)

// OneTimeToken is a persisted single-use credential for password reset and
// email confirmation.
type OneTimeToken struct {
	ID        string
	Token     string
	Type      OneTimeTokenType
	OwnerID   string
	CreatedAt time.Time
	ExpiresAt time.Time
	Used      bool
}

// Redeemable reports whether the token may still authorize an action at now.
func (t *OneTimeToken) Redeemable(now time.Time) bool {
	return !t.Used && now.Before(t.ExpiresAt)
}
