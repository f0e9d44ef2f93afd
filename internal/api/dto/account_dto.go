package dto

// PasswordResetRequest carries the address for a reset or confirmation resend.
type PasswordResetRequest struct {
	Email string `json:"email"`
}

// PasswordResetConfirmRequest payload for confirming reset.
type PasswordResetConfirmRequest struct {
	Token       string `json:"token"`
	NewPassword string `json:"new_password"`
}

// EmailConfirmRequest payload for confirming an email address.
type EmailConfirmRequest struct {
	Token string `json:"token"`
}
