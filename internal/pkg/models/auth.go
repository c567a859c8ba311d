package models

import "time"

// SendOTPRequest represents a request to send a login OTP
type SendOTPRequest struct {
	Identifier string `json:"identifier" validate:"required"`
}

// VerifyOTPRequest represents a request to verify a login OTP
type VerifyOTPRequest struct {
	Identifier string `json:"identifier" validate:"required"`
	OTP        string `json:"otp" validate:"required"`
}

// PasswordResetSendRequest represents a request to send a password-reset OTP
type PasswordResetSendRequest struct {
	Email string `json:"email" validate:"required"`
}

// PasswordResetVerifyRequest represents a request to verify a password-reset OTP
type PasswordResetVerifyRequest struct {
	Email string `json:"email" validate:"required"`
	OTP   string `json:"otp" validate:"required"`
}

// AuthResponse represents the response after successful authentication
type AuthResponse struct {
	Message   string `json:"message"`
	Redirect  string `json:"redirect"`
	Token     string `json:"token"`
	UserID    string `json:"user_id"`
	ExpiresAt int64  `json:"expires_at"`
}

// ResetTokenResponse carries the single-use token issued after a
// password-reset OTP is verified
type ResetTokenResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
}

// RequestMeta carries per-request caller context through the auth flows
type RequestMeta struct {
	IPAddress string
	UserAgent string
	Route     string
}

// OAuthAssertion is the normalized identity claim returned by a provider
// driver after the authorization-code exchange. Optional fields are empty
// strings / zero when the provider omitted them.
type OAuthAssertion struct {
	Provider     string
	ProviderID   string
	Email        string
	Name         string
	Nickname     string
	Avatar       string
	AccessToken  string
	RefreshToken string
	ExpiresIn    int64 // seconds, 0 when the provider did not report expiry
}

// OTPNotificationEvent asks the notification pipeline to deliver a code
type OTPNotificationEvent struct {
	AccountID   string    `json:"account_id"`
	Identifier  string    `json:"identifier"`
	Code        string    `json:"code"`
	RequestedAt time.Time `json:"requested_at"`
}

// SecurityAlertEvent asks the notification pipeline to warn an account
// owner about repeated failed attempts against their identifier
type SecurityAlertEvent struct {
	AccountID   string    `json:"account_id"`
	Identifier  string    `json:"identifier"`
	IPAddress   string    `json:"ip_address"`
	ClientLabel string    `json:"client_label"`
	Route       string    `json:"route"`
	AttemptedAt time.Time `json:"attempted_at"`
}

// UserLoggedInEvent is emitted once per successful authentication,
// whatever the provider. Consumed by the audit pipeline, not internally.
type UserLoggedInEvent struct {
	UserID     string    `json:"user_id"`
	Provider   string    `json:"provider"`
	IPAddress  string    `json:"ip_address"`
	UserAgent  string    `json:"user_agent"`
	OccurredAt time.Time `json:"occurred_at"`
}
