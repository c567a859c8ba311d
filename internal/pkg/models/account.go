package models

import (
	"time"

	"github.com/google/uuid"
)

// Account represents a user account in the CRM. Email may be null for
// social-only accounts; PasswordHash is null for accounts that can only
// authenticate through an OAuth provider.
type Account struct {
	ID              uuid.UUID  `json:"id" db:"id"`
	Username        string     `json:"username" db:"username"`
	FirstName       string     `json:"first_name" db:"first_name"`
	LastName        *string    `json:"last_name,omitempty" db:"last_name"`
	Email           *string    `json:"email,omitempty" db:"email"`
	Phone           *string    `json:"phone,omitempty" db:"phone"`
	EmailVerifiedAt *time.Time `json:"email_verified_at,omitempty" db:"email_verified_at"`
	PasswordHash    *string    `json:"-" db:"password_hash"`
	AvatarURL       *string    `json:"avatar_url,omitempty" db:"avatar_url"`
	CreatedAt       time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at" db:"updated_at"`
}

// ProviderLink binds one external OAuth identity to exactly one account.
// (Provider, ProviderID) is globally unique and is the identity key for
// returning OAuth users; the provider-reported profile fields are advisory.
type ProviderLink struct {
	ID             uuid.UUID  `json:"id" db:"id"`
	AccountID      uuid.UUID  `json:"account_id" db:"account_id"`
	Provider       string     `json:"provider" db:"provider"`
	ProviderID     string     `json:"provider_id" db:"provider_id"`
	ProviderEmail  *string    `json:"provider_email,omitempty" db:"provider_email"`
	Nickname       *string    `json:"nickname,omitempty" db:"nickname"`
	Avatar         *string    `json:"avatar,omitempty" db:"avatar"`
	Token          string     `json:"-" db:"token"`
	RefreshToken   *string    `json:"-" db:"refresh_token"`
	TokenExpiresAt *time.Time `json:"token_expires_at,omitempty" db:"token_expires_at"`
	CreatedAt      time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at" db:"updated_at"`
}

// ProviderLinkUpdate carries the token refresh applied on every returning
// OAuth login. Nil pointer fields keep the previously stored value.
type ProviderLinkUpdate struct {
	Token          string     `db:"token"`
	RefreshToken   *string    `db:"refresh_token"`
	Nickname       *string    `db:"nickname"`
	Avatar         *string    `db:"avatar"`
	TokenExpiresAt *time.Time `db:"token_expires_at"`
}
