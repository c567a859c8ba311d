package auth

import (
	"context"

	"github.com/aquashield/crm/internal/pkg/models"
)

//go:generate mockgen -destination=mocks/mock_usecase.go -package=mocks github.com/aquashield/crm/services/auth AuthUC

// AuthUC represents the authentication usecase interface
type AuthUC interface {
	// OTP login
	SendOTP(ctx context.Context, identifier string, meta models.RequestMeta) error
	VerifyOTP(ctx context.Context, identifier, code string, meta models.RequestMeta) (*models.AuthResponse, error)

	// OAuth login
	OAuthLogin(ctx context.Context, provider, code string, meta models.RequestMeta) (*models.AuthResponse, error)

	// Password reset
	SendPasswordResetOTP(ctx context.Context, email string, meta models.RequestMeta) error
	VerifyPasswordResetOTP(ctx context.Context, email, code string, meta models.RequestMeta) (*models.ResetTokenResponse, error)

	// Session introspection
	Profile(ctx context.Context, userID string) (*models.Account, error)
}
