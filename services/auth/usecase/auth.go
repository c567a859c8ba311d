package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aquashield/crm/internal/pkg/constants"
	"github.com/aquashield/crm/internal/pkg/jwt"
	"github.com/aquashield/crm/internal/pkg/logger"
	"github.com/aquashield/crm/internal/pkg/models"
	"github.com/aquashield/crm/internal/pkg/oauth"
	"github.com/aquashield/crm/internal/utils"
	"github.com/aquashield/crm/services/auth"
)

// providerOTP labels OTP logins in the audit stream alongside the OAuth
// provider names.
const providerOTP = "otp"

// SendOTP generates a login code for the identifier and hands it to the
// notification pipeline. Unknown identifiers succeed silently so the
// endpoint cannot be used to probe which emails or phones are registered.
func (uc *AuthUC) SendOTP(ctx context.Context, identifier string, meta models.RequestMeta) error {
	if err := uc.admit(ctx, constants.ActionOTPSend, identifier, meta); err != nil {
		return err
	}

	account, err := uc.accountRepo.GetByEmailOrPhone(ctx, utils.NormalizeIdentifier(identifier))
	if err != nil {
		return fmt.Errorf("failed to look up account: %w", err)
	}
	if account == nil {
		logger.Info("OTP requested for unknown identifier",
			logger.String("identifier", utils.MaskEmail(identifier)))
		return nil
	}

	code, err := uc.sendCode(ctx, constants.KeyOTP, identifier)
	if err != nil {
		return err
	}

	event := &models.OTPNotificationEvent{
		AccountID:   account.ID.String(),
		Identifier:  utils.NormalizeIdentifier(identifier),
		Code:        code,
		RequestedAt: time.Now(),
	}
	if err := uc.authGW.PublishOTPNotification(ctx, event); err != nil {
		return fmt.Errorf("failed to publish otp notification: %w", err)
	}
	return nil
}

// VerifyOTP checks a submitted login code and, on success, issues a
// session token. ErrUserNotFound and ErrInvalidOtp both surface to the
// client as the same generic rejection.
func (uc *AuthUC) VerifyOTP(ctx context.Context, identifier, code string, meta models.RequestMeta) (*models.AuthResponse, error) {
	if err := uc.admit(ctx, constants.ActionOTPVerify, identifier, meta); err != nil {
		return nil, err
	}

	account, err := uc.accountRepo.GetByEmailOrPhone(ctx, utils.NormalizeIdentifier(identifier))
	if err != nil {
		return nil, fmt.Errorf("failed to look up account: %w", err)
	}
	if account == nil {
		return nil, auth.ErrUserNotFound
	}

	ok, err := uc.verifyCode(ctx, constants.KeyOTP, identifier, code)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, auth.ErrInvalidOtp
	}

	uc.invalidateCode(ctx, constants.KeyOTP, identifier)
	uc.clearThrottle(ctx, constants.ActionOTPVerify, identifier, meta)

	return uc.establishSession(ctx, account, providerOTP, meta)
}

// OAuthLogin exchanges a provider authorization code, resolves it onto a
// local account and issues a session token. OAuth logins are not
// throttled here: the code is single-use and the provider already
// rate-limits its token endpoint.
func (uc *AuthUC) OAuthLogin(ctx context.Context, provider, code string, meta models.RequestMeta) (*models.AuthResponse, error) {
	driver, err := uc.providers.Driver(provider)
	if err != nil {
		if errors.Is(err, oauth.ErrUnsupportedProvider) {
			return nil, auth.ErrUnsupportedProvider
		}
		return nil, err
	}

	assertion, err := driver.Exchange(ctx, code)
	if err != nil {
		return nil, &auth.ProviderAssertionError{Provider: provider, Err: err}
	}

	account, err := uc.resolveOAuthAccount(ctx, assertion)
	if err != nil {
		return nil, err
	}

	return uc.establishSession(ctx, account, provider, meta)
}

// SendPasswordResetOTP mirrors SendOTP for the password-reset flow; the
// code lives under its own key space so a reset code can never be spent
// as a login code.
func (uc *AuthUC) SendPasswordResetOTP(ctx context.Context, email string, meta models.RequestMeta) error {
	if err := uc.admit(ctx, constants.ActionOTPSend, email, meta); err != nil {
		return err
	}

	account, err := uc.accountRepo.GetByEmail(ctx, utils.NormalizeIdentifier(email))
	if err != nil {
		return fmt.Errorf("failed to look up account: %w", err)
	}
	if account == nil {
		logger.Info("Password reset requested for unknown email",
			logger.String("email", utils.MaskEmail(email)))
		return nil
	}

	code, err := uc.sendCode(ctx, constants.KeyPasswordResetOTP, email)
	if err != nil {
		return err
	}

	event := &models.OTPNotificationEvent{
		AccountID:   account.ID.String(),
		Identifier:  utils.NormalizeIdentifier(email),
		Code:        code,
		RequestedAt: time.Now(),
	}
	if err := uc.authGW.PublishOTPNotification(ctx, event); err != nil {
		return fmt.Errorf("failed to publish otp notification: %w", err)
	}
	return nil
}

// VerifyPasswordResetOTP validates a reset code and trades it for a
// single-use reset token bound to the account.
func (uc *AuthUC) VerifyPasswordResetOTP(ctx context.Context, email, code string, meta models.RequestMeta) (*models.ResetTokenResponse, error) {
	if err := uc.admit(ctx, constants.ActionPasswordResetVerify, email, meta); err != nil {
		return nil, err
	}

	account, err := uc.accountRepo.GetByEmail(ctx, utils.NormalizeIdentifier(email))
	if err != nil {
		return nil, fmt.Errorf("failed to look up account: %w", err)
	}
	if account == nil {
		return nil, auth.ErrUserNotFound
	}

	ok, err := uc.verifyCode(ctx, constants.KeyPasswordResetOTP, email, code)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, auth.ErrInvalidOtp
	}

	uc.invalidateCode(ctx, constants.KeyPasswordResetOTP, email)
	uc.clearThrottle(ctx, constants.ActionPasswordResetVerify, email, meta)

	token, err := uc.issueResetToken(ctx, account.ID.String())
	if err != nil {
		return nil, err
	}

	return &models.ResetTokenResponse{
		Message: "Code verified. You may now reset your password.",
		Token:   token,
	}, nil
}

// establishSession issues the JWT and emits the login audit event.
func (uc *AuthUC) establishSession(ctx context.Context, account *models.Account, provider string, meta models.RequestMeta) (*models.AuthResponse, error) {
	token, expiresAt, err := jwt.GenerateToken(account.ID, account.Username, false, uc.cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	event := &models.UserLoggedInEvent{
		UserID:     account.ID.String(),
		Provider:   provider,
		IPAddress:  meta.IPAddress,
		UserAgent:  meta.UserAgent,
		OccurredAt: time.Now(),
	}
	if err := uc.authGW.PublishUserLoggedIn(ctx, event); err != nil {
		// Audit delivery must not fail an otherwise valid login.
		logger.Error("Failed to publish login event",
			logger.String("user_id", account.ID.String()),
			logger.Err(err))
	}

	logger.Info("User authenticated",
		logger.String("user_id", account.ID.String()),
		logger.String("provider", provider))

	return &models.AuthResponse{
		Message:   "Authentication successful",
		Redirect:  uc.cfg.Auth.RedirectURL,
		Token:     token,
		UserID:    account.ID.String(),
		ExpiresAt: expiresAt,
	}, nil
}
