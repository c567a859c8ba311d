package usecase

import (
	"context"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/aquashield/crm/internal/pkg/constants"
	"github.com/aquashield/crm/internal/pkg/logger"
	"github.com/aquashield/crm/internal/pkg/models"
	"github.com/aquashield/crm/internal/utils"
)

// sendCode generates a fresh one-time code, stores its bcrypt hash under
// keyPattern and returns the plaintext for delivery. A resend overwrites
// the previous code, so only the newest one verifies.
func (uc *AuthUC) sendCode(ctx context.Context, keyPattern, identifier string) (string, error) {
	code, err := models.GenerateOtpCode()
	if err != nil {
		return "", fmt.Errorf("failed to generate otp: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(code.String()), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash otp: %w", err)
	}

	key := fmt.Sprintf(keyPattern, utils.NormalizeIdentifier(identifier))
	if err := uc.secrets.SetWithTTL(ctx, key, string(hash), uc.otpTTL); err != nil {
		return "", fmt.Errorf("failed to store otp: %w", err)
	}

	return code.String(), nil
}

// verifyCode checks the submitted code against the stored hash. Expired,
// missing and mismatched codes are indistinguishable to the caller.
func (uc *AuthUC) verifyCode(ctx context.Context, keyPattern, identifier, code string) (bool, error) {
	if _, err := models.NewOtpCode(code); err != nil {
		return false, nil
	}

	key := fmt.Sprintf(keyPattern, utils.NormalizeIdentifier(identifier))
	hash, found, err := uc.secrets.Get(ctx, key)
	if err != nil {
		return false, fmt.Errorf("failed to load otp: %w", err)
	}
	if !found {
		return false, nil
	}

	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(code)); err != nil {
		return false, nil
	}
	return true, nil
}

// invalidateCode removes the stored code after successful verification so
// it cannot be replayed.
func (uc *AuthUC) invalidateCode(ctx context.Context, keyPattern, identifier string) {
	key := fmt.Sprintf(keyPattern, utils.NormalizeIdentifier(identifier))
	if err := uc.secrets.Delete(ctx, key); err != nil {
		logger.Warn("Failed to invalidate otp",
			logger.String("key", key),
			logger.Err(err))
	}
}

// issueResetToken mints a single-use password reset token bound to the
// account and stores only its hash.
func (uc *AuthUC) issueResetToken(ctx context.Context, accountID string) (string, error) {
	token, err := utils.GenerateRandomString(defaultResetTokenSize)
	if err != nil {
		return "", fmt.Errorf("failed to generate reset token: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(token), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash reset token: %w", err)
	}

	key := fmt.Sprintf(constants.KeyResetToken, accountID)
	if err := uc.secrets.SetWithTTL(ctx, key, string(hash), uc.resetTokenTTL); err != nil {
		return "", fmt.Errorf("failed to store reset token: %w", err)
	}

	return token, nil
}
