package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aquashield/crm/internal/pkg/constants"
	"github.com/aquashield/crm/internal/pkg/logger"
	"github.com/aquashield/crm/internal/pkg/models"
	"github.com/aquashield/crm/internal/utils"
)

// clientLabel maps a raw User-Agent onto a coarse, human-readable browser
// name for the alert email. Order matters: Edge ships "Chrome" in its UA
// and Chrome ships "Safari" in its, so the more specific token wins.
func clientLabel(userAgent string) string {
	ua := strings.ToLower(userAgent)
	switch {
	case strings.Contains(ua, "edg"):
		return "Microsoft Edge"
	case strings.Contains(ua, "chrome"):
		return "Google Chrome"
	case strings.Contains(ua, "firefox"):
		return "Mozilla Firefox"
	case strings.Contains(ua, "safari"):
		return "Apple Safari"
	case strings.Contains(ua, "curl"):
		return "curl"
	case strings.Contains(ua, "postman"):
		return "Postman"
	default:
		return "Unknown Browser"
	}
}

// maybeNotifyLockout raises a security alert for a locked-out identifier,
// at most once per cooldown window. The marker is written before the
// publish: losing an alert to a publish failure beats spamming the user
// on every further rejected attempt.
func (uc *AuthUC) maybeNotifyLockout(ctx context.Context, identifier string, meta models.RequestMeta) {
	normalized := utils.NormalizeIdentifier(identifier)

	account, err := uc.accountRepo.GetByEmailOrPhone(ctx, normalized)
	if err != nil {
		logger.Warn("Failed to resolve account for security alert",
			logger.String("identifier", utils.MaskEmail(normalized)),
			logger.Err(err))
		return
	}
	if account == nil {
		// Lockouts on unregistered identifiers have nobody to warn.
		return
	}

	markerKey := fmt.Sprintf(constants.KeyAlertSent, normalized)
	if _, found, err := uc.secrets.Get(ctx, markerKey); err != nil {
		logger.Warn("Failed to check alert cooldown",
			logger.String("identifier", utils.MaskEmail(normalized)),
			logger.Err(err))
		return
	} else if found {
		return
	}

	if err := uc.secrets.SetWithTTL(ctx, markerKey, "1", uc.alertCooldown); err != nil {
		logger.Warn("Failed to set alert cooldown marker",
			logger.String("identifier", utils.MaskEmail(normalized)),
			logger.Err(err))
		return
	}

	event := &models.SecurityAlertEvent{
		AccountID:   account.ID.String(),
		Identifier:  normalized,
		IPAddress:   meta.IPAddress,
		ClientLabel: clientLabel(meta.UserAgent),
		Route:       meta.Route,
		AttemptedAt: time.Now(),
	}
	if err := uc.authGW.PublishSecurityAlert(ctx, event); err != nil {
		logger.Error("Failed to publish security alert",
			logger.String("identifier", utils.MaskEmail(normalized)),
			logger.Err(err))
	}
}
