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
	"github.com/aquashield/crm/services/auth"
)

// throttleKey builds the compound throttle key. The action discriminator
// keeps independent flows from sharing a budget; the IP component scopes
// the limit per client, degrading to identifier-only when no address is
// available.
func throttleKey(action, identifier, ip string) string {
	parts := []string{action, utils.NormalizeIdentifier(identifier)}
	if ip != "" {
		parts = append(parts, ip)
	}
	return fmt.Sprintf(constants.KeyThrottle, strings.Join(parts, "|"))
}

// admit counts one attempt against the action's budget and returns a
// RateLimitedError carrying the remaining cooldown when the budget is
// exhausted. The first attempt in a window creates the counter with the
// decay TTL atomically, so a burst of concurrent requests cannot each
// observe attempt #1.
func (uc *AuthUC) admit(ctx context.Context, action, identifier string, meta models.RequestMeta) error {
	key := throttleKey(action, identifier, meta.IPAddress)

	count, err := uc.secrets.IncrementWithTTL(ctx, key, uc.decay)
	if err != nil {
		// Fail open: an unreachable counter must not lock every user out.
		logger.Warn("Throttle counter unavailable, admitting request",
			logger.String("action", action),
			logger.Err(err))
		return nil
	}

	if count <= uc.maxAttempts {
		return nil
	}

	retryAfter := int(uc.decay / time.Second)
	if ttl, err := uc.secrets.TTL(ctx, key); err == nil && ttl > 0 {
		retryAfter = int((ttl + time.Second - 1) / time.Second)
	}

	uc.maybeNotifyLockout(ctx, identifier, meta)

	return &auth.RateLimitedError{RetryAfter: retryAfter}
}

// clearThrottle resets the attempt budget after a successful attempt so a
// legitimate user who fumbled a few codes is not carried into lockout.
func (uc *AuthUC) clearThrottle(ctx context.Context, action, identifier string, meta models.RequestMeta) {
	key := throttleKey(action, identifier, meta.IPAddress)
	if err := uc.secrets.Delete(ctx, key); err != nil {
		logger.Warn("Failed to clear throttle counter",
			logger.String("action", action),
			logger.Err(err))
	}
}
