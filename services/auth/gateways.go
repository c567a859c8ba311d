package auth

import (
	"context"

	"github.com/aquashield/crm/internal/pkg/models"
)

//go:generate mockgen -destination=mocks/mock_gateway.go -package=mocks github.com/aquashield/crm/services/auth AuthGW

// AuthGW defines the outbound gateway interface. All publishes are
// fire-and-forget from the caller's perspective: the notification
// pipeline queues and retries, this service does not.
type AuthGW interface {
	PublishOTPNotification(ctx context.Context, event *models.OTPNotificationEvent) error
	PublishSecurityAlert(ctx context.Context, event *models.SecurityAlertEvent) error
	PublishUserLoggedIn(ctx context.Context, event *models.UserLoggedInEvent) error
}
