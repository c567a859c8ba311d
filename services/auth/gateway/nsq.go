package gateway

import (
	"context"

	"github.com/aquashield/crm/internal/pkg/constants"
	"github.com/aquashield/crm/internal/pkg/models"
	"github.com/aquashield/crm/internal/pkg/nsq"
)

// AuthGW publishes auth events to NSQ
type AuthGW struct {
	producer *nsq.Producer
}

// NewAuthGW creates a new auth gateway
func NewAuthGW(producer *nsq.Producer) *AuthGW {
	return &AuthGW{producer: producer}
}

// PublishOTPNotification hands a generated code to the notification pipeline
func (g *AuthGW) PublishOTPNotification(ctx context.Context, event *models.OTPNotificationEvent) error {
	return g.producer.Publish(constants.TopicOTPNotifications, event)
}

// PublishSecurityAlert asks the notification pipeline to warn an account owner
func (g *AuthGW) PublishSecurityAlert(ctx context.Context, event *models.SecurityAlertEvent) error {
	return g.producer.Publish(constants.TopicSecurityAlerts, event)
}

// PublishUserLoggedIn emits a login audit event
func (g *AuthGW) PublishUserLoggedIn(ctx context.Context, event *models.UserLoggedInEvent) error {
	return g.producer.Publish(constants.TopicUserLogins, event)
}
