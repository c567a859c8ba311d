package constants

// NSQ topics published by the auth service. Consumers (mailer, audit
// pipeline) live outside this repo.
const (
	TopicOTPNotifications = "auth.otp_notifications"
	TopicSecurityAlerts   = "auth.security_alerts"
	TopicUserLogins       = "auth.user_logins"
)
