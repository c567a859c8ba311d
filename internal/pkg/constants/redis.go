package constants

// Redis key formats
const (
	KeyOTP              = "otp:%s"             // Format: otp:{identifier}
	KeyPasswordResetOTP = "pwd-otp:%s"         // Format: pwd-otp:{email}
	KeyResetToken       = "pwd-reset-token:%s" // Format: pwd-reset-token:{account_id}
	KeyThrottle         = "throttle:%s"        // Format: throttle:{action|identifier|ip}
	KeyAlertSent        = "alert:sent:%s"      // Format: alert:sent:{identifier}
)

// Throttle action discriminators. Limits are uniform across actions today,
// but the action is part of every key so per-action tuning stays possible
// without breaking callers.
const (
	ActionLogin               = "login"
	ActionOTPSend             = "otp-send"
	ActionOTPVerify           = "otp-verify"
	ActionPasswordResetVerify = "password-reset-otp-verify"
)
