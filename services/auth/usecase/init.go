package usecase

import (
	"time"

	"github.com/aquashield/crm/internal/pkg/models"
	"github.com/aquashield/crm/internal/pkg/oauth"
	"github.com/aquashield/crm/services/auth"
)

// Fallbacks applied when the corresponding config values are zero.
const (
	defaultOTPTTL         = 10 * time.Minute
	defaultMaxAttempts    = 5
	defaultDecaySeconds   = 60
	defaultAlertCooldown  = 15 * time.Minute
	defaultResetTokenTTL  = 60 * time.Minute
	defaultResetTokenSize = 64
)

// AuthUC implements the authentication usecase
type AuthUC struct {
	cfg         *models.Config
	accountRepo auth.AccountRepo
	secrets     auth.SecretStore
	authGW      auth.AuthGW
	providers   *oauth.Registry

	otpTTL        time.Duration
	maxAttempts   int64
	decay         time.Duration
	alertCooldown time.Duration
	resetTokenTTL time.Duration
}

// NewAuthUC creates a new auth usecase
func NewAuthUC(
	cfg *models.Config,
	accountRepo auth.AccountRepo,
	secrets auth.SecretStore,
	authGW auth.AuthGW,
	providers *oauth.Registry,
) *AuthUC {
	uc := &AuthUC{
		cfg:           cfg,
		accountRepo:   accountRepo,
		secrets:       secrets,
		authGW:        authGW,
		providers:     providers,
		otpTTL:        time.Duration(cfg.Auth.OTPTTLMinutes) * time.Minute,
		maxAttempts:   int64(cfg.Auth.MaxAttempts),
		decay:         time.Duration(cfg.Auth.DecaySeconds) * time.Second,
		alertCooldown: time.Duration(cfg.Auth.AlertCooldownMinutes) * time.Minute,
		resetTokenTTL: time.Duration(cfg.Auth.ResetTokenTTLMinutes) * time.Minute,
	}

	if uc.otpTTL <= 0 {
		uc.otpTTL = defaultOTPTTL
	}
	if uc.maxAttempts <= 0 {
		uc.maxAttempts = defaultMaxAttempts
	}
	if uc.decay <= 0 {
		uc.decay = defaultDecaySeconds * time.Second
	}
	if uc.alertCooldown <= 0 {
		uc.alertCooldown = defaultAlertCooldown
	}
	if uc.resetTokenTTL <= 0 {
		uc.resetTokenTTL = defaultResetTokenTTL
	}

	return uc
}
