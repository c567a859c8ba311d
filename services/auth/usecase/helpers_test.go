package usecase

import (
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/golang/mock/gomock"

	"github.com/aquashield/crm/internal/pkg/database"
	"github.com/aquashield/crm/internal/pkg/models"
	"github.com/aquashield/crm/internal/pkg/oauth"
	"github.com/aquashield/crm/services/auth/mocks"
	"github.com/aquashield/crm/services/auth/repository"
)

type testDeps struct {
	uc        *AuthUC
	repo      *mocks.MockAccountRepo
	gw        *mocks.MockAuthGW
	redis     *miniredis.Miniredis
	providers *oauth.Registry
	cfg       *models.Config
}

// setupAuthUCTest wires the usecase against a real secret store backed by
// miniredis and gomock doubles for the database and gateway.
func setupAuthUCTest(t *testing.T) *testDeps {
	t.Helper()

	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	mr := miniredis.RunT(t)
	redisClient := database.NewRedisClientFromClient(redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	}))

	cfg := &models.Config{}
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.Expiration = 60
	cfg.JWT.Issuer = "aquashield-test"
	cfg.Auth.OTPTTLMinutes = 10
	cfg.Auth.MaxAttempts = 5
	cfg.Auth.DecaySeconds = 60
	cfg.Auth.AlertCooldownMinutes = 15
	cfg.Auth.ResetTokenTTLMinutes = 60
	cfg.Auth.RedirectURL = "/dashboard"
	cfg.Auth.LoginURL = "/login"

	repo := mocks.NewMockAccountRepo(ctrl)
	gw := mocks.NewMockAuthGW(ctrl)
	providers := oauth.NewRegistry(models.OAuthConfig{})

	uc := NewAuthUC(cfg, repo, repository.NewSecretStore(redisClient), gw, providers)

	return &testDeps{
		uc:        uc,
		repo:      repo,
		gw:        gw,
		redis:     mr,
		providers: providers,
		cfg:       cfg,
	}
}
