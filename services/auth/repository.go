package auth

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/aquashield/crm/internal/pkg/models"
)

//go:generate mockgen -destination=mocks/mock_repository.go -package=mocks github.com/aquashield/crm/services/auth AccountRepo,SecretStore

// AccountRepo defines durable storage for accounts and provider links.
// Lookups return (nil, nil) when no row matches; absence is expected, not
// an error.
type AccountRepo interface {
	GetByEmailOrPhone(ctx context.Context, identifier string) (*models.Account, error)
	GetByEmail(ctx context.Context, email string) (*models.Account, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Account, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	Create(ctx context.Context, account *models.Account) error

	GetProviderLink(ctx context.Context, provider, providerID string) (*models.ProviderLink, error)
	CreateProviderLink(ctx context.Context, link *models.ProviderLink) error
	UpdateProviderLinkTokens(ctx context.Context, linkID uuid.UUID, update models.ProviderLinkUpdate) error

	// CreateWithProviderLink inserts a new account and its first provider
	// link in one transaction. The unique constraint on
	// (provider, provider_id) is the backstop against concurrent duplicate
	// signups with the same provider identity.
	CreateWithProviderLink(ctx context.Context, account *models.Account, link *models.ProviderLink) error
}

// SecretStore is the shared TTL'd key/value store holding OTP hashes,
// throttle counters, alert cooldown markers and reset-token hashes.
type SecretStore interface {
	// Get returns (value, true, nil) when the key exists and has not
	// expired, ("", false, nil) otherwise.
	Get(ctx context.Context, key string) (string, bool, error)
	SetWithTTL(ctx context.Context, key, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	// IncrementWithTTL must be atomic: concurrent callers may never
	// observe the same post-increment count.
	IncrementWithTTL(ctx context.Context, key string, ttl time.Duration) (int64, error)
	TTL(ctx context.Context, key string) (time.Duration, error)
}
