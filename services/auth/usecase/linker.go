package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/aquashield/crm/internal/pkg/logger"
	"github.com/aquashield/crm/internal/pkg/models"
	"github.com/aquashield/crm/internal/utils"
)

const maxUsernameProbes = 50

// resolveOAuthAccount maps a provider assertion onto exactly one local
// account:
//
//  1. A link already exists for (provider, provider_id): returning user,
//     refresh the stored tokens and profile fields.
//  2. No link, but an account carries the asserted email: attach a new
//     link to that account. The provider has vouched for the email, so
//     this is treated as the same person.
//  3. Neither: provision a passwordless account with a pre-verified email
//     and attach the first link, atomically.
func (uc *AuthUC) resolveOAuthAccount(ctx context.Context, assertion *models.OAuthAssertion) (*models.Account, error) {
	link, err := uc.accountRepo.GetProviderLink(ctx, assertion.Provider, assertion.ProviderID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up provider link: %w", err)
	}

	if link != nil {
		account, err := uc.accountRepo.GetByID(ctx, link.AccountID)
		if err != nil {
			return nil, fmt.Errorf("failed to load linked account: %w", err)
		}
		if account == nil {
			return nil, fmt.Errorf("provider link %s references missing account %s", link.ID, link.AccountID)
		}

		update := models.ProviderLinkUpdate{
			Token:          assertion.AccessToken,
			RefreshToken:   optionalString(assertion.RefreshToken),
			Nickname:       optionalString(assertion.Nickname),
			Avatar:         optionalString(assertion.Avatar),
			TokenExpiresAt: tokenExpiry(assertion.ExpiresIn),
		}
		if err := uc.accountRepo.UpdateProviderLinkTokens(ctx, link.ID, update); err != nil {
			// Stale tokens are an inconvenience, not a login failure.
			logger.Warn("Failed to refresh provider link tokens",
				logger.String("provider", assertion.Provider),
				logger.Err(err))
		}
		return account, nil
	}

	if assertion.Email != "" {
		account, err := uc.accountRepo.GetByEmail(ctx, utils.NormalizeIdentifier(assertion.Email))
		if err != nil {
			return nil, fmt.Errorf("failed to look up account by email: %w", err)
		}
		if account != nil {
			newLink := uc.buildProviderLink(account.ID, assertion)
			if err := uc.accountRepo.CreateProviderLink(ctx, newLink); err != nil {
				return nil, fmt.Errorf("failed to attach provider link: %w", err)
			}
			return account, nil
		}
	}

	return uc.provisionOAuthAccount(ctx, assertion)
}

// provisionOAuthAccount creates a passwordless account for a first-time
// OAuth user. The email arrives pre-verified because the provider already
// confirmed ownership.
func (uc *AuthUC) provisionOAuthAccount(ctx context.Context, assertion *models.OAuthAssertion) (*models.Account, error) {
	username, err := uc.generateUsername(ctx, assertion)
	if err != nil {
		return nil, err
	}

	firstName, lastName := splitName(assertion.Name)

	now := time.Now()
	account := &models.Account{
		ID:        uuid.New(),
		Username:  username,
		FirstName: firstName,
		LastName:  optionalString(lastName),
		Email:     optionalString(utils.NormalizeIdentifier(assertion.Email)),
		AvatarURL: optionalString(assertion.Avatar),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if account.Email != nil {
		account.EmailVerifiedAt = &now
	}

	link := uc.buildProviderLink(account.ID, assertion)
	if err := uc.accountRepo.CreateWithProviderLink(ctx, account, link); err != nil {
		return nil, fmt.Errorf("failed to provision account: %w", err)
	}

	logger.Info("Provisioned account from oauth assertion",
		logger.String("provider", assertion.Provider),
		logger.String("user_id", account.ID.String()))
	return account, nil
}

func (uc *AuthUC) buildProviderLink(accountID uuid.UUID, assertion *models.OAuthAssertion) *models.ProviderLink {
	now := time.Now()
	return &models.ProviderLink{
		ID:             uuid.New(),
		AccountID:      accountID,
		Provider:       assertion.Provider,
		ProviderID:     assertion.ProviderID,
		ProviderEmail:  optionalString(utils.NormalizeIdentifier(assertion.Email)),
		Nickname:       optionalString(assertion.Nickname),
		Avatar:         optionalString(assertion.Avatar),
		Token:          assertion.AccessToken,
		RefreshToken:   optionalString(assertion.RefreshToken),
		TokenExpiresAt: tokenExpiry(assertion.ExpiresIn),
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

// generateUsername derives a handle from the assertion and probes for an
// unused one by appending _1, _2, ... to the base slug. Probe-then-create
// is racy under concurrent signups with the same base; the unique
// constraint on username is the backstop and callers retry on conflict.
func (uc *AuthUC) generateUsername(ctx context.Context, assertion *models.OAuthAssertion) (string, error) {
	base := assertion.Nickname
	if base == "" {
		base = utils.EmailLocalPart(assertion.Email)
	}

	slug := utils.Slugify(base, "_")
	if slug == "" {
		slug = "user"
	}

	candidate := slug
	for i := 1; i <= maxUsernameProbes; i++ {
		taken, err := uc.accountRepo.ExistsByUsername(ctx, candidate)
		if err != nil {
			return "", fmt.Errorf("failed to check username availability: %w", err)
		}
		if !taken {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s_%d", slug, i)
	}

	// Exhausted sequential probes; a random suffix is effectively unique.
	return fmt.Sprintf("%s_%s", slug, uuid.NewString()[:8]), nil
}

// splitName breaks a display name on the first space: everything after it
// is the family name.
func splitName(full string) (first, last string) {
	full = strings.TrimSpace(full)
	if full == "" {
		return "", ""
	}
	if i := strings.Index(full, " "); i >= 0 {
		return full[:i], strings.TrimSpace(full[i+1:])
	}
	return full, ""
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func tokenExpiry(expiresIn int64) *time.Time {
	if expiresIn <= 0 {
		return nil
	}
	t := time.Now().Add(time.Duration(expiresIn) * time.Second)
	return &t
}
