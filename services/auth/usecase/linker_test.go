package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aquashield/crm/internal/pkg/models"
)

func testAssertion() *models.OAuthAssertion {
	return &models.OAuthAssertion{
		Provider:     "google",
		ProviderID:   "sub-12345",
		Email:        "John@Example.com",
		Name:         "John Arthur Doe",
		Avatar:       "https://cdn.example.com/avatar.png",
		AccessToken:  "access-token",
		RefreshToken: "refresh-token",
		ExpiresIn:    3600,
	}
}

func TestResolveOAuthAccount_ReturningUser(t *testing.T) {
	deps := setupAuthUCTest(t)
	ctx := context.Background()
	assertion := testAssertion()

	account := testAccount("john@example.com")
	link := &models.ProviderLink{
		ID:         uuid.New(),
		AccountID:  account.ID,
		Provider:   "google",
		ProviderID: "sub-12345",
	}

	deps.repo.EXPECT().
		GetProviderLink(gomock.Any(), "google", "sub-12345").
		Return(link, nil)
	deps.repo.EXPECT().
		GetByID(gomock.Any(), account.ID).
		Return(account, nil)

	var update models.ProviderLinkUpdate
	deps.repo.EXPECT().
		UpdateProviderLinkTokens(gomock.Any(), link.ID, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ uuid.UUID, u models.ProviderLinkUpdate) error {
			update = u
			return nil
		})

	resolved, err := deps.uc.resolveOAuthAccount(ctx, assertion)
	require.NoError(t, err)
	assert.Equal(t, account.ID, resolved.ID)

	assert.Equal(t, "access-token", update.Token)
	require.NotNil(t, update.RefreshToken)
	assert.Equal(t, "refresh-token", *update.RefreshToken)
	require.NotNil(t, update.TokenExpiresAt)
	assert.WithinDuration(t, time.Now().Add(time.Hour), *update.TokenExpiresAt, 5*time.Second)
}

func TestResolveOAuthAccount_TokenRefreshFailureStillLogsIn(t *testing.T) {
	deps := setupAuthUCTest(t)
	assertion := testAssertion()

	account := testAccount("john@example.com")
	link := &models.ProviderLink{ID: uuid.New(), AccountID: account.ID}

	deps.repo.EXPECT().
		GetProviderLink(gomock.Any(), "google", "sub-12345").
		Return(link, nil)
	deps.repo.EXPECT().
		GetByID(gomock.Any(), account.ID).
		Return(account, nil)
	deps.repo.EXPECT().
		UpdateProviderLinkTokens(gomock.Any(), link.ID, gomock.Any()).
		Return(errors.New("write failed"))

	resolved, err := deps.uc.resolveOAuthAccount(context.Background(), assertion)
	require.NoError(t, err)
	assert.Equal(t, account.ID, resolved.ID)
}

func TestResolveOAuthAccount_LinksByEmail(t *testing.T) {
	deps := setupAuthUCTest(t)
	assertion := testAssertion()
	account := testAccount("john@example.com")

	deps.repo.EXPECT().
		GetProviderLink(gomock.Any(), "google", "sub-12345").
		Return(nil, nil)
	deps.repo.EXPECT().
		GetByEmail(gomock.Any(), "john@example.com").
		Return(account, nil)

	var created *models.ProviderLink
	deps.repo.EXPECT().
		CreateProviderLink(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, link *models.ProviderLink) error {
			created = link
			return nil
		})

	resolved, err := deps.uc.resolveOAuthAccount(context.Background(), assertion)
	require.NoError(t, err)
	assert.Equal(t, account.ID, resolved.ID)

	require.NotNil(t, created)
	assert.Equal(t, account.ID, created.AccountID)
	assert.Equal(t, "google", created.Provider)
	assert.Equal(t, "sub-12345", created.ProviderID)
	assert.Equal(t, "access-token", created.Token)
	require.NotNil(t, created.ProviderEmail)
	assert.Equal(t, "john@example.com", *created.ProviderEmail)
}

func TestResolveOAuthAccount_ProvisionsPasswordlessAccount(t *testing.T) {
	deps := setupAuthUCTest(t)
	assertion := testAssertion()

	deps.repo.EXPECT().
		GetProviderLink(gomock.Any(), "google", "sub-12345").
		Return(nil, nil)
	deps.repo.EXPECT().
		GetByEmail(gomock.Any(), "john@example.com").
		Return(nil, nil)
	deps.repo.EXPECT().
		ExistsByUsername(gomock.Any(), "john").
		Return(false, nil)

	var account *models.Account
	var link *models.ProviderLink
	deps.repo.EXPECT().
		CreateWithProviderLink(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, a *models.Account, l *models.ProviderLink) error {
			account, link = a, l
			return nil
		})

	resolved, err := deps.uc.resolveOAuthAccount(context.Background(), assertion)
	require.NoError(t, err)
	require.NotNil(t, account)
	assert.Equal(t, account.ID, resolved.ID)

	// Handle base is the email local part (no nickname asserted); the
	// display name splits on the first space.
	assert.Equal(t, "john", account.Username)
	assert.Equal(t, "John", account.FirstName)
	require.NotNil(t, account.LastName)
	assert.Equal(t, "Arthur Doe", *account.LastName)
	require.NotNil(t, account.Email)
	assert.Equal(t, "john@example.com", *account.Email)

	// Provider already confirmed ownership of the email, and the account
	// has no password of its own.
	assert.NotNil(t, account.EmailVerifiedAt)
	assert.Nil(t, account.PasswordHash)

	require.NotNil(t, link)
	assert.Equal(t, account.ID, link.AccountID)
	assert.Equal(t, "sub-12345", link.ProviderID)
}

func TestGenerateUsername_ProbesForFreeSuffix(t *testing.T) {
	deps := setupAuthUCTest(t)
	assertion := &models.OAuthAssertion{Nickname: "john"}

	gomock.InOrder(
		deps.repo.EXPECT().ExistsByUsername(gomock.Any(), "john").Return(true, nil),
		deps.repo.EXPECT().ExistsByUsername(gomock.Any(), "john_1").Return(true, nil),
		deps.repo.EXPECT().ExistsByUsername(gomock.Any(), "john_2").Return(false, nil),
	)

	username, err := deps.uc.generateUsername(context.Background(), assertion)
	require.NoError(t, err)
	assert.Equal(t, "john_2", username)
}

func TestGenerateUsername_FallsBackToEmailLocalPart(t *testing.T) {
	deps := setupAuthUCTest(t)
	assertion := &models.OAuthAssertion{Email: "Jane.Roe+crm@example.com"}

	deps.repo.EXPECT().
		ExistsByUsername(gomock.Any(), "jane_roe_crm").
		Return(false, nil)

	username, err := deps.uc.generateUsername(context.Background(), assertion)
	require.NoError(t, err)
	assert.Equal(t, "jane_roe_crm", username)
}
