package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aquashield/crm/internal/pkg/models"
)

func TestGetProviderLink(t *testing.T) {
	repo, mock := setupAccountRepoTest(t)
	linkID := uuid.New()
	accountID := uuid.New()
	now := time.Now()

	rows := sqlmock.NewRows([]string{
		"id", "account_id", "provider", "provider_id", "provider_email",
		"nickname", "avatar", "token", "refresh_token", "token_expires_at",
		"created_at", "updated_at",
	}).AddRow(linkID, accountID, "google", "sub-12345", "john@example.com",
		nil, nil, "access-token", nil, nil, now, now)

	mock.ExpectQuery("FROM socialite_providers WHERE provider = \\$1 AND provider_id = \\$2").
		WithArgs("google", "sub-12345").
		WillReturnRows(rows)

	link, err := repo.GetProviderLink(context.Background(), "google", "sub-12345")
	require.NoError(t, err)
	require.NotNil(t, link)
	assert.Equal(t, linkID, link.ID)
	assert.Equal(t, accountID, link.AccountID)
	assert.Equal(t, "access-token", link.Token)
}

func TestGetProviderLink_NotFound(t *testing.T) {
	repo, mock := setupAccountRepoTest(t)

	mock.ExpectQuery("FROM socialite_providers WHERE provider = \\$1 AND provider_id = \\$2").
		WithArgs("github", "99").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	link, err := repo.GetProviderLink(context.Background(), "github", "99")
	assert.NoError(t, err)
	assert.Nil(t, link)
}

func TestCreateProviderLink(t *testing.T) {
	repo, mock := setupAccountRepoTest(t)

	mock.ExpectExec("INSERT INTO socialite_providers").
		WillReturnResult(sqlmock.NewResult(0, 1))

	link := &models.ProviderLink{
		AccountID:  uuid.New(),
		Provider:   "github",
		ProviderID: "99",
		Token:      "access-token",
	}
	err := repo.CreateProviderLink(context.Background(), link)
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, link.ID)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateProviderLinkTokens(t *testing.T) {
	repo, mock := setupAccountRepoTest(t)
	linkID := uuid.New()

	mock.ExpectExec("UPDATE socialite_providers SET").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.UpdateProviderLinkTokens(context.Background(), linkID, models.ProviderLinkUpdate{
		Token: "new-access-token",
	})
	assert.NoError(t, err)
}

func TestUpdateProviderLinkTokens_MissingLink(t *testing.T) {
	repo, mock := setupAccountRepoTest(t)
	linkID := uuid.New()

	mock.ExpectExec("UPDATE socialite_providers SET").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdateProviderLinkTokens(context.Background(), linkID, models.ProviderLinkUpdate{
		Token: "new-access-token",
	})
	assert.Error(t, err)
}
