package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/aquashield/crm/internal/pkg/models"
)

// GetProviderLink finds the link for an external identity. Returns
// (nil, nil) when the identity has never been linked.
func (r *AccountRepo) GetProviderLink(ctx context.Context, provider, providerID string) (*models.ProviderLink, error) {
	query := `SELECT id, account_id, provider, provider_id, provider_email,
		nickname, avatar, token, refresh_token, token_expires_at, created_at, updated_at
		FROM socialite_providers WHERE provider = $1 AND provider_id = $2`

	var link models.ProviderLink
	err := r.db.GetContext(ctx, &link, query, provider, providerID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get provider link: %w", err)
	}
	return &link, nil
}

// CreateProviderLink attaches an external identity to an existing account
func (r *AccountRepo) CreateProviderLink(ctx context.Context, link *models.ProviderLink) error {
	return insertProviderLink(ctx, r.db, link)
}

func insertProviderLink(ctx context.Context, e sqlx.ExtContext, link *models.ProviderLink) error {
	if link.ID == uuid.Nil {
		link.ID = uuid.New()
	}
	now := time.Now()
	if link.CreatedAt.IsZero() {
		link.CreatedAt = now
	}
	link.UpdatedAt = now

	_, err := sqlx.NamedExecContext(ctx, e, `
		INSERT INTO socialite_providers (id, account_id, provider, provider_id,
			provider_email, nickname, avatar, token, refresh_token, token_expires_at,
			created_at, updated_at)
		VALUES (:id, :account_id, :provider, :provider_id,
			:provider_email, :nickname, :avatar, :token, :refresh_token, :token_expires_at,
			:created_at, :updated_at)`,
		link)
	if err != nil {
		return fmt.Errorf("failed to create provider link: %w", err)
	}
	return nil
}

// UpdateProviderLinkTokens refreshes the stored provider tokens after a
// returning login. Nil optional fields keep the previously stored value.
func (r *AccountRepo) UpdateProviderLinkTokens(ctx context.Context, linkID uuid.UUID, update models.ProviderLinkUpdate) error {
	result, err := r.db.ExecContext(ctx, `
		UPDATE socialite_providers SET
			token = $2,
			refresh_token = COALESCE($3, refresh_token),
			nickname = COALESCE($4, nickname),
			avatar = COALESCE($5, avatar),
			token_expires_at = COALESCE($6, token_expires_at),
			updated_at = $7
		WHERE id = $1`,
		linkID, update.Token, update.RefreshToken, update.Nickname,
		update.Avatar, update.TokenExpiresAt, time.Now())
	if err != nil {
		return fmt.Errorf("failed to update provider link: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read update result: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("provider link %s not found", linkID)
	}
	return nil
}
