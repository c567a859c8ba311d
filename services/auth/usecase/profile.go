package usecase

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/aquashield/crm/internal/pkg/models"
	"github.com/aquashield/crm/services/auth"
)

// Profile returns the account behind an authenticated session
func (uc *AuthUC) Profile(ctx context.Context, userID string) (*models.Account, error) {
	id, err := uuid.Parse(userID)
	if err != nil {
		return nil, auth.ErrUserNotFound
	}

	account, err := uc.accountRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load account: %w", err)
	}
	if account == nil {
		return nil, auth.ErrUserNotFound
	}
	return account, nil
}
