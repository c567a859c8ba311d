package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/aquashield/crm/internal/pkg/models"
)

const accountColumns = `id, username, first_name, last_name, email, phone,
	email_verified_at, password_hash, avatar_url, created_at, updated_at`

// GetByEmailOrPhone finds an account whose email or phone matches the
// identifier. Returns (nil, nil) when no account matches.
func (r *AccountRepo) GetByEmailOrPhone(ctx context.Context, identifier string) (*models.Account, error) {
	query := fmt.Sprintf(`SELECT %s FROM accounts WHERE email = $1 OR phone = $1`, accountColumns)

	var account models.Account
	err := r.db.GetContext(ctx, &account, query, identifier)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get account by identifier: %w", err)
	}
	return &account, nil
}

// GetByEmail finds an account by email. Returns (nil, nil) when no
// account matches.
func (r *AccountRepo) GetByEmail(ctx context.Context, email string) (*models.Account, error) {
	query := fmt.Sprintf(`SELECT %s FROM accounts WHERE email = $1`, accountColumns)

	var account models.Account
	err := r.db.GetContext(ctx, &account, query, email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get account by email: %w", err)
	}
	return &account, nil
}

// GetByID finds an account by primary key. Returns (nil, nil) when no
// account matches.
func (r *AccountRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Account, error) {
	query := fmt.Sprintf(`SELECT %s FROM accounts WHERE id = $1`, accountColumns)

	var account models.Account
	err := r.db.GetContext(ctx, &account, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get account by id: %w", err)
	}
	return &account, nil
}

// ExistsByUsername reports whether a username is already taken
func (r *AccountRepo) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists,
		`SELECT EXISTS(SELECT 1 FROM accounts WHERE username = $1)`, username)
	if err != nil {
		return false, fmt.Errorf("failed to check username: %w", err)
	}
	return exists, nil
}

// Create inserts a new account
func (r *AccountRepo) Create(ctx context.Context, account *models.Account) error {
	if account.ID == uuid.Nil {
		account.ID = uuid.New()
	}
	now := time.Now()
	if account.CreatedAt.IsZero() {
		account.CreatedAt = now
	}
	account.UpdatedAt = now

	_, err := r.db.NamedExecContext(ctx, `
		INSERT INTO accounts (id, username, first_name, last_name, email, phone,
			email_verified_at, password_hash, avatar_url, created_at, updated_at)
		VALUES (:id, :username, :first_name, :last_name, :email, :phone,
			:email_verified_at, :password_hash, :avatar_url, :created_at, :updated_at)`,
		account)
	if err != nil {
		return fmt.Errorf("failed to create account: %w", err)
	}
	return nil
}

// CreateWithProviderLink inserts a new account and its first provider
// link in a single transaction
func (r *AccountRepo) CreateWithProviderLink(ctx context.Context, account *models.Account, link *models.ProviderLink) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if account.ID == uuid.Nil {
		account.ID = uuid.New()
	}
	now := time.Now()
	if account.CreatedAt.IsZero() {
		account.CreatedAt = now
	}
	account.UpdatedAt = now

	if _, err := tx.NamedExecContext(ctx, `
		INSERT INTO accounts (id, username, first_name, last_name, email, phone,
			email_verified_at, password_hash, avatar_url, created_at, updated_at)
		VALUES (:id, :username, :first_name, :last_name, :email, :phone,
			:email_verified_at, :password_hash, :avatar_url, :created_at, :updated_at)`,
		account); err != nil {
		return fmt.Errorf("failed to create account: %w", err)
	}

	link.AccountID = account.ID
	if err := insertProviderLink(ctx, tx, link); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
