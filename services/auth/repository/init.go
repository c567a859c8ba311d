package repository

import (
	"github.com/jmoiron/sqlx"

	"github.com/aquashield/crm/internal/pkg/database"
	"github.com/aquashield/crm/internal/pkg/models"
)

// AccountRepo implements the account repository over PostgreSQL
type AccountRepo struct {
	cfg *models.Config
	db  *sqlx.DB
}

// NewAccountRepo creates a new account repository
func NewAccountRepo(cfg *models.Config, db *sqlx.DB) *AccountRepo {
	return &AccountRepo{
		cfg: cfg,
		db:  db,
	}
}

// SecretStore implements the TTL'd secret store over Redis
type SecretStore struct {
	redis *database.RedisClient
}

// NewSecretStore creates a new secret store
func NewSecretStore(redis *database.RedisClient) *SecretStore {
	return &SecretStore{redis: redis}
}
