package jwt

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	"github.com/aquashield/crm/internal/pkg/models"
)

// GenerateToken generates a signed session token for the given account.
// Remember doubles the configured expiration, matching the "remember me"
// behavior of the web login.
func GenerateToken(accountID uuid.UUID, username string, remember bool, cfg *models.Config) (string, int64, error) {
	expiration := time.Duration(cfg.JWT.Expiration) * time.Minute
	if remember {
		expiration *= 2
	}
	expiresAt := time.Now().Add(expiration).Unix()

	claims := jwt.MapClaims{
		"user_id":  accountID.String(),
		"username": username,
		"exp":      expiresAt,
		"iss":      cfg.JWT.Issuer,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString([]byte(cfg.JWT.Secret))
	if err != nil {
		return "", 0, err
	}

	return tokenString, expiresAt, nil
}

// ValidateToken validates a session token and returns its claims
func ValidateToken(tokenString string, secret string) (*jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		return &claims, nil
	}

	return nil, err
}
