package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/aquashield/crm/internal/pkg/models"
)

// InitConfig loads configuration from an env file in local environments
// and from the process environment everywhere else.
func InitConfig(configPath string) *models.Config {
	env := GetEnv("APP_ENV", "local")
	if env == "local" {
		if err := godotenv.Load(configPath); err != nil {
			log.Println("error loading config from file", err)
		}
	}
	return loadConfigFromEnv()
}

func loadConfigFromEnv() *models.Config {
	configs := &models.Config{}

	// App config
	configs.App.Name = GetEnv("APP_NAME", "aquashield-auth")
	configs.App.Environment = GetEnv("APP_ENV", "")
	configs.App.Debug = GetEnvAsBool("APP_DEBUG", true)
	configs.App.Version = GetEnv("APP_VERSION", "")

	// Server config
	configs.Server.Host = GetEnv("SERVER_HOST", "")
	configs.Server.Port = GetEnvAsInt("SERVER_PORT", 9990)
	configs.Server.ReadTimeout = GetEnvAsInt("SERVER_READ_TIMEOUT", 0)
	configs.Server.WriteTimeout = GetEnvAsInt("SERVER_WRITE_TIMEOUT", 0)
	configs.Server.ShutdownTimeout = GetEnvAsInt("SERVER_SHUTDOWN_TIMEOUT", 30)

	// Database config
	configs.Database.Host = GetEnv("DB_HOST", "")
	configs.Database.Port = GetEnvAsInt("DB_PORT", 5432)
	configs.Database.Username = GetEnv("DB_USERNAME", "")
	configs.Database.Password = GetEnv("DB_PASSWORD", "")
	configs.Database.Database = GetEnv("DB_DATABASE", "")
	configs.Database.SSLMode = GetEnv("DB_SSL_MODE", "disable")
	configs.Database.MaxConns = GetEnvAsInt("DB_MAX_CONNS", 0)
	configs.Database.IdleConns = GetEnvAsInt("DB_IDLE_CONNS", 0)

	// Redis config
	configs.Redis.Host = GetEnv("REDIS_HOST", "")
	configs.Redis.Port = GetEnvAsInt("REDIS_PORT", 6379)
	configs.Redis.Password = GetEnv("REDIS_PASSWORD", "")
	configs.Redis.DB = GetEnvAsInt("REDIS_DB", 0)
	configs.Redis.PoolSize = GetEnvAsInt("REDIS_POOL_SIZE", 0)

	// NSQ config
	configs.NSQ.Address = GetEnv("NSQ_ADDRESS", "")

	// JWT config
	configs.JWT.Secret = GetEnv("JWT_SECRET", "")
	configs.JWT.Expiration = GetEnvAsInt("JWT_EXPIRATION", 60)
	configs.JWT.Issuer = GetEnv("JWT_ISSUER", "")

	// Auth config
	configs.Auth.OTPTTLMinutes = GetEnvAsInt("AUTH_OTP_TTL_MINUTES", 10)
	configs.Auth.MaxAttempts = GetEnvAsInt("AUTH_MAX_ATTEMPTS", 5)
	configs.Auth.DecaySeconds = GetEnvAsInt("AUTH_DECAY_SECONDS", 60)
	configs.Auth.AlertCooldownMinutes = GetEnvAsInt("AUTH_ALERT_COOLDOWN_MINUTES", 15)
	configs.Auth.ResetTokenTTLMinutes = GetEnvAsInt("AUTH_RESET_TOKEN_TTL_MINUTES", 60)
	configs.Auth.RedirectURL = GetEnv("AUTH_REDIRECT_URL", "/dashboard")
	configs.Auth.LoginURL = GetEnv("AUTH_LOGIN_URL", "/login")

	// OAuth config
	configs.OAuth.Google.ClientID = GetEnv("OAUTH_GOOGLE_CLIENT_ID", "")
	configs.OAuth.Google.ClientSecret = GetEnv("OAUTH_GOOGLE_CLIENT_SECRET", "")
	configs.OAuth.Google.RedirectURL = GetEnv("OAUTH_GOOGLE_REDIRECT_URL", "")
	configs.OAuth.GitHub.ClientID = GetEnv("OAUTH_GITHUB_CLIENT_ID", "")
	configs.OAuth.GitHub.ClientSecret = GetEnv("OAUTH_GITHUB_CLIENT_SECRET", "")
	configs.OAuth.GitHub.RedirectURL = GetEnv("OAUTH_GITHUB_REDIRECT_URL", "")

	// Logger config
	configs.Logger.Level = GetEnv("LOG_LEVEL", "info")
	configs.Logger.FilePath = GetEnv("LOG_FILE_PATH", "")

	return configs
}

// Helper functions to get environment variables with different types

func GetEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func GetEnvAsInt(key string, defaultValue int) int {
	valueStr := GetEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid integer value for %s, using default: %d", key, defaultValue)
		return defaultValue
	}

	return value
}

func GetEnvAsBool(key string, defaultValue bool) bool {
	valueStr := GetEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid boolean value for %s, using default: %v", key, defaultValue)
		return defaultValue
	}

	return value
}
