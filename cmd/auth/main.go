package main

import (
	"log"
	"os"

	"github.com/labstack/echo/v4"

	"github.com/aquashield/crm/internal/pkg/config"
	"github.com/aquashield/crm/internal/pkg/database"
	"github.com/aquashield/crm/internal/pkg/health"
	"github.com/aquashield/crm/internal/pkg/logger"
	"github.com/aquashield/crm/internal/pkg/middleware"
	nsqpkg "github.com/aquashield/crm/internal/pkg/nsq"
	"github.com/aquashield/crm/internal/pkg/oauth"
	"github.com/aquashield/crm/internal/pkg/server"
	"github.com/aquashield/crm/services/auth/gateway"
	"github.com/aquashield/crm/services/auth/handler"
	httpHandler "github.com/aquashield/crm/services/auth/handler/http"
	"github.com/aquashield/crm/services/auth/repository"
	"github.com/aquashield/crm/services/auth/usecase"
)

func main() {
	appName := "auth-service"

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/auth.env"
	}
	configs := config.InitConfig(configPath)

	zapLogger, err := logger.InitZapLoggerFromConfig(configs)
	if err != nil {
		log.Fatalf("Failed to create Zap logger: %v", err)
	}
	defer zapLogger.Close()

	zapLogger.Info("Starting application",
		logger.String("app", appName),
		logger.String("version", configs.App.Version),
		logger.String("environment", configs.App.Environment),
	)

	// Initialize PostgreSQL database connection
	postgresClient, err := database.NewPostgresClient(configs.Database)
	if err != nil {
		zapLogger.Fatal("Failed to connect to PostgreSQL", logger.Err(err))
	}
	defer postgresClient.Close()

	// Initialize Redis client
	redisClient, err := database.NewRedisClient(configs.Redis)
	if err != nil {
		zapLogger.Fatal("Failed to connect to Redis", logger.Err(err))
	}
	defer redisClient.Close()

	// Initialize NSQ producer
	producer, err := nsqpkg.NewProducer(configs.NSQ.Address)
	if err != nil {
		zapLogger.Fatal("Failed to connect to NSQ", logger.Err(err))
	}
	defer producer.Stop()

	// Initialize repositories
	accountRepo := repository.NewAccountRepo(configs, postgresClient.GetDB())
	secretStore := repository.NewSecretStore(redisClient)

	// Initialize gateway
	authGW := gateway.NewAuthGW(producer)

	// Initialize OAuth provider registry
	providers := oauth.NewRegistry(configs.OAuth)

	// Initialize usecase
	authUC := usecase.NewAuthUC(configs, accountRepo, secretStore, authGW, providers)

	// Initialize handlers
	authHandler := httpHandler.NewAuthHandler(authUC, providers, configs)
	h := handler.NewHandler(authHandler, configs)

	// Initialize Echo router
	e := echo.New()
	e.HideBanner = true

	e.Use(middleware.RequestIDMiddleware())
	e.Use(logger.ZapEchoMiddleware(zapLogger))

	health.RegisterHealthEndpoints(e, appName,
		health.NewPostgresChecker(postgresClient),
		health.NewRedisChecker(redisClient),
	)

	h.RegisterRoutes(e)

	srv := server.NewGracefulServer(e, zapLogger, configs.Server.Port)
	if err := srv.Start(); err != nil {
		zapLogger.Fatal("Server error", logger.Err(err))
	}
}
