package handler

import (
	"github.com/golang-jwt/jwt/v4"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	"github.com/aquashield/crm/internal/pkg/models"
	"github.com/aquashield/crm/services/auth/handler/http"
)

// Handler coordinates the HTTP handlers for the auth service
type Handler struct {
	authHandler *http.AuthHandler
	cfg         *models.Config
}

// NewHandler creates and initializes all handlers
func NewHandler(authHandler *http.AuthHandler, cfg *models.Config) *Handler {
	return &Handler{
		authHandler: authHandler,
		cfg:         cfg,
	}
}

// GetJWTMiddleware returns the configured JWT middleware for HTTP requests
func (h *Handler) GetJWTMiddleware() echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		SigningKey: []byte(h.cfg.JWT.Secret),
		SuccessHandler: func(c echo.Context) {
			authHeader := c.Request().Header.Get("Authorization")
			if len(authHeader) > 7 && authHeader[:7] == "Bearer " {
				token, err := jwt.Parse(authHeader[7:], func(token *jwt.Token) (interface{}, error) {
					return []byte(h.cfg.JWT.Secret), nil
				})
				if err == nil && token.Valid {
					if claims, ok := token.Claims.(jwt.MapClaims); ok {
						if userID, exists := claims["user_id"]; exists {
							c.Set("user_id", userID)
						}
						if username, exists := claims["username"]; exists {
							c.Set("username", username)
						}
					}
				}
			}
		},
	})
}

// RegisterRoutes registers all routes
func (h *Handler) RegisterRoutes(e *echo.Echo) {
	// Public routes (no authentication required)
	authGroup := e.Group("/auth")
	authGroup.POST("/otp/send", h.authHandler.SendOTP)
	authGroup.POST("/otp/verify", h.authHandler.VerifyOTP)
	authGroup.POST("/password-reset/send", h.authHandler.SendPasswordResetOTP)
	authGroup.POST("/password-reset/verify", h.authHandler.VerifyPasswordResetOTP)
	authGroup.GET("/oauth/:provider", h.authHandler.OAuthRedirect)
	authGroup.GET("/oauth/:provider/callback", h.authHandler.OAuthCallback)

	// Protected routes with JWT middleware
	protected := e.Group("", h.GetJWTMiddleware())
	protected.GET("/me", h.authHandler.Me)
}
