package http

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/aquashield/crm/internal/pkg/logger"
	"github.com/aquashield/crm/internal/pkg/models"
	"github.com/aquashield/crm/internal/pkg/oauth"
	"github.com/aquashield/crm/internal/utils"
	"github.com/aquashield/crm/services/auth"
)

const (
	otpRejectionMessage = "Invalid or expired code. Please try again."
	otpSentMessage      = "If the identifier is registered, a verification code has been sent."

	stateCookieName = "oauth_state"
	stateCookieTTL  = 10 * time.Minute
)

// AuthHandler handles authentication HTTP requests
type AuthHandler struct {
	authUC    auth.AuthUC
	providers *oauth.Registry
	cfg       *models.Config
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authUC auth.AuthUC, providers *oauth.Registry, cfg *models.Config) *AuthHandler {
	return &AuthHandler{
		authUC:    authUC,
		providers: providers,
		cfg:       cfg,
	}
}

func requestMeta(c echo.Context) models.RequestMeta {
	return models.RequestMeta{
		IPAddress: c.RealIP(),
		UserAgent: c.Request().UserAgent(),
		Route:     c.Path(),
	}
}

// SendOTP handles POST /auth/otp/send
func (h *AuthHandler) SendOTP(c echo.Context) error {
	var req models.SendOTPRequest
	if err := c.Bind(&req); err != nil {
		return utils.BadRequestResponse(c, "Invalid request format")
	}
	if req.Identifier == "" {
		return utils.FieldErrorResponse(c, "identifier", "The identifier field is required.")
	}
	if !utils.IsValidEmail(req.Identifier) && !utils.IsValidPhoneNumber(req.Identifier) {
		return utils.FieldErrorResponse(c, "identifier", "The identifier must be a valid email address or phone number.")
	}

	if err := h.authUC.SendOTP(c.Request().Context(), req.Identifier, requestMeta(c)); err != nil {
		return h.sendError(c, err)
	}

	return utils.OKResponse(c, otpSentMessage)
}

// VerifyOTP handles POST /auth/otp/verify
func (h *AuthHandler) VerifyOTP(c echo.Context) error {
	var req models.VerifyOTPRequest
	if err := c.Bind(&req); err != nil {
		return utils.BadRequestResponse(c, "Invalid request format")
	}
	if req.Identifier == "" {
		return utils.FieldErrorResponse(c, "identifier", "The identifier field is required.")
	}
	if req.OTP == "" {
		return utils.FieldErrorResponse(c, "otp", "The otp field is required.")
	}

	resp, err := h.authUC.VerifyOTP(c.Request().Context(), req.Identifier, req.OTP, requestMeta(c))
	if err != nil {
		return h.verifyError(c, err)
	}

	return c.JSON(http.StatusOK, resp)
}

// SendPasswordResetOTP handles POST /auth/password-reset/send
func (h *AuthHandler) SendPasswordResetOTP(c echo.Context) error {
	var req models.PasswordResetSendRequest
	if err := c.Bind(&req); err != nil {
		return utils.BadRequestResponse(c, "Invalid request format")
	}
	if req.Email == "" {
		return utils.FieldErrorResponse(c, "email", "The email field is required.")
	}
	if !utils.IsValidEmail(req.Email) {
		return utils.FieldErrorResponse(c, "email", "The email must be a valid email address.")
	}

	if err := h.authUC.SendPasswordResetOTP(c.Request().Context(), req.Email, requestMeta(c)); err != nil {
		return h.sendError(c, err)
	}

	return utils.OKResponse(c, otpSentMessage)
}

// VerifyPasswordResetOTP handles POST /auth/password-reset/verify
func (h *AuthHandler) VerifyPasswordResetOTP(c echo.Context) error {
	var req models.PasswordResetVerifyRequest
	if err := c.Bind(&req); err != nil {
		return utils.BadRequestResponse(c, "Invalid request format")
	}
	if req.Email == "" {
		return utils.FieldErrorResponse(c, "email", "The email field is required.")
	}
	if req.OTP == "" {
		return utils.FieldErrorResponse(c, "otp", "The otp field is required.")
	}

	resp, err := h.authUC.VerifyPasswordResetOTP(c.Request().Context(), req.Email, req.OTP, requestMeta(c))
	if err != nil {
		return h.verifyError(c, err)
	}

	return c.JSON(http.StatusOK, resp)
}

// OAuthRedirect handles GET /auth/oauth/:provider and sends the browser
// to the provider's consent screen.
func (h *AuthHandler) OAuthRedirect(c echo.Context) error {
	driver, err := h.providers.Driver(c.Param("provider"))
	if err != nil {
		return utils.NotFoundResponse(c, "Unknown authentication provider")
	}

	state, err := utils.GenerateRandomString(32)
	if err != nil {
		logger.Error("Failed to generate oauth state", logger.Err(err))
		return utils.InternalServerErrorResponse(c, "")
	}

	c.SetCookie(&http.Cookie{
		Name:     stateCookieName,
		Value:    state,
		Path:     "/auth/oauth",
		MaxAge:   int(stateCookieTTL / time.Second),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	return c.Redirect(http.StatusFound, driver.AuthURL(state))
}

// OAuthCallback handles GET /auth/oauth/:provider/callback. Failures
// bounce the browser back to the login page with an error code; only an
// unknown provider gets an API-shaped response.
func (h *AuthHandler) OAuthCallback(c echo.Context) error {
	provider := c.Param("provider")

	if errCode := c.QueryParam("error"); errCode != "" {
		return h.loginRedirect(c, errCode)
	}

	cookie, err := c.Cookie(stateCookieName)
	if err != nil || cookie.Value == "" || cookie.Value != c.QueryParam("state") {
		return h.loginRedirect(c, "invalid_state")
	}

	code := c.QueryParam("code")
	if code == "" {
		return h.loginRedirect(c, "missing_code")
	}

	resp, err := h.authUC.OAuthLogin(c.Request().Context(), provider, code, requestMeta(c))
	if err != nil {
		if errors.Is(err, auth.ErrUnsupportedProvider) {
			return utils.NotFoundResponse(c, "Unknown authentication provider")
		}

		var assertionErr *auth.ProviderAssertionError
		if errors.As(err, &assertionErr) {
			logger.Warn("OAuth assertion failed",
				logger.String("provider", provider),
				logger.Err(err))
			return h.loginRedirect(c, "oauth_failed")
		}

		logger.Error("OAuth login failed",
			logger.String("provider", provider),
			logger.Err(err))
		return h.loginRedirect(c, "server_error")
	}

	c.SetCookie(&http.Cookie{
		Name:     "token",
		Value:    resp.Token,
		Path:     "/",
		Expires:  time.Unix(resp.ExpiresAt, 0),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	return c.Redirect(http.StatusFound, resp.Redirect)
}

// Me handles GET /me
func (h *AuthHandler) Me(c echo.Context) error {
	userID, _ := c.Get("user_id").(string)
	if userID == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid token")
	}

	account, err := h.authUC.Profile(c.Request().Context(), userID)
	if err != nil {
		if errors.Is(err, auth.ErrUserNotFound) {
			return utils.NotFoundResponse(c, "Account not found")
		}
		logger.Error("Failed to load profile", logger.Err(err))
		return utils.InternalServerErrorResponse(c, "")
	}

	return c.JSON(http.StatusOK, account)
}

// sendError maps usecase errors for the two send endpoints
func (h *AuthHandler) sendError(c echo.Context, err error) error {
	var limited *auth.RateLimitedError
	if errors.As(err, &limited) {
		return utils.TooManyRequestsResponse(c, h.cfg.Auth.MaxAttempts, limited.RetryAfter)
	}

	logger.Error("Failed to send verification code", logger.Err(err))
	return utils.InternalServerErrorResponse(c, "")
}

// verifyError maps usecase errors for the two verify endpoints. Unknown
// users and bad codes share one message so the endpoint cannot be used
// to enumerate accounts.
func (h *AuthHandler) verifyError(c echo.Context, err error) error {
	var limited *auth.RateLimitedError
	if errors.As(err, &limited) {
		return utils.TooManyRequestsResponse(c, h.cfg.Auth.MaxAttempts, limited.RetryAfter)
	}

	if errors.Is(err, auth.ErrInvalidOtp) || errors.Is(err, auth.ErrUserNotFound) {
		return utils.FieldErrorResponse(c, "otp", otpRejectionMessage)
	}

	logger.Error("Failed to verify code", logger.Err(err))
	return utils.InternalServerErrorResponse(c, "")
}

func (h *AuthHandler) loginRedirect(c echo.Context, errCode string) error {
	loginURL := h.cfg.Auth.LoginURL
	if loginURL == "" {
		loginURL = "/login"
	}
	return c.Redirect(http.StatusFound, fmt.Sprintf("%s?error=%s", loginURL, url.QueryEscape(errCode)))
}
