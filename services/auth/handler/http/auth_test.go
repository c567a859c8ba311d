package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aquashield/crm/internal/pkg/models"
	"github.com/aquashield/crm/internal/pkg/oauth"
	"github.com/aquashield/crm/services/auth"
	"github.com/aquashield/crm/services/auth/mocks"
)

func setupAuthHandlerTest(t *testing.T) (*AuthHandler, *mocks.MockAuthUC, *models.Config) {
	t.Helper()

	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	cfg := &models.Config{}
	cfg.Auth.MaxAttempts = 5
	cfg.Auth.RedirectURL = "/dashboard"
	cfg.Auth.LoginURL = "/login"

	mockUC := mocks.NewMockAuthUC(ctrl)
	handler := NewAuthHandler(mockUC, oauth.NewRegistry(models.OAuthConfig{}), cfg)
	return handler, mockUC, cfg
}

func newJSONContext(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestSendOTP_Success(t *testing.T) {
	handler, mockUC, _ := setupAuthHandlerTest(t)

	c, rec := newJSONContext(http.MethodPost, "/auth/otp/send", `{"identifier": "john@example.com"}`)

	mockUC.EXPECT().
		SendOTP(gomock.Any(), "john@example.com", gomock.Any()).
		Return(nil)

	require.NoError(t, handler.SendOTP(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.NotEmpty(t, response["message"])
}

func TestSendOTP_InvalidIdentifier(t *testing.T) {
	handler, _, _ := setupAuthHandlerTest(t)

	c, rec := newJSONContext(http.MethodPost, "/auth/otp/send", `{"identifier": "not-an-email"}`)

	require.NoError(t, handler.SendOTP(c))
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var response struct {
		Errors map[string][]string `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.NotEmpty(t, response.Errors["identifier"])
}

func TestSendOTP_RateLimited(t *testing.T) {
	handler, mockUC, _ := setupAuthHandlerTest(t)

	c, rec := newJSONContext(http.MethodPost, "/auth/otp/send", `{"identifier": "john@example.com"}`)

	mockUC.EXPECT().
		SendOTP(gomock.Any(), "john@example.com", gomock.Any()).
		Return(&auth.RateLimitedError{RetryAfter: 42})

	require.NoError(t, handler.SendOTP(c))
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "42", rec.Header().Get("Retry-After"))
	assert.Equal(t, "5", rec.Header().Get("X-RateLimit-Limit"))

	var response struct {
		Message    string `json:"message"`
		RetryAfter int    `json:"retry_after"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Equal(t, 42, response.RetryAfter)
	assert.Contains(t, response.Message, "42")
}

func TestVerifyOTP_Success(t *testing.T) {
	handler, mockUC, _ := setupAuthHandlerTest(t)

	c, rec := newJSONContext(http.MethodPost, "/auth/otp/verify",
		`{"identifier": "john@example.com", "otp": "123456"}`)

	userID := uuid.NewString()
	mockUC.EXPECT().
		VerifyOTP(gomock.Any(), "john@example.com", "123456", gomock.Any()).
		Return(&models.AuthResponse{
			Message:  "Authentication successful",
			Redirect: "/dashboard",
			Token:    "jwt-token",
			UserID:   userID,
		}, nil)

	require.NoError(t, handler.VerifyOTP(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var response models.AuthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Equal(t, "jwt-token", response.Token)
	assert.Equal(t, userID, response.UserID)
	assert.Equal(t, "/dashboard", response.Redirect)
}

func TestVerifyOTP_InvalidCode(t *testing.T) {
	handler, mockUC, _ := setupAuthHandlerTest(t)

	c, rec := newJSONContext(http.MethodPost, "/auth/otp/verify",
		`{"identifier": "john@example.com", "otp": "000000"}`)

	mockUC.EXPECT().
		VerifyOTP(gomock.Any(), "john@example.com", "000000", gomock.Any()).
		Return(nil, auth.ErrInvalidOtp)

	require.NoError(t, handler.VerifyOTP(c))
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var response struct {
		Errors map[string][]string `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	require.Len(t, response.Errors["otp"], 1)
	assert.Equal(t, "Invalid or expired code. Please try again.", response.Errors["otp"][0])
}

func TestVerifyOTP_UnknownUserLooksLikeInvalidCode(t *testing.T) {
	handler, mockUC, _ := setupAuthHandlerTest(t)

	c, rec := newJSONContext(http.MethodPost, "/auth/otp/verify",
		`{"identifier": "ghost@example.com", "otp": "123456"}`)

	mockUC.EXPECT().
		VerifyOTP(gomock.Any(), "ghost@example.com", "123456", gomock.Any()).
		Return(nil, auth.ErrUserNotFound)

	require.NoError(t, handler.VerifyOTP(c))
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var response struct {
		Errors map[string][]string `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	require.Len(t, response.Errors["otp"], 1)
	assert.Equal(t, "Invalid or expired code. Please try again.", response.Errors["otp"][0])
}

func TestVerifyOTP_RateLimited(t *testing.T) {
	handler, mockUC, _ := setupAuthHandlerTest(t)

	c, rec := newJSONContext(http.MethodPost, "/auth/otp/verify",
		`{"identifier": "john@example.com", "otp": "123456"}`)

	mockUC.EXPECT().
		VerifyOTP(gomock.Any(), "john@example.com", "123456", gomock.Any()).
		Return(nil, &auth.RateLimitedError{RetryAfter: 17})

	require.NoError(t, handler.VerifyOTP(c))
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "17", rec.Header().Get("Retry-After"))
}

func TestVerifyPasswordResetOTP_Success(t *testing.T) {
	handler, mockUC, _ := setupAuthHandlerTest(t)

	c, rec := newJSONContext(http.MethodPost, "/auth/password-reset/verify",
		`{"email": "john@example.com", "otp": "123456"}`)

	mockUC.EXPECT().
		VerifyPasswordResetOTP(gomock.Any(), "john@example.com", "123456", gomock.Any()).
		Return(&models.ResetTokenResponse{
			Message: "Code verified. You may now reset your password.",
			Token:   strings.Repeat("x", 64),
		}, nil)

	require.NoError(t, handler.VerifyPasswordResetOTP(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var response models.ResetTokenResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Len(t, response.Token, 64)
}

func TestSendPasswordResetOTP_InvalidEmail(t *testing.T) {
	handler, _, _ := setupAuthHandlerTest(t)

	c, rec := newJSONContext(http.MethodPost, "/auth/password-reset/send", `{"email": "nope"}`)

	require.NoError(t, handler.SendPasswordResetOTP(c))
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestOAuthRedirect_UnknownProvider(t *testing.T) {
	handler, _, _ := setupAuthHandlerTest(t)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/auth/oauth/myspace", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("provider")
	c.SetParamValues("myspace")

	require.NoError(t, handler.OAuthRedirect(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestOAuthCallback_StateMismatch(t *testing.T) {
	handler, _, _ := setupAuthHandlerTest(t)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/auth/oauth/google/callback?code=abc&state=evil", nil)
	req.AddCookie(&http.Cookie{Name: stateCookieName, Value: "expected"})
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("provider")
	c.SetParamValues("google")

	require.NoError(t, handler.OAuthCallback(c))
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/login?error=invalid_state", rec.Header().Get("Location"))
}

func TestOAuthCallback_ProviderDeniedBouncesToLogin(t *testing.T) {
	handler, _, _ := setupAuthHandlerTest(t)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/auth/oauth/google/callback?error=access_denied", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("provider")
	c.SetParamValues("google")

	require.NoError(t, handler.OAuthCallback(c))
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/login?error=access_denied", rec.Header().Get("Location"))
}

func TestOAuthCallback_Success(t *testing.T) {
	handler, mockUC, _ := setupAuthHandlerTest(t)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/auth/oauth/google/callback?code=abc&state=expected", nil)
	req.AddCookie(&http.Cookie{Name: stateCookieName, Value: "expected"})
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("provider")
	c.SetParamValues("google")

	mockUC.EXPECT().
		OAuthLogin(gomock.Any(), "google", "abc", gomock.Any()).
		Return(&models.AuthResponse{
			Token:    "jwt-token",
			Redirect: "/dashboard",
			UserID:   uuid.NewString(),
		}, nil)

	require.NoError(t, handler.OAuthCallback(c))
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/dashboard", rec.Header().Get("Location"))

	cookies := rec.Result().Cookies()
	var tokenCookie *http.Cookie
	for _, cookie := range cookies {
		if cookie.Name == "token" {
			tokenCookie = cookie
		}
	}
	require.NotNil(t, tokenCookie)
	assert.Equal(t, "jwt-token", tokenCookie.Value)
	assert.True(t, tokenCookie.HttpOnly)
}

func TestOAuthCallback_AssertionFailureBouncesToLogin(t *testing.T) {
	handler, mockUC, _ := setupAuthHandlerTest(t)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/auth/oauth/google/callback?code=abc&state=expected", nil)
	req.AddCookie(&http.Cookie{Name: stateCookieName, Value: "expected"})
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("provider")
	c.SetParamValues("google")

	mockUC.EXPECT().
		OAuthLogin(gomock.Any(), "google", "abc", gomock.Any()).
		Return(nil, &auth.ProviderAssertionError{Provider: "google", Err: errors.New("invalid_grant")})

	require.NoError(t, handler.OAuthCallback(c))
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/login?error=oauth_failed", rec.Header().Get("Location"))
}

func TestMe_Success(t *testing.T) {
	handler, mockUC, _ := setupAuthHandlerTest(t)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	userID := uuid.New()
	c.Set("user_id", userID.String())

	mockUC.EXPECT().
		Profile(gomock.Any(), userID.String()).
		Return(&models.Account{ID: userID, Username: "johndoe", FirstName: "John"}, nil)

	require.NoError(t, handler.Me(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Equal(t, "johndoe", response["username"])

	// The password hash never serializes.
	_, leaked := response["password_hash"]
	assert.False(t, leaked)
}
