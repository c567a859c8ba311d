package oauth

import (
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aquashield/crm/internal/pkg/models"
)

func TestNewRegistry_SkipsUnconfiguredProviders(t *testing.T) {
	cfg := models.OAuthConfig{}
	cfg.Google.ClientID = "google-client"
	cfg.Google.RedirectURL = "https://crm.example.com/auth/oauth/google/callback"

	registry := NewRegistry(cfg)

	_, err := registry.Driver("google")
	assert.NoError(t, err)

	_, err = registry.Driver("github")
	assert.ErrorIs(t, err, ErrUnsupportedProvider)

	_, err = registry.Driver("myspace")
	assert.ErrorIs(t, err, ErrUnsupportedProvider)
}

func TestGoogleAuthURL(t *testing.T) {
	driver := NewGoogle(models.OAuthProviderConfig{
		ClientID:    "google-client",
		RedirectURL: "https://crm.example.com/auth/oauth/google/callback",
	})

	raw := driver.AuthURL("state-token")
	u, err := url.Parse(raw)
	require.NoError(t, err)

	assert.Equal(t, "accounts.google.com", u.Host)
	q := u.Query()
	assert.Equal(t, "google-client", q.Get("client_id"))
	assert.Equal(t, "code", q.Get("response_type"))
	assert.Equal(t, "state-token", q.Get("state"))
	assert.True(t, strings.Contains(q.Get("scope"), "email"))
}

func TestGitHubAuthURL(t *testing.T) {
	driver := NewGitHub(models.OAuthProviderConfig{
		ClientID:    "github-client",
		RedirectURL: "https://crm.example.com/auth/oauth/github/callback",
	})

	raw := driver.AuthURL("state-token")
	u, err := url.Parse(raw)
	require.NoError(t, err)

	assert.Equal(t, "github.com", u.Host)
	q := u.Query()
	assert.Equal(t, "github-client", q.Get("client_id"))
	assert.Equal(t, "state-token", q.Get("state"))
	assert.True(t, strings.Contains(q.Get("scope"), "user:email"))
}
