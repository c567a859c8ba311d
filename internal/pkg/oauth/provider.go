// Package oauth implements authorization-code exchange against the
// supported social login providers. Providers form a closed set; each
// driver normalizes the provider response into a models.OAuthAssertion.
package oauth

import (
	"context"
	"errors"

	"github.com/aquashield/crm/internal/pkg/models"
)

// ErrUnsupportedProvider is returned for provider names outside the
// closed set below.
var ErrUnsupportedProvider = errors.New("unsupported oauth provider")

// Provider identifies a supported OAuth provider
type Provider string

const (
	ProviderGoogle Provider = "google"
	ProviderGitHub Provider = "github"
)

// Driver exchanges an authorization code for a normalized identity
// assertion. One implementation per provider.
type Driver interface {
	Name() Provider
	Scopes() []string
	AuthURL(state string) string
	Exchange(ctx context.Context, code string) (*models.OAuthAssertion, error)
}

// Registry resolves provider names to drivers
type Registry struct {
	drivers map[Provider]Driver
}

// NewRegistry builds the driver set from configuration. Providers with no
// client ID configured are left out of the registry.
func NewRegistry(cfg models.OAuthConfig) *Registry {
	r := &Registry{drivers: make(map[Provider]Driver)}
	if cfg.Google.ClientID != "" {
		r.Register(NewGoogle(cfg.Google))
	}
	if cfg.GitHub.ClientID != "" {
		r.Register(NewGitHub(cfg.GitHub))
	}
	return r
}

// Register adds a driver to the registry, replacing any driver already
// registered under the same name.
func (r *Registry) Register(d Driver) {
	r.drivers[d.Name()] = d
}

// Driver resolves a provider name to its driver
func (r *Registry) Driver(name string) (Driver, error) {
	d, ok := r.drivers[Provider(name)]
	if !ok {
		return nil, ErrUnsupportedProvider
	}
	return d, nil
}
