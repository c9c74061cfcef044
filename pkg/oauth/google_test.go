package oauth

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsConfigured(t *testing.T) {
	empty := NewGoogleOAuthService(GoogleOAuthConfig{})
	assert.False(t, empty.IsConfigured())

	svc := NewGoogleOAuthService(GoogleOAuthConfig{
		ClientID:     "client-id",
		ClientSecret: "client-secret",
		RedirectURL:  "http://localhost/callback",
	})
	assert.True(t, svc.IsConfigured())
}

func TestGetAuthURL(t *testing.T) {
	svc := NewGoogleOAuthService(GoogleOAuthConfig{
		ClientID:     "client-id",
		ClientSecret: "client-secret",
		RedirectURL:  "http://localhost/callback",
	})

	url := svc.GetAuthURL("anti-csrf-token")
	assert.True(t, strings.Contains(url, "state=anti-csrf-token"))
	assert.True(t, strings.Contains(url, "client_id=client-id"))
	assert.True(t, strings.Contains(url, "access_type=offline"))
}

func TestExchangeCodeUnconfigured(t *testing.T) {
	svc := NewGoogleOAuthService(GoogleOAuthConfig{})

	_, err := svc.ExchangeCode(context.Background(), "some-code")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotConfigured)
}
