package google

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"

	"golang.org/x/oauth2"
	googleoauth "golang.org/x/oauth2/google"
)

// ErrNotAuthenticated indicates no OAuth token has been stored yet.
var ErrNotAuthenticated = errors.New("google: user not authenticated")

// Scopes requested during the OAuth flow. Read-only access is enough
// for relaying events and tasks.
var DefaultScopes = []string{
	"https://www.googleapis.com/auth/calendar.readonly",
	"https://www.googleapis.com/auth/tasks.readonly",
}

// Authenticator runs the authorization-code flow and holds the
// resulting token for a single user. This is deliberately demo-grade:
// one token slot, in memory only.
type Authenticator struct {
	config *oauth2.Config

	mu    sync.RWMutex
	token *oauth2.Token
}

// NewAuthenticator builds an authenticator from explicit credentials.
func NewAuthenticator(clientID, clientSecret, redirectURL string) *Authenticator {
	return &Authenticator{
		config: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURL,
			Scopes:       DefaultScopes,
			Endpoint:     googleoauth.Endpoint,
		},
	}
}

// NewAuthenticatorFromEnv reads CLIENT_ID, CLIENT_SECRET and
// GOOGLE_REDIRECT_URI from the environment.
func NewAuthenticatorFromEnv() (*Authenticator, error) {
	clientID := os.Getenv("CLIENT_ID")
	clientSecret := os.Getenv("CLIENT_SECRET")
	if clientID == "" || clientSecret == "" {
		return nil, errors.New("google: CLIENT_ID and CLIENT_SECRET must be set")
	}
	return NewAuthenticator(clientID, clientSecret, os.Getenv("GOOGLE_REDIRECT_URI")), nil
}

// AuthURL returns the consent page URL for the given state.
func (a *Authenticator) AuthURL(state string) string {
	return a.config.AuthCodeURL(state, oauth2.AccessTypeOffline)
}

// Exchange trades an authorization code for a token and stores it.
func (a *Authenticator) Exchange(ctx context.Context, code string) error {
	token, err := a.config.Exchange(ctx, code)
	if err != nil {
		return fmt.Errorf("google: exchange authorization code: %w", err)
	}

	a.mu.Lock()
	a.token = token
	a.mu.Unlock()
	return nil
}

// Authenticated reports whether a token has been stored.
func (a *Authenticator) Authenticated() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.token != nil
}

// TokenSource returns a refreshing token source for the stored token.
// Fails with ErrNotAuthenticated when no token has been exchanged yet.
func (a *Authenticator) TokenSource(ctx context.Context) (oauth2.TokenSource, error) {
	a.mu.RLock()
	token := a.token
	a.mu.RUnlock()

	if token == nil {
		return nil, ErrNotAuthenticated
	}
	return a.config.TokenSource(ctx, token), nil
}
