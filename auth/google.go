package auth

import (
	"context"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"net/http"
	"sync"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/tournamentfox/web/api"
	"github.com/tournamentfox/web/internal/config"
	weberrors "github.com/tournamentfox/web/internal/errors"
	"github.com/tournamentfox/web/session"
	"golang.org/x/oauth2"
)

const (
	googleBridgeEndpoint = "/api/auth/oauth2/google"
	googleIssuer         = "https://accounts.google.com"
)

// googleEndpoint pins the exact authorization and token URLs the original
// integration was registered against.
var googleEndpoint = oauth2.Endpoint{
	AuthURL:  "https://accounts.google.com/o/oauth2/v2/auth",
	TokenURL: "https://oauth2.googleapis.com/token",
}

// GoogleFlow drives the OAuth2 authorization-code flow with PKCE against
// Google and bridges the provider token into a backend session. The PKCE
// verifier lives in a short-lived HttpOnly cookie between the two legs of
// the flow.
type GoogleFlow struct {
	oauth   *oauth2.Config
	api     *api.Client
	cookies *session.Manager

	verifierOnce sync.Once
	verifier     *oidc.IDTokenVerifier
	verifierErr  error
}

func NewGoogleFlow(cfg config.Config, apiClient *api.Client, cookies *session.Manager) *GoogleFlow {
	return &GoogleFlow{
		oauth: &oauth2.Config{
			ClientID:     cfg.GetGoogleClientID(),
			ClientSecret: cfg.GetGoogleClientSecret(),
			RedirectURL:  cfg.GetGoogleRedirectURI(),
			Endpoint:     googleEndpoint,
			Scopes:       []string{oidc.ScopeOpenID, "email", "profile"},
		},
		api:     apiClient,
		cookies: cookies,
	}
}

// GenerateCodeVerifier creates the PKCE verifier: 32 random bytes,
// base64url-encoded without padding.
func GenerateCodeVerifier() string {
	return oauth2.GenerateVerifier()
}

// GenerateCodeChallenge derives the S256 challenge for a verifier:
// base64url(SHA-256(verifier)) without padding.
func GenerateCodeChallenge(verifier string) string {
	hash := sha256.Sum256([]byte(verifier))
	return base64.RawURLEncoding.EncodeToString(hash[:])
}

// Begin stores a fresh verifier in the PKCE cookie and redirects the user
// agent to Google's consent screen.
func (g *GoogleFlow) Begin(w http.ResponseWriter, r *http.Request) {
	verifier := GenerateCodeVerifier()
	g.cookies.SetVerifier(w, verifier)

	authURL := g.oauth.AuthCodeURL("",
		oauth2.AccessTypeOffline,
		oauth2.SetAuthURLParam("prompt", "consent"),
		oauth2.S256ChallengeOption(verifier),
	)
	http.Redirect(w, r, authURL, http.StatusFound)
}

// Exchange trades the authorization code plus verifier for provider tokens.
func (g *GoogleFlow) Exchange(ctx context.Context, code, verifier string) (*oauth2.Token, error) {
	token, err := g.oauth.Exchange(ctx, code, oauth2.VerifierOption(verifier))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", weberrors.ErrTokenExchange, err)
	}
	if token.AccessToken == "" {
		return nil, weberrors.ErrTokenExchange
	}
	return token, nil
}

// VerifyIDToken checks the signature and audience of the ID token riding
// along with the provider response. Tokens without an id_token pass through
// untouched; the backend bridge re-validates the access token anyway.
func (g *GoogleFlow) VerifyIDToken(ctx context.Context, token *oauth2.Token) error {
	rawIDToken, ok := token.Extra("id_token").(string)
	if !ok || rawIDToken == "" {
		return nil
	}

	verifier, err := g.idTokenVerifier(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", weberrors.ErrTokenExchange, err)
	}
	if _, err := verifier.Verify(ctx, rawIDToken); err != nil {
		return fmt.Errorf("%w: id token verification: %v", weberrors.ErrTokenExchange, err)
	}
	return nil
}

func (g *GoogleFlow) idTokenVerifier(ctx context.Context) (*oidc.IDTokenVerifier, error) {
	g.verifierOnce.Do(func() {
		provider, err := oidc.NewProvider(ctx, googleIssuer)
		if err != nil {
			g.verifierErr = fmt.Errorf("[GoogleFlow] oidc discovery: %w", err)
			return
		}
		g.verifier = provider.Verifier(&oidc.Config{ClientID: g.oauth.ClientID})
	})
	return g.verifier, g.verifierErr
}

// BridgeLogin exchanges the provider access token for this system's own
// session via the backend OAuth bridge.
func (g *GoogleFlow) BridgeLogin(ctx context.Context, providerAccessToken string) api.Result[AuthResponse] {
	return api.FetchData[AuthResponse](ctx, g.api, http.MethodPost, googleBridgeEndpoint, nil, map[string]string{
		"accessToken": providerAccessToken,
	})
}

// WithOAuthEndpoint swaps the provider endpoint, used by tests to point the
// flow at a local token server.
func (g *GoogleFlow) WithOAuthEndpoint(endpoint oauth2.Endpoint) *GoogleFlow {
	g.oauth.Endpoint = endpoint
	return g
}
