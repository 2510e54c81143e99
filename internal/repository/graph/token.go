package graph

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"
)

// expirySkew keeps a token from being handed out right before it lapses
// mid-request.
const expirySkew = 60 * time.Second

// TokenCache holds a client-credential access token together with its expiry.
// It is injected into the Client so tests and multi-client setups control the
// cache's lifetime explicitly.
type TokenCache struct {
	mu          sync.Mutex
	accessToken string
	expiresAt   time.Time
	now         func() time.Time
}

// NewTokenCache builds an empty token cache.
func NewTokenCache() *TokenCache {
	return &TokenCache{now: time.Now}
}

// Get returns the cached token when still valid, otherwise calls fetch and
// caches its result.
func (t *TokenCache) Get(ctx context.Context, fetch func(ctx context.Context) (string, time.Duration, error)) (string, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.accessToken != "" && t.now().Before(t.expiresAt.Add(-expirySkew)) {
		return t.accessToken, nil
	}

	token, ttl, err := fetch(ctx)
	if err != nil {
		return "", err
	}

	t.accessToken = token
	t.expiresAt = t.now().Add(ttl)
	return token, nil
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
}

type tokenError struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
}

// fetchToken performs the OAuth2 client-credentials exchange against the
// tenant's token endpoint.
func (c *Client) fetchToken(ctx context.Context) (string, time.Duration, error) {
	result := new(tokenResponse)
	apiErr := new(tokenError)

	resp, err := c.login.R().
		SetContext(ctx).
		SetFormData(map[string]string{
			"client_id":     c.cfg.ClientID,
			"client_secret": c.cfg.ClientSecret,
			"grant_type":    "client_credentials",
			"scope":         c.cfg.Scope,
		}).
		SetResult(result).
		SetError(apiErr).
		Post(fmt.Sprintf("/%s/oauth2/v2.0/token", c.cfg.TenantID))
	if err != nil {
		return "", 0, fmt.Errorf("token request: %w", err)
	}

	if resp.StatusCode() >= http.StatusBadRequest {
		return "", 0, fmt.Errorf("token request failed: status=%d error=%s %s", resp.StatusCode(), apiErr.Error, apiErr.ErrorDescription)
	}

	if result.AccessToken == "" {
		return "", 0, fmt.Errorf("token response contained no access token")
	}

	ttl := time.Duration(result.ExpiresIn) * time.Second
	if ttl <= 0 {
		ttl = time.Hour
	}
	return result.AccessToken, ttl, nil
}
