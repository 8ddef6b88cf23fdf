package authapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// Client is a caller-side client for the VedaKart auth service, used by the
// storefront, admin console, and mobile backends.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewClient creates an auth service client with a sane default timeout.
func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Login exchanges credentials for a token pair. When the account has
// two-factor authentication enabled, req.TwoFACode must carry a current
// TOTP code or the call fails with ErrorCodeTwoFARequired.
func (c *Client) Login(ctx context.Context, req LoginRequest) (*TokenResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	resp, err := c.doRequest(ctx, http.MethodPost, "/v1/auth/login",
		bytes.NewReader(body), map[string]string{"Content-Type": "application/json"})
	if err != nil {
		return nil, err
	}

	var tokenResp TokenResponse
	if err := decodeJSON(resp, &tokenResp, http.StatusOK); err != nil {
		return nil, err
	}
	return &tokenResp, nil
}

// Refresh exchanges a refresh token for a fresh token pair. The presented
// token is invalidated server-side; keep the returned pair.
func (c *Client) Refresh(ctx context.Context, refreshToken string) (*TokenResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, "/v1/auth/refresh",
		nil, map[string]string{"X-Refresh-Token": refreshToken})
	if err != nil {
		return nil, err
	}

	var tokenResp TokenResponse
	if err := decodeJSON(resp, &tokenResp, http.StatusOK); err != nil {
		return nil, err
	}
	return &tokenResp, nil
}

// Me fetches the profile of the account behind the access token.
func (c *Client) Me(ctx context.Context, accessToken string) (*UserInfoResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/v1/auth/me",
		nil, map[string]string{"Authorization": "Bearer " + accessToken})
	if err != nil {
		return nil, err
	}

	var userResp UserInfoResponse
	if err := decodeJSON(resp, &userResp, http.StatusOK); err != nil {
		return nil, err
	}
	return &userResp, nil
}

// EnableTwoFA starts two-factor enrollment for the account. The returned
// secret and QR code must be confirmed via VerifyTwoFA before login starts
// requiring codes.
func (c *Client) EnableTwoFA(ctx context.Context, accessToken string) (*TwoFASetupResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, "/v1/auth/2fa/enable",
		nil, map[string]string{"Authorization": "Bearer " + accessToken})
	if err != nil {
		return nil, err
	}

	var setupResp TwoFASetupResponse
	if err := decodeJSON(resp, &setupResp, http.StatusOK); err != nil {
		return nil, err
	}
	return &setupResp, nil
}

// VerifyTwoFA confirms enrollment with a code from the authenticator app.
// Success=false with no error means the code was wrong; enrollment stays
// pending and the call can be retried.
func (c *Client) VerifyTwoFA(ctx context.Context, accessToken, code string) (*TwoFAVerifyResponse, error) {
	body, err := json.Marshal(TwoFAVerifyRequest{Code: code})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	resp, err := c.doRequest(ctx, http.MethodPost, "/v1/auth/2fa/verify",
		bytes.NewReader(body), map[string]string{
			"Authorization": "Bearer " + accessToken,
			"Content-Type":  "application/json",
		})
	if err != nil {
		return nil, err
	}

	var verifyResp TwoFAVerifyResponse
	if err := decodeJSON(resp, &verifyResp, http.StatusOK); err != nil {
		return nil, err
	}
	return &verifyResp, nil
}

// DisableTwoFA turns off two-factor authentication and discards the secret.
func (c *Client) DisableTwoFA(ctx context.Context, accessToken string) error {
	resp, err := c.doRequest(ctx, http.MethodDelete, "/v1/auth/2fa/disable",
		nil, map[string]string{"Authorization": "Bearer " + accessToken})
	if err != nil {
		return err
	}
	return checkStatusNoContent(resp)
}

// Logout ends the session client-side. Tokens remain valid until expiry, so
// callers must also discard their stored pair.
func (c *Client) Logout(ctx context.Context, accessToken string) error {
	resp, err := c.doRequest(ctx, http.MethodPost, "/v1/auth/logout",
		nil, map[string]string{"Authorization": "Bearer " + accessToken})
	if err != nil {
		return err
	}
	return checkStatusNoContent(resp)
}

// JWKS fetches the public signing keys. Resource services use these to
// verify access tokens without calling back to the auth service.
func (c *Client) JWKS(ctx context.Context) (*JWKSResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/.well-known/jwks.json", nil, nil)
	if err != nil {
		return nil, err
	}

	var jwksResp JWKSResponse
	if err := decodeJSON(resp, &jwksResp, http.StatusOK); err != nil {
		return nil, err
	}
	return &jwksResp, nil
}

// Livez checks whether the service process is up.
func (c *Client) Livez(ctx context.Context) (*HealthResponse, error) {
	return c.health(ctx, "/livez")
}

// Readyz checks whether the service can reach its dependencies.
func (c *Client) Readyz(ctx context.Context) (*HealthResponse, error) {
	return c.health(ctx, "/readyz")
}

func (c *Client) health(ctx context.Context, path string) (*HealthResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, path, nil, nil)
	if err != nil {
		return nil, err
	}

	var healthResp HealthResponse
	if err := decodeJSON(resp, &healthResp, http.StatusOK); err != nil {
		return nil, err
	}
	return &healthResp, nil
}
