package authapi

import (
	"github.com/vedakart/vedakart/pkg/jwtx"
)

// ============================================================================
// Error Response Types (used for JSON unmarshaling)
// ============================================================================

// ErrorResponse is the standard error body returned by every endpoint.
// Client code should use the APIError type from errors.go instead.
type ErrorResponse struct {
	// Error is the machine-readable error code (e.g., "invalid_credentials")
	Error string `json:"error"`

	// ErrorDescription is a human-readable description of the error
	ErrorDescription string `json:"error_description"`
}

// ============================================================================
// Login / Token Types
// ============================================================================

// LoginRequest is the body for POST /v1/auth/login.
type LoginRequest struct {
	// Username is the login username
	Username string `json:"username"`

	// Password is the plaintext password, only ever sent over TLS
	Password string `json:"password"`

	// TwoFACode is the 6-digit TOTP code, required when the account has
	// two-factor authentication enabled
	TwoFACode string `json:"twofa_code,omitempty"`
}

// TokenResponse is returned by login and refresh. Both endpoints return the
// same shape: a fresh access/refresh pair plus the account profile.
type TokenResponse struct {
	// AccessToken is the JWT used to authenticate API requests
	AccessToken string `json:"access_token"`

	// RefreshToken is the JWT used to obtain a new pair; presenting it
	// invalidates any previously issued refresh token for the account
	RefreshToken string `json:"refresh_token"`

	// TokenType is always "Bearer"
	TokenType string `json:"token_type"`

	// ExpiresIn is the lifetime in seconds of the access token
	ExpiresIn int `json:"expires_in"`

	// User is the profile of the authenticated account
	User UserInfoResponse `json:"user"`
}

// ============================================================================
// User Types
// ============================================================================

// UserInfoResponse is the public account profile, returned inside the token
// response and from GET /v1/auth/me. It never carries the password hash or
// the TOTP secret.
type UserInfoResponse struct {
	// UserID is the unique identifier for the user
	UserID string `json:"user_id"`

	// Username is the user's login username
	Username string `json:"username"`

	// Email is the user's email address
	Email string `json:"email"`

	// FullName is the user's display name
	FullName string `json:"full_name"`

	// Roles are the role names carried into access token claims
	Roles []string `json:"roles"`

	// TwoFAEnabled reports whether login requires a TOTP code
	TwoFAEnabled bool `json:"twofa_enabled"`
}

// ============================================================================
// Two-Factor Types
// ============================================================================

// TwoFASetupResponse is returned from POST /v1/auth/2fa/enable. The account
// is not protected until the code is confirmed via /v1/auth/2fa/verify.
type TwoFASetupResponse struct {
	// Secret is the base32 shared secret for manual authenticator entry
	Secret string `json:"secret"`

	// QRCode is a data URI containing a PNG of the provisioning QR code
	QRCode string `json:"qr_code"`

	// OTPAuthURL is the otpauth:// provisioning URI encoded in the QR code
	OTPAuthURL string `json:"otpauth_url"`

	// Issuer is the issuer label shown in the authenticator app
	Issuer string `json:"issuer"`

	// Account is the account label shown in the authenticator app
	Account string `json:"account"`
}

// TwoFAVerifyRequest is the body for POST /v1/auth/2fa/verify.
type TwoFAVerifyRequest struct {
	Code string `json:"code"` // 6-digit TOTP code
}

// TwoFAVerifyResponse reports the outcome of enrollment confirmation.
// Verification is repeatable: a wrong code leaves enrollment pending.
type TwoFAVerifyResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// ============================================================================
// Health Types
// ============================================================================

// HealthResponse represents the response structure for health check endpoints.
// Used by both /livez and /readyz endpoints (readyz includes additional Checks field).
type HealthResponse struct {
	// Status indicates the overall health status (e.g., "ok")
	Status string `json:"status"`

	// Uptime is the service uptime duration as a string (e.g., "1h23m45s")
	Uptime string `json:"uptime,omitempty"`

	// Version is the service version string
	Version string `json:"version,omitempty"`

	// Checks contains readiness check results for critical dependencies (only for /readyz)
	Checks *HealthChecks `json:"checks,omitempty"`
}

// HealthChecks represents the status of critical service dependencies.
// Used in the /readyz endpoint to indicate the status of each component.
type HealthChecks struct {
	// Database indicates the database connection status
	Database string `json:"database"`

	// Signer indicates the JWT signing capability status
	Signer string `json:"signer"`
}

// ============================================================================
// JWKS Types
// ============================================================================

// JWKSResponse contains the JSON Web Key Set.
// This is returned from the GET /.well-known/jwks.json endpoint and contains
// public keys used to verify JWT signatures.
type JWKSResponse jwtx.JWKS
