package domain

import "time"

// TokenPair is what login and refresh return: a short-lived access JWT and a
// longer-lived refresh JWT.
type TokenPair struct {
	AccessToken  string        `json:"access_token"`
	RefreshToken string        `json:"refresh_token"`
	TokenType    string        `json:"token_type,omitempty"` // typically "Bearer"
	ExpiresIn    time.Duration `json:"expires_in"`           // access token lifetime
}

// LoginResult bundles the token pair with the sanitized account profile.
type LoginResult struct {
	Tokens TokenPair
	User   User
}
