package auth_test

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vedakart/vedakart/pkg/authapi"
)

func TestLoginAndMe(t *testing.T) {
	baseURL, st := setupAuthServer(t)
	seedUser(t, st, "alice", "correct horse battery staple")

	client := authapi.NewClient(baseURL)

	pair, err := client.Login(t.Context(), authapi.LoginRequest{
		Username: "alice",
		Password: "correct horse battery staple",
	})
	require.NoError(t, err)
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)
	require.Equal(t, "Bearer", pair.TokenType)
	require.Equal(t, "alice", pair.User.Username)

	me, err := client.Me(t.Context(), pair.AccessToken)
	require.NoError(t, err)
	require.Equal(t, "alice", me.Username)
	require.Equal(t, "alice@example.com", me.Email)
	require.Equal(t, []string{"customer"}, me.Roles)

	// Logout succeeds but is advisory: the token stays valid until expiry.
	require.NoError(t, client.Logout(t.Context(), pair.AccessToken))
	_, err = client.Me(t.Context(), pair.AccessToken)
	require.NoError(t, err)
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	baseURL, st := setupAuthServer(t)
	seedUser(t, st, "alice", "correct horse battery staple")

	client := authapi.NewClient(baseURL)

	_, wrongPassword := client.Login(t.Context(), authapi.LoginRequest{
		Username: "alice",
		Password: "guess",
	})
	_, unknownUser := client.Login(t.Context(), authapi.LoginRequest{
		Username: "mallory",
		Password: "guess",
	})

	for _, err := range []error{wrongPassword, unknownUser} {
		var apiErr *authapi.APIError
		require.ErrorAs(t, err, &apiErr)
		require.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
		require.Equal(t, authapi.ErrorCodeInvalidCredentials, apiErr.Code)
	}

	// The two failures are byte-identical on the wire.
	var a, b *authapi.APIError
	require.True(t, errors.As(wrongPassword, &a))
	require.True(t, errors.As(unknownUser, &b))
	require.Equal(t, a.Description, b.Description)
}

func TestLockoutAfterRepeatedFailures(t *testing.T) {
	baseURL, st := setupAuthServer(t)
	seedUser(t, st, "alice", "correct horse battery staple")

	client := authapi.NewClient(baseURL)

	// Raise the per-IP budget pressure carefully: the strict limit allows
	// five requests, which is exactly the lockout threshold.
	for i := 0; i < 4; i++ {
		_, err := client.Login(t.Context(), authapi.LoginRequest{
			Username: "alice",
			Password: "guess",
		})
		require.Error(t, err)
	}

	// Fifth wrong password locks the account; the response is still the
	// generic credentials error.
	_, err := client.Login(t.Context(), authapi.LoginRequest{
		Username: "alice",
		Password: "guess",
	})
	var apiErr *authapi.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, authapi.ErrorCodeInvalidCredentials, apiErr.Code)

	u, err := st.Users().GetUserByUsername(t.Context(), "alice")
	require.NoError(t, err)
	require.True(t, u.AccountLocked)
	require.Equal(t, 5, u.FailedLoginAttempts)
}
