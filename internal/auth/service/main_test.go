package service

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/vedakart/vedakart/internal/auth/domain"
	"github.com/vedakart/vedakart/internal/auth/store/drivers/sqlite"
	"github.com/vedakart/vedakart/pkg/cryptox"
	"github.com/vedakart/vedakart/pkg/idx"
	"github.com/vedakart/vedakart/pkg/jwtx"
)

func TestMain(m *testing.M) {
	cryptox.SetPepperPath(filepath.Join(os.TempDir(), "vedakart-service-test-pepper"))
	os.Exit(m.Run())
}

const testIssuer = "vedakart-auth"

// testEnv wires a full service stack over an in-memory store.
type testEnv struct {
	store    *sqlite.Store
	sessions *SessionService
	tokens   *TokenService
	totp     *TOTPService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	s, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	require.NoError(t, s.ApplyMigrations())

	pemKey, err := cryptox.GenerateEd25519Key()
	require.NoError(t, err)
	signer, err := jwtx.NewSignerEdDSA("test-key", pemKey)
	require.NoError(t, err)

	keys := jwtx.NewKeySet()
	require.NoError(t, keys.AddSigner(signer))

	tokens := &TokenService{
		Signer:     signer,
		Verifier:   jwtx.NewCommonEdDSA(keys, testIssuer),
		Issuer:     testIssuer,
		AccessTTL:  15 * time.Minute,
		RefreshTTL: 7 * 24 * time.Hour,
	}
	totp := &TOTPService{Issuer: "VedaKart"}

	return &testEnv{
		store:  s,
		tokens: tokens,
		totp:   totp,
		sessions: &SessionService{
			Credentials: &CredentialService{Store: s},
			TOTP:        totp,
			Tokens:      tokens,
			Store:       s,
		},
	}
}

// seedUser creates a user with the given password and returns it.
func (e *testEnv) seedUser(t *testing.T, username, password string, mutate func(*domain.User)) domain.User {
	t.Helper()

	hash, err := cryptox.HashPassword(password)
	require.NoError(t, err)

	u := domain.User{
		ID:           idx.New().String(),
		Username:     username,
		Email:        username + "@example.com",
		FullName:     "Test User",
		PasswordHash: hash,
		Enabled:      true,
		Roles:        []string{"customer"},
	}
	if mutate != nil {
		mutate(&u)
	}
	require.NoError(t, e.store.Users().CreateUser(context.Background(), u))
	return u
}
