package auth_test

import (
	"context"
	"io"
	"log/slog"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"
	"github.com/stretchr/testify/require"
	"github.com/vedakart/vedakart/internal/auth/domain"
	httpapi "github.com/vedakart/vedakart/internal/auth/http"
	"github.com/vedakart/vedakart/internal/auth/service"
	"github.com/vedakart/vedakart/internal/auth/store/drivers/sqlite"
	"github.com/vedakart/vedakart/pkg/cryptox"
	"github.com/vedakart/vedakart/pkg/idx"
	"github.com/vedakart/vedakart/pkg/jwtx"
)

func TestMain(m *testing.M) {
	cryptox.SetPepperPath(filepath.Join(os.TempDir(), "vedakart-e2e-test-pepper"))
	os.Exit(m.Run())
}

// setupAuthServer boots the full auth stack in-process on an in-memory
// database and returns its base URL plus the backing store for seeding.
func setupAuthServer(t *testing.T) (string, *sqlite.Store) {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	pemKey, err := cryptox.GenerateEd25519Key()
	require.NoError(t, err)
	signer, err := jwtx.NewSignerEdDSA("e2e-key", pemKey)
	require.NoError(t, err)

	keys := jwtx.NewKeySet()
	require.NoError(t, keys.AddSigner(signer))
	verifier := jwtx.NewCommonEdDSA(keys, "vedakart-auth")

	tokens := &service.TokenService{
		Signer:     signer,
		Verifier:   verifier,
		Issuer:     "vedakart-auth",
		AccessTTL:  15 * time.Minute,
		RefreshTTL: 7 * 24 * time.Hour,
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	router := httpapi.NewRouter(keys, verifier, "e2e", st, logger)
	router.SessionService = &service.SessionService{
		Credentials: &service.CredentialService{Store: st},
		TOTP:        &service.TOTPService{Issuer: "VedaKart"},
		Tokens:      tokens,
		Store:       st,
	}
	router.UserService = &service.UserService{Store: st}
	router.ApplyRoutes()

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv.URL, st
}

func seedUser(t *testing.T, st *sqlite.Store, username, password string) domain.User {
	t.Helper()

	hash, err := cryptox.HashPassword(password)
	require.NoError(t, err)

	u := domain.User{
		ID:           idx.New().String(),
		Username:     username,
		Email:        username + "@example.com",
		FullName:     "E2E User",
		PasswordHash: hash,
		Enabled:      true,
		Roles:        []string{"customer"},
	}
	require.NoError(t, st.Users().CreateUser(context.Background(), u))
	return u
}

func totpCode(t *testing.T, secret string) string {
	t.Helper()
	code, err := totp.GenerateCodeCustom(secret, time.Now().UTC(), totp.ValidateOpts{
		Period:    30,
		Digits:    otp.DigitsSix,
		Algorithm: otp.AlgorithmSHA1,
	})
	require.NoError(t, err)
	return code
}
