package app

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/vedakart/vedakart/pkg/cryptox"
	"github.com/vedakart/vedakart/pkg/idx"
	"github.com/vedakart/vedakart/pkg/jwtx"
)

// SigningKeys bundles the wired key material for token issuance and
// verification. KeySet feeds the JWKS endpoint, Signer mints, Verifier
// checks.
type SigningKeys struct {
	KeySet   *jwtx.KeySet
	Signer   jwtx.Signer
	Verifier jwtx.Verifier
}

// InitAuthKeys builds the Ed25519 signing key according to the configured
// storage mode.
//
// Storage modes:
//   - "ephemeral": a fresh key is generated on startup and held only in
//     memory. All outstanding tokens become invalid on restart.
//   - "file": the key PEM is loaded from SigningKeyFile; a new key is
//     generated and written there on first boot. Tokens survive restarts.
func InitAuthKeys(cfg Config, logger *slog.Logger) (*SigningKeys, error) {
	var pemKey []byte
	var err error

	switch cfg.KeyStorageMode {
	case "file":
		pemKey, err = loadOrGenerateKeyFile(cfg.SigningKeyFile, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to load signing key: %w", err)
		}

	case "ephemeral":
		fallthrough
	default:
		pemKey, err = cryptox.GenerateEd25519Key()
		if err != nil {
			return nil, fmt.Errorf("failed to generate signing key: %w", err)
		}
		logger.Warn("ephemeral signing key generated, all existing tokens are now invalid")
	}

	signer, err := jwtx.NewSignerEdDSA(idx.New().String(), pemKey)
	if err != nil {
		return nil, fmt.Errorf("failed to construct signer: %w", err)
	}

	keys := jwtx.NewKeySet()
	if err := keys.AddSigner(signer); err != nil {
		return nil, fmt.Errorf("failed to register signer: %w", err)
	}

	logger.Info("signing key ready",
		"alg", signer.Alg(),
		"kid", signer.KID(),
		"mode", cfg.KeyStorageMode,
		"issuer", cfg.Issuer,
	)

	return &SigningKeys{
		KeySet:   keys,
		Signer:   signer,
		Verifier: jwtx.NewCommonEdDSA(keys, cfg.Issuer),
	}, nil
}

func loadOrGenerateKeyFile(path string, logger *slog.Logger) ([]byte, error) {
	pemKey, err := os.ReadFile(path)
	if err == nil {
		logger.Info("signing key loaded", "path", path)
		return pemKey, nil
	}
	if !os.IsNotExist(err) {
		return nil, err
	}

	pemKey, err = cryptox.GenerateEd25519Key()
	if err != nil {
		return nil, err
	}
	if err := os.WriteFile(path, pemKey, 0o600); err != nil {
		return nil, err
	}

	logger.Info("signing key generated", "path", path)
	return pemKey, nil
}
