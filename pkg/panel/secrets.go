package panel

import (
	"crypto/rand"
	"encoding/hex"

	"github.com/gameport/gameportctl/pkg/sysenv"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	"github.com/sethvargo/go-password/password"
)

type Secrets struct {
	AppSecretKey     string
	AuthSecret       string
	DatabasePassword string
}

var databasePasswordGenerator = lo.Must(password.NewGenerator(&password.GeneratorInput{
	Symbols: "_-+=",
}))

// LoadOrCreateSecrets returns the panel secrets, reusing any values already
// persisted in the config at configPath. A secret that was persisted once is
// never regenerated. The reused result reports whether at least one secret
// came from the existing config.
func LoadOrCreateSecrets(env sysenv.Environment, configPath string) (Secrets, bool, error) {
	var secrets Secrets

	if env.FileExists(configPath) {
		contents, err := env.ReadFile(configPath)
		if err != nil {
			return Secrets{}, false, errors.WithMessage(err, "failed to read existing panel config")
		}

		cfg, err := ParseConfig(contents)
		if err != nil {
			return Secrets{}, false, errors.WithMessage(err, "failed to parse existing panel config")
		}

		secrets.AppSecretKey = cfg.App.SecretKey
		secrets.AuthSecret = cfg.Auth.Secret
		secrets.DatabasePassword = cfg.Database.Connection.Password
	}

	reused := secrets.AppSecretKey != "" ||
		secrets.AuthSecret != "" ||
		secrets.DatabasePassword != ""

	if secrets.AppSecretKey == "" {
		key, err := generateSecretKey()
		if err != nil {
			return Secrets{}, false, errors.WithMessage(err, "failed to generate app secret key")
		}
		secrets.AppSecretKey = key
	}

	if secrets.AuthSecret == "" {
		secret, err := generateSecretKey()
		if err != nil {
			return Secrets{}, false, errors.WithMessage(err, "failed to generate auth secret")
		}
		secrets.AuthSecret = secret
	}

	if secrets.DatabasePassword == "" {
		pwd, err := databasePasswordGenerator.Generate(16, 6, 2, false, false)
		if err != nil {
			return Secrets{}, false, errors.WithMessage(err, "failed to generate database password")
		}
		secrets.DatabasePassword = pwd
	}

	return secrets, reused, nil
}

func generateSecretKey() (string, error) {
	buf := make([]byte, 32)
	_, err := rand.Read(buf)
	if err != nil {
		return "", err
	}

	return hex.EncodeToString(buf), nil
}
