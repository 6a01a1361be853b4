package panel

import (
	"regexp"
	"testing"

	"github.com/gameport/gameportctl/pkg/sysenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var hex256Bit = regexp.MustCompile("^[0-9a-f]{64}$")

func Test_LoadOrCreateSecrets_fresh(t *testing.T) {
	env := sysenv.NewFake()

	secrets, reused, err := LoadOrCreateSecrets(env, "/etc/gameport/config.yml")

	require.NoError(t, err)
	assert.False(t, reused)
	assert.Regexp(t, hex256Bit, secrets.AppSecretKey)
	assert.Regexp(t, hex256Bit, secrets.AuthSecret)
	assert.NotEqual(t, secrets.AppSecretKey, secrets.AuthSecret)
	assert.Len(t, secrets.DatabasePassword, 16)
}

func Test_LoadOrCreateSecrets_reusesPersisted(t *testing.T) {
	env := sysenv.NewFake()
	path := "/etc/gameport/config.yml"
	cfg := testConfig()
	require.NoError(t, PersistConfig(env, cfg, path))

	secrets, reused, err := LoadOrCreateSecrets(env, path)

	require.NoError(t, err)
	assert.True(t, reused)
	assert.Equal(t, cfg.App.SecretKey, secrets.AppSecretKey)
	assert.Equal(t, cfg.Auth.Secret, secrets.AuthSecret)
	assert.Equal(t, cfg.Database.Connection.Password, secrets.DatabasePassword)
}

func Test_LoadOrCreateSecrets_fillsMissing(t *testing.T) {
	env := sysenv.NewFake()
	path := "/etc/gameport/config.yml"
	cfg := testConfig()
	cfg.Auth.Secret = ""
	require.NoError(t, PersistConfig(env, cfg, path))

	secrets, reused, err := LoadOrCreateSecrets(env, path)

	require.NoError(t, err)
	assert.True(t, reused)
	assert.Equal(t, cfg.App.SecretKey, secrets.AppSecretKey)
	assert.Regexp(t, hex256Bit, secrets.AuthSecret)
}

func Test_LoadOrCreateSecrets_unparsableConfig(t *testing.T) {
	env := sysenv.NewFake()
	path := "/etc/gameport/config.yml"
	require.NoError(t, env.WriteFileAtomic(path, []byte("app: [broken"), 0600))

	_, _, err := LoadOrCreateSecrets(env, path)

	assert.Error(t, err)
}
