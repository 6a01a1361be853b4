package panel

import (
	"testing"

	"github.com/gameport/gameportctl/pkg/sysenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() Config {
	return Config{
		App: AppConfig{
			Name:        "GamePort",
			URL:         "http://panel.example.com:3000",
			Port:        3000,
			Environment: "production",
			SecretKey:   "0123456789abcdef",
		},
		Database: DatabaseConfig{
			Client: "mysql",
			Connection: ConnectionConfig{
				Host:     "localhost",
				Port:     3306,
				User:     "gameport",
				Password: "secret",
				Database: "gameport",
			},
		},
		Cache:         CacheConfig{Host: "localhost", Port: 6379},
		Storage:       StorageConfig{Path: "/var/lib/gameport/storage"},
		Orchestration: OrchestrationConfig{Socket: "/var/run/docker.sock"},
		Auth:          AuthConfig{Secret: "fedcba9876543210"},
	}
}

func Test_ParseConfig(t *testing.T) {
	contents, err := testConfig().Marshal()
	require.NoError(t, err)

	cfg, err := ParseConfig(contents)

	require.NoError(t, err)
	assert.Equal(t, testConfig(), cfg)
}

func Test_ParseConfig_invalid(t *testing.T) {
	_, err := ParseConfig([]byte("app: [not: a: mapping"))

	assert.Error(t, err)
}

func Test_PersistConfig(t *testing.T) {
	env := sysenv.NewFake()
	path := "/etc/gameport/config.yml"

	err := PersistConfig(env, testConfig(), path)

	require.NoError(t, err)
	file := env.Files[path]
	require.NotNil(t, file)
	assert.Equal(t, configFileMode, file.Mode)
	assert.Equal(t, "gameport", file.Owner)
	assert.Equal(t, "gameport", file.Group)
	assert.False(t, env.FileExists(path+".bak"))
}

func Test_PersistConfig_unchangedSkipsBackup(t *testing.T) {
	env := sysenv.NewFake()
	path := "/etc/gameport/config.yml"
	require.NoError(t, PersistConfig(env, testConfig(), path))

	err := PersistConfig(env, testConfig(), path)

	require.NoError(t, err)
	assert.False(t, env.FileExists(path+".bak"))
}

func Test_PersistConfig_changedKeepsBackup(t *testing.T) {
	env := sysenv.NewFake()
	path := "/etc/gameport/config.yml"
	require.NoError(t, PersistConfig(env, testConfig(), path))
	previous := env.Files[path].Contents

	changed := testConfig()
	changed.App.Port = 8080
	err := PersistConfig(env, changed, path)

	require.NoError(t, err)
	require.True(t, env.FileExists(path+".bak"))
	assert.Equal(t, previous, env.Files[path+".bak"].Contents)

	cfg, err := ParseConfig(env.Files[path].Contents)
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.App.Port)
}
