//go:build linux

package panel

import (
	"testing"

	"github.com/gameport/gameportctl/pkg/sysenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testUnitConfig() UnitConfig {
	return UnitConfig{
		User:             "gameport",
		Group:            "gameport",
		WorkingDirectory: "/opt/gameport",
		ExecStart:        "/usr/bin/node /opt/gameport/server.js",
		NodeEnv:          "production",
		ConfigPath:       "/etc/gameport/config.yml",
		AuthSecret:       "fedcba9876543210",
		After:            "mariadb.service",
	}
}

func Test_WriteUnit(t *testing.T) {
	env := sysenv.NewFake()
	path := UnitFilePath()

	changed, err := WriteUnit(env, testUnitConfig(), path)

	require.NoError(t, err)
	assert.True(t, changed)
	contents := string(env.Files[path].Contents)
	assert.Contains(t, contents, "After=network.target mariadb.service")
	assert.Contains(t, contents, "User=gameport")
	assert.Contains(t, contents, "ExecStart=/usr/bin/node /opt/gameport/server.js")
	assert.Contains(t, contents, "Environment=GAMEPORT_CONFIG=/etc/gameport/config.yml")
	assert.Contains(t, contents, "Environment=GAMEPORT_AUTH_SECRET=fedcba9876543210")
	assert.Contains(t, contents, "WantedBy=multi-user.target")
}

func Test_WriteUnit_unchanged(t *testing.T) {
	env := sysenv.NewFake()
	path := UnitFilePath()
	_, err := WriteUnit(env, testUnitConfig(), path)
	require.NoError(t, err)

	changed, err := WriteUnit(env, testUnitConfig(), path)

	require.NoError(t, err)
	assert.False(t, changed)
}

func Test_WriteUnit_noExtraAfter(t *testing.T) {
	env := sysenv.NewFake()
	cfg := testUnitConfig()
	cfg.After = ""

	_, err := WriteUnit(env, cfg, UnitFilePath())

	require.NoError(t, err)
	assert.Contains(t, string(env.Files[UnitFilePath()].Contents), "After=network.target\n")
}
