package provision

import (
	"context"
	"os"
	"regexp"
	"testing"

	"github.com/gameport/gameportctl/internal/pkg/gameportctl"
	"github.com/gameport/gameportctl/pkg/gameport"
	packagemanager "github.com/gameport/gameportctl/pkg/package_manager"
	"github.com/gameport/gameportctl/pkg/panel"
	"github.com/gameport/gameportctl/pkg/sysenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testState() provisionState {
	return provisionState{
		NonInteractive: true,
		Host:           "panel.example.com",
		Port:           defaultPanelPort,
		DatabaseClient: sqliteDatabase,
		DBCreds: databaseCredentials{
			Host:         defaultDatabaseHost,
			Username:     defaultDatabaseUsername,
			DatabaseName: defaultDatabaseName,
		},
		ArtifactURL: gameport.DefaultPanelArtifactURL,
	}
}

func Test_run(t *testing.T) {
	env := sysenv.NewFake()

	result, err := run(context.Background(), env, testState())

	require.NoError(t, err)
	assert.Equal(t, StageRunning, result.Stage)

	assert.True(t, env.IndexUpdated)
	assert.Contains(t, env.InstalledPackages, packagemanager.CurlPackage)
	assert.Contains(t, env.InstalledPackages, packagemanager.NodeJSPackage)

	assert.True(t, env.Users[gameport.DefaultUser])

	cfgFile := env.Files[gameport.DefaultConfigFilePath]
	require.NotNil(t, cfgFile)
	assert.Equal(t, os.FileMode(0600), cfgFile.Mode)
	assert.Equal(t, gameport.DefaultUser, cfgFile.Owner)

	require.True(t, env.FileExists(panel.UnitFilePath()))
	assert.Equal(t, 1, env.DaemonReloads)
	assert.Contains(t, env.EnabledServices, gameport.ServiceName)
	assert.Contains(t, env.EnabledServices, "redis-server")
	assert.Contains(t, env.StartedServices, "docker")
	assert.Contains(t, env.RestartedServices, gameport.ServiceName)
}

func Test_run_secretsSurviveReruns(t *testing.T) {
	env := sysenv.NewFake()

	first, err := run(context.Background(), env, testState())
	require.NoError(t, err)

	second, err := run(context.Background(), env, testState())
	require.NoError(t, err)

	assert.False(t, first.SecretsReused)
	assert.True(t, second.SecretsReused)
	assert.Equal(t, first.Secrets.AppSecretKey, second.Secrets.AppSecretKey)
	assert.Equal(t, first.Secrets.AuthSecret, second.Secrets.AuthSecret)

	// unchanged config on the second run means no backup either
	assert.False(t, env.FileExists(gameport.DefaultConfigFilePath+".bak"))
}

func Test_run_secretFormat(t *testing.T) {
	env := sysenv.NewFake()

	_, err := run(context.Background(), env, testState())
	require.NoError(t, err)

	cfg, err := panel.ParseConfig(env.Files[gameport.DefaultConfigFilePath].Contents)
	require.NoError(t, err)

	hex256Bit := regexp.MustCompile("^[0-9a-f]{64}$")
	assert.Regexp(t, hex256Bit, cfg.App.SecretKey)
	assert.Regexp(t, hex256Bit, cfg.Auth.Secret)
	assert.NotEqual(t, cfg.App.SecretKey, cfg.Auth.Secret)
}

func Test_run_unsupportedDistribution(t *testing.T) {
	env := sysenv.NewFake()
	env.FactsInfo.Distribution = "arch"

	result, err := run(context.Background(), env, testState())

	require.Error(t, err)
	var unsupportedErr *packagemanager.ErrUnsupportedDistribution
	assert.ErrorAs(t, err, &unsupportedErr)
	assert.Equal(t, StageFactsCollected, result.Stage)

	assert.Empty(t, env.InstalledPackages)
	assert.Empty(t, env.Users)
	assert.False(t, env.FileExists(gameport.DefaultConfigFilePath))
	assert.False(t, env.FileExists(panel.UnitFilePath()))
}

func Test_run_lowResourceWarningsNeverAbort(t *testing.T) {
	env := sysenv.NewFake()
	env.FactsInfo.CPUs = 1
	env.FactsInfo.TotalMemoryMB = 1024
	env.FactsInfo.FreeDiskMB = 1024

	result, err := run(context.Background(), env, testState())

	require.NoError(t, err)
	assert.Len(t, result.Warnings, 3)
	assert.Equal(t, StageRunning, result.Stage)
	assert.NotEmpty(t, env.InstalledPackages)
	assert.Contains(t, env.RestartedServices, gameport.ServiceName)
}

func Test_run_healsDrift(t *testing.T) {
	env := sysenv.NewFake()
	_, err := run(context.Background(), env, testState())
	require.NoError(t, err)

	// an operator loosened the config mode, reowned the data directory
	// and removed the unit file
	env.Files[gameport.DefaultConfigFilePath].Mode = 0644
	env.Files[gameport.DefaultDataPath].Owner = "root"
	env.Files[gameport.DefaultDataPath].Mode = 0700
	delete(env.Files, panel.UnitFilePath())

	result, err := run(context.Background(), env, testState())

	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), env.Files[gameport.DefaultConfigFilePath].Mode)
	assert.Equal(t, gameport.DefaultUser, env.Files[gameport.DefaultDataPath].Owner)
	assert.Equal(t, os.FileMode(0755), env.Files[gameport.DefaultDataPath].Mode)
	assert.True(t, env.FileExists(panel.UnitFilePath()))
	assert.True(t, result.UnitChanged)
}

func Test_run_downloadsArtifactOnce(t *testing.T) {
	env := sysenv.NewFake()

	_, err := run(context.Background(), env, testState())
	require.NoError(t, err)
	require.Equal(t, 1, env.DownloadCalls)

	env.Files[gameport.DefaultEntryPointPath] = &sysenv.FakeFile{Contents: []byte("server")}

	_, err = run(context.Background(), env, testState())
	require.NoError(t, err)
	assert.Equal(t, 1, env.DownloadCalls)
}

func Test_run_reportsFailedStage(t *testing.T) {
	env := sysenv.NewFake()
	env.InstallPackagesErr = assert.AnError

	result, err := run(context.Background(), env, testState())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed at stage PackagesReady")
	assert.Contains(t, err.Error(), "last completed stage: FactsCollected")
	assert.Equal(t, StageFactsCollected, result.Stage)
}

func Test_run_sqliteDatabaseFile(t *testing.T) {
	env := sysenv.NewFake()

	_, err := run(context.Background(), env, testState())
	require.NoError(t, err)

	file := env.Files[sqliteDatabasePath()]
	require.NotNil(t, file)
	assert.Equal(t, os.FileMode(0640), file.Mode)
	assert.Equal(t, gameport.DefaultUser, file.Owner)

	cfg, err := panel.ParseConfig(env.Files[gameport.DefaultConfigFilePath].Contents)
	require.NoError(t, err)
	assert.Equal(t, sqliteDatabase, cfg.Database.Client)
	assert.Equal(t, sqliteDatabasePath(), cfg.Database.Connection.Filename)
}

func Test_buildConfig_ipv6Host(t *testing.T) {
	state := testState()
	state.Host = "2001:db8::1"

	cfg := buildConfig(state)

	assert.Equal(t, "http://[2001:db8::1]:3000", cfg.App.URL)
}

func Test_applyInstallRecord(t *testing.T) {
	record := gameportctl.PanelInstallRecord{
		Host:           "panel.gameport.io",
		Port:           8080,
		DatabaseClient: mysqlDatabase,
		DatabaseHost:   "db.gameport.io",
		DatabaseName:   "panel",
	}

	t.Run("fills_missing_answers", func(t *testing.T) {
		state := applyInstallRecord(provisionState{}, record)

		assert.Equal(t, "panel.gameport.io", state.Host)
		assert.Equal(t, 8080, state.Port)
		assert.Equal(t, mysqlDatabase, state.DatabaseClient)
		assert.Equal(t, "db.gameport.io", state.DBCreds.Host)
		assert.Equal(t, "panel", state.DBCreds.DatabaseName)
	})

	t.Run("explicit_answers_win", func(t *testing.T) {
		state := applyInstallRecord(provisionState{
			Host:           "other.example.com",
			Port:           9000,
			DatabaseClient: sqliteDatabase,
		}, record)

		assert.Equal(t, "other.example.com", state.Host)
		assert.Equal(t, 9000, state.Port)
		assert.Equal(t, sqliteDatabase, state.DatabaseClient)
	})
}

func Test_buildConfig_mysql(t *testing.T) {
	state := testState()
	state.DatabaseClient = mysqlDatabase
	state.DBCreds.Port = 3306
	state.DBCreds.Password = "secret"
	state.Secrets = panel.Secrets{
		AppSecretKey: "key",
		AuthSecret:   "auth",
	}

	cfg := buildConfig(state)

	assert.Equal(t, "http://panel.example.com:3000", cfg.App.URL)
	assert.Equal(t, mysqlDatabase, cfg.Database.Client)
	assert.Equal(t, "secret", cfg.Database.Connection.Password)
	assert.Equal(t, defaultDatabaseName, cfg.Database.Connection.Database)
	assert.Equal(t, gameport.DefaultStoragePath, cfg.Storage.Path)
}

func Test_requiredPackages(t *testing.T) {
	tests := []struct {
		name     string
		family   packagemanager.Family
		database string
		contains []string
		excludes []string
	}{
		{
			name:     "debian_mysql",
			family:   packagemanager.FamilyDebian,
			database: mysqlDatabase,
			contains: []string{
				packagemanager.MariaDBServerPackage,
				packagemanager.RedisDebianPackage,
				packagemanager.DockerDebianPackage,
			},
		},
		{
			name:     "rhel_postgres",
			family:   packagemanager.FamilyRHEL,
			database: postgresDatabase,
			contains: []string{
				packagemanager.PostgreSQLRHELPackage,
				packagemanager.RedisRHELPackage,
			},
			excludes: []string{
				packagemanager.MariaDBServerPackage,
				packagemanager.PostgreSQLDebianPackage,
			},
		},
		{
			name:     "debian_postgres",
			family:   packagemanager.FamilyDebian,
			database: postgresDatabase,
			contains: []string{packagemanager.PostgreSQLDebianPackage},
			excludes: []string{packagemanager.PostgreSQLRHELPackage},
		},
		{
			name:     "debian_none",
			family:   packagemanager.FamilyDebian,
			database: noneDatabase,
			contains: []string{packagemanager.CurlPackage},
			excludes: []string{
				packagemanager.MariaDBServerPackage,
				packagemanager.PostgreSQLDebianPackage,
				packagemanager.PostgreSQLRHELPackage,
			},
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			packs := requiredPackages(test.family, test.database)

			for _, p := range test.contains {
				assert.Contains(t, packs, p)
			}
			for _, p := range test.excludes {
				assert.NotContains(t, packs, p)
			}
		})
	}
}
