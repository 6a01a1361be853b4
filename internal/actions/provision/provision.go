package provision

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	contextInternal "github.com/gameport/gameportctl/internal/context"
	"github.com/gameport/gameportctl/internal/pkg/gameportctl"
	"github.com/gameport/gameportctl/pkg/gameport"
	osinfo "github.com/gameport/gameportctl/pkg/os_info"
	packagemanager "github.com/gameport/gameportctl/pkg/package_manager"
	"github.com/gameport/gameportctl/pkg/panel"
	"github.com/gameport/gameportctl/pkg/sysenv"
	"github.com/gameport/gameportctl/pkg/utils"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
)

const (
	mysqlDatabase    = "mysql"
	postgresDatabase = "postgres"
	sqliteDatabase   = "sqlite"
	noneDatabase     = "none"
)

const (
	defaultDatabaseUsername = "gameport"
	defaultDatabaseHost     = "localhost"
	defaultDatabaseName     = "gameport"
)

const defaultPanelPort = 3000

var errEmptyHost = errors.New("empty host")
var errEmptyDatabase = errors.New("empty database")
var errMustBeRoot = errors.New("provisioning must be run as root")

// Stage marks provisioning progress. Stages always advance in the order
// they are declared in run, and a failed run reports both the stage that
// failed and the last one that completed.
type Stage string

const (
	StageStart               Stage = "Start"
	StageFactsCollected      Stage = "FactsCollected"
	StagePackagesReady       Stage = "PackagesReady"
	StageAccountAndDirsReady Stage = "AccountAndDirsReady"
	StageSecretsResolved     Stage = "SecretsResolved"
	StageDatabaseReady       Stage = "DatabaseReady"
	StageConfigPersisted     Stage = "ConfigPersisted"
	StageServiceRegistered   Stage = "ServiceRegistered"
	StageRunning             Stage = "Running"
)

type provisionState struct {
	NonInteractive bool

	Host string
	Port int

	DatabaseClient string
	DBCreds        databaseCredentials

	ArtifactURL string

	OSInfo osinfo.Info
	Family packagemanager.Family

	Secrets       panel.Secrets
	SecretsReused bool

	Stage       Stage
	Warnings    []string
	UnitChanged bool
}

type databaseCredentials struct {
	Host         string
	Port         int
	DatabaseName string
	Username     string
	Password     string
	RootPassword string
}

//nolint:funlen
func Handle(cliCtx *cli.Context) error {
	if os.Geteuid() != 0 {
		return errMustBeRoot
	}

	state := provisionState{}

	state.NonInteractive = cliCtx.Bool("non-interactive")
	state.Host = cliCtx.String("host")
	state.Port = cliCtx.Int("port")
	state.DatabaseClient = cliCtx.String("database")
	state.DBCreds = databaseCredentials{
		Host:         cliCtx.String("database-host"),
		Port:         cliCtx.Int("database-port"),
		DatabaseName: cliCtx.String("database-name"),
		Username:     cliCtx.String("database-username"),
		Password:     cliCtx.String("database-password"),
	}
	state.ArtifactURL = cliCtx.String("artifact-url")
	state.OSInfo = contextInternal.OSInfoFromContext(cliCtx.Context)

	if state.ArtifactURL == "" {
		state.ArtifactURL = gameport.DefaultPanelArtifactURL
	}

	fmt.Printf(
		"Detected operating system as %s/%s (%s).\n",
		state.OSInfo.Distribution,
		state.OSInfo.DistributionCodename,
		state.OSInfo.Platform,
	)

	if record, recordErr := gameportctl.LoadPanelInstallRecord(cliCtx.Context); recordErr == nil {
		fmt.Println("Found a previous provisioning record, using its answers where not specified.")
		state = applyInstallRecord(state, record)
	}

	if !state.NonInteractive {
		needToAsk := make(map[string]struct{}, 2)
		if state.Host == "" {
			needToAsk["host"] = struct{}{}
		}
		if state.DatabaseClient == "" {
			needToAsk["database"] = struct{}{}
		}
		answers, err := askUser(needToAsk)
		if err != nil {
			return err
		}

		if _, ok := needToAsk["host"]; ok {
			state.Host = answers.host
		}

		if _, ok := needToAsk["database"]; ok {
			state.DatabaseClient = answers.database
			state.DBCreds.RootPassword = answers.databaseRootPassword
		}
	}

	if state.Host == "" {
		return errEmptyHost
	}

	if state.DatabaseClient == "" {
		return errEmptyDatabase
	}

	var err error
	state, err = filterAndCheckHost(state)
	if err != nil {
		return errors.WithMessage(err, "failed to check host")
	}

	if state.DBCreds.Host == "" {
		state.DBCreds.Host = defaultDatabaseHost
	}
	if state.DBCreds.Username == "" {
		state.DBCreds.Username = defaultDatabaseUsername
	}
	if state.DBCreds.DatabaseName == "" {
		state.DBCreds.DatabaseName = defaultDatabaseName
	}

	fmt.Println()
	fmt.Println("Host:", state.Host)
	fmt.Println("Port:", state.Port)
	fmt.Println("Database:", state.DatabaseClient)
	fmt.Println()

	state, err = run(cliCtx.Context, sysenv.NewHost(), state)
	if err != nil {
		return err
	}

	err = gameportctl.SavePanelInstallRecord(cliCtx.Context, gameportctl.PanelInstallRecord{
		Host:           state.Host,
		Port:           state.Port,
		Path:           gameport.DefaultInstallPath,
		ConfigPath:     gameport.DefaultConfigFilePath,
		DatabaseClient: state.DatabaseClient,
		DatabaseHost:   state.DBCreds.Host,
		DatabaseName:   state.DBCreds.DatabaseName,
		ProvisionedAt:  time.Now(),
	})
	if err != nil {
		fmt.Println("Failed to save provisioning record: ", err)
	}

	fmt.Println()
	fmt.Println("---------------------------------")
	fmt.Println("GamePort panel is provisioned!")
	fmt.Printf("Panel address: http://%s:%d\n", state.Host, state.Port)
	fmt.Println("Configuration file:", gameport.DefaultConfigFilePath)
	if state.SecretsReused {
		fmt.Println("Existing secrets were kept.")
	}
	fmt.Println("---------------------------------")

	return nil
}

type step struct {
	stage Stage
	fn    func(context.Context, sysenv.Environment, provisionState) (provisionState, error)
}

// run drives the provisioning stages. Every stage is idempotent, so a
// failed run can be retried from the start after the cause is fixed.
func run(ctx context.Context, env sysenv.Environment, state provisionState) (provisionState, error) {
	steps := []step{
		{StageFactsCollected, collectFacts},
		{StagePackagesReady, reconcilePackages},
		{StageAccountAndDirsReady, provisionAccountAndDirs},
		{StageSecretsResolved, resolveSecrets},
		{StageDatabaseReady, prepareDatabase},
		{StageConfigPersisted, persistConfig},
		{StageServiceRegistered, registerService},
		{StageRunning, startPanel},
	}

	state.Stage = StageStart

	for _, s := range steps {
		var err error
		state, err = s.fn(ctx, env, state)
		if err != nil {
			return state, errors.WithMessagef(
				err,
				"provisioning failed at stage %s (last completed stage: %s)",
				s.stage, state.Stage,
			)
		}
		state.Stage = s.stage
	}

	return state, nil
}

func collectFacts(ctx context.Context, env sysenv.Environment, state provisionState) (provisionState, error) {
	info, err := env.Facts(ctx)
	if err != nil {
		return state, errors.WithMessage(err, "failed to collect host facts")
	}
	state.OSInfo = info

	// resource warnings are advisory only, a weak host never aborts the run
	for _, w := range resourceWarnings(info) {
		state.Warnings = append(state.Warnings, w)
		fmt.Println()
		fmt.Println("WARNING:", w)
		log.Println(w)
	}

	return state, nil
}

// applyInstallRecord fills parameters the operator has not specified this
// time with the answers recorded by the previous provisioning run.
func applyInstallRecord(state provisionState, record gameportctl.PanelInstallRecord) provisionState {
	if state.Host == "" {
		state.Host = record.Host
	}
	if state.Port == 0 {
		state.Port = record.Port
	}
	if state.DatabaseClient == "" {
		state.DatabaseClient = record.DatabaseClient
	}
	if state.DBCreds.Host == "" {
		state.DBCreds.Host = record.DatabaseHost
	}
	if state.DBCreds.DatabaseName == "" {
		state.DBCreds.DatabaseName = record.DatabaseName
	}

	return state
}

func reconcilePackages(ctx context.Context, env sysenv.Environment, state provisionState) (provisionState, error) {
	family, err := packagemanager.FamilyForDistribution(state.OSInfo.Distribution)
	if err != nil {
		return state, err
	}
	state.Family = family

	fmt.Println("Updating package index ...")
	err = env.UpdatePackageIndex(ctx)
	if err != nil {
		return state, errors.WithMessage(err, "failed to update package index")
	}

	packs := requiredPackages(family, state.DatabaseClient)
	fmt.Println("Installing packages ...")
	err = env.InstallPackages(ctx, packs...)
	if err != nil {
		return state, errors.WithMessage(err, "failed to install packages")
	}

	for _, name := range baseServices(family) {
		err = env.EnableService(ctx, name)
		if err != nil {
			return state, errors.WithMessagef(err, "failed to enable %s service", name)
		}
		err = env.StartService(ctx, name)
		if err != nil {
			return state, errors.WithMessagef(err, "failed to start %s service", name)
		}
	}

	return state, nil
}

func provisionAccountAndDirs(ctx context.Context, env sysenv.Environment, state provisionState) (provisionState, error) {
	if !env.UserExists(gameport.DefaultUser) {
		fmt.Println("Creating gameport user ...")
		err := env.CreateUser(ctx, gameport.DefaultUser, gameport.DefaultDataPath, "/usr/sbin/nologin")
		if err != nil {
			return state, errors.WithMessage(err, "failed to create gameport user")
		}
	}

	dirs := []string{
		gameport.DefaultInstallPath,
		gameport.DefaultConfigDirPath,
		gameport.DefaultDataPath,
		gameport.DefaultLogPath,
		gameport.DefaultStoragePath,
	}
	for _, dir := range dirs {
		err := env.MkdirAll(dir, 0755)
		if err != nil {
			return state, errors.WithMessagef(err, "failed to create directory %s", dir)
		}
		err = env.Chmod(dir, 0755)
		if err != nil {
			return state, errors.WithMessagef(err, "failed to chmod %s", dir)
		}
	}

	state, err := installArtifact(ctx, env, state)
	if err != nil {
		return state, err
	}

	owned := []string{
		gameport.DefaultInstallPath,
		gameport.DefaultDataPath,
		gameport.DefaultLogPath,
	}
	for _, dir := range owned {
		err := env.Chown(dir, gameport.DefaultUser, gameport.DefaultGroup)
		if err != nil {
			return state, errors.WithMessagef(err, "failed to chown %s", dir)
		}
	}

	return state, nil
}

func installArtifact(ctx context.Context, env sysenv.Environment, state provisionState) (provisionState, error) {
	if env.FileExists(gameport.DefaultEntryPointPath) {
		return state, nil
	}

	fmt.Println("Downloading panel ...")
	err := env.Download(ctx, state.ArtifactURL, gameport.DefaultInstallPath)
	if err != nil {
		return state, errors.WithMessage(err, "failed to download panel")
	}

	err = env.Symlink(gameport.DefaultCLIPath, gameport.DefaultCLISymlinkPath)
	if err != nil {
		return state, errors.WithMessage(err, "failed to create cli symlink")
	}

	return state, nil
}

func resolveSecrets(_ context.Context, env sysenv.Environment, state provisionState) (provisionState, error) {
	secrets, reused, err := panel.LoadOrCreateSecrets(env, gameport.DefaultConfigFilePath)
	if err != nil {
		return state, err
	}

	state.Secrets = secrets
	state.SecretsReused = reused

	if state.DBCreds.Password == "" {
		state.DBCreds.Password = state.Secrets.DatabasePassword
	} else {
		state.Secrets.DatabasePassword = state.DBCreds.Password
	}

	return state, nil
}

func persistConfig(_ context.Context, env sysenv.Environment, state provisionState) (provisionState, error) {
	fmt.Println("Writing panel configuration ...")

	err := panel.PersistConfig(env, buildConfig(state), gameport.DefaultConfigFilePath)
	if err != nil {
		return state, err
	}

	return state, nil
}

func registerService(_ context.Context, env sysenv.Environment, state provisionState) (provisionState, error) {
	fmt.Println("Registering gameport service ...")

	unitCfg := panel.UnitConfig{
		User:             gameport.DefaultUser,
		Group:            gameport.DefaultGroup,
		WorkingDirectory: gameport.DefaultInstallPath,
		ExecStart:        "/usr/bin/node " + gameport.DefaultEntryPointPath,
		NodeEnv:          "production",
		ConfigPath:       gameport.DefaultConfigFilePath,
		AuthSecret:       state.Secrets.AuthSecret,
		After:            afterUnits(state.Family, state.DatabaseClient),
	}

	changed, err := panel.WriteUnit(env, unitCfg, panel.UnitFilePath())
	if err != nil {
		return state, err
	}
	state.UnitChanged = changed

	return state, nil
}

func startPanel(ctx context.Context, env sysenv.Environment, state provisionState) (provisionState, error) {
	fmt.Println("Starting gameport service ...")

	err := panel.Activate(ctx, env)
	if err != nil {
		return state, err
	}

	return state, nil
}

func buildConfig(state provisionState) panel.Config {
	urlHost := state.Host
	if utils.IsIPv6(urlHost) {
		urlHost = "[" + urlHost + "]"
	}

	cfg := panel.Config{
		App: panel.AppConfig{
			Name:        "GamePort",
			URL:         fmt.Sprintf("http://%s:%d", urlHost, state.Port),
			Port:        state.Port,
			Environment: "production",
			SecretKey:   state.Secrets.AppSecretKey,
		},
		Database: panel.DatabaseConfig{
			Client: state.DatabaseClient,
		},
		Cache: panel.CacheConfig{
			Host: "localhost",
			Port: 6379,
		},
		Storage: panel.StorageConfig{
			Path: gameport.DefaultStoragePath,
		},
		Orchestration: panel.OrchestrationConfig{
			Socket: gameport.DefaultDockerSocketPath,
		},
		Auth: panel.AuthConfig{
			Secret: state.Secrets.AuthSecret,
		},
	}

	switch state.DatabaseClient {
	case mysqlDatabase, postgresDatabase:
		cfg.Database.Connection = panel.ConnectionConfig{
			Host:     state.DBCreds.Host,
			Port:     state.DBCreds.Port,
			User:     state.DBCreds.Username,
			Password: state.DBCreds.Password,
			Database: state.DBCreds.DatabaseName,
		}
	case sqliteDatabase:
		cfg.Database.Connection = panel.ConnectionConfig{
			Filename: sqliteDatabasePath(),
		}
	}

	return cfg
}
