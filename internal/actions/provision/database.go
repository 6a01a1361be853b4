package provision

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/gameport/gameportctl/pkg/gameport"
	"github.com/gameport/gameportctl/pkg/sysenv"
	"github.com/pkg/errors"
)

func prepareDatabase(ctx context.Context, env sysenv.Environment, state provisionState) (provisionState, error) {
	switch state.DatabaseClient {
	case mysqlDatabase:
		if state.DBCreds.Port == 0 {
			state.DBCreds.Port = 3306
		}

		return prepareMySQL(ctx, env, state)
	case postgresDatabase:
		if state.DBCreds.Port == 0 {
			state.DBCreds.Port = 5432
		}

		return preparePostgres(ctx, env, state)
	case sqliteDatabase:
		return prepareSQLite(ctx, env, state)
	case noneDatabase:
		return state, nil
	}

	return state, errors.Errorf("unknown database client '%s'", state.DatabaseClient)
}

// startLocalDatabase enables and starts the database service when the
// database lives on the panel host itself.
func startLocalDatabase(ctx context.Context, env sysenv.Environment, state provisionState) error {
	if state.DBCreds.Host != defaultDatabaseHost && state.DBCreds.Host != "127.0.0.1" {
		return nil
	}

	name := databaseServiceName(state.DatabaseClient)
	if name == "" {
		return nil
	}

	fmt.Printf("Starting %s service ...\n", name)

	err := env.EnableService(ctx, name)
	if err != nil {
		return errors.WithMessagef(err, "failed to enable %s service", name)
	}

	err = env.StartService(ctx, name)
	if err != nil {
		return errors.WithMessagef(err, "failed to start %s service", name)
	}

	return nil
}

func sqliteDatabasePath() string {
	return filepath.Join(gameport.DefaultDataPath, "gameport.sqlite")
}

func prepareSQLite(_ context.Context, env sysenv.Environment, state provisionState) (provisionState, error) {
	path := sqliteDatabasePath()
	if env.FileExists(path) {
		return state, nil
	}

	err := env.WriteFileAtomic(path, nil, 0640)
	if err != nil {
		return state, errors.WithMessage(err, "failed to create sqlite database file")
	}

	err = env.Chown(path, gameport.DefaultUser, gameport.DefaultGroup)
	if err != nil {
		return state, errors.WithMessage(err, "failed to chown sqlite database file")
	}

	return state, nil
}
