package provision

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"github.com/gameport/gameportctl/pkg/sysenv"
	"github.com/pkg/errors"
)

func preparePostgres(ctx context.Context, env sysenv.Environment, state provisionState) (provisionState, error) {
	err := startLocalDatabase(ctx, env, state)
	if err != nil {
		return state, err
	}

	db, err := postgresMakeAdminConnection(ctx, state.DBCreds)
	if err != nil {
		return state, err
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Println("Failed to close database connection: ", err)
		}
	}()

	userExists, err := postgresIsRoleExists(ctx, db, state.DBCreds.Username)
	if err != nil {
		return state, errors.WithMessage(err, "failed to check database role")
	}
	if userExists {
		_, err = db.ExecContext(
			ctx,
			"ALTER ROLE "+state.DBCreds.Username+" WITH LOGIN PASSWORD '"+state.DBCreds.Password+"'",
		)
		if err != nil {
			return state, errors.WithMessage(err, "failed to update database role password")
		}
	} else {
		fmt.Printf("Creating database role %s ...\n", state.DBCreds.Username)
		_, err = db.ExecContext(
			ctx,
			"CREATE ROLE "+state.DBCreds.Username+" WITH LOGIN PASSWORD '"+state.DBCreds.Password+"'",
		)
		if err != nil {
			return state, errors.WithMessage(err, "failed to create database role")
		}
	}

	dbExists, err := postgresIsDatabaseExists(ctx, db, state.DBCreds.DatabaseName)
	if err != nil {
		return state, errors.WithMessage(err, "failed to check database")
	}
	if !dbExists {
		fmt.Printf("Creating database %s ...\n", state.DBCreds.DatabaseName)
		_, err = db.ExecContext(
			ctx,
			"CREATE DATABASE "+state.DBCreds.DatabaseName+" OWNER "+state.DBCreds.Username,
		)
		if err != nil {
			return state, errors.WithMessage(err, "failed to create database")
		}
	}

	_, err = db.ExecContext(
		ctx,
		"GRANT ALL PRIVILEGES ON DATABASE "+state.DBCreds.DatabaseName+" TO "+state.DBCreds.Username,
	)
	if err != nil {
		return state, errors.WithMessage(err, "failed to grant database privileges")
	}

	return state, nil
}

func postgresMakeAdminConnection(ctx context.Context, dbCreds databaseCredentials) (*sql.DB, error) {
	dsns := []string{
		"host=/var/run/postgresql user=postgres dbname=postgres sslmode=disable",
		fmt.Sprintf(
			"host=%s port=%d user=postgres password=%s dbname=postgres sslmode=disable",
			dbCreds.Host, dbCreds.Port, dbCreds.RootPassword,
		),
	}

	var err error
	var db *sql.DB
	for _, dsn := range dsns {
		db, err = sql.Open("pgx", dsn)
		if err != nil {
			continue
		}

		err = db.PingContext(ctx)
		if err != nil {
			log.Println(err)

			continue
		}

		break
	}

	if err != nil {
		return nil, errors.WithMessage(err, "failed to get PostgreSQL connection")
	}

	return db, nil
}

func postgresIsRoleExists(ctx context.Context, db *sql.DB, role string) (bool, error) {
	var exists bool

	err := db.QueryRowContext(
		ctx,
		"SELECT EXISTS(SELECT 1 FROM pg_roles WHERE rolname = $1)",
		role,
	).Scan(&exists)
	if err != nil {
		return false, errors.WithMessage(err, "failed to execute query")
	}

	return exists, nil
}

func postgresIsDatabaseExists(ctx context.Context, db *sql.DB, database string) (bool, error) {
	var exists bool

	err := db.QueryRowContext(
		ctx,
		"SELECT EXISTS(SELECT 1 FROM pg_database WHERE datname = $1)",
		database,
	).Scan(&exists)
	if err != nil {
		return false, errors.WithMessage(err, "failed to execute query")
	}

	return exists, nil
}
