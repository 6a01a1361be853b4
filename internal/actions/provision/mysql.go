package provision

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"

	"github.com/gameport/gameportctl/pkg/sysenv"
	"github.com/go-sql-driver/mysql"
	"github.com/pkg/errors"
)

func prepareMySQL(ctx context.Context, env sysenv.Environment, state provisionState) (provisionState, error) {
	err := startLocalDatabase(ctx, env, state)
	if err != nil {
		return state, err
	}

	db, err := mysqlMakeAdminConnection(ctx, state.DBCreds)
	if err != nil {
		return state, err
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Println("Failed to close database connection: ", err)
		}
	}()

	exists, err := mysqlIsDatabaseExists(ctx, db, state.DBCreds.DatabaseName)
	if err != nil {
		return state, errors.WithMessage(err, "failed to check database")
	}
	if !exists {
		fmt.Printf("Creating database %s ...\n", state.DBCreds.DatabaseName)
		err = mysqlCreateDatabase(ctx, db, state.DBCreds.DatabaseName)
		if err != nil {
			return state, errors.WithMessage(err, "failed to create database")
		}
	}

	userExists, err := mysqlIsUserExists(ctx, db, state.DBCreds.Username, state.DBCreds.Host)
	if err != nil {
		return state, errors.WithMessage(err, "failed to check database user")
	}
	if userExists {
		err = mysqlChangeUserPassword(ctx, db, state.DBCreds.Username, state.DBCreds.Password)
		if err != nil {
			return state, errors.WithMessage(err, "failed to update database user password")
		}
	} else {
		fmt.Printf("Creating database user %s ...\n", state.DBCreds.Username)
		err = mysqlCreateUser(ctx, db, state.DBCreds.Username, state.DBCreds.Password)
		if err != nil {
			return state, errors.WithMessage(err, "failed to create database user")
		}
	}

	err = mysqlGrantPrivileges(ctx, db, state.DBCreds.Username, state.DBCreds.DatabaseName)
	if err != nil {
		return state, errors.WithMessage(err, "failed to grant database privileges")
	}

	return state, nil
}

func mysqlMakeAdminConnection(ctx context.Context, dbCreds databaseCredentials) (*sql.DB, error) {
	mysqlCfgs := []mysql.Config{
		{
			User:                 "root",
			Passwd:               dbCreds.RootPassword,
			Net:                  "unix",
			Addr:                 "/var/run/mysqld/mysqld.sock",
			DBName:               "mysql",
			AllowNativePasswords: true,
		},
		{
			User:                 "root",
			Net:                  "tcp",
			Addr:                 fmt.Sprintf("%s:%d", dbCreds.Host, dbCreds.Port),
			DBName:               "mysql",
			AllowNativePasswords: true,
		},
		{
			User:                 "root",
			Passwd:               dbCreds.RootPassword,
			Net:                  "tcp",
			Addr:                 fmt.Sprintf("%s:%d", dbCreds.Host, dbCreds.Port),
			DBName:               "mysql",
			AllowNativePasswords: true,
		},
	}

	var err error
	var db *sql.DB
	for _, cfg := range mysqlCfgs {
		db, err = sql.Open("mysql", cfg.FormatDSN())
		if err != nil {
			continue
		}

		err = db.PingContext(ctx)
		if err != nil {
			log.Println(err)

			continue
		}

		version, err := mysqlVersion(ctx, db)
		if err != nil {
			log.Println(err)

			continue
		}

		log.Printf("MySQL version: %s\n", version)

		break
	}

	if err != nil {
		return nil, errors.WithMessage(err, "failed to get MySQL connection")
	}

	return db, nil
}

func mysqlVersion(ctx context.Context, db *sql.DB) (string, error) {
	var version string

	err := db.QueryRowContext(ctx, "SELECT VERSION()").Scan(&version)
	if err != nil {
		return "", err
	}

	return version, nil
}

func mysqlIsDatabaseExists(ctx context.Context, db *sql.DB, database string) (bool, error) {
	var exists bool

	err := db.QueryRowContext(
		ctx,
		"SELECT EXISTS(SELECT SCHEMA_NAME FROM INFORMATION_SCHEMA.SCHEMATA WHERE SCHEMA_NAME = ?)",
		database,
	).Scan(&exists)
	if err != nil {
		return false, errors.WithMessage(err, "failed to execute query")
	}

	return exists, nil
}

func mysqlCreateDatabase(ctx context.Context, db *sql.DB, database string) error {
	_, err := db.ExecContext(ctx, "CREATE DATABASE IF NOT EXISTS "+database)
	if err != nil {
		return errors.WithMessage(err, "failed to execute query")
	}

	return nil
}

func mysqlIsUserExists(ctx context.Context, db *sql.DB, username, host string) (bool, error) {
	var exists bool

	err := db.QueryRowContext(
		ctx,
		"SELECT EXISTS(SELECT 1 FROM mysql.user WHERE user = ? AND (host = '%' OR host = ?))",
		username, host,
	).Scan(&exists)
	if err != nil {
		return false, errors.WithMessage(err, "failed to execute query")
	}

	return exists, nil
}

func mysqlCreateUser(ctx context.Context, db *sql.DB, username, password string) error {
	var err error

	version, err := mysqlVersion(ctx, db)
	if err != nil {
		return errors.WithMessage(err, "failed to get mysql version")
	}

	majorVersion := strings.Split(version, ".")[0]

	if majorVersion == "8" {
		_, err = db.ExecContext(
			ctx,
			"CREATE USER IF NOT EXISTS "+
				username+
				"@'%' IDENTIFIED WITH mysql_native_password BY '"+
				password+"'",
		)
	} else {
		_, err = db.ExecContext(
			ctx,
			"CREATE USER IF NOT EXISTS "+
				username+
				"@'%' IDENTIFIED BY '"+
				password+"'",
		)
	}
	if err != nil {
		return errors.WithMessage(err, "failed to execute query")
	}

	return nil
}

func mysqlChangeUserPassword(ctx context.Context, db *sql.DB, username, password string) error {
	_, err := db.ExecContext(
		ctx,
		"ALTER USER '"+username+"'@'%' IDENTIFIED BY '"+password+"'",
	)
	if err != nil {
		return errors.WithMessage(err, "failed to execute query")
	}

	return nil
}

func mysqlGrantPrivileges(ctx context.Context, db *sql.DB, username, databaseName string) error {
	//nolint:gosec
	_, err := db.ExecContext(ctx, "GRANT ALL PRIVILEGES ON "+databaseName+".* TO '"+username+"'@'%'")
	if err != nil {
		return errors.WithMessage(err, "failed to grant privileges")
	}
	_, err = db.ExecContext(ctx, "FLUSH PRIVILEGES")
	if err != nil {
		return errors.WithMessage(err, "failed to flush privileges")
	}

	return nil
}
