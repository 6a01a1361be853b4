package provision

import (
	"fmt"

	"github.com/gameport/gameportctl/pkg/utils"
)

type askedParams struct {
	host                 string
	database             string
	databaseRootPassword string
}

func askUser(needToAsk map[string]struct{}) (askedParams, error) {
	var err error
	result := askedParams{}

	if _, ok := needToAsk["host"]; ok {
		result.host, err = utils.Ask(
			"Enter panel host (Example: panel.example.com): ",
			false,
			nil,
		)
		if err != nil {
			return result, err
		}
	}

	//nolint:nestif
	if _, ok := needToAsk["database"]; ok {
		fmt.Println("Select database to install and configure")
		fmt.Println("")
		fmt.Println("1) MySQL")
		fmt.Println("2) PostgreSQL")
		fmt.Println("3) SQLite")
		fmt.Println("4) None. Do not install a database")

		num, err := utils.Ask(
			"Enter number: ",
			false,
			func(s string) (bool, string) {
				if s != "1" && s != "2" && s != "3" && s != "4" {
					return false, "Please answer 1-4."
				}

				return true, ""
			},
		)
		if err != nil {
			return result, err
		}

		switch num {
		case "1":
			result.database = mysqlDatabase
			fmt.Println("Okay! Will try to install MySQL ...")
		case "2":
			result.database = postgresDatabase
			fmt.Println("Okay! Will try to install PostgreSQL ...")
		case "3":
			result.database = sqliteDatabase
			fmt.Println("Okay! Will try to install SQLite ...")
		case "4":
			result.database = noneDatabase
			fmt.Println("Okay! ...")
		}

		if result.database == mysqlDatabase || result.database == postgresDatabase {
			result.databaseRootPassword, err = utils.AskPassword(
				"Enter database administrator password (leave empty for socket auth): ",
			)
			if err != nil {
				return result, err
			}
		}
	}

	return result, nil
}
