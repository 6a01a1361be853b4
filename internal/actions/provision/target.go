package provision

import (
	"strings"

	packagemanager "github.com/gameport/gameportctl/pkg/package_manager"
)

// requiredPackages is the desired package set for a panel host. Packages
// already present are fast no-ops for the underlying package manager, so
// the whole set is handed over on every run.
func requiredPackages(family packagemanager.Family, databaseClient string) []string {
	packs := []string{
		packagemanager.CurlPackage,
		packagemanager.TarPackage,
		packagemanager.NodeJSPackage,
		packagemanager.NPMPackage,
	}

	switch databaseClient {
	case mysqlDatabase:
		packs = append(packs, packagemanager.MariaDBServerPackage)
	case postgresDatabase:
		// debian and rhel name the server package differently
		if family == packagemanager.FamilyRHEL {
			packs = append(packs, packagemanager.PostgreSQLRHELPackage)
		} else {
			packs = append(packs, packagemanager.PostgreSQLDebianPackage)
		}
	}

	switch family {
	case packagemanager.FamilyDebian:
		packs = append(packs, packagemanager.RedisDebianPackage, packagemanager.DockerDebianPackage)
	case packagemanager.FamilyRHEL:
		packs = append(packs, packagemanager.RedisRHELPackage, packagemanager.DockerRHELPackage)
	}

	return packs
}

func databaseServiceName(databaseClient string) string {
	switch databaseClient {
	case mysqlDatabase:
		return "mariadb"
	case postgresDatabase:
		return "postgresql"
	}

	return ""
}

func redisServiceName(family packagemanager.Family) string {
	if family == packagemanager.FamilyRHEL {
		return "redis"
	}

	return "redis-server"
}

// baseServices are the supporting services the panel expects on its host,
// enabled and started right after their packages are installed.
func baseServices(family packagemanager.Family) []string {
	return []string{redisServiceName(family), "docker"}
}

// afterUnits lists extra systemd units the panel should start after.
func afterUnits(family packagemanager.Family, databaseClient string) string {
	var units []string

	switch databaseClient {
	case mysqlDatabase:
		units = append(units, "mariadb.service")
	case postgresDatabase:
		units = append(units, "postgresql.service")
	}

	units = append(units, redisServiceName(family)+".service", "docker.service")

	return strings.Join(units, " ")
}
