package uninstall

import (
	"testing"

	packagemanager "github.com/gameport/gameportctl/pkg/package_manager"
	"github.com/stretchr/testify/assert"
)

func Test_purgePackages(t *testing.T) {
	packs := purgePackages()

	assert.Contains(t, packs, packagemanager.NodeJSPackage)
	assert.Contains(t, packs, packagemanager.NPMPackage)

	// shared services and general tools must survive a purge
	assert.NotContains(t, packs, packagemanager.MariaDBServerPackage)
	assert.NotContains(t, packs, packagemanager.PostgreSQLDebianPackage)
	assert.NotContains(t, packs, packagemanager.CurlPackage)
	assert.NotContains(t, packs, packagemanager.TarPackage)
}
