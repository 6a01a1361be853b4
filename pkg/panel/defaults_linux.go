//go:build linux

package panel

import (
	"path/filepath"

	"github.com/gameport/gameportctl/pkg/gameport"
)

const systemdUnitDir = "/etc/systemd/system"

func UnitFilePath() string {
	return filepath.Join(systemdUnitDir, gameport.ServiceName+".service")
}
