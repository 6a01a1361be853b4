//go:build linux

package gameport

// Deployment conventions for a GamePort panel host.

const DefaultInstallPath = "/opt/gameport"
const DefaultDataPath = "/var/lib/gameport"
const DefaultConfigDirPath = "/etc/gameport"
const DefaultLogPath = "/var/log/gameport"

const DefaultConfigFilePath = "/etc/gameport/config.yml"
const DefaultStoragePath = "/var/lib/gameport/storage"
const DefaultEntryPointPath = "/opt/gameport/server.js"
const DefaultCLIPath = "/opt/gameport/bin/cli"
const DefaultCLISymlinkPath = "/usr/local/bin/gameport"

const DefaultUser = "gameport"
const DefaultGroup = "gameport"
const ServiceName = "gameport"

const DefaultDockerSocketPath = "/var/run/docker.sock"

const DefaultPanelArtifactURL = "https://packages.gameport.io/panel/latest.tar.gz"
