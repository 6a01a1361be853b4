//go:build linux

package panel

const systemdUnitTemplate = `[Unit]
Description=GamePort game server management panel
After=network.target{{if .After}} {{.After}}{{end}}

[Service]
Type=simple
User={{.User}}
Group={{.Group}}
WorkingDirectory={{.WorkingDirectory}}
ExecStart={{.ExecStart}}
Restart=always
RestartSec=10
Environment=NODE_ENV={{.NodeEnv}}
Environment=GAMEPORT_CONFIG={{.ConfigPath}}
Environment=GAMEPORT_AUTH_SECRET={{.AuthSecret}}
StandardOutput=journal
StandardError=journal
SyslogIdentifier=gameport

[Install]
WantedBy=multi-user.target
`
