//go:build linux

package panel

import (
	"bytes"
	"context"
	"text/template"

	"github.com/gameport/gameportctl/pkg/gameport"
	"github.com/gameport/gameportctl/pkg/sysenv"
	"github.com/pkg/errors"
)

type UnitConfig struct {
	User             string
	Group            string
	WorkingDirectory string
	ExecStart        string
	NodeEnv          string
	ConfigPath       string
	AuthSecret       string
	// After holds extra units the panel should be ordered after,
	// e.g. mariadb.service when the database runs on the same host.
	After string
}

// WriteUnit renders the systemd unit for the panel and writes it to path.
// It reports whether the unit file changed.
func WriteUnit(env sysenv.Environment, cfg UnitConfig, path string) (bool, error) {
	tmpl, err := template.New("unit").Parse(systemdUnitTemplate)
	if err != nil {
		return false, errors.WithMessage(err, "failed to parse systemd unit template")
	}

	buf := &bytes.Buffer{}
	err = tmpl.Execute(buf, cfg)
	if err != nil {
		return false, errors.WithMessage(err, "failed to render systemd unit")
	}

	if env.FileExists(path) {
		current, err := env.ReadFile(path)
		if err != nil {
			return false, errors.WithMessage(err, "failed to read systemd unit")
		}
		if bytes.Equal(current, buf.Bytes()) {
			return false, nil
		}
	}

	err = env.WriteFileAtomic(path, buf.Bytes(), 0644)
	if err != nil {
		return false, errors.WithMessage(err, "failed to write systemd unit")
	}

	return true, nil
}

// Activate reloads systemd, enables the panel unit for boot and restarts it
// so a running panel picks up configuration changes.
func Activate(ctx context.Context, env sysenv.Environment) error {
	err := env.DaemonReload(ctx)
	if err != nil {
		return errors.WithMessage(err, "failed to reload systemd")
	}

	err = env.EnableService(ctx, gameport.ServiceName)
	if err != nil {
		return errors.WithMessage(err, "failed to enable gameport service")
	}

	err = env.RestartService(ctx, gameport.ServiceName)
	if err != nil {
		return errors.WithMessage(err, "failed to restart gameport service")
	}

	return nil
}
