package uninstall

import (
	"fmt"
	"os"

	"github.com/gameport/gameportctl/pkg/gameport"
	packagemanager "github.com/gameport/gameportctl/pkg/package_manager"
	"github.com/gameport/gameportctl/pkg/panel"
	"github.com/gameport/gameportctl/pkg/service"
	"github.com/gameport/gameportctl/pkg/utils"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	"go.uber.org/multierr"
)

var errMustBeRoot = errors.New("uninstall must be run as root")

// Handle removes the panel service registration and, with --purge, every
// directory provisioning created. Removal keeps going past individual
// failures and reports them all at the end.
func Handle(cliCtx *cli.Context) error {
	if os.Geteuid() != 0 {
		return errMustBeRoot
	}

	ctx := cliCtx.Context
	purge := cliCtx.Bool("purge")

	var result error

	if utils.IsFileExists(panel.UnitFilePath()) {
		fmt.Println("Stopping gameport service ...")
		err := service.Stop(ctx, gameport.ServiceName)
		if err != nil && !errors.Is(err, service.ErrInactiveService) {
			result = multierr.Append(result, errors.WithMessage(err, "failed to stop gameport service"))
		}

		err = service.Disable(ctx, gameport.ServiceName)
		if err != nil {
			result = multierr.Append(result, errors.WithMessage(err, "failed to disable gameport service"))
		}

		fmt.Println("Removing gameport service ...")
		err = os.Remove(panel.UnitFilePath())
		if err != nil {
			result = multierr.Append(result, errors.WithMessage(err, "failed to remove systemd unit"))
		}

		err = service.DaemonReload(ctx)
		if err != nil {
			result = multierr.Append(result, errors.WithMessage(err, "failed to reload systemd"))
		}
	}

	if utils.IsFileExists(gameport.DefaultCLISymlinkPath) {
		err := os.Remove(gameport.DefaultCLISymlinkPath)
		if err != nil {
			result = multierr.Append(result, errors.WithMessage(err, "failed to remove cli symlink"))
		}
	}

	err := os.RemoveAll(gameport.DefaultInstallPath)
	if err != nil {
		result = multierr.Append(result, errors.WithMessage(err, "failed to remove panel directory"))
	}

	if purge {
		fmt.Println("Removing gameport data ...")
		for _, dir := range []string{
			gameport.DefaultConfigDirPath,
			gameport.DefaultDataPath,
			gameport.DefaultLogPath,
		} {
			err = os.RemoveAll(dir)
			if err != nil {
				result = multierr.Append(result, errors.WithMessagef(err, "failed to remove %s", dir))
			}
		}

		pm, err := packagemanager.Load(ctx)
		if err != nil {
			result = multierr.Append(result, errors.WithMessage(err, "failed to load package manager"))
		} else {
			fmt.Println("Removing panel runtime packages ...")
			err = pm.Remove(ctx, purgePackages()...)
			if err != nil {
				result = multierr.Append(result, errors.WithMessage(err, "failed to remove packages"))
			}
		}
	} else {
		fmt.Println("Configuration and data are kept. Use --purge to remove them.")
	}

	if result == nil {
		fmt.Println("GamePort panel is uninstalled.")
	}

	return result
}

// purgePackages lists packages installed solely for the panel runtime.
// Shared services (database, redis, docker) and general tools stay, they
// may hold data or serve other workloads.
func purgePackages() []string {
	return []string{
		packagemanager.NodeJSPackage,
		packagemanager.NPMPackage,
	}
}
