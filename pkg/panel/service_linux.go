//go:build linux

package panel

import (
	"context"
	"fmt"

	"github.com/gameport/gameportctl/pkg/gameport"
	"github.com/gameport/gameportctl/pkg/service"
	"github.com/gameport/gameportctl/pkg/utils"
	"github.com/pkg/errors"
)

func Start(ctx context.Context) error {
	if !utils.IsFileExists(UnitFilePath()) {
		return ErrPanelNotInstalled
	}

	return service.Start(ctx, gameport.ServiceName)
}

func Stop(ctx context.Context) error {
	if !utils.IsFileExists(UnitFilePath()) {
		return ErrPanelNotInstalled
	}

	return service.Stop(ctx, gameport.ServiceName)
}

func Restart(ctx context.Context) error {
	if !utils.IsFileExists(UnitFilePath()) {
		return ErrPanelNotInstalled
	}

	return service.Restart(ctx, gameport.ServiceName)
}

func Status(ctx context.Context) error {
	if !utils.IsFileExists(UnitFilePath()) {
		return ErrPanelNotInstalled
	}

	err := service.Status(ctx, gameport.ServiceName)
	if err != nil {
		if errors.Is(err, service.ErrInactiveService) {
			fmt.Println("gameport service is inactive")

			return nil
		}

		return err
	}

	fmt.Println("gameport service is active")

	return nil
}
