package app

import (
	"fmt"
	"io/fs"
	"log"
	"os"
	"time"

	"github.com/gameport/gameportctl/internal/actions/provision"
	"github.com/gameport/gameportctl/internal/actions/uninstall"
	contextInternal "github.com/gameport/gameportctl/internal/context"
	"github.com/gameport/gameportctl/pkg/panel"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
)

// nolint:funlen
func Run(args []string) {
	if _, err := os.Stat("/var/log/gameportctl/"); errors.Is(err, fs.ErrNotExist) {
		err := os.Mkdir("/var/log/gameportctl/", 0755)
		if err != nil {
			log.Fatalf("Error creating log directory: %s", err)
		}
	}
	logname := fmt.Sprintf("%s.log", time.Now().Format("2006-01-02_15-04-05"))
	logFile, err := os.OpenFile("/var/log/gameportctl/"+logname, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
	if err != nil {
		log.Fatalf("error opening file: %v", err)
	}

	log.SetOutput(logFile)

	app := &cli.App{
		Name:      "gameportctl",
		Usage:     "GamePort Control",
		UsageText: "Find more information at: https://docs.gameport.io/",
		Before: func(context *cli.Context) error {
			var err error
			context.Context, err = contextInternal.SetOSContext(context.Context)
			if err != nil {
				return err
			}

			return nil
		},
		Commands: []*cli.Command{
			{
				Name:        "panel",
				Aliases:     []string{"p"},
				Description: "GamePort panel actions",
				Usage:       "GamePort panel actions",
				Subcommands: []*cli.Command{
					{
						Name:        "install",
						Aliases:     []string{"i", "provision"},
						Description: "Provision the panel on this host",
						Usage:       "Provision the panel on this host",
						Action:      provision.Handle,
						Flags: []cli.Flag{
							&cli.BoolFlag{
								Name: "non-interactive",
							},
							&cli.StringFlag{
								Name: "host",
							},
							&cli.IntFlag{
								Name: "port",
							},
							&cli.StringFlag{
								Name:  "database",
								Usage: "Database client: mysql, postgres, sqlite or none",
							},
							&cli.StringFlag{
								Name: "database-host",
							},
							&cli.IntFlag{
								Name: "database-port",
							},
							&cli.StringFlag{
								Name: "database-name",
							},
							&cli.StringFlag{
								Name: "database-username",
							},
							&cli.StringFlag{
								Name: "database-password",
							},
							&cli.StringFlag{
								Name: "artifact-url",
							},
						},
					},
					{
						Name:        "uninstall",
						Description: "Uninstall panel",
						Usage:       "Uninstall panel",
						Action:      uninstall.Handle,
						Flags: []cli.Flag{
							&cli.BoolFlag{
								Name:  "purge",
								Usage: "Also remove configuration and data",
							},
						},
					},
					{
						Name:        "start",
						Aliases:     []string{"s"},
						Description: "Start panel",
						Usage:       "Start panel",
						Action: func(cliCtx *cli.Context) error {
							return panel.Start(cliCtx.Context)
						},
					},
					{
						Name:        "stop",
						Description: "Stop panel",
						Usage:       "Stop panel",
						Action: func(cliCtx *cli.Context) error {
							return panel.Stop(cliCtx.Context)
						},
					},
					{
						Name:        "restart",
						Aliases:     []string{"r"},
						Description: "Restart panel",
						Usage:       "Restart panel",
						Action: func(cliCtx *cli.Context) error {
							return panel.Restart(cliCtx.Context)
						},
					},
					{
						Name:        "status",
						Description: "Show panel status",
						Usage:       "Show panel status",
						Action: func(cliCtx *cli.Context) error {
							return panel.Status(cliCtx.Context)
						},
					},
				},
			},
		},
	}

	err = app.Run(args)
	if err != nil {
		fmt.Println(err)
		fmt.Println("See details in log file: /var/log/gameportctl/" + logname)
		log.Fatal(err)
	}
}
