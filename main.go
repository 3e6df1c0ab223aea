package main

import (
	"context"
	"os"

	"github.com/rohanthewiz/logger"
	"github.com/urfave/cli/v3"
)

func main() {
	logger.SetLogLevel("info")

	serve := serveCommand()

	app := &cli.Command{
		Name:     "goflix",
		Usage:    "Browse movie and TV listings with trailers",
		Version:  "0.1.0",
		Flags:    configFlags(),
		Action:   serve.Action,
		Commands: []*cli.Command{serve, browseCommand()},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		logger.LogErr(err, "application error")
		os.Exit(1)
	}
}

func configFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "Path to a TOML configuration file",
			Sources: cli.EnvVars("GOFLIX_CONFIG"),
		},
	}
}

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:   "serve",
		Usage:  "Run the web server (default)",
		Flags:  configFlags(),
		Action: runServe,
	}
}

func browseCommand() *cli.Command {
	return &cli.Command{
		Name:   "browse",
		Usage:  "Browse the home screen in the terminal",
		Flags:  configFlags(),
		Action: runBrowse,
	}
}
