package main

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "admin",
		Usage: "Operator tasks for the listings backend",
		Commands: []*cli.Command{
			seedCommand,
			hashPasswordCommand,
		},
	}

	if err := app.Run(os.Args); err != nil {
		logrus.WithError(err).Fatal("admin command failed")
	}
}
