package main

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"realestate-backend/internal/bootstrap"
	"realestate-backend/internal/seed"
	"realestate-backend/internal/shared/config"
)

var seedCommand = &cli.Command{
	Name:  "seed",
	Usage: "Load the catalog into empty property and map stores",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:    "file",
			Aliases: []string{"f"},
			Usage:   "YAML catalog to load instead of the built-in one",
		},
	},
	Action: func(c *cli.Context) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		cfg.SeedOnStart = false

		cat, err := loadCatalog(c.String("file"))
		if err != nil {
			return err
		}

		ctx := context.Background()
		app, err := bootstrap.Build(ctx, cfg)
		if err != nil {
			return fmt.Errorf("failed to build app: %w", err)
		}
		defer app.Close()

		if app.DB == nil {
			logrus.Warn("no database configured; seeding the in-memory store has no lasting effect")
		}

		res, err := seed.SeedIfEmpty(ctx, seed.Targets{Properties: app.Properties, Maps: app.Maps}, cat)
		if err != nil {
			return fmt.Errorf("failed to seed: %w", err)
		}

		logrus.WithFields(logrus.Fields{
			"properties": res.Properties,
			"maps":       res.Maps,
		}).Info("catalog seeded")
		return nil
	},
}

func loadCatalog(path string) (seed.Catalog, error) {
	if path == "" {
		return seed.DefaultCatalog()
	}
	return seed.LoadCatalogFile(path)
}
