package main

import (
	"context"
	"fmt"

	"karma/internal/db"
	"karma/internal/seed"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

var seedCommand = &cli.Command{
	Name:  "seed",
	Usage: "Seed the nonprofit directory and fake users",
	Flags: []cli.Flag{
		&cli.BoolFlag{
			Name:  "skip-users",
			Usage: "Only seed the nonprofit directory",
		},
	},
	Action: func(c *cli.Context) error {
		cfg, err := loadConfig(c)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		ctx := context.Background()

		pool, err := db.Connect(ctx, cfg)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer pool.Close()

		logrus.Info("Connected to database")

		repos := newRepositories(pool)

		logrus.Info("Seeding nonprofit directory...")
		if err := seed.SeedDirectory(ctx, repos.nonprofits, repos.opportunities); err != nil {
			return fmt.Errorf("failed to seed directory: %w", err)
		}

		if c.Bool("skip-users") {
			return nil
		}

		logrus.Info("Seeding fake users...")
		if err := seed.SeedFakeUsers(ctx, repos.users); err != nil {
			return fmt.Errorf("failed to seed users: %w", err)
		}

		logrus.Info("Seed complete")

		return nil
	},
}
