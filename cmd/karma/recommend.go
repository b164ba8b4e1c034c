package main

import (
	"context"
	"fmt"

	"karma/internal/db"
	"karma/internal/impact"

	"github.com/k0kubun/pp/v3"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

var recommendCommand = &cli.Command{
	Name:  "recommend",
	Usage: "Print a user's recommendations and achievements",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:     "user",
			Aliases:  []string{"u"},
			Usage:    "User id to score for",
			Required: true,
		},
	},
	Action: recommend,
}

func recommend(c *cli.Context) error {
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

	repos := newRepositories(pool)
	service := impact.New(
		logrus.StandardLogger(),
		repos.stores(),
		impact.WithRecommendationLimit(cfg.RecommendationLimit),
	)

	user, err := repos.users.User(ctx, c.String("user"))
	if err != nil {
		return fmt.Errorf("failed to load user: %w", err)
	}

	nonprofits, err := service.NonprofitRecommendations(ctx, user)
	if err != nil {
		return fmt.Errorf("failed to recommend nonprofits: %w", err)
	}

	opportunities, err := service.OpportunityRecommendations(ctx, user)
	if err != nil {
		return fmt.Errorf("failed to recommend opportunities: %w", err)
	}

	achievements, err := service.Achievements(ctx, user)
	if err != nil {
		return fmt.Errorf("failed to evaluate achievements: %w", err)
	}

	printer := pp.New()
	printer.SetColoringEnabled(false)

	fmt.Println("Nonprofits:")
	printer.Println(nonprofits)
	fmt.Println("Opportunities:")
	printer.Println(opportunities)
	fmt.Println("Achievements:")
	printer.Println(achievements)

	return nil
}
