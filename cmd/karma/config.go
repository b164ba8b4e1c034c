package main

import (
	"context"
	"fmt"

	"karma/internal/impact"
	"karma/internal/store"
	"karma/pkg/types"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/kelseyhightower/envconfig"
	"github.com/urfave/cli/v2"
)

func loadConfig(c *cli.Context) (*types.Config, error) {
	cfg := new(types.Config)
	if err := envconfig.Process(c.String("env-prefix"), cfg); err != nil {
		return nil, fmt.Errorf("process environment config: %w", err)
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("set DATABASE_URL")
	}

	if cfg.ServerPort == 0 {
		cfg.ServerPort = 8080
	}

	if cfg.ReadTimeoutSec == 0 {
		cfg.ReadTimeoutSec = 10
	}

	if cfg.WriteTimeoutSec == 0 {
		cfg.WriteTimeoutSec = 15
	}

	return cfg, nil
}

func loadAWSConfig(ctx context.Context) (aws.Config, error) {
	config, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return aws.Config{}, fmt.Errorf("failed to load aws config: %w", err)
	}

	return config, nil
}

type repositories struct {
	users         *store.UserRepository
	nonprofits    *store.NonprofitRepository
	opportunities *store.OpportunityRepository
	donations     *store.DonationRepository
	reviews       *store.ReviewRepository
	recurring     *store.RecurringDonationRepository
	applications  *store.VolunteerApplicationRepository
	messages      *store.MessageRepository
}

func newRepositories(pool *pgxpool.Pool) *repositories {
	return &repositories{
		users:         store.NewUserRepository(pool),
		nonprofits:    store.NewNonprofitRepository(pool),
		opportunities: store.NewOpportunityRepository(pool),
		donations:     store.NewDonationRepository(pool),
		reviews:       store.NewReviewRepository(pool),
		recurring:     store.NewRecurringDonationRepository(pool),
		applications:  store.NewVolunteerApplicationRepository(pool),
		messages:      store.NewMessageRepository(pool),
	}
}

func (r *repositories) stores() impact.Stores {
	return impact.Stores{
		Users:         r.users,
		Nonprofits:    r.nonprofits,
		Opportunities: r.opportunities,
		Donations:     r.donations,
		Reviews:       r.reviews,
		Recurring:     r.recurring,
		Applications:  r.applications,
		Messages:      r.messages,
	}
}
