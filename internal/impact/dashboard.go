package impact

import (
	"context"

	"karma/internal/achievements"
	"karma/internal/listing"
	"karma/pkg/types"

	"golang.org/x/sync/errgroup"
)

// NewestNonprofitsShown is how many recently added nonprofits the dashboard
// lists.
const NewestNonprofitsShown = 5

type AchievementsView struct {
	Level      achievements.Level    `json:"level"`
	Totals     achievements.Totals   `json:"totals"`
	Results    []achievements.Result `json:"achievements"`
	Completed  []achievements.Result `json:"completed"`
	InProgress []achievements.Result `json:"inProgress"`
	Locked     []achievements.Result `json:"locked"`
}

// Achievements evaluates the badge catalogue against the user's donation and
// review history.
func (s *Service) Achievements(ctx context.Context, user *types.User) (*AchievementsView, error) {
	var h history

	g, gctx := errgroup.WithContext(ctx)
	s.loadHistory(gctx, g, user, &h)
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var donatedCents int64
	for _, d := range h.donations {
		if d != nil {
			donatedCents += d.AmountCents
		}
	}

	totals := achievements.Totals{
		Donated: float64(donatedCents) / 100,
		Hours:   user.TotalVolunteerHours,
		Reviews: len(h.reviews),
	}

	results := achievements.Evaluate(totals)
	completed, inProgress, locked := achievements.Partition(results)

	return &AchievementsView{
		Level:      achievements.LevelFor(totals.Donated),
		Totals:     totals,
		Results:    results,
		Completed:  completed,
		InProgress: inProgress,
		Locked:     locked,
	}, nil
}

type Dashboard struct {
	NonprofitCount   int                `json:"nonprofitCount"`
	OpportunityCount int                `json:"activeOpportunityCount"`
	DonationCount    int                `json:"donationCount"`
	TotalDonated     float64            `json:"totalDonated"`
	VolunteerHours   float64            `json:"volunteerHours"`
	Level            achievements.Level `json:"level"`
	NewestNonprofits []*types.Nonprofit `json:"newestNonprofits"`
	DisasterAlerts   []listing.Alert    `json:"disasterAlerts"`
}

func (s *Service) Dashboard(ctx context.Context, user *types.User) (*Dashboard, error) {
	var (
		nonprofits    []*types.Nonprofit
		opportunities []*types.Opportunity
		donationCount int
	)

	g, gctx := errgroup.WithContext(ctx)
	fetch(gctx, s, g, "nonprofits", &nonprofits, s.stores.Nonprofits.Nonprofits)
	fetch(gctx, s, g, "active opportunities", &opportunities, s.stores.Opportunities.ActiveOpportunities)
	fetch(gctx, s, g, "donation count", &donationCount, s.stores.Donations.CountDonations)
	if err := g.Wait(); err != nil {
		return nil, err
	}

	newest := nonprofits
	if len(newest) > NewestNonprofitsShown {
		newest = newest[:NewestNonprofitsShown]
	}
	if newest == nil {
		newest = []*types.Nonprofit{}
	}

	return &Dashboard{
		NonprofitCount:   len(nonprofits),
		OpportunityCount: len(opportunities),
		DonationCount:    donationCount,
		TotalDonated:     user.TotalDonated(),
		VolunteerHours:   user.TotalVolunteerHours,
		Level:            achievements.LevelFor(user.TotalDonated()),
		NewestNonprofits: newest,
		DisasterAlerts:   listing.DisasterAlerts(user.Location, opportunities),
	}, nil
}
