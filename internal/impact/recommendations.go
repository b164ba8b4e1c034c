package impact

import (
	"context"

	"karma/internal/recommend"
	"karma/pkg/types"

	"golang.org/x/sync/errgroup"
)

// history is everything the recommenders know about one user.
type history struct {
	donations []*types.Donation
	reviews   []*types.Review
}

func (s *Service) loadHistory(ctx context.Context, g *errgroup.Group, user *types.User, h *history) {
	fetch(ctx, s, g, "user donations", &h.donations, func(ctx context.Context) ([]*types.Donation, error) {
		return s.stores.Donations.DonationsByDonor(ctx, user.ID)
	})
	fetch(ctx, s, g, "user reviews", &h.reviews, func(ctx context.Context) ([]*types.Review, error) {
		return s.stores.Reviews.ReviewsByReviewer(ctx, user.ID)
	})
}

// NonprofitRecommendations suggests nonprofits the user has not supported yet.
// Unavailable inputs shrink the result instead of failing it.
func (s *Service) NonprofitRecommendations(ctx context.Context, user *types.User) ([]recommend.ScoredNonprofit, error) {
	var (
		nonprofits []*types.Nonprofit
		allReviews []*types.Review
		h          history
	)

	g, gctx := errgroup.WithContext(ctx)
	fetch(gctx, s, g, "nonprofits", &nonprofits, s.stores.Nonprofits.Nonprofits)
	fetch(gctx, s, g, "reviews", &allReviews, s.stores.Reviews.Reviews)
	s.loadHistory(gctx, g, user, &h)
	if err := g.Wait(); err != nil {
		return nil, err
	}

	profile := recommend.BuildProfile(user, h.donations, h.reviews)
	candidates := recommend.Candidates(nonprofits, recommend.RatingSummaries(allReviews))

	return recommend.Nonprofits(profile, candidates, s.now(), s.limit), nil
}

// OpportunityRecommendations ranks active volunteer opportunities for the
// user.
func (s *Service) OpportunityRecommendations(ctx context.Context, user *types.User) ([]recommend.ScoredOpportunity, error) {
	var (
		opportunities []*types.Opportunity
		h             history
	)

	g, gctx := errgroup.WithContext(ctx)
	fetch(gctx, s, g, "active opportunities", &opportunities, s.stores.Opportunities.ActiveOpportunities)
	s.loadHistory(gctx, g, user, &h)
	if err := g.Wait(); err != nil {
		return nil, err
	}

	profile := recommend.BuildProfile(user, h.donations, h.reviews)

	return recommend.Opportunities(profile, opportunities, s.limit), nil
}
