package impact

import (
	"context"
	"slices"

	"karma/internal/listing"
	"karma/internal/recommend"
	"karma/pkg/types"

	"golang.org/x/sync/errgroup"
)

// originFor prefers an explicit position and falls back to the user's own.
func originFor(user *types.User, override types.Location) types.Location {
	if override.HasCoordinates() || user == nil {
		return override
	}
	return user.Location
}

func (s *Service) BrowseNonprofits(ctx context.Context, user *types.User, origin types.Location, q listing.NonprofitQuery) ([]listing.NonprofitEntry, error) {
	var (
		nonprofits []*types.Nonprofit
		reviews    []*types.Review
	)

	g, gctx := errgroup.WithContext(ctx)
	fetch(gctx, s, g, "nonprofits", &nonprofits, s.stores.Nonprofits.Nonprofits)
	fetch(gctx, s, g, "reviews", &reviews, s.stores.Reviews.Reviews)
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return listing.Nonprofits(user, originFor(user, origin), nonprofits, recommend.RatingSummaries(reviews), q), nil
}

func (s *Service) BrowseOpportunities(ctx context.Context, user *types.User, origin types.Location, q listing.OpportunityQuery) ([]listing.OpportunityEntry, error) {
	opportunities, err := s.stores.Opportunities.ActiveOpportunities(ctx)
	if err != nil {
		s.logger.WithError(err).WithField("source", "active opportunities").Warn("fetch failed, continuing with empty input")
	}

	var preferred []string
	if user != nil {
		preferred = user.PreferredCategories
	}

	return listing.Opportunities(originFor(user, origin), preferred, opportunities, q), nil
}

// Alerts returns nearby disaster relief opportunities for the user's location.
func (s *Service) Alerts(ctx context.Context, user *types.User) ([]listing.Alert, error) {
	opportunities, err := s.stores.Opportunities.ActiveOpportunities(ctx)
	if err != nil {
		s.logger.WithError(err).WithField("source", "active opportunities").Warn("fetch failed, continuing with empty input")
	}

	return listing.DisasterAlerts(user.Location, opportunities), nil
}

type NonprofitDetail struct {
	Nonprofit *types.Nonprofit `json:"nonprofit"`
	recommend.RatingSummary
	Reviews       []*types.Review      `json:"reviews"`
	Opportunities []*types.Opportunity `json:"opportunities"`
}

// NonprofitDetail loads a nonprofit with its reviews, newest first, and its
// active opportunities.
func (s *Service) NonprofitDetail(ctx context.Context, nonprofitID string) (*NonprofitDetail, error) {
	nonprofit, err := s.nonprofit(ctx, nonprofitID)
	if err != nil {
		return nil, err
	}

	detail := &NonprofitDetail{Nonprofit: nonprofit}

	g, gctx := errgroup.WithContext(ctx)
	fetch(gctx, s, g, "nonprofit reviews", &detail.Reviews, func(ctx context.Context) ([]*types.Review, error) {
		return s.stores.Reviews.ReviewsByNonprofit(ctx, nonprofitID)
	})
	fetch(gctx, s, g, "nonprofit opportunities", &detail.Opportunities, func(ctx context.Context) ([]*types.Opportunity, error) {
		return s.stores.Opportunities.ActiveOpportunitiesByNonprofit(ctx, nonprofitID)
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	slices.SortStableFunc(detail.Reviews, func(a, b *types.Review) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})

	detail.RatingSummary = recommend.RatingSummaries(detail.Reviews)[nonprofitID]
	if detail.Reviews == nil {
		detail.Reviews = []*types.Review{}
	}
	if detail.Opportunities == nil {
		detail.Opportunities = []*types.Opportunity{}
	}

	return detail, nil
}
