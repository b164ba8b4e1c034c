// Package listing filters and sorts the nonprofit and opportunity
// directories for display. Like the recommenders it never fetches anything
// itself; callers hand it complete snapshots.
package listing

import (
	"cmp"
	"slices"
	"strings"

	"karma/internal/geo"
	"karma/internal/recommend"
	"karma/internal/utils"
	"karma/pkg/types"
)

const (
	SortDistance    = "distance"
	SortName        = "name"
	SortDonations   = "donations"
	SortVolunteers  = "volunteers"
	SortRating      = "rating"
	SortNewest      = "newest"
	SortOldest      = "oldest"
	SortRecommended = "recommended"
	SortDeadline    = "deadline"
	SortSpots       = "spots"

	// AllCategories disables the category filter.
	AllCategories = "all"
)

// Directory relevance weights.
const (
	PreferredCategoryRelevance = 100
	WellRatedRelevance         = 20
)

// Directory scopes narrow results to the viewer's saved city or country.
const (
	ScopeAny      = "any"
	ScopeLocal    = "local"
	ScopeNational = "national"
)

type NonprofitQuery struct {
	Search   string `form:"q"`
	Category string `form:"category"`
	Sort     string `form:"sort"`
	Scope    string `form:"scope"`
}

type NonprofitEntry struct {
	Nonprofit *types.Nonprofit `json:"nonprofit"`
	recommend.RatingSummary
	Distance    *float64 `json:"distanceMiles,omitempty"`
	IsFavorited bool     `json:"isFavorited"`
	Relevance   int      `json:"relevance"`
}

// Nonprofits annotates, filters and sorts the nonprofit directory. origin is
// the viewer's position; a location without coordinates leaves every
// distance unknown. user may be nil for anonymous browsing.
func Nonprofits(user *types.User, origin types.Location, nonprofits []*types.Nonprofit, summaries map[string]recommend.RatingSummary, q NonprofitQuery) []NonprofitEntry {
	preferred := preferredSet(user)
	search := strings.ToLower(strings.TrimSpace(q.Search))

	entries := make([]NonprofitEntry, 0, len(nonprofits))
	for _, n := range nonprofits {
		if n == nil {
			continue
		}

		if search != "" && !containsFold(search, n.Name, n.Description, utils.PtrString(n.MissionStatement)) {
			continue
		}

		if !categoryMatches(q.Category, n.Category) {
			continue
		}

		if user != nil && !scopeMatches(q.Scope, user.Location, n.Location) {
			continue
		}

		summary := summaries[n.ID]

		relevance := 0
		if _, ok := preferred[n.Category]; ok {
			relevance += PreferredCategoryRelevance
		}
		if summary.Average >= recommend.WellRatedThreshold {
			relevance += WellRatedRelevance
		}

		entries = append(entries, NonprofitEntry{
			Nonprofit:     n,
			RatingSummary: summary,
			Distance:      distance(origin, n.Location),
			IsFavorited:   user != nil && user.IsFavorite(n.ID),
			Relevance:     relevance,
		})
	}

	originKnown := origin.HasCoordinates()
	slices.SortStableFunc(entries, func(a, b NonprofitEntry) int {
		switch q.Sort {
		case SortDistance:
			if !originKnown {
				return strings.Compare(a.Nonprofit.Name, b.Nonprofit.Name)
			}
			return compareDistance(a.Distance, b.Distance)
		case SortName:
			return strings.Compare(a.Nonprofit.Name, b.Nonprofit.Name)
		case SortDonations:
			return cmp.Compare(b.Nonprofit.TotalDonationsReceivedCents, a.Nonprofit.TotalDonationsReceivedCents)
		case SortVolunteers:
			return cmp.Compare(b.Nonprofit.VolunteersCount, a.Nonprofit.VolunteersCount)
		case SortRating:
			return cmp.Compare(b.Average, a.Average)
		case SortNewest:
			return b.Nonprofit.CreatedAt.Compare(a.Nonprofit.CreatedAt)
		case SortRecommended:
			if a.Relevance != b.Relevance {
				return cmp.Compare(b.Relevance, a.Relevance)
			}
			if a.Average != b.Average {
				return cmp.Compare(b.Average, a.Average)
			}
			return strings.Compare(a.Nonprofit.Name, b.Nonprofit.Name)
		}
		return 0
	})

	return entries
}

func preferredSet(user *types.User) map[types.Category]struct{} {
	out := make(map[types.Category]struct{})
	if user == nil {
		return out
	}
	for _, c := range user.PreferredCategories {
		out[types.Category(c)] = struct{}{}
	}
	return out
}

func containsFold(lowerNeedle string, haystacks ...string) bool {
	for _, h := range haystacks {
		if strings.Contains(strings.ToLower(h), lowerNeedle) {
			return true
		}
	}
	return false
}

// scopeMatches compares place names case-insensitively. A viewer without
// both a city and a country is not narrowed at all.
func scopeMatches(scope string, viewer, target types.Location) bool {
	city, country := utils.PtrString(viewer.City), utils.PtrString(viewer.Country)
	if city == "" || country == "" {
		return true
	}

	sameCountry := strings.EqualFold(utils.PtrString(target.Country), country)
	switch scope {
	case ScopeLocal:
		return sameCountry && strings.EqualFold(utils.PtrString(target.City), city)
	case ScopeNational:
		return sameCountry
	}
	return true
}

func categoryMatches(filter string, c types.Category) bool {
	filter = strings.TrimSpace(filter)
	return filter == "" || filter == AllCategories || types.Category(filter) == c
}

func distance(origin, target types.Location) *float64 {
	d, ok := geo.DistanceMiles(origin, target)
	if !ok {
		return nil
	}
	return &d
}

// compareDistance orders known distances ascending with unknown ones last.
func compareDistance(a, b *float64) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return 1
	case b == nil:
		return -1
	}
	return cmp.Compare(*a, *b)
}
