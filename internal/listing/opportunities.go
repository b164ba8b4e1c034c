package listing

import (
	"cmp"
	"slices"
	"strings"

	"karma/pkg/types"
)

// DefaultMaxDistance is the nearby radius in miles when none is given.
const DefaultMaxDistance = 50.0

type OpportunityQuery struct {
	Search      string  `form:"q"`
	Category    string  `form:"category"`
	Sort        string  `form:"sort"`
	Nearby      bool    `form:"nearby"`
	MaxDistance float64 `form:"max_distance"`
}

type OpportunityEntry struct {
	Opportunity         *types.Opportunity `json:"opportunity"`
	Distance            *float64           `json:"distanceMiles,omitempty"`
	SpotsAvailable      int                `json:"spotsAvailable"`
	IsPreferredCategory bool               `json:"isPreferredCategory"`
}

// Opportunities annotates, filters and sorts volunteer opportunities. The
// nearby filter only applies when origin has coordinates, and drops
// opportunities whose distance is unknown.
func Opportunities(origin types.Location, preferred []string, opportunities []*types.Opportunity, q OpportunityQuery) []OpportunityEntry {
	prefs := make(map[types.Category]struct{}, len(preferred))
	for _, c := range preferred {
		prefs[types.Category(c)] = struct{}{}
	}

	search := strings.ToLower(strings.TrimSpace(q.Search))
	originKnown := origin.HasCoordinates()

	maxDistance := q.MaxDistance
	if maxDistance <= 0 {
		maxDistance = DefaultMaxDistance
	}

	entries := make([]OpportunityEntry, 0, len(opportunities))
	for _, o := range opportunities {
		if o == nil {
			continue
		}

		if search != "" && !containsFold(search, o.Title, o.Description) {
			continue
		}

		if !categoryMatches(q.Category, o.Category) {
			continue
		}

		d := distance(origin, o.Location)
		if q.Nearby && originKnown && (d == nil || *d > maxDistance) {
			continue
		}

		_, isPreferred := prefs[o.Category]
		entries = append(entries, OpportunityEntry{
			Opportunity:         o,
			Distance:            d,
			SpotsAvailable:      o.SpotsAvailable(),
			IsPreferredCategory: isPreferred,
		})
	}

	newestFirst := func(a, b OpportunityEntry) int {
		return b.Opportunity.CreatedAt.Compare(a.Opportunity.CreatedAt)
	}

	slices.SortStableFunc(entries, func(a, b OpportunityEntry) int {
		switch q.Sort {
		case SortRecommended:
			if a.IsPreferredCategory != b.IsPreferredCategory {
				if a.IsPreferredCategory {
					return -1
				}
				return 1
			}
			return newestFirst(a, b)
		case SortDistance:
			if !originKnown {
				return newestFirst(a, b)
			}
			return compareDistance(a.Distance, b.Distance)
		case SortNewest:
			return newestFirst(a, b)
		case SortOldest:
			return a.Opportunity.CreatedAt.Compare(b.Opportunity.CreatedAt)
		case SortDeadline:
			return compareDeadline(a.Opportunity, b.Opportunity)
		case SortSpots:
			return cmp.Compare(b.SpotsAvailable, a.SpotsAvailable)
		}
		return 0
	})

	return entries
}

func compareDeadline(a, b *types.Opportunity) int {
	switch {
	case a.EndDate == nil && b.EndDate == nil:
		return 0
	case a.EndDate == nil:
		return 1
	case b.EndDate == nil:
		return -1
	}
	return a.EndDate.Compare(*b.EndDate)
}
