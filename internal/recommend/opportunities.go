package recommend

import (
	"cmp"
	"slices"
	"strings"

	"karma/pkg/types"
)

// Opportunity scoring weights.
const (
	SupportedNonprofitPoints = 15
	UrgentPoints             = 5

	// UrgentSpotsThreshold is the most open spots an opportunity can have
	// and still count as urgent.
	UrgentSpotsThreshold = 3
)

// ScoredOpportunity is flagged Recommended when its score clears
// PerfectMatchScore.
type ScoredOpportunity struct {
	Opportunity    *types.Opportunity `json:"opportunity"`
	SpotsAvailable int                `json:"spotsAvailable"`
	Score          int                `json:"score"`
	Recommended    bool               `json:"recommended"`
}

// IsUrgent reports whether an opportunity is nearly full but still open.
func IsUrgent(o *types.Opportunity) bool {
	spots := o.VolunteersNeeded - o.VolunteersSignedUp
	return spots > 0 && spots <= UrgentSpotsThreshold
}

func ScoreOpportunity(p Profile, o *types.Opportunity) int {
	score := 0

	if p.Interested(o.Category) {
		score += CategoryMatchPoints
	}

	if p.Supports(o.NonprofitID) {
		score += SupportedNonprofitPoints
	}

	if IsUrgent(o) {
		score += UrgentPoints
	}

	return score
}

// Opportunities ranks candidates by score, newest first on ties. Equal
// scores and creation times fall back to id. A non-positive limit returns
// every candidate.
func Opportunities(p Profile, candidates []*types.Opportunity, limit int) []ScoredOpportunity {
	scored := make([]ScoredOpportunity, 0, len(candidates))
	for _, o := range candidates {
		if o == nil {
			continue
		}

		score := ScoreOpportunity(p, o)
		scored = append(scored, ScoredOpportunity{
			Opportunity:    o,
			SpotsAvailable: o.SpotsAvailable(),
			Score:          score,
			Recommended:    score > PerfectMatchScore,
		})
	}

	slices.SortFunc(scored, func(a, b ScoredOpportunity) int {
		if a.Score != b.Score {
			return cmp.Compare(b.Score, a.Score)
		}
		if c := b.Opportunity.CreatedAt.Compare(a.Opportunity.CreatedAt); c != 0 {
			return c
		}
		return strings.Compare(a.Opportunity.ID, b.Opportunity.ID)
	})

	return truncate(scored, limit)
}
