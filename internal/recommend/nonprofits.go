package recommend

import (
	"cmp"
	"slices"
	"strings"
	"time"

	"karma/pkg/types"
)

// DefaultLimit is how many recommendations the dashboard shows.
const DefaultLimit = 3

// Nonprofit scoring weights.
const (
	CategoryMatchPoints  = 10
	TopRatedPoints       = 8
	WellRatedPoints      = 5
	TrustedReviewsPoints = 3
	NewcomerPoints       = 2

	TopRatedThreshold       = 4.5
	WellRatedThreshold      = 4.0
	TrustedReviewsThreshold = 10
	NewcomerWindow          = 30 * 24 * time.Hour

	// PerfectMatchScore is the score above which a recommendation is
	// flagged as a strong match.
	PerfectMatchScore = 10
)

type NonprofitCandidate struct {
	Nonprofit *types.Nonprofit
	RatingSummary
}

type ScoredNonprofit struct {
	Nonprofit *types.Nonprofit `json:"nonprofit"`
	RatingSummary
	Score        int  `json:"score"`
	PerfectMatch bool `json:"perfectMatch"`
}

// Candidates pairs each nonprofit with its rating summary.
func Candidates(nonprofits []*types.Nonprofit, summaries map[string]RatingSummary) []NonprofitCandidate {
	out := make([]NonprofitCandidate, 0, len(nonprofits))
	for _, n := range nonprofits {
		if n == nil {
			continue
		}
		out = append(out, NonprofitCandidate{Nonprofit: n, RatingSummary: summaries[n.ID]})
	}
	return out
}

// ScoreNonprofit adds up the independent weights for one candidate.
func ScoreNonprofit(p Profile, c NonprofitCandidate, now time.Time) int {
	score := 0

	if p.Interested(c.Nonprofit.Category) {
		score += CategoryMatchPoints
	}

	switch {
	case c.Average >= TopRatedThreshold:
		score += TopRatedPoints
	case c.Average >= WellRatedThreshold:
		score += WellRatedPoints
	}

	if c.Count >= TrustedReviewsThreshold {
		score += TrustedReviewsPoints
	}

	if now.Sub(c.Nonprofit.CreatedAt) <= NewcomerWindow {
		score += NewcomerPoints
	}

	return score
}

// Nonprofits ranks the candidates the user has not supported yet. Ties on
// score are broken by name, then id, so the ranking does not depend on input
// order. A non-positive limit returns every ranked candidate.
func Nonprofits(p Profile, candidates []NonprofitCandidate, now time.Time, limit int) []ScoredNonprofit {
	scored := make([]ScoredNonprofit, 0, len(candidates))
	for _, c := range candidates {
		if c.Nonprofit == nil || p.Supports(c.Nonprofit.ID) {
			continue
		}

		score := ScoreNonprofit(p, c, now)
		scored = append(scored, ScoredNonprofit{
			Nonprofit:     c.Nonprofit,
			RatingSummary: c.RatingSummary,
			Score:         score,
			PerfectMatch:  score > PerfectMatchScore,
		})
	}

	slices.SortFunc(scored, func(a, b ScoredNonprofit) int {
		if a.Score != b.Score {
			return cmp.Compare(b.Score, a.Score)
		}
		if c := strings.Compare(a.Nonprofit.Name, b.Nonprofit.Name); c != 0 {
			return c
		}
		return strings.Compare(a.Nonprofit.ID, b.Nonprofit.ID)
	})

	return truncate(scored, limit)
}

func truncate[T any](items []T, limit int) []T {
	if limit > 0 && len(items) > limit {
		return items[:limit]
	}
	return items
}
