package recommend

import "karma/pkg/types"

type RatingSummary struct {
	Average float64 `json:"averageRating"`
	Count   int     `json:"reviewCount"`
}

// RatingSummaries groups reviews by nonprofit. Ratings outside 1..5 are
// clamped before averaging. Nonprofits without reviews are absent and read
// as a zero summary.
func RatingSummaries(reviews []*types.Review) map[string]RatingSummary {
	totals := make(map[string]int)
	counts := make(map[string]int)

	for _, r := range reviews {
		if r == nil {
			continue
		}
		totals[r.NonprofitID] += types.ClampRating(r.Rating)
		counts[r.NonprofitID]++
	}

	out := make(map[string]RatingSummary, len(counts))
	for id, count := range counts {
		out[id] = RatingSummary{
			Average: float64(totals[id]) / float64(count),
			Count:   count,
		}
	}

	return out
}
