package recommend

import (
	"math/rand"
	"testing"
	"time"

	"karma/pkg/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC)

func nonprofit(id, name string, category types.Category, ageDays int) *types.Nonprofit {
	return &types.Nonprofit{
		ID:        id,
		Name:      name,
		Category:  category,
		CreatedAt: now.AddDate(0, 0, -ageDays),
	}
}

func ids(scored []ScoredNonprofit) []string {
	out := make([]string, 0, len(scored))
	for _, s := range scored {
		out = append(out, s.Nonprofit.ID)
	}
	return out
}

func TestBuildProfile(t *testing.T) {
	education := types.CategoryEducation
	empty := types.Category("")

	user := &types.User{
		ID:                  "u1",
		PreferredCategories: []string{"health"},
		FavoriteNonprofits:  []string{"fav"},
	}
	donations := []*types.Donation{
		{NonprofitID: "donated", Category: &education},
		{NonprofitID: "donated-too", Category: &empty},
		nil,
	}
	reviews := []*types.Review{{NonprofitID: "reviewed"}}

	p := BuildProfile(user, donations, reviews)

	assert.True(t, p.Interested(types.CategoryHealth))
	assert.True(t, p.Interested(types.CategoryEducation))
	assert.False(t, p.Interested(""))
	assert.False(t, p.Interested(types.CategoryAnimals))
	assert.ElementsMatch(t, []string{"fav", "donated", "donated-too", "reviewed"}, p.SupportedIDs())

	empties := BuildProfile(nil, nil, nil)
	assert.Empty(t, empties.SupportedIDs())
	assert.False(t, empties.Interested(types.CategoryHealth))
}

func TestRatingSummaries(t *testing.T) {
	summaries := RatingSummaries([]*types.Review{
		{NonprofitID: "a", Rating: 5},
		{NonprofitID: "a", Rating: 4},
		{NonprofitID: "b", Rating: 9},
		{NonprofitID: "b", Rating: 0},
	})

	assert.Equal(t, RatingSummary{Average: 4.5, Count: 2}, summaries["a"])
	assert.Equal(t, RatingSummary{Average: 3, Count: 2}, summaries["b"])
	assert.Equal(t, RatingSummary{}, summaries["missing"])
}

func TestScoreNonprofitWeights(t *testing.T) {
	p := BuildProfile(&types.User{PreferredCategories: []string{"health"}}, nil, nil)

	tests := []struct {
		name  string
		c     NonprofitCandidate
		score int
	}{
		{
			name:  "everything",
			c:     NonprofitCandidate{Nonprofit: nonprofit("a", "A", types.CategoryHealth, 5), RatingSummary: RatingSummary{Average: 4.6, Count: 12}},
			score: 23,
		},
		{
			name:  "well rated only",
			c:     NonprofitCandidate{Nonprofit: nonprofit("b", "B", types.CategoryAnimals, 100), RatingSummary: RatingSummary{Average: 4.0, Count: 9}},
			score: 5,
		},
		{
			name:  "below four",
			c:     NonprofitCandidate{Nonprofit: nonprofit("c", "C", types.CategoryAnimals, 100), RatingSummary: RatingSummary{Average: 3.99, Count: 10}},
			score: 3,
		},
		{
			name:  "exactly thirty days old",
			c:     NonprofitCandidate{Nonprofit: nonprofit("d", "D", types.CategoryAnimals, 30)},
			score: 2,
		},
		{
			name:  "thirty one days old",
			c:     NonprofitCandidate{Nonprofit: nonprofit("e", "E", types.CategoryAnimals, 31)},
			score: 0,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.score, ScoreNonprofit(p, tc.c, now))
		})
	}
}

func TestNonprofitsEndToEnd(t *testing.T) {
	user := &types.User{ID: "u1", PreferredCategories: []string{"health"}}
	p := BuildProfile(user, nil, nil)

	health := nonprofit("health", "Clinic", types.CategoryHealth, 5)
	school := nonprofit("school", "Academy", types.CategoryEducation, 1000)

	candidates := []NonprofitCandidate{
		{Nonprofit: school, RatingSummary: RatingSummary{Average: 5.0, Count: 50}},
		{Nonprofit: health, RatingSummary: RatingSummary{Average: 4.6, Count: 12}},
	}

	ranked := Nonprofits(p, candidates, now, DefaultLimit)
	require.Len(t, ranked, 2)
	assert.Equal(t, []string{"health", "school"}, ids(ranked))
	assert.Equal(t, 23, ranked[0].Score)
	assert.Equal(t, 11, ranked[1].Score)
	assert.True(t, ranked[0].PerfectMatch)
	assert.True(t, ranked[1].PerfectMatch)
}

func TestNonprofitsExcludesSupported(t *testing.T) {
	user := &types.User{FavoriteNonprofits: []string{"fav"}}
	p := BuildProfile(user,
		[]*types.Donation{{NonprofitID: "donated"}},
		[]*types.Review{{NonprofitID: "reviewed"}},
	)

	var candidates []NonprofitCandidate
	for _, id := range []string{"fav", "donated", "reviewed", "new-1", "new-2"} {
		candidates = append(candidates, NonprofitCandidate{Nonprofit: nonprofit(id, id, types.CategoryOther, 400)})
	}

	ranked := Nonprofits(p, candidates, now, 0)
	assert.Equal(t, []string{"new-1", "new-2"}, ids(ranked))
	for _, s := range ranked {
		assert.False(t, p.Supports(s.Nonprofit.ID))
	}
}

func TestNonprofitsEmpty(t *testing.T) {
	p := BuildProfile(nil, nil, nil)
	assert.Empty(t, Nonprofits(p, nil, now, DefaultLimit))

	all := BuildProfile(&types.User{FavoriteNonprofits: []string{"a"}}, nil, nil)
	ranked := Nonprofits(all, []NonprofitCandidate{{Nonprofit: nonprofit("a", "A", types.CategoryOther, 1)}}, now, DefaultLimit)
	assert.NotNil(t, ranked)
	assert.Empty(t, ranked)
}

func TestNonprofitsTieBreakIgnoresInputOrder(t *testing.T) {
	p := BuildProfile(nil, nil, nil)

	var candidates []NonprofitCandidate
	for _, name := range []string{"Delta", "alpha", "Bravo", "Charlie", "Bravo"} {
		candidates = append(candidates, NonprofitCandidate{Nonprofit: nonprofit(name+"-id-"+string(rune('a'+len(candidates))), name, types.CategoryOther, 400)})
	}

	want := ids(Nonprofits(p, candidates, now, 0))

	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 20; i++ {
		shuffled := append([]NonprofitCandidate(nil), candidates...)
		rng.Shuffle(len(shuffled), func(a, b int) { shuffled[a], shuffled[b] = shuffled[b], shuffled[a] })
		assert.Equal(t, want, ids(Nonprofits(p, shuffled, now, 0)))
	}

	assert.Equal(t, "Bravo", Nonprofits(p, candidates, now, 0)[0].Nonprofit.Name)
}

func TestNonprofitsLimit(t *testing.T) {
	p := BuildProfile(nil, nil, nil)

	var candidates []NonprofitCandidate
	for _, id := range []string{"a", "b", "c", "d", "e"} {
		candidates = append(candidates, NonprofitCandidate{Nonprofit: nonprofit(id, id, types.CategoryOther, 400)})
	}

	assert.Len(t, Nonprofits(p, candidates, now, DefaultLimit), 3)
	assert.Len(t, Nonprofits(p, candidates, now, 0), 5)
}

func opportunity(id, nonprofitID string, category types.Category, needed, signed int, created time.Time) *types.Opportunity {
	return &types.Opportunity{
		ID:                 id,
		NonprofitID:        nonprofitID,
		Category:           category,
		VolunteersNeeded:   needed,
		VolunteersSignedUp: signed,
		IsActive:           true,
		CreatedAt:          created,
	}
}

func oppIDs(scored []ScoredOpportunity) []string {
	out := make([]string, 0, len(scored))
	for _, s := range scored {
		out = append(out, s.Opportunity.ID)
	}
	return out
}

func TestScoreOpportunityWeights(t *testing.T) {
	p := BuildProfile(&types.User{PreferredCategories: []string{"health"}, FavoriteNonprofits: []string{"np"}}, nil, nil)

	tests := []struct {
		name  string
		o     *types.Opportunity
		score int
	}{
		{name: "category", o: opportunity("a", "x", types.CategoryHealth, 10, 0, now), score: 10},
		{name: "supported", o: opportunity("b", "np", types.CategoryOther, 10, 0, now), score: 15},
		{name: "urgent three spots", o: opportunity("c", "x", types.CategoryOther, 5, 2, now), score: 5},
		{name: "urgent one spot", o: opportunity("d", "x", types.CategoryOther, 5, 4, now), score: 5},
		{name: "four spots", o: opportunity("e", "x", types.CategoryOther, 5, 1, now), score: 0},
		{name: "full", o: opportunity("f", "x", types.CategoryOther, 5, 5, now), score: 0},
		{name: "overfull", o: opportunity("g", "x", types.CategoryOther, 5, 8, now), score: 0},
		{name: "all", o: opportunity("h", "np", types.CategoryHealth, 3, 1, now), score: 30},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.score, ScoreOpportunity(p, tc.o))
		})
	}
}

func TestOpportunitiesHigherScoreFirst(t *testing.T) {
	p := BuildProfile(&types.User{PreferredCategories: []string{"health"}, FavoriteNonprofits: []string{"np"}}, nil, nil)

	fifteen := opportunity("fifteen", "np", types.CategoryOther, 10, 0, now.Add(-time.Hour))
	ten := opportunity("ten", "x", types.CategoryHealth, 10, 0, now)

	assert.Equal(t, []string{"fifteen", "ten"}, oppIDs(Opportunities(p, []*types.Opportunity{fifteen, ten}, DefaultLimit)))
	assert.Equal(t, []string{"fifteen", "ten"}, oppIDs(Opportunities(p, []*types.Opportunity{ten, fifteen}, DefaultLimit)))
}

func TestOpportunitiesTieBreakNewestFirst(t *testing.T) {
	p := BuildProfile(nil, nil, nil)

	older := opportunity("older", "x", types.CategoryOther, 10, 0, now.Add(-48*time.Hour))
	newer := opportunity("newer", "x", types.CategoryOther, 10, 0, now)

	assert.Equal(t, []string{"newer", "older"}, oppIDs(Opportunities(p, []*types.Opportunity{older, newer}, DefaultLimit)))
	assert.Equal(t, []string{"newer", "older"}, oppIDs(Opportunities(p, []*types.Opportunity{newer, older}, DefaultLimit)))
}

func TestOpportunitiesLimitAndEmpty(t *testing.T) {
	p := BuildProfile(nil, nil, nil)
	assert.Empty(t, Opportunities(p, nil, DefaultLimit))

	var candidates []*types.Opportunity
	for i, id := range []string{"a", "b", "c", "d"} {
		candidates = append(candidates, opportunity(id, "x", types.CategoryOther, 10, 0, now.Add(time.Duration(i)*time.Minute)))
	}

	ranked := Opportunities(p, candidates, DefaultLimit)
	assert.Equal(t, []string{"d", "c", "b"}, oppIDs(ranked))
	assert.Equal(t, 10, ranked[0].SpotsAvailable)
}

func TestOpportunitiesSpotsNeverNegative(t *testing.T) {
	p := BuildProfile(nil, nil, nil)
	ranked := Opportunities(p, []*types.Opportunity{opportunity("a", "x", types.CategoryOther, 2, 7, now)}, DefaultLimit)
	require.Len(t, ranked, 1)
	assert.Equal(t, 0, ranked[0].SpotsAvailable)
}
