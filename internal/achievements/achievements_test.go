package achievements

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func byID(t *testing.T, results []Result, id string) Result {
	t.Helper()
	for _, r := range results {
		if r.ID == id {
			return r
		}
	}
	require.Failf(t, "achievement missing", "no result for %s", id)
	return Result{}
}

func TestEvaluateThousandDonated(t *testing.T) {
	results := Evaluate(Totals{Donated: 1000})

	assert.Equal(t, StatusCompleted, byID(t, results, "philanthropist").Status)
	assert.Equal(t, StatusCompleted, byID(t, results, "generous_giver").Status)
	assert.Equal(t, StatusCompleted, byID(t, results, "helper").Status)
	assert.Equal(t, StatusCompleted, byID(t, results, "first_donation").Status)
	assert.Equal(t, StatusLocked, byID(t, results, "volunteer_starter").Status)
	assert.Equal(t, StatusLocked, byID(t, results, "reviewer").Status)
}

func TestEvaluateFiftyDonated(t *testing.T) {
	results := Evaluate(Totals{Donated: 50})

	helper := byID(t, results, "helper")
	assert.Equal(t, StatusCompleted, helper.Status)
	assert.Equal(t, 100.0, helper.Progress)

	generous := byID(t, results, "generous_giver")
	assert.Equal(t, StatusInProgress, generous.Status)
	assert.Equal(t, 50.0, generous.Progress)

	philanthropist := byID(t, results, "philanthropist")
	assert.Equal(t, StatusInProgress, philanthropist.Status)
	assert.InDelta(t, 5.0, philanthropist.Progress, 1e-9)
}

func TestEvaluateNothingYet(t *testing.T) {
	for _, r := range Evaluate(Totals{}) {
		assert.Equal(t, StatusLocked, r.Status, r.ID)
		assert.Zero(t, r.Progress, r.ID)
	}
}

func TestEvaluateFirstDonationIsAllOrNothing(t *testing.T) {
	r := byID(t, Evaluate(Totals{Donated: 0.01}), "first_donation")
	assert.Equal(t, StatusCompleted, r.Status)
	assert.Equal(t, 100.0, r.Progress)
}

func TestEvaluateHoursAndReviews(t *testing.T) {
	results := Evaluate(Totals{Hours: 30, Reviews: 2})

	assert.Equal(t, StatusCompleted, byID(t, results, "volunteer_starter").Status)
	assert.Equal(t, StatusCompleted, byID(t, results, "dedicated_volunteer").Status)

	champion := byID(t, results, "volunteer_champion")
	assert.Equal(t, StatusInProgress, champion.Status)
	assert.Equal(t, 30.0, champion.Progress)

	reviewer := byID(t, results, "reviewer")
	assert.Equal(t, StatusInProgress, reviewer.Status)
	assert.Equal(t, 40.0, reviewer.Progress)
}

func TestEvaluateProgressIsCapped(t *testing.T) {
	for _, r := range Evaluate(Totals{Donated: 1e6, Hours: 1e6, Reviews: 1e6}) {
		assert.Equal(t, 100.0, r.Progress, r.ID)
		assert.Equal(t, StatusCompleted, r.Status, r.ID)
	}
}

func TestEvaluateInvalidTotalsAreZero(t *testing.T) {
	for _, r := range Evaluate(Totals{Donated: math.NaN(), Hours: -4}) {
		if r.Metric == MetricReviews {
			continue
		}
		assert.Equal(t, StatusLocked, r.Status, r.ID)
	}
}

func TestEvaluateIsIdempotent(t *testing.T) {
	totals := Totals{Donated: 120, Hours: 7.5, Reviews: 5}
	assert.Equal(t, Evaluate(totals), Evaluate(totals))
}

func TestPartition(t *testing.T) {
	completed, inProgress, locked := Partition(Evaluate(Totals{Donated: 50}))

	assert.Len(t, completed, 2)
	assert.Len(t, inProgress, 2)
	assert.Len(t, locked, 4)
	assert.Equal(t, "first_donation", completed[0].ID)
	assert.Equal(t, "helper", completed[1].ID)
}

func TestLevelFor(t *testing.T) {
	tests := map[float64]string{
		0:      "Starter",
		24.99:  "Starter",
		25:     "Helper",
		99:     "Helper",
		100:    "Supporter",
		500:    "Generous",
		999.99: "Generous",
		1000:   "Philanthropist",
		5000:   "Philanthropist",
	}

	for amount, want := range tests {
		assert.Equal(t, want, LevelFor(amount).Name, "amount %v", amount)
	}
}
