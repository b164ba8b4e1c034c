package fees

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitFixedPoints(t *testing.T) {
	b := Split(0)
	assert.Equal(t, Breakdown{}, b)

	b = Split(100)
	assert.Equal(t, int64(10000), b.AmountCents)
	assert.Equal(t, int64(100), b.PlatformFeeCents)
	assert.Equal(t, int64(9900), b.NetCents)
	assert.Equal(t, 1.00, b.PlatformFee())
	assert.Equal(t, 99.00, b.NetAmount())
}

func TestSplitRounding(t *testing.T) {
	tests := []struct {
		amount  float64
		wantFee int64
	}{
		{amount: 25, wantFee: 25},
		{amount: 0.49, wantFee: 0},
		{amount: 0.50, wantFee: 1},
		{amount: 12.34, wantFee: 12},
		{amount: 12.35, wantFee: 12},
		{amount: 12.50, wantFee: 13},
		{amount: 999.99, wantFee: 1000},
	}

	for _, tc := range tests {
		b := Split(tc.amount)
		assert.Equal(t, tc.wantFee, b.PlatformFeeCents, "amount %v", tc.amount)
		assert.Equal(t, b.AmountCents, b.PlatformFeeCents+b.NetCents, "amount %v", tc.amount)
	}
}

func TestSplitSumsExactly(t *testing.T) {
	for cents := int64(0); cents <= 100000; cents += 7 {
		b := SplitCents(cents)
		assert.Equal(t, cents, b.PlatformFeeCents+b.NetCents)

		want := math.Round(b.Amount()*PlatformFeeRate*100) / 100
		assert.InDelta(t, want, b.PlatformFee(), 0.0101)
	}
}

func TestSplitCoercesInvalidInput(t *testing.T) {
	for _, amount := range []float64{-1, -0.01, math.NaN(), math.Inf(1), math.Inf(-1)} {
		assert.Equal(t, Breakdown{}, Split(amount), "amount %v", amount)
	}

	assert.Equal(t, Breakdown{}, SplitCents(-500))
}

func TestSplitString(t *testing.T) {
	assert.Equal(t, Split(50), SplitString("50"))
	assert.Equal(t, Split(50), SplitString(" 50.00 "))
	assert.Equal(t, Breakdown{}, SplitString(""))
	assert.Equal(t, Breakdown{}, SplitString("abc"))
	assert.Equal(t, Breakdown{}, SplitString("-20"))
	assert.Equal(t, Breakdown{}, SplitString("NaN"))
}
