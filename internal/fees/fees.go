// Package fees splits a gross donation into the platform fee and the amount
// that reaches the nonprofit. All arithmetic is done in integer cents so that
// AmountCents == PlatformFeeCents + NetCents always holds.
package fees

import (
	"math"
	"strconv"
	"strings"
)

// PlatformFeeRate is the share of every donation kept by the platform.
const PlatformFeeRate = 0.01

// platformFeeBasisPoints is PlatformFeeRate in basis points.
const platformFeeBasisPoints = 100

type Breakdown struct {
	AmountCents      int64 `json:"amountCents"`
	PlatformFeeCents int64 `json:"platformFeeCents"`
	NetCents         int64 `json:"netAmountCents"`
}

func (b Breakdown) Amount() float64      { return centsToDollars(b.AmountCents) }
func (b Breakdown) PlatformFee() float64 { return centsToDollars(b.PlatformFeeCents) }
func (b Breakdown) NetAmount() float64   { return centsToDollars(b.NetCents) }

// Split computes the fee breakdown for a gross amount in dollars. Negative,
// NaN or infinite amounts are treated as zero.
func Split(amount float64) Breakdown {
	return SplitCents(ToCents(amount))
}

// SplitString parses a user supplied amount and splits it. Anything that does
// not parse as a number is treated as zero.
func SplitString(raw string) Breakdown {
	return Split(ParseAmount(raw))
}

// SplitCents computes the fee breakdown for a gross amount in cents. The fee
// is rounded half up to the nearest cent.
func SplitCents(amountCents int64) Breakdown {
	if amountCents < 0 {
		amountCents = 0
	}

	q, r := amountCents/10000, amountCents%10000
	fee := q*platformFeeBasisPoints + (r*platformFeeBasisPoints+5000)/10000

	return Breakdown{
		AmountCents:      amountCents,
		PlatformFeeCents: fee,
		NetCents:         amountCents - fee,
	}
}

// ParseAmount reads a dollar amount, returning zero for anything that is not
// a finite, non-negative number.
func ParseAmount(raw string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0
	}
	return sanitize(v)
}

// ToCents converts dollars to cents, rounding to the nearest cent.
func ToCents(amount float64) int64 {
	amount = sanitize(amount)
	if amount > math.MaxInt64/100 {
		return 0
	}
	return int64(math.Round(amount * 100))
}

func centsToDollars(cents int64) float64 {
	return float64(cents) / 100
}

func sanitize(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}
