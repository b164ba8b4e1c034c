package utils

import (
	"math"
	"time"
)

func Ptr[T any](v T) *T {
	return &v
}

func StringPtr(s string) *string {
	return &s
}

func TimePtr(t time.Time) *time.Time {
	return &t
}

// Deref returns the value behind p, or the zero value for nil.
func Deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}

func PtrString(s *string) string {
	return Deref(s)
}

func RoundFloat64(f float64, places int) float64 {
	factor := math.Pow(10, float64(places))
	return math.Round(f*factor) / factor
}
