package service

import "math"

// DefaultPointsRatio is the fallback divisor: every 10 currency units earn
// one reward point.
const DefaultPointsRatio = 10

// ComputePoints converts a unit price into reward points, flooring the
// division. A non-positive ratio falls back to DefaultPointsRatio.
func ComputePoints(price float64, ratio int) int {
	if ratio <= 0 {
		ratio = DefaultPointsRatio
	}
	if price <= 0 {
		return 0
	}
	return int(math.Floor(price / float64(ratio)))
}
