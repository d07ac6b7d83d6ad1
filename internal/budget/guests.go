package budget

import "math"

// GuestRange is the planned guest count as entered in the budget settings.
type GuestRange struct {
	Min   int
	Max   int
	Exact *int
}

// NormalizeGuests returns the single guest count used by every calculation.
// An exact count of at least one wins; otherwise the rounded midpoint of the
// range is used. The result is never below 1.
func NormalizeGuests(r GuestRange) int {
	if r.Exact != nil && *r.Exact >= 1 {
		return *r.Exact
	}

	mid := int(math.Floor(float64(r.Min+r.Max)/2 + 0.5))
	if mid < 1 {
		return 1
	}
	return mid
}
