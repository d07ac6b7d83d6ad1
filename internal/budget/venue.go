package budget

import "github.com/shopspring/decimal"

// VenuePricing holds the per-venue price list used for meal-cost quotes.
type VenuePricing struct {
	BasePrice             decimal.Decimal
	ChildDiscountPercent  decimal.Decimal
	ReserveThreshold      int
	ReservePrice          decimal.Decimal
	LightingAndSoundPrice decimal.Decimal
	ExtrasPrice           decimal.Decimal
}

// VenueQuote is the computed cost of holding the event at a venue.
type VenueQuote struct {
	MealCost      decimal.Decimal `json:"meal_cost"`
	ChildCost     decimal.Decimal `json:"child_cost"`
	TotalCost     decimal.Decimal `json:"total_cost"`
	CostPerPerson decimal.Decimal `json:"cost_per_person"`
}

func nonNegative(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}

// VenueCost prices an event for the given guest and child counts.
//
// Guests up to the reserve threshold are charged the base price and guests
// above it the reserve price. A zero threshold charges every guest the
// reserve price. Children are costed on top of that at the
// discounted base price, even though guests already includes them. Flat
// lighting/sound and extras charges are added once. Negative inputs count
// as zero.
func VenueCost(p VenuePricing, guests, children int) VenueQuote {
	if guests < 0 {
		guests = 0
	}
	if children < 0 {
		children = 0
	}
	threshold := p.ReserveThreshold
	if threshold < 0 {
		threshold = 0
	}

	base := nonNegative(p.BasePrice)
	reserve := nonNegative(p.ReservePrice)

	g := decimal.NewFromInt(int64(guests))
	var meal decimal.Decimal
	if guests <= threshold {
		meal = g.Mul(base)
	} else {
		t := decimal.NewFromInt(int64(threshold))
		meal = t.Mul(base).Add(g.Sub(t).Mul(reserve))
	}

	discount := nonNegative(p.ChildDiscountPercent)
	if discount.GreaterThan(hundred) {
		discount = hundred
	}
	childRate := base.Mul(decimal.NewFromInt(1).Sub(discount.Div(hundred)))
	child := decimal.NewFromInt(int64(children)).Mul(childRate)

	total := meal.Add(child).
		Add(nonNegative(p.LightingAndSoundPrice)).
		Add(nonNegative(p.ExtrasPrice))

	perPerson := decimal.Zero
	if guests > 0 {
		perPerson = total.Div(g).Round(2)
	}

	return VenueQuote{
		MealCost:      meal,
		ChildCost:     child,
		TotalCost:     total,
		CostPerPerson: perPerson,
	}
}
