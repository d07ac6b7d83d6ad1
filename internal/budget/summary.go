package budget

import "github.com/shopspring/decimal"

// Status classifies the committed total against the target band.
type Status string

const (
	StatusBelow  Status = "below"
	StatusWithin Status = "within"
	StatusAbove  Status = "above"
)

// Settings are the budget inputs a couple edits for their wedding.
type Settings struct {
	Guests         GuestRange
	GiftAverage    decimal.Decimal
	SavePercent    float64
	Mode           TargetMode
	PersonalPocket *decimal.Decimal
}

// Commitment is the part of a vendor record the aggregator looks at.
// A nil amount counts as zero.
type Commitment struct {
	Status      VendorStatus
	FinalAmount *decimal.Decimal
	Deposit     *decimal.Decimal
}

// Summary is the derived budget overview. It is recomputed on every read
// and never persisted.
type Summary struct {
	GuestsUsed         int             `json:"guests_used"`
	ExpectedIncome     decimal.Decimal `json:"expected_income"`
	TargetMin          decimal.Decimal `json:"target_min"`
	TargetLikely       decimal.Decimal `json:"target_likely"`
	TargetMax          decimal.Decimal `json:"target_max"`
	CommittedVendors   int             `json:"committed_vendors"`
	CommittedTotal     decimal.Decimal `json:"committed_total"`
	CommittedPaid      decimal.Decimal `json:"committed_paid"`
	CommittedRemaining decimal.Decimal `json:"committed_remaining"`
	Variance           decimal.Decimal `json:"variance"`
	PersonalPocket     decimal.Decimal `json:"personal_pocket"`
	Status             Status          `json:"status"`
}

// Commitments sums final amounts and deposits over committed vendors only.
func Commitments(vendors []Commitment) (count int, total, paid decimal.Decimal) {
	total, paid = decimal.Zero, decimal.Zero
	for _, v := range vendors {
		if v.Status != VendorStatusCommitted {
			continue
		}
		count++
		if v.FinalAmount != nil {
			total = total.Add(*v.FinalAmount)
		}
		if v.Deposit != nil {
			paid = paid.Add(*v.Deposit)
		}
	}
	return count, total, paid
}

// Classify places total relative to the [min, max] target band.
func Classify(total, targetMin, targetMax decimal.Decimal) Status {
	switch {
	case total.LessThan(targetMin):
		return StatusBelow
	case total.GreaterThan(targetMax):
		return StatusAbove
	default:
		return StatusWithin
	}
}

// Summarize builds the budget overview from the current settings and the
// full vendor list.
func Summarize(s Settings, vendors []Commitment) Summary {
	guests := NormalizeGuests(s.Guests)
	targets := CalculateTargets(guests, s.GiftAverage, s.SavePercent, s.Mode)
	count, total, paid := Commitments(vendors)

	remaining := total.Sub(paid)
	if remaining.IsNegative() {
		remaining = decimal.Zero
	}

	pocket := decimal.Zero
	if s.PersonalPocket != nil {
		pocket = *s.PersonalPocket
	}

	return Summary{
		GuestsUsed:         guests,
		ExpectedIncome:     targets.ExpectedIncome,
		TargetMin:          targets.Min,
		TargetLikely:       targets.Likely,
		TargetMax:          targets.Max,
		CommittedVendors:   count,
		CommittedTotal:     total,
		CommittedPaid:      paid,
		CommittedRemaining: remaining,
		Variance:           total.Sub(targets.Likely),
		PersonalPocket:     pocket,
		Status:             Classify(total, targets.Min, targets.Max),
	}
}
