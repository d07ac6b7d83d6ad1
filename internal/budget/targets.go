package budget

import (
	"math"

	"github.com/shopspring/decimal"
)

var (
	targetMinFactor = decimal.NewFromFloat(0.85)
	targetMaxFactor = decimal.NewFromFloat(1.15)
	hundred         = decimal.NewFromInt(100)
)

// Targets holds the expected gift income and the spending goals derived from it.
type Targets struct {
	ExpectedIncome decimal.Decimal `json:"expected_income"`
	Min            decimal.Decimal `json:"target_min"`
	Likely         decimal.Decimal `json:"target_likely"`
	Max            decimal.Decimal `json:"target_max"`
}

// SavingsRatio converts a savings percentage to a ratio in [0, 1].
// NaN and infinities map to 0.
func SavingsRatio(savePercent float64) decimal.Decimal {
	if math.IsNaN(savePercent) || math.IsInf(savePercent, 0) {
		return decimal.Zero
	}
	ratio := decimal.NewFromFloat(savePercent).Div(hundred)
	if ratio.IsNegative() {
		return decimal.Zero
	}
	if ratio.GreaterThan(decimal.NewFromInt(1)) {
		return decimal.NewFromInt(1)
	}
	return ratio
}

// CalculateTargets derives the expected gift income for the given guest count
// and the min/likely/max spending targets for the chosen mode. Amounts are
// rounded to whole currency units. Unknown modes behave like TargetModeMatch.
func CalculateTargets(guests int, giftAverage decimal.Decimal, savePercent float64, mode TargetMode) Targets {
	expected := decimal.NewFromInt(int64(guests)).Mul(giftAverage).Round(0)
	ratio := SavingsRatio(savePercent)

	likely := expected
	switch mode {
	case TargetModeProfit:
		likely = expected.Mul(decimal.NewFromInt(1).Sub(ratio)).Round(0)
	case TargetModePersonalPocket:
		likely = expected.Mul(decimal.NewFromInt(1).Add(ratio)).Round(0)
	}

	return Targets{
		ExpectedIncome: expected,
		Min:            likely.Mul(targetMinFactor).Round(0),
		Likely:         likely,
		Max:            likely.Mul(targetMaxFactor).Round(0),
	}
}
