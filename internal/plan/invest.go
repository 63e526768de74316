package plan

import (
	"math"

	"github.com/pocketplan/pocketplan/internal/model"
)

// DefaultAnnualReturn is the fixed nominal annual return assumed for
// investment projections. No volatility is modeled.
const DefaultAnnualReturn = 0.07

// GrowthHorizons are the projection horizons in years.
var GrowthHorizons = []int{10, 20, 30}

// FutureValue computes principal-plus-annuity compound growth:
// P(1+r)^n + C((1+r)^n - 1)/r at the monthly rate r = annualReturn/12.
func FutureValue(balance, monthlyContribution float64, years int, annualReturn float64) float64 {
	n := float64(years * 12)
	r := annualReturn / 12
	if r == 0 {
		return balance + monthlyContribution*n
	}
	growth := math.Pow(1+r, n)
	return balance*growth + monthlyContribution*((growth-1)/r)
}

// ProjectGrowth fills the three-tier by three-horizon growth table for a
// starting balance.
func ProjectGrowth(balance float64, contributions model.ContributionTiers, annualReturn float64) model.GrowthTable {
	table := model.GrowthTable{Contributions: contributions}
	for _, years := range GrowthHorizons {
		table.Rows = append(table.Rows, model.GrowthRow{
			Years:       years,
			Low:         FutureValue(balance, contributions.Low, years, annualReturn),
			Recommended: FutureValue(balance, contributions.Recommended, years, annualReturn),
			High:        FutureValue(balance, contributions.High, years, annualReturn),
		})
	}
	return table
}
