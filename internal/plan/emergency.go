// Package plan implements the allocation engine and the planners it
// composes: emergency-fund sizing, investment growth projection, and debt
// payoff amortization. Everything here is a pure function over resolved
// inputs; no I/O, no clocks, no shared state.
package plan

import (
	"math"

	"github.com/pocketplan/pocketplan/internal/model"
)

// fundDurationMonths are the emergency-fund sizing options offered to the
// user, in months of essential spending.
var fundDurationMonths = []int{3, 6, 12}

// targetMonths sizes the fund by income stability.
func targetMonths(stability model.IncomeStability) int {
	switch stability {
	case model.StabilityInconsistent:
		return 12
	case model.StabilityVariable:
		return 9
	default:
		return 6
	}
}

// savingsPeriodMonths picks how fast to close the gap. The chain is ordered;
// the first matching condition wins.
func savingsPeriodMonths(metrics model.HealthMetrics) int {
	switch {
	case metrics.Score < 40 || metrics.EmergencyFundMonths < 3:
		return 12
	case metrics.Score < 70 || metrics.EmergencyFundMonths < 4.5 || metrics.DebtToIncome > 3:
		return 18
	default:
		return 24
	}
}

// EmergencyFund sizes the fund target from essential monthly spend and the
// income-stability class, then derives a health-aware contribution schedule.
// A balance at or above the target means the goal is met: zero shortfall and
// zero contribution, never negative.
func EmergencyFund(essentialSpend, currentBalance float64, metrics model.HealthMetrics) model.EmergencyFundPlan {
	months := targetMonths(metrics.Stability)
	target := math.Round(essentialSpend * float64(months))
	shortfall := math.Max(0, target-currentBalance)
	period := savingsPeriodMonths(metrics)

	var contribution float64
	if shortfall > 0 {
		contribution = math.Round(target / float64(period))
	}
	var monthsToTarget int
	if shortfall > 0 && contribution > 0 {
		monthsToTarget = int(math.Ceil(shortfall / contribution))
	}

	p := model.EmergencyFundPlan{
		TargetMonths:        months,
		Target:              target,
		Shortfall:           shortfall,
		SavingsPeriodMonths: period,
		MonthlyContribution: contribution,
		MonthsToTarget:      monthsToTarget,
	}
	for _, d := range fundDurationMonths {
		p.Durations = append(p.Durations, fundDuration(essentialSpend, currentBalance, d))
	}
	return p
}

// fundDuration builds one sizing option. The recommended tier divides the
// shortfall over 18 months, or 12 when the shortfall exceeds half the
// target; the resulting kink is intentional.
func fundDuration(essentialSpend, currentBalance float64, months int) model.FundDuration {
	target := math.Round(essentialSpend * float64(months))
	shortfall := math.Max(0, target-currentBalance)

	recommended := 18.0
	if shortfall > target*0.5 {
		recommended = 12.0
	}
	return model.FundDuration{
		Months:    months,
		Target:    target,
		Shortfall: shortfall,
		Tiers: model.ContributionTiers{
			Low:         math.Round(shortfall / 24),
			Recommended: math.Round(shortfall / recommended),
			High:        math.Round(shortfall / 8),
		},
	}
}
