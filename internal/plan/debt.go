package plan

import (
	"math"

	"github.com/pocketplan/pocketplan/internal/model"
)

const (
	// DefaultAPR is assumed when no account reports a rate.
	DefaultAPR = 0.18

	// maxPayoffMonths caps the amortization loop at 50 years. A payment
	// that never covers interest returns this sentinel instead of looping.
	maxPayoffMonths = 600
)

// Payoff amortizes a balance under a fixed monthly payment. An apr of 0
// means "not supplied" and falls back to DefaultAPR. A zero balance or zero
// payment returns an immediate zero result.
func Payoff(balance, payment, apr float64) model.PayoffResult {
	if apr <= 0 {
		apr = DefaultAPR
	}
	if balance <= 0 || payment <= 0 {
		return model.PayoffResult{}
	}

	monthlyRate := apr / 12
	if payment <= balance*monthlyRate {
		// The payment never amortizes the balance. This is a legitimate
		// outcome the caller must display, not an error.
		total := payment * maxPayoffMonths
		return model.PayoffResult{Months: maxPayoffMonths, TotalPaid: total, InterestPaid: total}
	}

	remaining := balance
	var months int
	var totalPaid, interestPaid float64
	for remaining > 0 && months < maxPayoffMonths {
		interest := remaining * monthlyRate
		principal := payment - interest
		remaining -= principal
		interestPaid += interest
		totalPaid += payment
		months++
	}
	return model.PayoffResult{Months: months, TotalPaid: totalPaid, InterestPaid: interestPaid}
}

// MinimumPaymentBaseline is the comparison payment used when reporting
// interest saved: 3% of the balance with a $25 floor.
func MinimumPaymentBaseline(balance float64) float64 {
	return math.Max(balance*0.03, 25)
}

// PayoffWithSavings runs the amortization and reports interest saved
// against the minimum-payment baseline. Nothing is saved when the payment
// never amortizes.
func PayoffWithSavings(balance, payment, apr float64) model.PayoffResult {
	result := Payoff(balance, payment, apr)
	if balance <= 0 || payment <= 0 || result.Months >= maxPayoffMonths {
		return result
	}
	baseline := Payoff(balance, MinimumPaymentBaseline(balance), apr)
	result.InterestSaved = math.Max(0, baseline.InterestPaid-result.InterestPaid)
	return result
}

// EstimateMinimumPayment approximates an account's minimum monthly payment
// when the feed does not supply one: 2.5% with a $25 floor for cards, 1%
// for loans. A feed-supplied minimum always wins.
func EstimateMinimumPayment(account model.Account) float64 {
	if account.MinimumPayment != nil {
		return *account.MinimumPayment
	}
	if account.CurrentBalance <= 0 {
		return 0
	}
	switch account.Type {
	case model.AccountTypeCredit:
		return math.Max(account.CurrentBalance*0.025, 25)
	case model.AccountTypeLoan:
		return account.CurrentBalance * 0.01
	default:
		return 0
	}
}
