// Package summary derives trailing-window financial summaries from
// transactions and account balances.
package summary

import (
	"math"
	"time"

	"github.com/pocketplan/pocketplan/internal/classify"
	"github.com/pocketplan/pocketplan/internal/model"
)

// DefaultWindowMonths is the trailing analysis window.
const DefaultWindowMonths = 6

// Options tunes the analysis window. The zero value means a 6-month window
// ending now.
type Options struct {
	AsOf         time.Time
	WindowMonths int
}

// Summarize aggregates transactions and accounts over the default trailing
// window.
func Summarize(transactions []model.Transaction, accounts []model.Account) model.FinancialSummary {
	return SummarizeWith(transactions, accounts, Options{})
}

// SummarizeWith aggregates transactions and accounts over a configurable
// trailing window. Pending transactions are excluded from all totals. Debt
// and investment outflows count as spending so disposable income reflects
// actual cash left over.
func SummarizeWith(transactions []model.Transaction, accounts []model.Account, opts Options) model.FinancialSummary {
	if opts.WindowMonths < 1 {
		opts.WindowMonths = DefaultWindowMonths
	}
	asOf := opts.AsOf
	if asOf.IsZero() {
		asOf = time.Now()
	}
	cutoff := asOf.AddDate(0, -opts.WindowMonths, 0)

	var income, outflow float64
	var earliest, latest time.Time
	for _, txn := range transactions {
		if txn.Pending || txn.Date.Before(cutoff) || txn.Date.After(asOf) {
			continue
		}
		if earliest.IsZero() || txn.Date.Before(earliest) {
			earliest = txn.Date
		}
		if latest.IsZero() || txn.Date.After(latest) {
			latest = txn.Date
		}
		switch classify.Bucket(txn) {
		case model.BucketIncome:
			income += math.Abs(txn.Amount)
		case model.BucketExpenses, model.BucketDebt, model.BucketInvested:
			outflow += txn.Amount
		}
	}

	months := monthSpan(earliest, latest)
	s := model.FinancialSummary{
		AvgMonthlyIncome:   income / float64(months),
		AvgMonthlyExpenses: outflow / float64(months),
		MonthsAnalyzed:     months,
	}

	for _, account := range accounts {
		switch {
		case account.IsDebt():
			s.TotalDebt += account.CurrentBalance
		case account.IsInvestment():
			s.TotalInvested += account.CurrentBalance
		case account.IsDepository():
			s.TotalCash += account.CashBalance()
		}
	}

	s.NetMonthly = s.AvgMonthlyIncome - s.AvgMonthlyExpenses
	s.DisposableIncome = math.Max(0, s.NetMonthly)
	return s
}

// monthSpan counts calendar months touched by the filtered window, never
// less than 1.
func monthSpan(earliest, latest time.Time) int {
	if earliest.IsZero() || latest.IsZero() {
		return 1
	}
	span := (latest.Year()-earliest.Year())*12 + int(latest.Month()) - int(earliest.Month()) + 1
	if span < 1 {
		return 1
	}
	return span
}
