package model

// FinancialSummary aggregates transactions and balances over the trailing
// analysis window.
type FinancialSummary struct {
	AvgMonthlyIncome   float64
	AvgMonthlyExpenses float64
	TotalDebt          float64
	TotalInvested      float64
	TotalCash          float64
	// DisposableIncome is clamped at zero for display. NetMonthly keeps the
	// sign so callers can detect a shortfall.
	DisposableIncome float64
	NetMonthly       float64
	MonthsAnalyzed   int
}
