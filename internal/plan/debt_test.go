package plan

import (
	"testing"

	"github.com/pocketplan/pocketplan/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestPayoff_AmortizesToZero(t *testing.T) {
	result := Payoff(6000, 300, 0.18)
	assert.Greater(t, result.Months, 0)
	assert.LessOrEqual(t, result.Months, maxPayoffMonths)
	assert.Greater(t, result.TotalPaid, 6000.0, "total paid exceeds principal")
	assert.InDelta(t, result.TotalPaid-6000, result.InterestPaid, 300,
		"interest is roughly total minus principal, within one payment of slack")
}

func TestPayoff_ZeroInputs(t *testing.T) {
	assert.Equal(t, model.PayoffResult{}, Payoff(0, 300, 0.18))
	assert.Equal(t, model.PayoffResult{}, Payoff(6000, 0, 0.18))
	assert.Equal(t, model.PayoffResult{}, Payoff(-100, 300, 0.18))
}

func TestPayoff_DefaultAPRFallback(t *testing.T) {
	withDefault := Payoff(6000, 300, 0)
	explicit := Payoff(6000, 300, DefaultAPR)
	assert.Equal(t, explicit, withDefault)
}

func TestPayoff_PaymentBelowInterestHitsSentinel(t *testing.T) {
	// $10,000 at 18% accrues $150/month. A $100 payment never amortizes.
	result := Payoff(10000, 100, 0.18)
	assert.Equal(t, maxPayoffMonths, result.Months)
	assert.InDelta(t, 100*float64(maxPayoffMonths), result.TotalPaid, 1e-9)
	assert.InDelta(t, result.TotalPaid, result.InterestPaid, 1e-9)
}

func TestPayoffWithSavings_BeatsBaseline(t *testing.T) {
	// $500/month against $8,000 beats the 3% minimum baseline.
	result := PayoffWithSavings(8000, 500, 0.18)
	assert.Greater(t, result.InterestSaved, 0.0)

	// Paying exactly the baseline saves nothing but is never negative.
	baseline := PayoffWithSavings(8000, MinimumPaymentBaseline(8000), 0.18)
	assert.InDelta(t, 0, baseline.InterestSaved, 1e-9)
}

func TestPayoffWithSavings_NoSavingsWhenCapped(t *testing.T) {
	result := PayoffWithSavings(10000, 100, 0.18)
	assert.Equal(t, maxPayoffMonths, result.Months)
	assert.Zero(t, result.InterestSaved)
}

func TestMinimumPaymentBaseline(t *testing.T) {
	assert.InDelta(t, 150, MinimumPaymentBaseline(5000), 1e-9)
	assert.InDelta(t, 25, MinimumPaymentBaseline(100), 1e-9, "$25 floor applies")
}

func TestEstimateMinimumPayment(t *testing.T) {
	min := 87.0
	tests := []struct {
		name    string
		account model.Account
		want    float64
	}{
		{
			name:    "feed-supplied minimum wins",
			account: model.Account{Type: model.AccountTypeCredit, CurrentBalance: 5000, MinimumPayment: &min},
			want:    87,
		},
		{
			name:    "credit card at 2.5 percent",
			account: model.Account{Type: model.AccountTypeCredit, CurrentBalance: 5000},
			want:    125,
		},
		{
			name:    "credit card floor",
			account: model.Account{Type: model.AccountTypeCredit, CurrentBalance: 500},
			want:    25,
		},
		{
			name:    "student loan at 1 percent",
			account: model.Account{Type: model.AccountTypeLoan, CurrentBalance: 30000},
			want:    300,
		},
		{
			name:    "zero balance",
			account: model.Account{Type: model.AccountTypeCredit, CurrentBalance: 0},
			want:    0,
		},
		{
			name:    "non-debt account",
			account: model.Account{Type: model.AccountTypeDepository, CurrentBalance: 5000},
			want:    0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, EstimateMinimumPayment(tt.account), 1e-9)
		})
	}
}
