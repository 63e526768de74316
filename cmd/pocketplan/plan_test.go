package main

import (
	"testing"

	"github.com/pocketplan/pocketplan/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestDerivedFundMonths(t *testing.T) {
	breakdown := model.ExpenseBreakdown{Housing: 1500, Food: 500}

	assert.InDelta(t, 3.0, derivedFundMonths(6000, breakdown), 0.001)
	assert.Equal(t, 0.0, derivedFundMonths(6000, model.ExpenseBreakdown{}))
}

func TestRenderAllocationBox(t *testing.T) {
	p := &model.AllocationPlan{
		MonthlyIncome: 5000,
		Buckets: []model.BucketAllocation{
			{Bucket: model.AllocEssential, Amount: 2500, Percent: 50},
			{Bucket: model.AllocDiscretionary, Amount: 1000, Percent: 20, Tiers: &model.PresetTiers{LowPct: 10, RecommendedPct: 20, HighPct: 20}},
		},
	}

	out := renderAllocationBox(p)
	assert.Contains(t, out, "essential")
	assert.Contains(t, out, "$2,500.00")
	assert.Contains(t, out, "$3,500.00") // total
	assert.Contains(t, out, "(10-20%)")
}

func TestRenderPayoffBox(t *testing.T) {
	out := renderPayoffBox(model.PayoffResult{
		Months:        18,
		TotalPaid:     6450,
		InterestPaid:  450,
		InterestSaved: 1100,
	})

	assert.Contains(t, out, "18")
	assert.Contains(t, out, "$6,450.00")
	assert.Contains(t, out, "$1,100.00")
}
