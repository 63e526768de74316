package model

// AllocationBucket names one of the virtual buckets a monthly income is
// split across.
type AllocationBucket string

// Virtual allocation buckets.
const (
	AllocEssential     AllocationBucket = "essential"
	AllocEmergency     AllocationBucket = "emergency_fund"
	AllocDiscretionary AllocationBucket = "discretionary"
	AllocInvestments   AllocationBucket = "investments"
	AllocDebt          AllocationBucket = "debt_paydown"
)

// PresetTiers gives the low/recommended/high percentage spread for a bucket.
type PresetTiers struct {
	LowPct         float64
	RecommendedPct float64
	HighPct        float64
}

// BucketAllocation is one row of an allocation plan: a whole-dollar amount
// and its share of monthly income.
type BucketAllocation struct {
	Tiers   *PresetTiers
	Bucket  AllocationBucket
	Amount  float64
	Percent float64
}

// ContributionTiers holds monthly dollar contributions at the three preset
// funding levels.
type ContributionTiers struct {
	Low         float64
	Recommended float64
	High        float64
}

// FundDuration is one emergency-fund sizing option: a target expressed in
// months of essential spending, with contribution tiers to reach it.
type FundDuration struct {
	Months    int
	Target    float64
	Shortfall float64
	Tiers     ContributionTiers
}

// EmergencyFundPlan sizes the emergency fund and schedules contributions.
type EmergencyFundPlan struct {
	Durations           []FundDuration
	Target              float64
	Shortfall           float64
	MonthlyContribution float64
	TargetMonths        int
	SavingsPeriodMonths int
	MonthsToTarget      int
}

// GrowthRow is the projected future value at one horizon for each
// contribution tier.
type GrowthRow struct {
	Years       int
	Low         float64
	Recommended float64
	High        float64
}

// GrowthTable is the full 3-tier by 3-horizon investment projection.
type GrowthTable struct {
	Rows          []GrowthRow
	Contributions ContributionTiers
}

// PayoffResult describes a debt amortization outcome. Months is capped at
// 600 when the payment never amortizes the balance.
type PayoffResult struct {
	Months        int
	TotalPaid     float64
	InterestPaid  float64
	InterestSaved float64
}

// AllocationPlan is the engine's output: the bucket split plus the detail
// attached to each bucket. The bucket amounts always sum to the rounded
// monthly income.
type AllocationPlan struct {
	DebtPayoff    *PayoffResult
	Buckets       []BucketAllocation
	EmergencyFund EmergencyFundPlan
	Growth        GrowthTable
	MonthlyIncome float64
}

// Bucket returns the allocation row for the named bucket, or nil if the
// plan does not include it.
func (p *AllocationPlan) Bucket(name AllocationBucket) *BucketAllocation {
	for i := range p.Buckets {
		if p.Buckets[i].Bucket == name {
			return &p.Buckets[i]
		}
	}
	return nil
}

// TotalAllocated sums the bucket amounts.
func (p *AllocationPlan) TotalAllocated() float64 {
	var total float64
	for _, b := range p.Buckets {
		total += b.Amount
	}
	return total
}
