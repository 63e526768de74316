package plan

import (
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/pocketplan/pocketplan/internal/model"
)

// ErrInvalidIncome signals a caller contract violation: the engine refuses
// to plan around a non-positive monthly income.
var ErrInvalidIncome = errors.New("monthly income must be positive")

// Policy carries the tunable allocation constants. Percentages are whole
// points of monthly income.
type Policy struct {
	EssentialPct     float64
	DiscretionaryPct float64
	InvestmentPct    float64
	DebtPct          float64
	DebtThreshold    float64
	AnnualReturn     float64
	DefaultAPR       float64
}

// DefaultPolicy returns the 50/20/15 baseline with a $1,000 debt threshold.
func DefaultPolicy() Policy {
	return Policy{
		EssentialPct:     50,
		DiscretionaryPct: 20,
		InvestmentPct:    15,
		DebtPct:          15,
		DebtThreshold:    1000,
		AnnualReturn:     DefaultAnnualReturn,
		DefaultAPR:       DefaultAPR,
	}
}

// Inputs bundles everything the allocation engine needs. All values are
// already resolved; the engine performs no I/O.
type Inputs struct {
	Breakdown       model.ExpenseBreakdown
	Health          model.HealthMetrics
	Accounts        []model.Account
	MonthlyIncome   float64
	MonthlyExpenses float64
	CurrentSavings  float64 // emergency-fund balance today
	TotalDebt       float64
}

// Engine derives allocation plans from a policy.
type Engine struct {
	logger *slog.Logger
	policy Policy
}

// NewEngine creates an allocation engine with the given policy.
func NewEngine(policy Policy) *Engine {
	return &Engine{
		policy: policy,
		logger: slog.Default().With("component", "plan"),
	}
}

// Allocate derives the bucket split for a monthly income. The bucket
// amounts always sum to the rounded income; a single reconciliation step
// absorbs rounding drift into the largest flexible bucket.
func (e *Engine) Allocate(in Inputs) (*model.AllocationPlan, error) {
	if in.MonthlyIncome <= 0 {
		return nil, fmt.Errorf("%w: got %.2f", ErrInvalidIncome, in.MonthlyIncome)
	}
	income := math.Round(in.MonthlyIncome)

	essentialPct, discretionaryPct := e.blendPercents(in.Breakdown)
	essentialAmt := math.Round(in.MonthlyIncome * essentialPct / 100)
	discretionaryAmt := math.Round(in.MonthlyIncome * discretionaryPct / 100)
	investmentAmt := math.Round(in.MonthlyIncome * e.policy.InvestmentPct / 100)

	// Debt takes spending priority: its fixed share comes out of the
	// discretionary bucket, floored at zero.
	var debtAmt float64
	includeDebt := in.TotalDebt > e.policy.DebtThreshold
	if includeDebt {
		debtAmt = math.Round(in.MonthlyIncome * e.policy.DebtPct / 100)
		discretionaryAmt = math.Max(0, discretionaryAmt-debtAmt)
	}

	essentialSpend := in.Breakdown.Essential()
	if essentialSpend <= 0 {
		essentialSpend = essentialAmt
	}
	fund := EmergencyFund(essentialSpend, in.CurrentSavings, in.Health)
	emergencyAmt := fund.MonthlyContribution

	// Reconcile rounding so the buckets sum exactly to income. Essential
	// and debt keep their percentage-derived figures; the whole adjustment
	// lands on the largest of the remaining buckets, ties broken in the
	// order emergency, discretionary, investments.
	adjustment := income - (essentialAmt + emergencyAmt + discretionaryAmt + investmentAmt + debtAmt)
	switch {
	case emergencyAmt >= discretionaryAmt && emergencyAmt >= investmentAmt:
		emergencyAmt += adjustment
	case discretionaryAmt >= investmentAmt:
		discretionaryAmt += adjustment
	default:
		investmentAmt += adjustment
	}
	e.logger.Debug("reconciled allocation rounding",
		"income", income,
		"adjustment", adjustment)

	plan := &model.AllocationPlan{
		MonthlyIncome: income,
		EmergencyFund: fund,
		Buckets: []model.BucketAllocation{
			{Bucket: model.AllocEssential, Amount: essentialAmt, Percent: pctOf(essentialAmt, income)},
			{Bucket: model.AllocEmergency, Amount: emergencyAmt, Percent: pctOf(emergencyAmt, income)},
			{
				Bucket:  model.AllocDiscretionary,
				Amount:  discretionaryAmt,
				Percent: pctOf(discretionaryAmt, income),
				Tiers:   &model.PresetTiers{LowPct: 10, RecommendedPct: pctOf(discretionaryAmt, income), HighPct: 20},
			},
			{
				Bucket:  model.AllocInvestments,
				Amount:  investmentAmt,
				Percent: pctOf(investmentAmt, income),
				Tiers:   &model.PresetTiers{LowPct: 5, RecommendedPct: pctOf(investmentAmt, income), HighPct: 15},
			},
		},
	}
	if includeDebt {
		plan.Buckets = append(plan.Buckets, model.BucketAllocation{
			Bucket:  model.AllocDebt,
			Amount:  debtAmt,
			Percent: pctOf(debtAmt, income),
			Tiers:   &model.PresetTiers{LowPct: 10, RecommendedPct: 15, HighPct: 20},
		})
	}

	// Investment projections at the preset contribution tiers.
	var investedBalance float64
	for _, account := range in.Accounts {
		if account.IsInvestment() {
			investedBalance += account.CurrentBalance
		}
	}
	contributions := model.ContributionTiers{
		Low:         math.Round(in.MonthlyIncome * 0.05),
		Recommended: investmentAmt,
		High:        math.Round(in.MonthlyIncome * 0.15),
	}
	plan.Growth = ProjectGrowth(investedBalance, contributions, e.policy.AnnualReturn)

	if includeDebt && debtAmt > 0 {
		apr := weightedAPR(in.Accounts)
		if apr <= 0 {
			apr = e.policy.DefaultAPR
		}
		payoff := PayoffWithSavings(in.TotalDebt, debtAmt, apr)
		plan.DebtPayoff = &payoff
	}

	return plan, nil
}

// blendPercents mixes the baseline split with the observed essential-versus-
// discretionary spending ratio. The combined share is capped at 70; the
// remaining 30 points stay reserved for the emergency fund, investments,
// and debt headroom.
func (e *Engine) blendPercents(b model.ExpenseBreakdown) (essential, discretionary float64) {
	essential = e.policy.EssentialPct
	discretionary = e.policy.DiscretionaryPct

	obsEssential := b.Essential()
	obsDiscretionary := b.Discretionary()
	if obsEssential <= 0 || obsDiscretionary <= 0 {
		return essential, discretionary
	}

	ratio := obsEssential / (obsEssential + obsDiscretionary)
	essential = math.Round(0.5*e.policy.EssentialPct + 0.5*ratio*70)
	discretionary = math.Round(0.5*e.policy.DiscretionaryPct + 0.5*(1-ratio)*70)
	if sum := essential + discretionary; sum > 70 {
		essential = math.Round(essential * 70 / sum)
		discretionary = 70 - essential
	}
	return essential, discretionary
}

// DiscretionaryIncome is what remains of income after the tracked expense
// breakdown and minimum debt service.
func DiscretionaryIncome(monthlyIncome float64, breakdown model.ExpenseBreakdown, debtMinimums float64) float64 {
	return monthlyIncome - breakdown.Total() - debtMinimums
}

// weightedAPR returns the balance-weighted APR across debt accounts, or 0
// when no account reports one.
func weightedAPR(accounts []model.Account) float64 {
	var sum, weight float64
	for _, account := range accounts {
		if account.IsDebt() && account.APR != nil && account.CurrentBalance > 0 {
			sum += *account.APR * account.CurrentBalance
			weight += account.CurrentBalance
		}
	}
	if weight == 0 {
		return 0
	}
	return sum / weight
}

func pctOf(amount, income float64) float64 {
	if income == 0 {
		return 0
	}
	return amount / income * 100
}
