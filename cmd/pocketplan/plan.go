package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/pocketplan/pocketplan/internal/cli"
	"github.com/pocketplan/pocketplan/internal/classify"
	"github.com/pocketplan/pocketplan/internal/config"
	"github.com/pocketplan/pocketplan/internal/model"
	"github.com/pocketplan/pocketplan/internal/plan"
	"github.com/pocketplan/pocketplan/internal/sheets"
	"github.com/pocketplan/pocketplan/internal/summary"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func planCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Build a monthly allocation plan",
		Long: `Split your average monthly income across essential spending, emergency
fund, discretionary spending, investments, and debt paydown. The split
starts from a 50/20/15 baseline and blends in your observed spending.

Health metrics describe your situation and shape the emergency fund:
  --score       overall financial health, 0-100
  --stability   income stability: stable, variable, or inconsistent
  --ef-months   emergency fund coverage today, in months of essential spend
  --dti         total debt divided by monthly income

Unset metrics are derived from synced data where possible.`,
		RunE: runPlan,
	}

	cmd.Flags().Float64("income", 0, "Monthly income override (default: observed average)")
	cmd.Flags().Float64("savings", -1, "Current emergency savings (default: total cash)")
	cmd.Flags().IntP("months", "m", summary.DefaultWindowMonths, "Trailing window in months")

	cmd.Flags().Float64("score", 50, "Financial health score, 0-100")
	cmd.Flags().String("stability", "stable", "Income stability (stable, variable, inconsistent)")
	cmd.Flags().Float64("savings-rate", 0.10, "Current savings rate as a fraction")
	cmd.Flags().Float64("ef-months", -1, "Emergency fund months on hand (default: derived)")
	cmd.Flags().Float64("dti", -1, "Debt-to-income ratio (default: derived)")

	cmd.Flags().Bool("export", false, "Export the plan to Google Sheets")

	_ = viper.BindPFlag("plan.income", cmd.Flags().Lookup("income"))
	_ = viper.BindPFlag("plan.savings", cmd.Flags().Lookup("savings"))
	_ = viper.BindPFlag("plan.months", cmd.Flags().Lookup("months"))
	_ = viper.BindPFlag("plan.score", cmd.Flags().Lookup("score"))
	_ = viper.BindPFlag("plan.stability", cmd.Flags().Lookup("stability"))
	_ = viper.BindPFlag("plan.savings_rate", cmd.Flags().Lookup("savings-rate"))
	_ = viper.BindPFlag("plan.ef_months", cmd.Flags().Lookup("ef-months"))
	_ = viper.BindPFlag("plan.dti", cmd.Flags().Lookup("dti"))
	_ = viper.BindPFlag("plan.export", cmd.Flags().Lookup("export"))

	return cmd
}

func runPlan(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	stability, err := model.ParseIncomeStability(viper.GetString("plan.stability"))
	if err != nil {
		return err
	}

	store, err := initStorage(ctx)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() {
		if closeErr := store.Close(); closeErr != nil {
			slog.Warn("Failed to close storage", "error", closeErr)
		}
	}()

	months := viper.GetInt("plan.months")
	transactions, accounts, err := loadWindow(ctx, store, months)
	if err != nil {
		return err
	}

	s := summary.SummarizeWith(transactions, accounts, summary.Options{WindowMonths: months})
	breakdown := classify.Expenses(transactions, s.MonthsAnalyzed)

	income := viper.GetFloat64("plan.income")
	if income <= 0 {
		income = s.AvgMonthlyIncome
	}
	if income <= 0 {
		return fmt.Errorf("no income observed in the window; pass --income")
	}

	savings := viper.GetFloat64("plan.savings")
	if savings < 0 {
		savings = s.TotalCash
	}

	health := model.HealthMetrics{
		Score:               viper.GetFloat64("plan.score"),
		SavingsRate:         viper.GetFloat64("plan.savings_rate"),
		EmergencyFundMonths: viper.GetFloat64("plan.ef_months"),
		DebtToIncome:        viper.GetFloat64("plan.dti"),
		Stability:           stability,
	}
	if health.EmergencyFundMonths < 0 {
		health.EmergencyFundMonths = derivedFundMonths(savings, breakdown)
	}
	if health.DebtToIncome < 0 {
		health.DebtToIncome = s.TotalDebt / income
	}

	engine := plan.NewEngine(policyFromConfig())
	result, err := engine.Allocate(plan.Inputs{
		Breakdown:       breakdown,
		Health:          health,
		Accounts:        accounts,
		MonthlyIncome:   income,
		MonthlyExpenses: s.AvgMonthlyExpenses,
		CurrentSavings:  savings,
		TotalDebt:       s.TotalDebt,
	})
	if err != nil {
		return err
	}

	fmt.Println(cli.FormatTitle("Monthly Plan"))
	fmt.Println(renderAllocationBox(result))
	fmt.Println(renderEmergencyBox(result.EmergencyFund))
	fmt.Println(renderGrowthBox(result.Growth))
	if result.DebtPayoff != nil {
		fmt.Println(renderPayoffBox(*result.DebtPayoff))
	}

	if viper.GetBool("plan.export") {
		if err := exportPlan(ctx, result, s, breakdown); err != nil {
			return fmt.Errorf("failed to export plan: %w", err)
		}
		fmt.Println(cli.FormatSuccess("Exported plan to Google Sheets"))
	}

	return nil
}

// policyFromConfig starts from the default policy and applies any knobs set
// in the config file under the plan tree.
func policyFromConfig() plan.Policy {
	p := plan.DefaultPolicy()

	if viper.IsSet("plan.essential_pct") {
		p.EssentialPct = viper.GetFloat64("plan.essential_pct")
	}
	if viper.IsSet("plan.discretionary_pct") {
		p.DiscretionaryPct = viper.GetFloat64("plan.discretionary_pct")
	}
	if viper.IsSet("plan.investment_pct") {
		p.InvestmentPct = viper.GetFloat64("plan.investment_pct")
	}
	if viper.IsSet("plan.debt_pct") {
		p.DebtPct = viper.GetFloat64("plan.debt_pct")
	}
	if viper.IsSet("plan.debt_threshold") {
		p.DebtThreshold = viper.GetFloat64("plan.debt_threshold")
	}
	if viper.IsSet("plan.annual_return") {
		p.AnnualReturn = viper.GetFloat64("plan.annual_return")
	}
	if viper.IsSet("plan.default_apr") {
		p.DefaultAPR = viper.GetFloat64("plan.default_apr")
	}

	return p
}

// derivedFundMonths estimates emergency coverage from cash on hand.
func derivedFundMonths(savings float64, breakdown model.ExpenseBreakdown) float64 {
	essential := breakdown.Essential()
	if essential <= 0 {
		return 0
	}
	return savings / essential
}

func renderAllocationBox(p *model.AllocationPlan) string {
	content := fmt.Sprintf("Monthly income: %s\n\n", cli.FormatMoney(p.MonthlyIncome))
	for _, b := range p.Buckets {
		tiers := ""
		if b.Tiers != nil {
			tiers = fmt.Sprintf("  (%.0f-%.0f%%)", b.Tiers.LowPct, b.Tiers.HighPct)
		}
		content += fmt.Sprintf("%-16s %12s  %6s%s\n",
			b.Bucket, cli.FormatMoney(b.Amount), cli.FormatPercent(b.Percent), tiers)
	}
	content += fmt.Sprintf("\n%-16s %12s", "Total", cli.FormatMoney(p.TotalAllocated()))

	return cli.RenderBox("Allocation", content)
}

func renderEmergencyBox(fund model.EmergencyFundPlan) string {
	content := fmt.Sprintf(`Target (%d months):    %s
Shortfall:            %s
Monthly contribution: %s
Months to target:     %d

Alternatives:
`, fund.TargetMonths,
		cli.FormatMoney(fund.Target),
		cli.FormatMoney(fund.Shortfall),
		cli.FormatMoney(fund.MonthlyContribution),
		fund.MonthsToTarget)

	for _, d := range fund.Durations {
		content += fmt.Sprintf("  %2d months: target %s, save %s/mo\n",
			d.Months, cli.FormatMoney(d.Target), cli.FormatMoney(d.Tiers.Recommended))
	}

	return cli.RenderBox("Emergency Fund", content)
}

func renderGrowthBox(growth model.GrowthTable) string {
	content := fmt.Sprintf("Monthly contribution tiers: %s / %s / %s\n\n",
		cli.FormatMoney(growth.Contributions.Low),
		cli.FormatMoney(growth.Contributions.Recommended),
		cli.FormatMoney(growth.Contributions.High))

	content += fmt.Sprintf("%-8s %14s %14s %14s\n", "Years", "Low", "Recommended", "High")
	for _, row := range growth.Rows {
		content += fmt.Sprintf("%-8d %14s %14s %14s\n",
			row.Years,
			cli.FormatMoney(row.Low),
			cli.FormatMoney(row.Recommended),
			cli.FormatMoney(row.High))
	}

	return cli.RenderBox("Investment Growth", content)
}

func renderPayoffBox(payoff model.PayoffResult) string {
	content := fmt.Sprintf(`Months to payoff: %d
Total paid:       %s
Interest paid:    %s
Interest saved:   %s`,
		payoff.Months,
		cli.FormatMoney(payoff.TotalPaid),
		cli.FormatMoney(payoff.InterestPaid),
		cli.FormatMoney(payoff.InterestSaved))

	return cli.RenderBox("Debt Payoff", content)
}

func exportPlan(ctx context.Context, p *model.AllocationPlan, s model.FinancialSummary, breakdown model.ExpenseBreakdown) error {
	sheetsConfig, err := config.LoadSheetsConfig()
	if err != nil {
		return err
	}

	writer, err := sheets.NewWriter(ctx, *sheetsConfig, slog.Default())
	if err != nil {
		return err
	}

	return writer.Write(ctx, &sheets.Report{
		GeneratedAt: time.Now(),
		Plan:        p,
		Summary:     s,
		Breakdown:   breakdown,
	})
}
