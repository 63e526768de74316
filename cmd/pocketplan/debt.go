package main

import (
	"fmt"
	"log/slog"

	"github.com/pocketplan/pocketplan/internal/cli"
	"github.com/pocketplan/pocketplan/internal/model"
	"github.com/pocketplan/pocketplan/internal/plan"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func debtCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "debt",
		Short: "Project debt payoff per account",
		Long: `Show each debt account with its payoff timeline at the minimum payment.
When the feed did not report a minimum payment, one is estimated from the
account type and balance.

Pass --payment to see how a fixed monthly budget against the combined
balance compares to paying minimums.`,
		RunE: runDebt,
	}

	cmd.Flags().Float64P("payment", "p", 0, "Monthly budget against the combined balance")
	_ = viper.BindPFlag("debt.payment", cmd.Flags().Lookup("payment"))

	return cmd
}

func runDebt(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	store, err := initStorage(ctx)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() {
		if closeErr := store.Close(); closeErr != nil {
			slog.Warn("Failed to close storage", "error", closeErr)
		}
	}()

	accounts, err := store.GetAccounts(ctx)
	if err != nil {
		return fmt.Errorf("failed to load accounts: %w", err)
	}

	var debts []model.Account
	var totalBalance float64
	for _, a := range accounts {
		if a.IsDebt() && a.CurrentBalance > 0 {
			debts = append(debts, a)
			totalBalance += a.CurrentBalance
		}
	}

	if len(debts) == 0 {
		fmt.Println(cli.FormatSuccess("No debt accounts with a balance. Nice."))
		return nil
	}

	fmt.Println(cli.FormatTitle("Debt Payoff"))
	fmt.Println(cli.TableHeaderStyle.Render(fmt.Sprintf("%-28s %12s %8s %12s %8s %14s",
		"Account", "Balance", "APR", "Payment", "Months", "Interest")))

	for _, a := range debts {
		payment := plan.EstimateMinimumPayment(a)
		apr := 0.0
		if a.APR != nil {
			apr = *a.APR
		}
		result := plan.Payoff(a.CurrentBalance, payment, apr)

		name := a.Name
		if len(name) > 28 {
			name = name[:25] + "..."
		}
		fmt.Println(cli.TableCellStyle.Render(fmt.Sprintf("%-28s %12s %8s %12s %8d %14s",
			name,
			cli.FormatMoney(a.CurrentBalance),
			cli.FormatPercent(apr*100),
			cli.FormatMoney(payment),
			result.Months,
			cli.FormatMoney(result.InterestPaid))))
	}

	if budget := viper.GetFloat64("debt.payment"); budget > 0 {
		fmt.Println(renderBudgetPayoff(debts, totalBalance, budget))
	}

	return nil
}

// renderBudgetPayoff compares a fixed monthly budget against the combined
// balance at the balance-weighted APR.
func renderBudgetPayoff(debts []model.Account, totalBalance, budget float64) string {
	var weighted, aprBalance float64
	for _, a := range debts {
		if a.APR != nil {
			weighted += *a.APR * a.CurrentBalance
			aprBalance += a.CurrentBalance
		}
	}
	apr := 0.0
	if aprBalance > 0 {
		apr = weighted / aprBalance
	}

	result := plan.PayoffWithSavings(totalBalance, budget, apr)

	content := fmt.Sprintf(`Combined balance: %s
Monthly budget:   %s
Blended APR:      %s

Months to payoff: %d
Total paid:       %s
Interest paid:    %s
Interest saved:   %s vs. minimum payments`,
		cli.FormatMoney(totalBalance),
		cli.FormatMoney(budget),
		cli.FormatPercent(apr*100),
		result.Months,
		cli.FormatMoney(result.TotalPaid),
		cli.FormatMoney(result.InterestPaid),
		cli.FormatMoney(result.InterestSaved))

	return cli.RenderBox("Budget Scenario", content)
}
