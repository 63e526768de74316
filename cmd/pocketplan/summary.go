package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/pocketplan/pocketplan/internal/cli"
	"github.com/pocketplan/pocketplan/internal/classify"
	"github.com/pocketplan/pocketplan/internal/model"
	"github.com/pocketplan/pocketplan/internal/service"
	"github.com/pocketplan/pocketplan/internal/summary"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func summaryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Show the trailing financial summary and expense breakdown",
		Long: `Aggregate stored transactions and balances over the trailing analysis
window into average monthly income, expenses, and a per-category expense
breakdown.`,
		RunE: runSummary,
	}

	cmd.Flags().IntP("months", "m", summary.DefaultWindowMonths, "Trailing window in months")
	_ = viper.BindPFlag("summary.months", cmd.Flags().Lookup("months"))

	return cmd
}

func runSummary(cmd *cobra.Command, _ []string) error {
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

	months := viper.GetInt("summary.months")
	transactions, accounts, err := loadWindow(ctx, store, months)
	if err != nil {
		return err
	}

	if len(transactions) == 0 {
		fmt.Println(cli.FormatWarning("No transactions found. Run 'pocketplan sync' or 'pocketplan import-ofx' first."))
		return nil
	}

	s := summary.SummarizeWith(transactions, accounts, summary.Options{WindowMonths: months})
	breakdown := classify.Expenses(transactions, s.MonthsAnalyzed)

	fmt.Println(cli.FormatTitle("Financial Summary"))
	fmt.Println(renderSummaryBox(s))
	fmt.Println(renderBreakdownBox(breakdown))

	return nil
}

func renderSummaryBox(s model.FinancialSummary) string {
	content := fmt.Sprintf(`Avg monthly income:   %s
Avg monthly expenses: %s
Net monthly:          %s
Disposable income:    %s

Total cash:           %s
Total invested:       %s
Total debt:           %s

Months analyzed:      %d`,
		cli.Money(s.AvgMonthlyIncome),
		cli.Money(s.AvgMonthlyExpenses),
		cli.Money(s.NetMonthly),
		cli.Money(s.DisposableIncome),
		cli.Money(s.TotalCash),
		cli.Money(s.TotalInvested),
		cli.Money(s.TotalDebt),
		s.MonthsAnalyzed)

	return cli.RenderBox("Summary", content)
}

func renderBreakdownBox(b model.ExpenseBreakdown) string {
	rows := []struct {
		label  string
		amount float64
	}{
		{"Housing", b.Housing},
		{"Food", b.Food},
		{"Transportation", b.Transportation},
		{"Utilities", b.Utilities},
		{"Insurance", b.Insurance},
		{"Subscriptions", b.Subscriptions},
		{"Healthcare", b.Healthcare},
		{"Other", b.Other},
	}

	content := ""
	for _, row := range rows {
		content += fmt.Sprintf("%-16s %12s\n", row.label, cli.FormatMoney(row.amount))
	}
	content += fmt.Sprintf("%-16s %12s\n", "Total", cli.FormatMoney(b.Total()))
	content += fmt.Sprintf("\nClassification confidence: %.0f%%", b.Confidence*100)

	return cli.RenderBox("Monthly Expenses", content)
}

// loadWindow fetches the transactions inside the trailing window along with
// all stored accounts.
func loadWindow(ctx context.Context, store service.Storage, months int) ([]model.Transaction, []model.Account, error) {
	if months < 1 {
		months = summary.DefaultWindowMonths
	}
	start := time.Now().AddDate(0, -months, 0)

	transactions, err := store.GetTransactions(ctx, service.TransactionFilter{StartDate: &start})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load transactions: %w", err)
	}

	accounts, err := store.GetAccounts(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load accounts: %w", err)
	}

	return transactions, accounts, nil
}
