package main

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/pocketplan/pocketplan/internal/cli"
	"github.com/pocketplan/pocketplan/internal/config"
	"github.com/pocketplan/pocketplan/internal/model"
	"github.com/pocketplan/pocketplan/internal/plaid"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// saveBatchSize bounds how many transactions go into one insert transaction.
const saveBatchSize = 100

func syncCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Sync transactions and accounts from Plaid",
		Long: `Fetch transactions and account balances from your connected Plaid item
and store them in the local database. Transactions are deduplicated
automatically, so syncing overlapping date ranges is safe.`,
		RunE: runSync,
	}

	// Date range flags
	cmd.Flags().StringP("start-date", "s", "", "Start date for the sync (format: 2006-01-02)")
	cmd.Flags().StringP("end-date", "e", "", "End date for the sync (format: 2006-01-02)")
	cmd.Flags().IntP("days", "d", 90, "Number of days to sync (used if start/end dates not specified)")

	// Account filtering
	cmd.Flags().StringSlice("accounts", []string{}, "Filter by specific account IDs (comma-separated)")

	// Other options
	cmd.Flags().Bool("dry-run", false, "Show what would be synced without saving")

	// Bind to viper
	_ = viper.BindPFlag("sync.start_date", cmd.Flags().Lookup("start-date"))
	_ = viper.BindPFlag("sync.end_date", cmd.Flags().Lookup("end-date"))
	_ = viper.BindPFlag("sync.days", cmd.Flags().Lookup("days"))
	_ = viper.BindPFlag("sync.accounts", cmd.Flags().Lookup("accounts"))
	_ = viper.BindPFlag("sync.dry_run", cmd.Flags().Lookup("dry-run"))

	return cmd
}

func runSync(cmd *cobra.Command, _ []string) error {
	interrupts := cli.NewInterruptHandler(nil)
	ctx := interrupts.HandleInterrupts(cmd.Context(), true)

	plaidClient, err := plaid.NewClient(config.LoadPlaidConfig())
	if err != nil {
		return fmt.Errorf("failed to create Plaid client: %w", err)
	}

	startDate, endDate, err := parseDateRange()
	if err != nil {
		return err
	}

	fmt.Println(cli.FormatTitle("Syncing from Plaid"))
	slog.Info("Date range", "start", startDate.Format("2006-01-02"), "end", endDate.Format("2006-01-02"))

	transactions, err := plaidClient.GetTransactions(ctx, startDate, endDate)
	if err != nil {
		return fmt.Errorf("failed to fetch transactions: %w", err)
	}

	accounts, err := plaidClient.GetAccounts(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch accounts: %w", err)
	}

	slog.Info("Fetched from Plaid", "transactions", len(transactions), "accounts", len(accounts))

	// Filter by accounts if specified
	accountFilter := viper.GetStringSlice("sync.accounts")
	if len(accountFilter) > 0 {
		transactions = filterTransactionsByAccount(transactions, accountFilter)
		slog.Info("Filtered to specified accounts", "transactions", len(transactions))
	}

	if viper.GetBool("sync.dry_run") {
		fmt.Println(cli.FormatWarning("Dry run mode - not saving to database"))
		displaySyncSummary(transactions, accounts)
		return nil
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

	if err := store.SaveAccounts(ctx, accounts); err != nil {
		return fmt.Errorf("failed to save accounts: %w", err)
	}

	if len(transactions) > 0 {
		bar := cli.NewProgressBar(nil, len(transactions), "Saving transactions...")
		for start := 0; start < len(transactions); start += saveBatchSize {
			end := start + saveBatchSize
			if end > len(transactions) {
				end = len(transactions)
			}
			if err := store.SaveTransactions(ctx, transactions[start:end]); err != nil {
				return fmt.Errorf("failed to save transactions: %w", err)
			}
			if err := bar.Add(end - start); err != nil {
				slog.Warn("Failed to update progress bar", "error", err)
			}
		}
	}

	fmt.Println(cli.FormatSuccess("Sync complete!"))
	displaySyncSummary(transactions, accounts)

	return nil
}

func parseDateRange() (startDate, endDate time.Time, err error) {
	// Check if explicit dates are provided
	startStr := viper.GetString("sync.start_date")
	endStr := viper.GetString("sync.end_date")

	if startStr != "" && endStr != "" {
		startDate, err = time.Parse("2006-01-02", startStr)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid start date format: %w", err)
		}

		endDate, err = time.Parse("2006-01-02", endStr)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid end date format: %w", err)
		}

		if endDate.Before(startDate) {
			return time.Time{}, time.Time{}, fmt.Errorf("end date %s is before start date %s", endStr, startStr)
		}

		return startDate, endDate, nil
	}

	// Use days flag
	days := viper.GetInt("sync.days")
	if days <= 0 {
		days = 90
	}

	endDate = time.Now()
	startDate = endDate.AddDate(0, 0, -days)

	return startDate, endDate, nil
}

func filterTransactionsByAccount(transactions []model.Transaction, accountIDs []string) []model.Transaction {
	accountSet := make(map[string]bool)
	for _, id := range accountIDs {
		accountSet[id] = true
	}

	filtered := make([]model.Transaction, 0)
	for _, tx := range transactions {
		if accountSet[tx.AccountID] {
			filtered = append(filtered, tx)
		}
	}

	return filtered
}

func displaySyncSummary(transactions []model.Transaction, accounts []model.Account) {
	merchants := make(map[string]int)
	var outflow, inflow float64

	for _, tx := range transactions {
		merchants[tx.MerchantName]++
		if tx.Amount >= 0 {
			outflow += tx.Amount
		} else {
			inflow -= tx.Amount
		}
	}

	content := fmt.Sprintf(`Transactions: %d
Accounts: %d
Unique merchants: %d
Money out: %s
Money in: %s
`, len(transactions), len(accounts), len(merchants),
		cli.FormatMoney(outflow), cli.FormatMoney(inflow))

	fmt.Println(cli.RenderBox("Sync Summary", content))
}
