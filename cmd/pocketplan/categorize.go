package main

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/pocketplan/pocketplan/internal/cli"
	"github.com/pocketplan/pocketplan/internal/classify"
	"github.com/pocketplan/pocketplan/internal/model"
	"github.com/pocketplan/pocketplan/internal/service"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func categorizeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "categorize",
		Short: "Inspect and override transaction buckets",
		Long: `Transactions are bucketed automatically from their amount sign and source
category. Use these subcommands to review the result and pin a bucket when
the automatic choice is wrong. Overrides always win.`,
	}

	cmd.AddCommand(categorizeListCmd())
	cmd.AddCommand(categorizeSetCmd())
	cmd.AddCommand(categorizeClearCmd())

	return cmd
}

func categorizeListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recent transactions with their buckets",
		RunE:  runCategorizeList,
	}

	cmd.Flags().IntP("limit", "n", 25, "Maximum transactions to show")
	cmd.Flags().StringP("bucket", "b", "", "Only show transactions in this bucket")
	_ = viper.BindPFlag("categorize.limit", cmd.Flags().Lookup("limit"))
	_ = viper.BindPFlag("categorize.bucket", cmd.Flags().Lookup("bucket"))

	return cmd
}

func runCategorizeList(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	var bucketFilter model.BucketCategory
	if raw := viper.GetString("categorize.bucket"); raw != "" {
		parsed, err := model.ParseBucketCategory(raw)
		if err != nil {
			return err
		}
		bucketFilter = parsed
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

	limit := viper.GetInt("categorize.limit")
	filter := service.TransactionFilter{Limit: limit}
	if bucketFilter != "" {
		// Bucket is derived, so fetch without a limit and filter here.
		filter.Limit = 0
	}

	transactions, err := store.GetTransactions(ctx, filter)
	if err != nil {
		return fmt.Errorf("failed to load transactions: %w", err)
	}

	if len(transactions) == 0 {
		fmt.Println(cli.FormatWarning("No transactions found."))
		return nil
	}

	fmt.Println(cli.FormatTitle("Transactions"))
	fmt.Println(cli.TableHeaderStyle.Render(fmt.Sprintf("%-38s %-12s %-28s %12s %-12s %s",
		"ID", "Date", "Merchant", "Amount", "Bucket", "")))

	shown := 0
	for _, tx := range transactions {
		bucket := classify.Bucket(tx)
		if bucketFilter != "" && bucket != bucketFilter {
			continue
		}

		marker := ""
		if tx.BucketOverride != nil {
			marker = "(pinned)"
		}

		merchant := tx.MerchantName
		if len(merchant) > 28 {
			merchant = merchant[:25] + "..."
		}

		fmt.Println(cli.TableCellStyle.Render(fmt.Sprintf("%-38s %-12s %-28s %12s %-12s %s",
			tx.ID, tx.Date.Format("2006-01-02"), merchant,
			cli.FormatMoney(tx.Amount), bucket, marker)))

		shown++
		if limit > 0 && shown >= limit {
			break
		}
	}

	return nil
}

func categorizeSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set [transaction-id] [bucket]",
		Short: "Pin a transaction to a bucket",
		Long: fmt.Sprintf("Pin a transaction to one of: %s.",
			strings.Join(bucketNames(), ", ")),
		Args: cobra.ExactArgs(2),
		RunE: runCategorizeSet,
	}
}

func runCategorizeSet(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	bucket, err := model.ParseBucketCategory(args[1])
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

	if err := store.SetBucketOverride(ctx, args[0], &bucket); err != nil {
		return fmt.Errorf("failed to set bucket override: %w", err)
	}

	fmt.Println(cli.FormatSuccess(fmt.Sprintf("Pinned %s to %s", args[0], bucket)))
	return nil
}

func categorizeClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear [transaction-id]",
		Short: "Remove a transaction's bucket override",
		Args:  cobra.ExactArgs(1),
		RunE:  runCategorizeClear,
	}
}

func runCategorizeClear(cmd *cobra.Command, args []string) error {
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

	if err := store.SetBucketOverride(ctx, args[0], nil); err != nil {
		return fmt.Errorf("failed to clear bucket override: %w", err)
	}

	fmt.Println(cli.FormatSuccess(fmt.Sprintf("Cleared override on %s", args[0])))
	return nil
}

func bucketNames() []string {
	buckets := []model.BucketCategory{
		model.BucketIncome,
		model.BucketExpenses,
		model.BucketDebt,
		model.BucketInvested,
		model.BucketCash,
		model.BucketDisposable,
	}
	names := make([]string, len(buckets))
	for i, b := range buckets {
		names[i] = string(b)
	}
	return names
}
