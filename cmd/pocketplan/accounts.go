package main

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/pocketplan/pocketplan/internal/cli"
	"github.com/pocketplan/pocketplan/internal/model"
	"github.com/spf13/cobra"
)

func accountsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "accounts",
		Short: "List synced accounts and balances",
		RunE:  runAccounts,
	}
}

func runAccounts(cmd *cobra.Command, _ []string) error {
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

	if len(accounts) == 0 {
		fmt.Println(cli.FormatWarning("No accounts found. Run 'pocketplan sync' first."))
		return nil
	}

	fmt.Println(cli.FormatTitle("Accounts"))
	fmt.Println(renderAccountsTable(accounts))

	var cash, debt, invested float64
	for _, a := range accounts {
		switch {
		case a.IsDepository():
			cash += a.CashBalance()
		case a.IsDebt():
			debt += a.CurrentBalance
		case a.IsInvestment():
			invested += a.CurrentBalance
		}
	}
	fmt.Printf("Cash: %s   Invested: %s   Debt: %s\n",
		cli.Money(cash), cli.Money(invested), cli.Money(debt))

	return nil
}

func renderAccountsTable(accounts []model.Account) string {
	header := cli.TableHeaderStyle.Render(fmt.Sprintf("%-28s %-12s %14s %10s %12s",
		"Name", "Type", "Balance", "APR", "Min Payment"))

	rows := make([]string, 0, len(accounts)+1)
	rows = append(rows, header)
	for _, a := range accounts {
		apr := "-"
		if a.APR != nil {
			apr = cli.FormatPercent(*a.APR * 100)
		}
		minPayment := "-"
		if a.MinimumPayment != nil {
			minPayment = cli.FormatMoney(*a.MinimumPayment)
		}

		name := a.Name
		if len(name) > 28 {
			name = name[:25] + "..."
		}
		rows = append(rows, cli.TableCellStyle.Render(fmt.Sprintf("%-28s %-12s %14s %10s %12s",
			name, a.Type, cli.FormatMoney(a.CurrentBalance), apr, minPayment)))
	}

	return strings.Join(rows, "\n")
}
