package plaid

import (
	"context"
	"time"

	"github.com/pocketplan/pocketplan/internal/model"
)

// Fetcher defines the contract for pulling both transactions and account
// balances from an aggregator. It allows for easy mocking in tests and
// swapping data sources.
type Fetcher interface {
	GetTransactions(ctx context.Context, startDate, endDate time.Time) ([]model.Transaction, error)
	GetAccounts(ctx context.Context) ([]model.Account, error)
}
